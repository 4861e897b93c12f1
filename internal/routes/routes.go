package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BelleVueSalon/salon-booking-api/internal/audit"
	"github.com/BelleVueSalon/salon-booking-api/internal/config"
	"github.com/BelleVueSalon/salon-booking-api/internal/eventcache"
	"github.com/BelleVueSalon/salon-booking-api/internal/handlers"
	infraRepo "github.com/BelleVueSalon/salon-booking-api/internal/infra/repository"
	"github.com/BelleVueSalon/salon-booking-api/internal/middleware"
	"github.com/BelleVueSalon/salon-booking-api/internal/notify"
	"github.com/BelleVueSalon/salon-booking-api/internal/payments"
	"github.com/BelleVueSalon/salon-booking-api/internal/storage"
	ucBooking "github.com/BelleVueSalon/salon-booking-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	notifier := notify.NewDispatcher(
		notify.NewMailer(cfg.SMTP),
		notify.NewSMSSender(cfg.Twilio),
		logger,
	)

	stripeClient := payments.NewClient(cfg.Stripe, cfg.FrontendBaseURL, logger)
	events := eventcache.New(cfg.Redis)
	images := storage.NewImageStore(cfg.S3)

	// ======================================================
	// USE CASES (BOOKINGS)
	// ======================================================
	createUC := ucBooking.NewCreateAppointment(bookingRepo, notifier, auditDispatcher, cfg.SalonTimezone)
	cancelUC := ucBooking.NewCancelAppointment(bookingRepo, auditDispatcher, cfg.SalonTimezone)
	approveUC := ucBooking.NewApproveAppointment(bookingRepo, auditDispatcher)
	completeUC := ucBooking.NewCompleteAppointment(bookingRepo, auditDispatcher)
	takenSlotsUC := ucBooking.NewTakenSlots(bookingRepo, cfg.SalonTimezone)
	listUC := ucBooking.NewListAppointments(bookingRepo, cfg.SalonTimezone)
	markPaidUC := ucBooking.NewMarkPaid(bookingRepo, notifier, auditDispatcher, cfg.SalonTimezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	styleHandler := handlers.NewStyleHandler(db, images, logger)
	meHandler := handlers.NewMeHandler(db, listUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		cancelUC,
		approveUC,
		completeUC,
		takenSlotsUC,
		listUC,
	)

	paymentHandler := handlers.NewPaymentHandler(
		bookingRepo,
		stripeClient,
		markPaidUC,
		events,
		logger,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		// ------------------------------
		// PUBLIC CATALOG + AVAILABILITY
		// ------------------------------
		api.GET("/styles", styleHandler.List)
		api.GET("/styles/:id", styleHandler.Get)
		api.GET("/appointments/taken", appointmentHandler.Taken)

		// Booking is open to guests; a valid token attaches the account.
		api.POST("/appointments",
			middleware.OptionalAuthMiddleware(cfg),
			appointmentHandler.Create,
		)

		// ------------------------------
		// WEBHOOKS
		// ------------------------------
		api.POST("/webhooks/stripe", paymentHandler.StripeWebhook)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/upcoming", appointmentHandler.Upcoming)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/me/profile", meHandler.GetProfile)
			secured.PATCH("/me/profile", meHandler.UpdateProfile)
			secured.GET("/me/appointments", meHandler.MyAppointments)

			secured.POST("/checkout/sessions/:id", paymentHandler.CreateCheckoutSession)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.AdminRequired())
			{
				admin.POST("/styles", styleHandler.Create)
				admin.PATCH("/styles/:id", styleHandler.Update)
				admin.DELETE("/styles/:id", styleHandler.Delete)
				admin.POST("/styles/:id/image", styleHandler.UploadImage)

				admin.PATCH("/appointments/:id/approve", appointmentHandler.Approve)
				admin.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
