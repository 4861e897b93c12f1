package payments

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"github.com/BelleVueSalon/salon-booking-api/internal/config"
	"github.com/BelleVueSalon/salon-booking-api/internal/models"
)

// Client wraps the Stripe API with the salon's configuration injected.
// Nothing here touches stripe's package-level key.
type Client struct {
	cfg             config.StripeConfig
	frontendBaseURL string
	api             *client.API
	logger          *zap.Logger
}

func NewClient(cfg config.StripeConfig, frontendBaseURL string, logger *zap.Logger) *Client {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &Client{
		cfg:             cfg,
		frontendBaseURL: frontendBaseURL,
		api:             api,
		logger:          logger,
	}
}

func (c *Client) Configured() bool {
	return c.cfg.SecretKey != ""
}

func (c *Client) WebhookConfigured() bool {
	return c.cfg.WebhookSecret != ""
}

// AmountCents derives the charge from the style's minimum price, in
// minor currency units.
func AmountCents(style *models.Style) int64 {
	return int64(math.Round(style.PriceMin * 100))
}

// CreateCheckoutSession builds a hosted checkout page for the
// appointment and returns its URL. The success URL carries enough
// context for the frontend to render a receipt without another call.
func (c *Client) CreateCheckoutSession(
	ap *models.Appointment,
	customerEmail string,
	firstName string,
) (string, error) {

	amount := AmountCents(&ap.Style)
	if amount <= 0 {
		return "", fmt.Errorf("invalid amount %d for style %d", amount, ap.StyleID)
	}

	qs := url.Values{}
	qs.Set("first", firstName)
	qs.Set("style", ap.Style.Name)
	qs.Set("amount", fmt.Sprintf("%.2f", float64(amount)/100))
	qs.Set("dt", ap.ScheduledAt.Format("2006-01-02T15:04:05Z07:00"))

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(c.cfg.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(ap.Style.Name),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(c.frontendBaseURL + "/payment-success?" + qs.Encode()),
		CancelURL:  stripe.String(c.frontendBaseURL + "/payment-cancelled"),
	}

	params.AddMetadata("appointment_id", strconv.FormatUint(uint64(ap.ID), 10))
	if ap.UserID != nil {
		params.AddMetadata("user_id", strconv.FormatUint(uint64(*ap.UserID), 10))
	}

	if customerEmail != "" {
		params.CustomerEmail = stripe.String(customerEmail)
	}

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", err
	}

	c.logger.Info("checkout session created",
		zap.Uint("appointment_id", ap.ID),
		zap.Int64("amount_cents", amount),
	)

	return sess.URL, nil
}

// VerifyEvent checks the webhook signature and decodes the event.
func (c *Client) VerifyEvent(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, c.cfg.WebhookSecret)
}

// FirstName extracts the leading name token for receipt greetings.
func FirstName(fullName string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return "there"
	}
	return strings.SplitN(name, " ", 2)[0]
}
