package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BelleVueSalon/salon-booking-api/internal/config"
	dbpkg "github.com/BelleVueSalon/salon-booking-api/internal/db"
	appLogger "github.com/BelleVueSalon/salon-booking-api/internal/logger"
	"github.com/BelleVueSalon/salon-booking-api/internal/middleware"
	"github.com/BelleVueSalon/salon-booking-api/internal/routes"
)

func main() {

	cfg := config.Load()

	logger, err := appLogger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	database, err := dbpkg.Connect(cfg.DBUrl)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, database, cfg, logger)

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
