package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"farmassist/internal/config"
	"farmassist/internal/database"
	"farmassist/internal/domain"
	"farmassist/internal/logging"
	"farmassist/internal/metrics"
	"farmassist/internal/middleware"
	"farmassist/internal/modules/booking"
	"farmassist/internal/modules/listing"
	"farmassist/internal/modules/notification"
	jwtsvc "farmassist/internal/pkg/jwt"
	"farmassist/internal/repository"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.Logging, cfg.App)
	metrics.Register()

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}

	userRepo := repository.NewUserRepository(db)
	manureRepo := repository.NewManureRepository(db)
	tractorRepo := repository.NewTractorRepository(db)
	cropRepo := repository.NewNurseryCropRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHrs)*time.Hour)

	hub := notification.NewHub()
	defer hub.Close()

	notifService := notification.NewService(notifRepo, hub, logger.With().Str("component", "notifications").Logger())
	notifHandler := notification.NewHandler(notifService, hub)

	bookingService := booking.NewService(
		bookingRepo,
		map[domain.ItemType]booking.ItemRegistry{
			domain.ItemManure:      manureRepo,
			domain.ItemTractor:     tractorRepo,
			domain.ItemNurseryCrop: cropRepo,
		},
		userRepo,
		notifService,
	)
	bookingHandler := booking.NewHandler(bookingService)

	listingService := listing.NewService(manureRepo, tractorRepo, cropRepo, bookingRepo)
	listingHandler := listing.NewHandler(listingService)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.HTTP.AllowedOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := r.Group("/api/v1")
	{
		// public listing reads
		listingHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			listingHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	logger.Info().Str("addr", addr).Msg("starting api server")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("FARMASSIST_CONFIG"); path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}
