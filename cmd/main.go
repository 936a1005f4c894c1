package main

import (
	"context"
	"converter"
	"converter/internal/api/handler/endpoints"
	"converter/internal/api/models"
	"converter/internal/realtime"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func main() {
	converter.InitConfig(".env")
	gin.SetMode(gin.ReleaseMode)

	if converter.GetConfig().Mode == "dev" {
		if err := converter.DB.AutoMigrate(
			&models.Conversion{},
		); err != nil {
			converter.Logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		converter.Logger.Info().Msg("Database migrated successfully")
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(converter.GetConfig().ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// The event publisher is optional: without a broker the API still converts.
	var publisher *realtime.Publisher
	if natsURL := converter.GetConfig().NatsURL; natsURL != "" {
		publisher, err = realtime.NewPublisher(natsURL, converter.Logger)
		if err != nil {
			converter.Logger.Warn().Err(err).Msg("NATS unavailable, conversion events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	initAPI(router, publisher)

	converter.Logger.Debug().Msgf("Starting converter API on port %s", converter.GetConfig().ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		converter.Logger.Fatal().Msg(err.Error())
		panic(err)
	}
}

func initAPI(router *graceful.Graceful, publisher *realtime.Publisher) {
	endpoints.ConversionHandler(router, publisher)
}
