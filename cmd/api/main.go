package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lennyai/lenny-be/database"
	"github.com/lennyai/lenny-be/internal/config"
	"github.com/lennyai/lenny-be/internal/pkg/validate"
)

func main() {
	viperConfig := config.NewViper()

	log := config.NewLogger(viperConfig)
	db := database.New(viperConfig)
	validator := validate.NewValidator()
	api := config.NewAPI(viperConfig, log)

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Info("Migrations completed successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	defer stop()

	config.Bootstrap(&config.BootstrapConfig{
		Ctx:       ctx,
		Config:    viperConfig,
		Log:       log,
		Api:       api,
		Validator: validator,
		DB:        db,
	})

	listenAddr := ":8080"
	if port := viperConfig.GetInt("api.port"); port > 0 {
		listenAddr = fmt.Sprintf(":%d", port)
	}

	go func() {
		if err := api.Listen(listenAddr); err != nil {
			log.Fatalf("Failed to start API server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := api.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("API shutdown error: %v", err)
	}

	log.Info("Shutting down server...")

}
