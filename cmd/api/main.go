package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tlecomte/formatrack/internal/app"
	"github.com/tlecomte/formatrack/internal/config"
)

func main() {
	// Le fichier .env est optionnel, les variables d'environnement priment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to create application: %v", err)
	}

	ctx := context.Background()
	if err := application.Initialize(ctx); err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := application.Run(); err != nil {
			log.Printf("server error: %v", err)
		}
	}()

	<-sigChan

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Printf("failed to shutdown gracefully: %v", err)
		os.Exit(1)
	}
}
