package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"growdash/internal/config"
	"growdash/internal/database"
	"growdash/internal/dosing"
	"growdash/internal/fertilizer"
	"growdash/internal/labels"
	"growdash/internal/plan"
	"growdash/internal/sensors"
	"growdash/internal/telegram"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramWebhookURL == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN and TELEGRAM_WEBHOOK_URL must be set")
	}

	ctx := context.Background()

	// 2. Initialize the SQLite database
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// 3. Initialize repositories
	planRepo := plan.NewRepository(db.SQL)
	if err := planRepo.EnsureDefault(ctx); err != nil {
		log.Fatalf("Failed to seed default feeding plan: %v", err)
	}
	sensorStore := sensors.NewStore(db.SQL)

	labelProvider, err := labels.NewProvider()
	if err != nil {
		log.Fatalf("Failed to load labels: %v", err)
	}

	// 4. Initialize the dosing engine and the Telegram Bot
	engine := dosing.NewEngine(fertilizer.Profiles())

	bot, err := telegram.NewBot(cfg, engine, planRepo, sensorStore, labelProvider)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	// 5. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Feeding Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
