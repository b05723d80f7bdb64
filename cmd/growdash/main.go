package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"growdash/internal/advisor"
	"growdash/internal/config"
	"growdash/internal/database"
	"growdash/internal/dosing"
	"growdash/internal/fertilizer"
	"growdash/internal/homeassistant"
	"growdash/internal/journal"
	"growdash/internal/labels"
	"growdash/internal/plan"
	"growdash/internal/sensors"
	"growdash/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Initialize the SQLite database
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// 3. Initialize repositories and stores
	planRepo := plan.NewRepository(db.SQL)
	if err := planRepo.EnsureDefault(ctx); err != nil {
		log.Fatalf("Failed to seed default feeding plan: %v", err)
	}

	journalRepo := journal.NewRepository(db.SQL)
	photoStore, err := journal.NewPhotoStore(cfg.PhotoStoragePath)
	if err != nil {
		log.Fatalf("Failed to initialize photo store: %v", err)
	}
	sensorStore := sensors.NewStore(db.SQL)

	labelProvider, err := labels.NewProvider()
	if err != nil {
		log.Fatalf("Failed to load labels: %v", err)
	}

	// 4. Initialize the dosing engine over the compiled fertilizer profiles
	engine := dosing.NewEngine(fertilizer.Profiles())

	// 5. Optional: leaf photo advisor
	var leafAdvisor *advisor.Advisor
	if cfg.GeminiAPIKey != "" {
		vision, err := advisor.NewGeminiVision(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer vision.Close()
		leafAdvisor = advisor.NewAdvisor(vision)
	} else {
		log.Println("GEMINI_API_KEY not set, leaf analysis disabled")
	}

	// 6. Optional: Home Assistant sensor polling
	if cfg.HomeAssistantURL != "" && cfg.HomeAssistantToken != "" {
		poller := homeassistant.NewPoller(homeassistant.NewClient(cfg), sensorStore)
		go poller.Run(ctx, cfg.SensorPollInterval)
	} else {
		log.Println("Home Assistant not configured, sensor polling disabled")
	}

	// 7. Start the dashboard API with graceful shutdown
	srv := server.NewServer(cfg, engine, planRepo, journalRepo, photoStore,
		journal.NewImporter(journalRepo), sensorStore, leafAdvisor, labelProvider)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpSrv := &http.Server{
		Addr:    ":" + port,
		Handler: srv.Router(),
	}

	go func() {
		log.Printf("Dashboard API listening on port %s", port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
