package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath     string
	PhotoStoragePath string

	JWTSecret         string
	DashboardPassword string

	GeminiAPIKey string

	HomeAssistantURL   string
	HomeAssistantToken string
	SensorPollInterval time.Duration

	// Telegram Config
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64

	// Default reservoir size used by the feeding bot, in liters.
	ReservoirLiters float64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	jwtSecret := os.Getenv("GROWDASH_JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("GROWDASH_JWT_SECRET environment variable not set")
	}

	dashboardPassword := os.Getenv("GROWDASH_PASSWORD")
	if dashboardPassword == "" {
		return nil, fmt.Errorf("GROWDASH_PASSWORD environment variable not set")
	}

	dbPath := os.Getenv("GROWDASH_DB_PATH")
	if dbPath == "" {
		dbPath = "data/growdash.db"
	}

	photoPath := os.Getenv("GROWDASH_PHOTO_PATH")
	if photoPath == "" {
		photoPath = "data/photos"
	}

	// Optional: the leaf advisor is disabled without a key.
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")

	// Optional: sensor polling is disabled without a Home Assistant URL.
	haURL := os.Getenv("HOME_ASSISTANT_URL")
	haToken := os.Getenv("HOME_ASSISTANT_TOKEN")

	pollInterval := 5 * time.Minute
	if raw := os.Getenv("GROWDASH_POLL_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			pollInterval = parsed
		}
	}

	reservoir := 20.0
	if raw := os.Getenv("GROWDASH_RESERVOIR_LITERS"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			reservoir = parsed
		}
	}

	// Telegram Config (optional, required only for the feeding bot)
	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramWebhookURL := os.Getenv("TELEGRAM_WEBHOOK_URL")
	telegramAllowUserIDStr := os.Getenv("TELEGRAM_ALLOW_USER_ID")
	var telegramAllowUserID int64
	if telegramAllowUserIDStr != "" {
		fmt.Sscanf(telegramAllowUserIDStr, "%d", &telegramAllowUserID)
	}

	return &Config{
		DatabasePath:        dbPath,
		PhotoStoragePath:    photoPath,
		JWTSecret:           jwtSecret,
		DashboardPassword:   dashboardPassword,
		GeminiAPIKey:        geminiAPIKey,
		HomeAssistantURL:    haURL,
		HomeAssistantToken:  haToken,
		SensorPollInterval:  pollInterval,
		TelegramBotToken:    telegramBotToken,
		TelegramWebhookURL:  telegramWebhookURL,
		TelegramAllowUserID: telegramAllowUserID,
		ReservoirLiters:     reservoir,
	}, nil
}
