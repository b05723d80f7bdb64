package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"growdash/internal/config"
	"growdash/internal/dosing"
	"growdash/internal/labels"
	"growdash/internal/plan"
	"growdash/internal/sensors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot answers feeding questions over Telegram: weigh tables, elemental
// ppm breakdowns and reservoir sensor summaries.
type Bot struct {
	api         *tgbotapi.BotAPI
	engine      *dosing.Engine
	planRepo    *plan.Repository
	sensorStore *sensors.Store
	labels      *labels.Provider
	cfg         *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	engine *dosing.Engine,
	planRepo *plan.Repository,
	sensorStore *sensors.Store,
	labelProvider *labels.Provider,
) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:         bot,
		engine:      engine,
		planRepo:    planRepo,
		sensorStore: sensorStore,
		labels:      labelProvider,
		cfg:         cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.From.ID != b.cfg.TelegramAllowUserID {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case strings.HasPrefix(text, "/feed"):
		b.handleFeedRequest(msg.Chat.ID, strings.TrimSpace(strings.TrimPrefix(text, "/feed")))
	case strings.HasPrefix(text, "/ppm"):
		b.handlePPMRequest(msg.Chat.ID, strings.TrimSpace(strings.TrimPrefix(text, "/ppm")))
	case strings.HasPrefix(text, "/status"):
		b.handleStatusRequest(msg.Chat.ID)
	default:
		b.reply(msg.Chat.ID, helpText)
	}
}

const helpText = "🌱 *Feeding Bot*\n\n" +
	"`/feed week 5` — weigh table for a phase\n" +
	"`/feed week 5 pale rising` — with symptom and trend flags\n" +
	"`/ppm week 5` — elemental ppm and N:P:K\n" +
	"`/status` — latest reservoir sensor readings\n\n" +
	"Flags: `claw`, `pale`, `camg`, `tipburn`, `rising`, `falling`, `ph-high`, `ph-low`"

// parseFeedArgs splits a command tail like "week 5 pale rising" into the
// phase label and the symptom and trend toggles.
func parseFeedArgs(tail string, liters float64) dosing.DoseInput {
	in := dosing.DoseInput{
		ReservoirLiters: liters,
		ECTrend:         dosing.ECNeutral,
		PHDrift:         dosing.PHNormal,
	}

	var phaseWords []string
	for _, word := range strings.Fields(tail) {
		switch strings.ToLower(word) {
		case "claw":
			in.Claw = true
		case "pale":
			in.Pale = true
		case "camg":
			in.CaMgDeficiency = true
		case "tipburn":
			in.TipBurn = true
		case "rising":
			in.ECTrend = dosing.ECRising
		case "falling":
			in.ECTrend = dosing.ECFalling
		case "ph-high":
			in.PHDrift = dosing.PHHigh
		case "ph-low":
			in.PHDrift = dosing.PHLow
		default:
			phaseWords = append(phaseWords, word)
		}
	}

	in.Phase = strings.Join(phaseWords, " ")
	return in
}

func (b *Bot) calculate(tail string) (*dosing.CalculationResult, dosing.DoseInput, error) {
	in := parseFeedArgs(tail, b.cfg.ReservoirLiters)
	if in.Phase == "" {
		return nil, in, fmt.Errorf("no phase given")
	}

	stored, err := b.planRepo.Get(context.Background(), "default")
	if err != nil {
		return nil, in, fmt.Errorf("failed to load plan: %w", err)
	}
	if stored == nil {
		return nil, in, fmt.Errorf("no feeding plan configured")
	}

	result := b.engine.Calculate(in, stored.Plan)
	if result == nil {
		return nil, in, fmt.Errorf("the plan has no entry for %q", in.Phase)
	}
	return result, in, nil
}

func (b *Bot) handleFeedRequest(chatID int64, tail string) {
	result, in, err := b.calculate(tail)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("❌ %v\n\n%s", err, helpText))
		return
	}
	b.reply(chatID, formatWeighTable(b.labels, result, in))
}

func (b *Bot) handlePPMRequest(chatID int64, tail string) {
	result, _, err := b.calculate(tail)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("❌ %v\n\n%s", err, helpText))
		return
	}
	b.reply(chatID, formatPPM(result))
}

func (b *Bot) handleStatusRequest(chatID int64) {
	var sb strings.Builder
	sb.WriteString("📊 *Reservoir Status*\n\n")

	found := false
	for _, metric := range []string{"ec", "ph", "temperature", "humidity"} {
		averages, err := b.sensorStore.GetDailyAverages(context.Background(), metric, 1)
		if err != nil || len(averages) == 0 {
			continue
		}
		found = true
		sb.WriteString(fmt.Sprintf("• *%s*: %.2f (%d readings today)\n", metric, averages[0].Average, averages[0].Count))
	}
	if !found {
		sb.WriteString("_No sensor readings yet_\n")
	}

	b.reply(chatID, sb.String())
}

func formatWeighTable(lp *labels.Provider, result *dosing.CalculationResult, in dosing.DoseInput) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚖️ *Weigh Table* — %s, %.0f L\n", lp.Get("en", "stage."+string(result.Stage)), in.ReservoirLiters))
	sb.WriteString(fmt.Sprintf("EC target: %s", result.ECDisplay))
	if result.ECNoteKey != "" {
		sb.WriteString(fmt.Sprintf(" _(%s)_", lp.Get("en", result.ECNoteKey)))
	}
	sb.WriteString("\n\n")

	for _, row := range result.WeighTable {
		sb.WriteString(fmt.Sprintf("• *%s*: %.2f %s", lp.Get("en", row.NameKey), row.Amount, row.Unit))
		if row.PerPlant {
			sb.WriteString(" per plant")
		}
		if row.NoteKey != "" {
			sb.WriteString(fmt.Sprintf("\n  _%s_", lp.Get("en", row.NoteKey)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatPPM(result *dosing.CalculationResult) string {
	var sb strings.Builder
	sb.WriteString("🧪 *Elemental PPM*\n\n")

	for _, e := range dosing.Elements {
		v := result.PPM[e]
		if v == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("• %s: %.2f\n", e, v))
	}

	sb.WriteString(fmt.Sprintf("\nN:P:K = *%s*\n", result.NPKRatio))
	return sb.String()
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}
