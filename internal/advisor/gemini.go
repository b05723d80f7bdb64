package advisor

import (
	"context"
	"fmt"

	"growdash/internal/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// VisionModel is an interface for a client that can analyze an image with
// a text prompt.
type VisionModel interface {
	AnalyzeImage(ctx context.Context, format string, image []byte, prompt string) (string, error)
	Close() error
}

// geminiVision is a client for the Google Gemini API.
type geminiVision struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiVision creates a new Gemini vision client.
func NewGeminiVision(ctx context.Context, cfg *config.Config) (VisionModel, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	// Flash handles image+text input and is cheap enough for per-photo calls
	model := client.GenerativeModel("gemini-1.5-flash")
	return &geminiVision{client: client, model: model}, nil
}

// AnalyzeImage sends an image and prompt to the Gemini model and returns
// the generated text.
func (c *geminiVision) AnalyzeImage(ctx context.Context, format string, image []byte, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.ImageData(format, image), genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("generated content is not text")
	}

	return string(text), nil
}

// Close closes the underlying Gemini client.
func (c *geminiVision) Close() error {
	return c.client.Close()
}
