package commentary

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/golangdaddy/turbonitro/models"
)

const systemInstruction = "You are an edgy, energetic radio host. Use slang like 'rubber', 'asphalt', 'pedal to the metal'."

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-flash"

// Gemini narrates through the Gemini API
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini narrator
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Narrate implements Narrator. A blank reply is replaced with a canned line.
func (g *Gemini) Narrate(ctx context.Context, results []models.RaceResult) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(Prompt(results)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](1.0),
	})
	if err != nil {
		return "", fmt.Errorf("generate commentary: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return EmptyFallback, nil
	}
	return text, nil
}
