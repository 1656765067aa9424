package insight

import (
	"context"
	"fmt"

	"github.com/seriesgenius/seriesgenius/catalog"
	"github.com/seriesgenius/seriesgenius/key"
	"github.com/seriesgenius/seriesgenius/network"
	"github.com/spf13/viper"
	"google.golang.org/genai"
)

// Gemini is an Assistant backed by the Gemini API.
type Gemini struct {
	client   *genai.Client
	model    string
	siteName string
}

// NewGemini connects to the Gemini API with apiKey.
func NewGemini(ctx context.Context, apiKey, model, siteName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: network.Client,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &Gemini{client: client, model: model, siteName: siteName}, nil
}

// New returns the assistant configured by the insights keys.
func New(ctx context.Context) (*Gemini, error) {
	return NewGemini(
		ctx,
		viper.GetString(key.InsightsAPIKey),
		viper.GetString(key.InsightsModel),
		viper.GetString(key.SiteName),
	)
}

func (g *Gemini) Ask(ctx context.Context, item *catalog.Item, question string) (string, error) {
	response, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(question), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(Instruction(item, g.siteName), genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return response.Text(), nil
}
