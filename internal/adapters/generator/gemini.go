package generator

import (
	"context"
	"fmt"

	"github.com/SscSPs/clonewander/internal/apperrors"
	"github.com/SscSPs/clonewander/internal/core/domain"
	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini generates entries with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

var _ portssvc.JournalGenerator = (*Gemini)(nil)

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini generator: api key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GeneratedEntry, error) {
	temp := float32(replyTemperature)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   int32(maxReplyTokens),
		ResponseMIMEType:  "application/json",
	}
	contents := []*genai.Content{genai.NewContentFromText(BuildPrompt(req), genai.RoleUser)}

	res, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return domain.GeneratedEntry{}, fmt.Errorf("%w: gemini: %v", apperrors.ErrGeneration, err)
	}
	return ParseReply(res.Text())
}
