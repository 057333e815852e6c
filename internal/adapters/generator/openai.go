package generator

import (
	"context"
	"fmt"

	"github.com/SscSPs/clonewander/internal/apperrors"
	"github.com/SscSPs/clonewander/internal/core/domain"
	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI generates entries with the chat completions API.
type OpenAI struct {
	client openai.Client
	model  string
}

var _ portssvc.JournalGenerator = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI generator. Extra options are passed to the client,
// e.g. option.WithBaseURL in tests.
func NewOpenAI(apiKey, model string, opts ...option.RequestOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai generator: api key is required")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAI{client: openai.NewClient(opts...), model: model}, nil
}

func (g *OpenAI) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GeneratedEntry, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildPrompt(req)),
		},
		MaxCompletionTokens: openai.Int(maxReplyTokens),
		Temperature:         openai.Float(replyTemperature),
	})
	if err != nil {
		return domain.GeneratedEntry{}, fmt.Errorf("%w: openai: %v", apperrors.ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return domain.GeneratedEntry{}, fmt.Errorf("%w: openai returned no choices", apperrors.ErrGeneration)
	}
	return ParseReply(resp.Choices[0].Message.Content)
}
