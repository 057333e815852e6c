package generator

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
)

// Kinds accepted by Build.
const (
	KindTemplate = "template"
	KindOpenAI   = "openai"
	KindGemini   = "gemini"
	KindChain    = "chain"
)

// Options selects and configures the journal generator.
type Options struct {
	Kind         string
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string
}

// Build returns the configured generator. "chain" uses every hosted provider
// that has a key, in the order OpenAI, Gemini, then the template.
func Build(ctx context.Context, opts Options) (portssvc.JournalGenerator, error) {
	switch opts.Kind {
	case "", KindTemplate:
		return NewTemplate(nil), nil
	case KindOpenAI:
		return NewOpenAI(opts.OpenAIAPIKey, opts.OpenAIModel)
	case KindGemini:
		return NewGemini(ctx, opts.GeminiAPIKey, opts.GeminiModel)
	case KindChain:
		var links []Named
		if opts.OpenAIAPIKey != "" {
			g, err := NewOpenAI(opts.OpenAIAPIKey, opts.OpenAIModel)
			if err != nil {
				return nil, err
			}
			links = append(links, Named{Name: KindOpenAI, Generator: g})
		}
		if opts.GeminiAPIKey != "" {
			g, err := NewGemini(ctx, opts.GeminiAPIKey, opts.GeminiModel)
			if err != nil {
				return nil, err
			}
			links = append(links, Named{Name: KindGemini, Generator: g})
		}
		if len(links) == 0 {
			slog.Warn("No hosted generator keys configured, chain falls back to templates only")
		}
		links = append(links, Named{Name: KindTemplate, Generator: NewTemplate(nil)})
		return NewChain(links...), nil
	}
	return nil, fmt.Errorf("unknown generator %q", opts.Kind)
}
