package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/clonewander/internal/apperrors"
	"github.com/SscSPs/clonewander/internal/core/domain"
	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
)

// Named pairs a generator with the name it is logged under.
type Named struct {
	Name      string
	Generator portssvc.JournalGenerator
}

// Chain tries each generator in order and returns the first success.
type Chain struct {
	links []Named
}

var _ portssvc.JournalGenerator = (*Chain)(nil)

func NewChain(links ...Named) *Chain {
	return &Chain{links: links}
}

func (c *Chain) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GeneratedEntry, error) {
	var errs []error
	for _, link := range c.links {
		entry, err := link.Generator.Generate(ctx, req)
		if err == nil {
			return entry, nil
		}
		if ctx.Err() != nil {
			errs = append(errs, err)
			break
		}
		slog.WarnContext(ctx, "Journal generator failed, trying next",
			slog.String("generator", link.Name),
			slog.String("error", err.Error()))
		errs = append(errs, fmt.Errorf("%s: %w", link.Name, err))
	}
	if len(errs) == 0 {
		return domain.GeneratedEntry{}, fmt.Errorf("%w: no generators configured", apperrors.ErrGeneration)
	}
	return domain.GeneratedEntry{}, fmt.Errorf("%w: %w", apperrors.ErrGeneration, errors.Join(errs...))
}
