package generator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/SscSPs/clonewander/internal/core/domain"
	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Rand is the randomness the template generator draws from.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

var templates = map[domain.Moment][]string{
	domain.MomentArrival: {
		"Just landed in %[1]s! First stop was %[2]s and I already feel at home.",
		"%[1]s at last. Dropped my bag and wandered straight into %[2]s, no plan needed.",
		"Made it to %[1]s. Got turned around twice looking for %[2]s, worth every wrong turn.",
	},
	domain.MomentMorning: {
		"Early start in %[1]s: %[2]s before the crowds showed up.",
		"Morning coffee turned into a long walk through %[2]s. %[1]s wakes up slowly.",
	},
	domain.MomentMidDay: {
		"Midday detour to %[2]s. %[1]s keeps surprising me.",
		"Spent the afternoon at %[2]s and nearly missed lunch. No regrets.",
	},
	domain.MomentEvening: {
		"Evening in %[1]s ended at %[2]s. Best meal of the trip so far.",
		"Watched the lights come on from %[2]s. %[1]s at night is something else.",
	},
	domain.MomentSummary: {
		"That's a wrap on %[1]s. %[3]d days, and %[2]s is the memory I'm keeping.",
		"Heading home from %[1]s. After %[3]d days, I'd go back for %[2]s alone.",
	},
}

var highlights = map[domain.BudgetTier][]string{
	domain.BudgetLow:    {"the night market", "a free walking tour", "a street food stall", "the old town square"},
	domain.BudgetMedium: {"a family-run bistro", "the city museum", "a rooftop cafe", "a harbour boat ride"},
	domain.BudgetHigh:   {"a chef's tasting counter", "a private gallery tour", "the botanical gardens", "a wine bar"},
	domain.BudgetLuxury: {"a Michelin-starred dining room", "a private yacht charter", "the palace spa", "an after-hours museum tour"},
}

// Template writes entries offline from canned phrases. It never fails and is
// the last resort when hosted generators are unavailable.
type Template struct {
	mu  sync.Mutex
	rnd Rand
}

var _ portssvc.JournalGenerator = (*Template)(nil)

// NewTemplate creates a Template. A nil rnd is seeded from the current time.
func NewTemplate(rnd Rand) *Template {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Template{rnd: rnd}
}

func (t *Template) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GeneratedEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.GeneratedEntry{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	phrases := templates[req.Moment]
	if len(phrases) == 0 {
		phrases = templates[domain.MomentMidDay]
	}
	spots := highlights[req.Budget]
	if len(spots) == 0 {
		spots = highlights[domain.BudgetMedium]
	}

	msg := fmt.Sprintf(phrases[t.rnd.Intn(len(phrases))], req.Destination, spots[t.rnd.Intn(len(spots))], req.TotalDays)
	if req.IsFinalSummary || req.Moment == domain.MomentSummary {
		return domain.GeneratedEntry{Message: msg, Cost: decimal.Zero}, nil
	}

	lo, hi := req.Budget.CostRange()
	cost := lo.Add(hi.Sub(lo).Mul(decimal.NewFromFloat(t.rnd.Float64()))).Round(2)
	return domain.GeneratedEntry{Message: msg, Cost: cost}, nil
}
