package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SscSPs/clonewander/internal/apperrors"
	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/shopspring/decimal"
)

type reply struct {
	Message string          `json:"message"`
	Cost    decimal.Decimal `json:"cost"`
}

// ParseReply extracts the entry from a model reply. Code fences and text
// around the JSON object are tolerated.
func ParseReply(text string) (domain.GeneratedEntry, error) {
	body := strings.TrimSpace(text)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")

	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end <= start {
		return domain.GeneratedEntry{}, fmt.Errorf("%w: reply has no JSON object", apperrors.ErrGeneration)
	}

	var r reply
	if err := json.Unmarshal([]byte(body[start:end+1]), &r); err != nil {
		return domain.GeneratedEntry{}, fmt.Errorf("%w: unparsable reply: %v", apperrors.ErrGeneration, err)
	}
	r.Message = strings.TrimSpace(r.Message)
	if r.Message == "" {
		return domain.GeneratedEntry{}, fmt.Errorf("%w: reply message is empty", apperrors.ErrGeneration)
	}
	if r.Cost.IsNegative() {
		r.Cost = decimal.Zero
	}
	return domain.GeneratedEntry{Message: r.Message, Cost: r.Cost.Round(2)}, nil
}
