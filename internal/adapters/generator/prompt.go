package generator

import (
	"fmt"
	"strings"

	"github.com/SscSPs/clonewander/internal/core/domain"
)

const systemPrompt = "You are writing personal journal entries from the perspective of an AI clone traveling the world. Be authentic, vivid and conversational."

// maxReplyTokens bounds every hosted completion.
const maxReplyTokens = 200

const replyTemperature = 0.9

func budgetGuidance(b domain.BudgetTier) string {
	switch b {
	case domain.BudgetLow:
		return "Budget constraints: street food, local markets, free attractions, hostels, public transport. Look for authentic local experiences under $15 per activity."
	case domain.BudgetMedium:
		return "Medium budget: casual restaurants, mid-range hotels, paid attractions, an occasional taxi. Mix popular spots with hidden gems, $15-50 per activity."
	case domain.BudgetHigh:
		return "High budget: occasional fine dining, nice hotels, premium experiences, private tours. Quality over quantity, $50-150 per activity."
	case domain.BudgetLuxury:
		return "Luxury budget: Michelin-starred restaurants, 5-star hotels, exclusive experiences, private transportation. The best of everything, $150+ per activity."
	}
	return "Flexible budget."
}

func momentContext(m domain.Moment) string {
	switch m {
	case domain.MomentArrival:
		return "your arrival and first impressions. What did you discover right away? Where did you go first?"
	case domain.MomentMorning:
		return "how your morning is going. Where did you have breakfast or what did you set out to see?"
	case domain.MomentMidDay:
		return "what you're doing mid-day. What activity or place are you exploring right now?"
	case domain.MomentEvening:
		return "how you're spending the evening. Where are you dining or what evening activity did you discover?"
	case domain.MomentSummary:
		return "the whole trip now that it is over. Which moment will you remember most, and would you come back?"
	}
	return "your current experience"
}

// BuildPrompt renders the user prompt sent to hosted models.
func BuildPrompt(req domain.GenerationRequest) string {
	var b strings.Builder

	preferences := strings.TrimSpace(req.Preferences)
	if preferences == "" {
		preferences = "open to any experiences"
	}
	pack := req.Pack
	if pack == "" {
		pack = domain.DefaultPack
	}

	fmt.Fprintf(&b, "You are %s, an AI clone currently in %s for a %g-day trip with a %s budget.\n", req.CloneName, req.Destination, req.ActivityDays, req.Budget)
	fmt.Fprintf(&b, "It is day %d of %d, %s. Your adventure pack is %q.\n\n", req.Day, req.TotalDays, req.TimeOfDay, pack)
	fmt.Fprintf(&b, "Your preferences: %s\n\n", preferences)
	b.WriteString(budgetGuidance(req.Budget))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Write a short journal update (2-3 sentences) about %s\n\n", momentContext(req.Moment))

	if req.IsFinalSummary {
		b.WriteString("This is your final entry. Look back rather than recommending something new. Report a cost of 0.\n\n")
	} else {
		b.WriteString("Requirements:\n")
		b.WriteString("1. Recommend a SPECIFIC activity, restaurant or sight, using its real name.\n")
		fmt.Fprintf(&b, "2. Match the recommendation to the %s budget and the preferences.\n", req.Budget)
		b.WriteString("3. Add a personal, relatable detail.\n")
		b.WriteString("4. Estimate what the activity cost in US dollars.\n\n")
	}

	b.WriteString(`Reply with JSON only, no preamble: {"message": "<journal entry>", "cost": <number>}`)
	return b.String()
}
