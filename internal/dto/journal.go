package dto

import (
	"time"

	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListJournalEntriesParams are the query parameters of a journal listing.
type ListJournalEntriesParams struct {
	CloneID   string  `form:"cloneId"`
	Moment    string  `form:"moment" binding:"omitempty,oneof=arrival morning mid-day evening summary"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID   string          `json:"entryID"`
	CloneID   string          `json:"cloneID"`
	Moment    domain.Moment   `json:"moment"`
	Day       int             `json:"day"`
	Message   string          `json:"message"`
	Cost      decimal.Decimal `json:"cost"`
	Timestamp time.Time       `json:"timestamp"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListJournalEntriesResponse is one page of entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:   e.EntryID,
		CloneID:   e.CloneID,
		Moment:    e.Moment,
		Day:       e.Day,
		Message:   e.Message,
		Cost:      e.Cost,
		Timestamp: e.Timestamp,
		CreatedAt: e.CreatedAt,
	}
}

// ToJournalEntryResponses converts a slice of domain.JournalEntry.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToJournalEntryResponse(e)
	}
	return responses
}
