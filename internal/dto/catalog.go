package dto

import "github.com/SscSPs/clonewander/internal/core/domain"

// TravelEstimateResponse is the travel time assumed for a destination.
type TravelEstimateResponse struct {
	Destination string                `json:"destination"`
	Hours       float64               `json:"hours"`
	Category    domain.TravelCategory `json:"category"`
	// RealDuration is the wall-clock travel time at the configured acceleration.
	RealDuration string `json:"realDuration"`
}

// ListPacksResponse wraps the adventure pack catalog.
type ListPacksResponse struct {
	Packs []domain.AdventurePack `json:"packs"`
}
