package services

import (
	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/SscSPs/clonewander/internal/dto"
)

// CatalogSvc exposes the static adventure and destination data.
type CatalogSvc interface {
	// ListPacks returns every adventure pack.
	ListPacks() []domain.AdventurePack

	// FindPack looks up a pack by ID.
	FindPack(id domain.PackID) (domain.AdventurePack, bool)

	// EstimateTravel returns the assumed travel time to destination.
	EstimateTravel(destination string) dto.TravelEstimateResponse
}
