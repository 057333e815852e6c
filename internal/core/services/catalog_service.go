package services

import (
	"time"

	"github.com/SscSPs/clonewander/internal/catalog"
	"github.com/SscSPs/clonewander/internal/core/clock"
	"github.com/SscSPs/clonewander/internal/core/domain"
	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
	"github.com/SscSPs/clonewander/internal/dto"
)

type catalogService struct {
	catalog *catalog.Catalog
	clock   clock.Accelerated
}

// NewCatalogService wraps the static catalog.
func NewCatalogService(c *catalog.Catalog, clk clock.Accelerated) portssvc.CatalogSvc {
	return &catalogService{catalog: c, clock: clk}
}

var _ portssvc.CatalogSvc = (*catalogService)(nil)

func (s *catalogService) ListPacks() []domain.AdventurePack {
	return s.catalog.Packs()
}

func (s *catalogService) FindPack(id domain.PackID) (domain.AdventurePack, bool) {
	return s.catalog.Pack(id)
}

// EstimateTravel reports the simulated hours and how long they take in real time.
func (s *catalogService) EstimateTravel(destination string) dto.TravelEstimateResponse {
	est := s.catalog.Estimate(destination)
	return dto.TravelEstimateResponse{
		Destination:  destination,
		Hours:        est.Hours,
		Category:     est.Category,
		RealDuration: s.clock.ToReal(est.Hours, time.Hour).Round(time.Millisecond).String(),
	}
}
