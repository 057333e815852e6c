package services

import (
	"github.com/SscSPs/clonewander/internal/catalog"
	"github.com/SscSPs/clonewander/internal/core/clock"
	portsrepo "github.com/SscSPs/clonewander/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, cat *catalog.Catalog, clk clock.Accelerated) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The catalog is needed to validate clones, so it comes first
	container.Catalog = NewCatalogService(cat, clk)
	container.Clone = NewCloneService(repos.CloneRepo, repos.JournalRepo, container.Catalog, clk)
	container.Journal = NewJournalService(repos.JournalRepo, repos.CloneRepo)

	return container
}
