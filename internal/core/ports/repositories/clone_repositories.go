package repositories

import (
	"context"

	"github.com/SscSPs/clonewander/internal/core/domain"
)

// CloneReader defines read operations for clone data
type CloneReader interface {
	// FindCloneByID retrieves a clone, or apperrors.ErrNotFound.
	FindCloneByID(ctx context.Context, cloneID string) (*domain.Clone, error)

	// ListClones retrieves every clone, newest first.
	ListClones(ctx context.Context) ([]domain.Clone, error)

	// ListClonesByStatus retrieves clones in any of the given statuses.
	ListClonesByStatus(ctx context.Context, statuses ...domain.CloneStatus) ([]domain.Clone, error)
}

// CloneWriter defines write operations for clone data
type CloneWriter interface {
	// SaveClone inserts a new clone.
	SaveClone(ctx context.Context, clone domain.Clone) error

	// UpdateClone applies a partial update and returns the stored clone.
	UpdateClone(ctx context.Context, cloneID string, update domain.CloneUpdate) (*domain.Clone, error)

	// DeleteClone removes a clone together with its journal entries.
	DeleteClone(ctx context.Context, cloneID string) error
}

// CloneRepositoryFacade combines all clone-related repository interfaces
type CloneRepositoryFacade interface {
	CloneReader
	CloneWriter
}
