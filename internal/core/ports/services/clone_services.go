package services

import (
	"context"

	"github.com/SscSPs/clonewander/internal/dto"
)

// CloneReaderSvc defines read operations for clone data
type CloneReaderSvc interface {
	// GetClone retrieves a clone with its current simulated position.
	GetClone(ctx context.Context, cloneID string) (*dto.CloneResponse, error)

	// ListClones retrieves all clones, newest first.
	ListClones(ctx context.Context) (*dto.ListClonesResponse, error)

	// GetTripReport summarises the spend and entries of a clone's trip.
	GetTripReport(ctx context.Context, cloneID string) (*dto.TripReport, error)
}

// CloneWriterSvc defines write operations for clone data
type CloneWriterSvc interface {
	// CreateClone validates the request and dispatches a new clone.
	CreateClone(ctx context.Context, req dto.CreateCloneRequest, userID string) (*dto.CloneResponse, error)

	// DismissClone ends a traveling or active clone early.
	DismissClone(ctx context.Context, cloneID string, userID string) (*dto.CloneResponse, error)

	// DeleteClone removes a clone and its journal.
	DeleteClone(ctx context.Context, cloneID string) error
}

// CloneSvcFacade combines all clone-related service interfaces
type CloneSvcFacade interface {
	CloneReaderSvc
	CloneWriterSvc
}
