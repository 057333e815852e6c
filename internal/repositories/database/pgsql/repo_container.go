package pgsql

import (
	"github.com/SscSPs/clonewander/internal/core/guard"
	portsrepo "github.com/SscSPs/clonewander/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds the Postgres-backed repositories. g decides
// which journal entries count as duplicates.
func NewRepositoryProvider(dbPool *pgxpool.Pool, g guard.Guard) *portsrepo.RepositoryProvider {
	cloneRepo := newPgxCloneRepository(dbPool)
	journalRepo := newPgxJournalEntryRepository(dbPool, g)

	return &portsrepo.RepositoryProvider{
		CloneRepo:   cloneRepo,
		JournalRepo: journalRepo,
	}
}
