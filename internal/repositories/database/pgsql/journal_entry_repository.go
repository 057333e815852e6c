package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/clonewander/internal/apperrors"
	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/SscSPs/clonewander/internal/core/guard"
	portsrepo "github.com/SscSPs/clonewander/internal/core/ports/repositories"
	"github.com/SscSPs/clonewander/internal/models"
	"github.com/SscSPs/clonewander/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, clone_id, moment, day, message, cost, entry_timestamp, dedupe_key, created_at`

type PgxJournalEntryRepository struct {
	BaseRepository
	guard guard.Guard
}

// newPgxJournalEntryRepository creates a new repository for journal entries.
func newPgxJournalEntryRepository(pool *pgxpool.Pool, g guard.Guard) portsrepo.JournalEntryRepositoryFacade {
	return &PgxJournalEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		guard:          g,
	}
}

var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalEntryRepository)(nil)

// SaveJournalEntry locks the clone row, runs the duplicate guard against the
// clone's entries of the same moment and, when it passes, inserts the entry
// and updates the clone in the same transaction. The unique
// (clone_id, dedupe_key) index backs the guard up.
func (r *PgxJournalEntryRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, commit domain.EntryCommit) (bool, error) {
	saved := false
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		var err error
		saved, err = r.insertEntry(ctx, tx, entry, commit)
		return err
	})
	if err != nil {
		return false, err
	}
	return saved, nil
}

// insertEntry is SaveJournalEntry's body inside the transaction.
func (r *PgxJournalEntryRepository) insertEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, commit domain.EntryCommit) (bool, error) {
	clone, err := lockClone(ctx, tx, entry.CloneID)
	if err != nil {
		return false, err
	}
	if clone.Status.IsTerminal() {
		return false, fmt.Errorf("clone %s is %s: %w", clone.CloneID, clone.Status, apperrors.ErrTerminal)
	}
	if commit.Advance != nil {
		if err := checkTransition(clone, *commit.Advance); err != nil {
			return false, err
		}
	}

	existing, err := r.entriesForMoment(ctx, tx, entry.CloneID, entry.Moment)
	if err != nil {
		return false, err
	}
	if r.guard.Conflicts(existing, entry) {
		return false, nil
	}

	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.DedupeKey = r.guard.Key(entry)
	m := mapping.ToModelJournalEntry(entry)

	insert := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (clone_id, dedupe_key) DO NOTHING;`
	tag, err := tx.Exec(ctx, insert,
		m.EntryID,
		m.CloneID,
		m.Moment,
		m.Day,
		m.Message,
		m.Cost,
		m.Timestamp,
		m.DedupeKey,
		m.CreatedAt,
	)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to insert journal entry for clone "+m.CloneID, err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	status := clone.Status
	if commit.Advance != nil {
		status = *commit.Advance
	}
	update := `
		UPDATE clones
		SET total_spend = total_spend + $2,
		    last_journal_update = GREATEST(last_journal_update, $3),
		    status = $4,
		    last_updated_at = $5
		WHERE clone_id = $1;`
	if _, err := tx.Exec(ctx, update, m.CloneID, m.Cost, m.Timestamp, status, m.CreatedAt); err != nil {
		return false, apperrors.NewAppError(500, "failed to update clone "+m.CloneID+" after journal entry", err)
	}
	return true, nil
}

func (r *PgxJournalEntryRepository) entriesForMoment(ctx context.Context, tx pgx.Tx, cloneID string, moment domain.Moment) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE clone_id = $1 AND moment = $2;`
	rows, err := tx.Query(ctx, query, cloneID, string(moment))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries for clone "+cloneID, err)
	}
	return collectEntries(rows, cloneID)
}

// ListJournalEntries retrieves entries matching filter, ordered by timestamp
// then created_at, newest first.
func (r *PgxJournalEntryRepository) ListJournalEntries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.CloneID != nil {
		conditions = append(conditions, "clone_id = "+arg(*filter.CloneID))
	}
	if filter.Moment != nil {
		conditions = append(conditions, "moment = "+arg(string(*filter.Moment)))
	}
	if filter.BeforeTimestamp != nil {
		// Tuple comparison keeps the cursor exclusive and stable.
		createdAt := time.Time{}
		if filter.BeforeCreatedAt != nil {
			createdAt = *filter.BeforeCreatedAt
		}
		conditions = append(conditions, "(entry_timestamp, created_at) < ("+arg(*filter.BeforeTimestamp)+", "+arg(createdAt)+")")
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY entry_timestamp DESC, created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	rows, err := r.Pool.Query(ctx, query+";", args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	return collectEntries(rows, "")
}

func collectEntries(rows pgx.Rows, cloneID string) ([]domain.JournalEntry, error) {
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var m models.JournalEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.CloneID,
			&m.Moment,
			&m.Day,
			&m.Message,
			&m.Cost,
			&m.Timestamp,
			&m.DedupeKey,
			&m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row "+cloneID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows "+cloneID, err)
	}
	return mapping.ToDomainJournalEntrySlice(entries), nil
}
