package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/clonewander/internal/apperrors"
	"github.com/SscSPs/clonewander/internal/core/domain"
	"github.com/SscSPs/clonewander/internal/core/lifecycle"
	portsrepo "github.com/SscSPs/clonewander/internal/core/ports/repositories"
	"github.com/SscSPs/clonewander/internal/models"
	"github.com/SscSPs/clonewander/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const cloneColumns = `
	clone_id, name, destination, status, travel_hours, activity_days, preferences,
	budget, pack, is_premium, departure_time, arrival_time, activity_end_time,
	last_journal_update, total_spend, created_at, created_by, last_updated_at, last_updated_by`

type PgxCloneRepository struct {
	BaseRepository
}

// newPgxCloneRepository creates a new repository for clone data.
func newPgxCloneRepository(pool *pgxpool.Pool) portsrepo.CloneRepositoryFacade {
	return &PgxCloneRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CloneRepositoryFacade = (*PgxCloneRepository)(nil)

// SaveClone inserts a new clone.
func (r *PgxCloneRepository) SaveClone(ctx context.Context, clone domain.Clone) error {
	m := mapping.ToModelClone(clone)
	query := `INSERT INTO clones (` + cloneColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);`

	_, err := r.Pool.Exec(ctx, query,
		m.CloneID,
		m.Name,
		m.Destination,
		m.Status,
		m.TravelHours,
		m.ActivityDays,
		m.Preferences,
		m.Budget,
		m.Pack,
		m.IsPremium,
		m.DepartureTime,
		m.ArrivalTime,
		m.ActivityEndTime,
		m.LastJournalUpdate,
		m.TotalSpend,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: clone %s", apperrors.ErrDuplicate, m.CloneID)
		}
		return apperrors.NewAppError(500, "failed to insert clone "+m.CloneID, err)
	}
	return nil
}

// FindCloneByID retrieves a clone by its ID.
func (r *PgxCloneRepository) FindCloneByID(ctx context.Context, cloneID string) (*domain.Clone, error) {
	query := `SELECT ` + cloneColumns + ` FROM clones WHERE clone_id = $1;`
	m, err := scanClone(r.Pool.QueryRow(ctx, query, cloneID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("clone %s: %w", cloneID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find clone by ID "+cloneID, err)
	}
	d := mapping.ToDomainClone(m)
	return &d, nil
}

// ListClones retrieves every clone, newest first.
func (r *PgxCloneRepository) ListClones(ctx context.Context) ([]domain.Clone, error) {
	query := `SELECT ` + cloneColumns + ` FROM clones ORDER BY created_at DESC, clone_id DESC;`
	return r.queryClones(ctx, query)
}

// ListClonesByStatus retrieves clones in any of the given statuses, newest first.
func (r *PgxCloneRepository) ListClonesByStatus(ctx context.Context, statuses ...domain.CloneStatus) ([]domain.Clone, error) {
	if len(statuses) == 0 {
		return []domain.Clone{}, nil
	}
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	query := `SELECT ` + cloneColumns + ` FROM clones WHERE status = ANY($1) ORDER BY created_at DESC, clone_id DESC;`
	return r.queryClones(ctx, query, names)
}

func (r *PgxCloneRepository) queryClones(ctx context.Context, query string, args ...any) ([]domain.Clone, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query clones", err)
	}
	defer rows.Close()

	clones := []models.Clone{}
	for rows.Next() {
		m, err := scanClone(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan clone row", err)
		}
		clones = append(clones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating clone rows", err)
	}
	return mapping.ToDomainCloneSlice(clones), nil
}

// UpdateClone applies a partial update under a row lock so status changes
// are checked against the stored status.
func (r *PgxCloneRepository) UpdateClone(ctx context.Context, cloneID string, update domain.CloneUpdate) (*domain.Clone, error) {
	var updated domain.Clone
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		current, err := lockClone(ctx, tx, cloneID)
		if err != nil {
			return err
		}

		status := current.Status
		if update.Status != nil && *update.Status != current.Status {
			if err := checkTransition(current, *update.Status); err != nil {
				return err
			}
			status = *update.Status
		}
		lastUpdatedAt := update.LastUpdatedAt
		if lastUpdatedAt.IsZero() {
			lastUpdatedAt = time.Now()
		}
		lastUpdatedBy := current.LastUpdatedBy
		if update.LastUpdatedBy != "" {
			lastUpdatedBy = update.LastUpdatedBy
		}

		query := `
			UPDATE clones
			SET status = $2,
			    last_journal_update = GREATEST(last_journal_update, $3),
			    last_updated_at = $4,
			    last_updated_by = $5
			WHERE clone_id = $1
			RETURNING ` + cloneColumns + `;`
		m, err := scanClone(tx.QueryRow(ctx, query, cloneID, status, update.LastJournalUpdate, lastUpdatedAt, lastUpdatedBy))
		if err != nil {
			return apperrors.NewAppError(500, "failed to update clone "+cloneID, err)
		}
		updated = mapping.ToDomainClone(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteClone removes a clone; its journal entries go with it through ON DELETE CASCADE.
func (r *PgxCloneRepository) DeleteClone(ctx context.Context, cloneID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM clones WHERE clone_id = $1;`, cloneID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete clone "+cloneID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("clone %s: %w", cloneID, apperrors.ErrNotFound)
	}
	return nil
}

// lockClone reads a clone with SELECT ... FOR UPDATE inside tx.
func lockClone(ctx context.Context, tx pgx.Tx, cloneID string) (*domain.Clone, error) {
	query := `SELECT ` + cloneColumns + ` FROM clones WHERE clone_id = $1 FOR UPDATE;`
	m, err := scanClone(tx.QueryRow(ctx, query, cloneID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("clone %s: %w", cloneID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to lock clone "+cloneID, err)
	}
	d := mapping.ToDomainClone(m)
	return &d, nil
}

func checkTransition(c *domain.Clone, to domain.CloneStatus) error {
	if c.Status.IsTerminal() {
		return fmt.Errorf("clone %s is %s: %w", c.CloneID, c.Status, apperrors.ErrTerminal)
	}
	if !lifecycle.CanTransition(c.Status, to) {
		return fmt.Errorf("%w: clone %s cannot move from %s to %s", apperrors.ErrValidation, c.CloneID, c.Status, to)
	}
	return nil
}

func scanClone(row pgx.Row) (models.Clone, error) {
	var m models.Clone
	err := row.Scan(
		&m.CloneID,
		&m.Name,
		&m.Destination,
		&m.Status,
		&m.TravelHours,
		&m.ActivityDays,
		&m.Preferences,
		&m.Budget,
		&m.Pack,
		&m.IsPremium,
		&m.DepartureTime,
		&m.ArrivalTime,
		&m.ActivityEndTime,
		&m.LastJournalUpdate,
		&m.TotalSpend,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
