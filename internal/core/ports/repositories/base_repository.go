package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager runs store writes inside one database transaction.
// The clone row lock and the duplicate check must share the transaction
// with the insert they protect.
type TransactionManager interface {
	// WithTx commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
