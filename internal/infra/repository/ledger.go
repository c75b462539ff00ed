package repository

import (
	"context"

	"clubcore/internal/infra"
	"clubcore/internal/infra/db"

	"github.com/google/uuid"
)

type LedgerRepository struct{}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{}
}

// Decrement runs as one atomic statement so concurrent settlements never
// read stale counts. There is deliberately no floor check here; the
// availability check at checkout is advisory and quantities may go
// negative under load, which operators reconcile from the catalog view.
func (r *LedgerRepository) Decrement(ctx context.Context, tx db.DBTX, resourceID uuid.UUID, qty int32) error {
	tag, err := tx.Exec(ctx,
		`UPDATE resources
		 SET quantity_available = quantity_available - $2, updated_at = now()
		 WHERE id = $1`,
		resourceID, qty,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to decrement resource quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("resource not found for decrement", nil, infra.KindNotFound)
	}
	return nil
}

func (r *LedgerRepository) SetQuantity(ctx context.Context, tx db.DBTX, resourceID uuid.UUID, qty int32) error {
	tag, err := tx.Exec(ctx,
		`UPDATE resources SET quantity_available = $2, updated_at = now() WHERE id = $1`,
		resourceID, qty,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to set resource quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("resource not found for quantity update", nil, infra.KindNotFound)
	}
	return nil
}
