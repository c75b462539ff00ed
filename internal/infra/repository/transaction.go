package repository

import (
	"context"
	"encoding/json"

	"clubcore/internal/domain/transaction"
	"clubcore/internal/infra"
	"clubcore/internal/infra/db"

	"github.com/google/uuid"
)

type TransactionRepository struct{}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

const createTransactionSQL = `
INSERT INTO transactions (
	id, kind, status, user_id, guest_name, guest_email, guest_phone,
	payer_email, line_items, total_amount, external_payment_ref, external_transaction_id
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

func (r *TransactionRepository) Create(ctx context.Context, tx db.DBTX, t *transaction.Transaction) error {
	lineItems, err := json.Marshal(t.LineItems())
	if err != nil {
		return infra.WrapRepoErr("failed to encode line items", err)
	}

	var guestName, guestEmail, guestPhone *string
	if g := t.Payer().Guest(); g != nil {
		guestName, guestEmail = &g.Name, &g.Email
		if g.Phone != "" {
			guestPhone = &g.Phone
		}
	}

	_, err = tx.Exec(ctx, createTransactionSQL,
		t.ID(), t.Kind().String(), t.Status().String(),
		t.Payer().UserID(), guestName, guestEmail, guestPhone,
		t.Payer().Email(), lineItems, t.TotalAmount(),
		t.ExternalPaymentRef(), t.ExternalTransactionID(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create transaction", err)
	}

	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete transaction", err)
	}
	return nil
}

func (r *TransactionRepository) SetExternalPaymentRef(ctx context.Context, tx db.DBTX, id uuid.UUID, ref string) error {
	_, err := tx.Exec(ctx,
		`UPDATE transactions SET external_payment_ref = $2, updated_at = now() WHERE id = $1`,
		id, ref,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to set external payment ref", err)
	}
	return nil
}

// Settle is the only statement that ever moves a transaction out of
// pending_payment. The status predicate makes redelivered or racing
// callbacks a no-op: whoever updates first wins, everyone else sees
// zero rows affected.
func (r *TransactionRepository) Settle(ctx context.Context, tx db.DBTX, id uuid.UUID, status transaction.Status, externalTransactionID string) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE transactions
		 SET status = $2, external_transaction_id = $3, updated_at = now()
		 WHERE id = $1 AND status = $4`,
		id, status.String(), externalTransactionID, transaction.StatusPendingPayment.String(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to settle transaction", err)
	}

	return tag.RowsAffected() == 1, nil
}
