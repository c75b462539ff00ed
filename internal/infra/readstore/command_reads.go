package readstore

import (
	"context"
	"encoding/json"
	"errors"

	"clubcore/internal/domain/catalog"
	"clubcore/internal/domain/transaction"
	"clubcore/internal/infra"
	"clubcore/internal/infra/db"
	"clubcore/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReads serves the reads the command side needs for validation.
// It runs on whatever DBTX the caller holds, so inside a unit of work it
// sees that transaction's uncommitted writes.
type CommandReads struct {
	dbtx db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{dbtx: dbtx}
}

func (r *CommandReads) ResourceByID(ctx context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	row := r.dbtx.QueryRow(ctx,
		`SELECT id, kind, name, description, base_price, quantity_available,
		        pricing_schedule, created_at, updated_at
		 FROM resources WHERE id = $1`,
		id,
	)

	var (
		snap        shared.ResourceSnapshot
		kind        string
		rawSchedule []byte
	)
	err := row.Scan(
		&snap.ID, &kind, &snap.Name, &snap.Description,
		&snap.BasePrice, &snap.QuantityAvailable,
		&rawSchedule, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get resource", err)
	}

	snap.Kind = catalog.Kind(kind)
	if err := json.Unmarshal(rawSchedule, &snap.Schedule); err != nil {
		return nil, infra.WrapRepoErr("failed to decode pricing schedule", err)
	}

	return &snap, nil
}

func (r *CommandReads) TransactionByID(ctx context.Context, id uuid.UUID) (*shared.TransactionSnapshot, error) {
	row := r.dbtx.QueryRow(ctx,
		`SELECT id, kind, status, user_id, guest_name, guest_email, guest_phone,
		        payer_email, line_items, total_amount,
		        external_payment_ref, external_transaction_id, created_at
		 FROM transactions WHERE id = $1`,
		id,
	)

	var (
		snap         shared.TransactionSnapshot
		kind, status string
		guestName    *string
		guestEmail   *string
		guestPhone   *string
		rawItems     []byte
	)
	err := row.Scan(
		&snap.ID, &kind, &status, &snap.UserID,
		&guestName, &guestEmail, &guestPhone,
		&snap.PayerEmail, &rawItems, &snap.TotalAmount,
		&snap.ExternalPaymentRef, &snap.ExternalTransactionID, &snap.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get transaction", err)
	}

	snap.Kind = transaction.Kind(kind)
	snap.Status = transaction.Status(status)
	snap.Guest = guestInfoFromColumns(guestName, guestEmail, guestPhone)
	if err := json.Unmarshal(rawItems, &snap.LineItems); err != nil {
		return nil, infra.WrapRepoErr("failed to decode line items", err)
	}

	return &snap, nil
}

func guestInfoFromColumns(name, email, phone *string) *transaction.GuestInfo {
	if name == nil || email == nil {
		return nil
	}
	g := &transaction.GuestInfo{Name: *name, Email: *email}
	if phone != nil {
		g.Phone = *phone
	}
	return g
}
