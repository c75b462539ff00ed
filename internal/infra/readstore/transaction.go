package readstore

import (
	"context"
	"encoding/json"
	"errors"

	"clubcore/internal/domain/transaction"
	"clubcore/internal/infra"
	"clubcore/internal/infra/db"
	"clubcore/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TransactionReadStore struct {
	dbtx db.DBTX
}

func NewTransactionReadStore(dbtx db.DBTX) *TransactionReadStore {
	return &TransactionReadStore{dbtx: dbtx}
}

const transactionViewColumns = `
	id, kind, status, user_id, guest_name, guest_email, guest_phone,
	payer_email, line_items, total_amount,
	external_payment_ref, external_transaction_id, created_at, updated_at`

func (r *TransactionReadStore) StatusByID(ctx context.Context, id uuid.UUID) (*queries.TransactionStatusView, error) {
	var view queries.TransactionStatusView
	err := r.dbtx.QueryRow(ctx,
		`SELECT id, kind, status FROM transactions WHERE id = $1`, id,
	).Scan(&view.ID, &view.Kind, &view.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get transaction status", err)
	}
	return &view, nil
}

func (r *TransactionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TransactionView, error) {
	row := r.dbtx.QueryRow(ctx,
		`SELECT `+transactionViewColumns+` FROM transactions WHERE id = $1`, id,
	)

	view, err := scanTransactionView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get transaction", err)
	}
	return view, nil
}

func (r *TransactionReadStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]queries.TransactionView, error) {
	rows, err := r.dbtx.Query(ctx,
		`SELECT `+transactionViewColumns+`
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user transactions", err)
	}
	return collectTransactionViews(rows)
}

func (r *TransactionReadStore) List(ctx context.Context, filter queries.TransactionFilter) ([]queries.TransactionView, error) {
	// NULL filter arguments disable the corresponding predicate.
	rows, err := r.dbtx.Query(ctx,
		`SELECT `+transactionViewColumns+`
		 FROM transactions
		 WHERE ($1::text IS NULL OR status = $1)
		   AND ($2::text IS NULL OR kind = $2)
		 ORDER BY created_at DESC
		 LIMIT $3 OFFSET $4`,
		filter.Status, filter.Kind, filter.Limit, filter.Offset,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list transactions", err)
	}
	return collectTransactionViews(rows)
}

func collectTransactionViews(rows pgx.Rows) ([]queries.TransactionView, error) {
	defer rows.Close()

	views := make([]queries.TransactionView, 0)
	for rows.Next() {
		view, err := scanTransactionView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan transaction", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read transactions", err)
	}
	return views, nil
}

func scanTransactionView(row pgx.Row) (*queries.TransactionView, error) {
	var (
		view       queries.TransactionView
		guestName  *string
		guestEmail *string
		guestPhone *string
		rawItems   []byte
	)
	err := row.Scan(
		&view.ID, &view.Kind, &view.Status, &view.UserID,
		&guestName, &guestEmail, &guestPhone,
		&view.PayerEmail, &rawItems, &view.TotalAmount,
		&view.ExternalPaymentRef, &view.ExternalTransactionID,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.Guest = guestInfoFromColumns(guestName, guestEmail, guestPhone)

	var items []transaction.LineItem
	if err := json.Unmarshal(rawItems, &items); err != nil {
		return nil, err
	}
	view.LineItems = make([]queries.LineItemView, 0, len(items))
	for _, li := range items {
		view.LineItems = append(view.LineItems, queries.LineItemView{
			ResourceID: li.ResourceID,
			Name:       li.Name,
			UnitPrice:  li.UnitPrice,
			Quantity:   li.Quantity,
			Subtotal:   li.Subtotal(),
		})
	}

	return &view, nil
}
