package queries

import (
	"context"

	"clubcore/internal/infra"
	"clubcore/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrTransactionNotFound = errs.New("transaction not found")

type TransactionReadStore interface {
	StatusByID(ctx context.Context, id uuid.UUID) (*TransactionStatusView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*TransactionView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]TransactionView, error)
	List(ctx context.Context, filter TransactionFilter) ([]TransactionView, error)
}

type TransactionQueries struct {
	rs TransactionReadStore
}

func NewTransactionQueries(rs TransactionReadStore) *TransactionQueries {
	return &TransactionQueries{rs: rs}
}

// StatusByID backs the public polling endpoint. It exposes nothing but
// kind and status, so an unauthenticated holder of the id learns no
// payer details.
func (q *TransactionQueries) StatusByID(ctx context.Context, id uuid.UUID) (*TransactionStatusView, error) {
	view, err := q.rs.StatusByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrTransactionNotFound)
		}
		return nil, errs.Wrap(err, "failed to get transaction status")
	}
	return view, nil
}

func (q *TransactionQueries) FindByID(ctx context.Context, id uuid.UUID) (*TransactionView, error) {
	view, err := q.rs.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrTransactionNotFound)
		}
		return nil, errs.Wrap(err, "failed to get transaction")
	}
	return view, nil
}

func (q *TransactionQueries) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]TransactionView, error) {
	views, err := q.rs.ListByUser(ctx, userID, normalizeLimit(limit), offset)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list user transactions")
	}
	return views, nil
}

func (q *TransactionQueries) List(ctx context.Context, filter TransactionFilter) ([]TransactionView, error) {
	filter.Limit = normalizeLimit(filter.Limit)
	views, err := q.rs.List(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list transactions")
	}
	return views, nil
}

func normalizeLimit(limit int32) int32 {
	const defaultLimit, maxLimit = 50, 200
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
