package queries

import (
	"context"

	"clubcore/internal/infra"
	"clubcore/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.New("user not found")

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	FindAuthByEmail(ctx context.Context, email string) (*AuthUserRow, error)
}

type UserQueries struct {
	rs UserReadStore
}

func NewUserQueries(rs UserReadStore) *UserQueries {
	return &UserQueries{rs: rs}
}

func (q *UserQueries) FindByID(ctx context.Context, id uuid.UUID) (*UserView, error) {
	view, err := q.rs.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, errs.Wrap(err, "failed to get user")
	}
	return view, nil
}
