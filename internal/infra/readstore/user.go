package readstore

import (
	"context"
	"errors"

	"clubcore/internal/infra"
	"clubcore/internal/infra/db"
	"clubcore/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserReadStore struct {
	dbtx db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{dbtx: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	var view queries.UserView
	err := r.dbtx.QueryRow(ctx,
		`SELECT id, email, role, last_login, is_active, created_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&view.ID, &view.Email, &view.Role, &view.LastLogin, &view.IsActive, &view.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get user", err)
	}
	return &view, nil
}

func (r *UserReadStore) FindAuthByEmail(ctx context.Context, email string) (*queries.AuthUserRow, error) {
	var row queries.AuthUserRow
	err := r.dbtx.QueryRow(ctx,
		`SELECT id, email, password_hash, role, is_active
		 FROM users WHERE email = $1`,
		email,
	).Scan(&row.ID, &row.Email, &row.PasswordHash, &row.Role, &row.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get user by email", err)
	}
	return &row, nil
}

var _ queries.UserReadStore = (*UserReadStore)(nil)
