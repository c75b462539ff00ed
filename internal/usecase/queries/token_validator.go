package queries

import (
	"context"

	"clubcore/internal/domain/user"
	"clubcore/internal/infra"
	"clubcore/internal/pkg/errs"
	"clubcore/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrUnauthenticated = errs.New("authentication required")

// Principal is the validated caller identity threaded through request
// context by the auth middleware.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   user.Role
}

type TokenValidator struct {
	jwt *jwt.Service
	rs  UserReadStore
}

func NewTokenValidator(jwtSvc *jwt.Service, rs UserReadStore) *TokenValidator {
	return &TokenValidator{jwt: jwtSvc, rs: rs}
}

// ValidateAccessToken checks the token and confirms the account still
// exists and is active, so disabling a user revokes outstanding tokens.
func (v *TokenValidator) ValidateAccessToken(ctx context.Context, token string) (*Principal, error) {
	claims, err := v.jwt.ValidateToken(token)
	if err != nil {
		return nil, errs.Mark(err, ErrUnauthenticated)
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return nil, errs.Mark(errs.New("not an access token"), ErrUnauthenticated)
	}

	view, err := v.rs.FindByID(ctx, claims.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUnauthenticated)
		}
		return nil, errs.Wrap(err, "failed to load user for token")
	}
	if !view.IsActive {
		return nil, errs.Mark(errs.New("account disabled"), ErrUnauthenticated)
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Wrap(err, "corrupt role on user row")
	}

	return &Principal{UserID: view.ID, Email: view.Email, Role: role}, nil
}
