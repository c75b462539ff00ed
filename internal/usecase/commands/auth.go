package commands

import (
	"context"
	"log/slog"

	"clubcore/internal/domain/user"
	"clubcore/internal/infra"
	"clubcore/internal/pkg/errs"
	"clubcore/internal/pkg/jwt"
	"clubcore/internal/pkg/password"
	"clubcore/internal/usecase/queries"
	"clubcore/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrEmailTaken         = errs.New("email already registered")
)

type LoginResult struct {
	UserID       uuid.UUID
	Role         user.Role
	AccessToken  string
	RefreshToken string
}

type AuthCommands struct {
	uow   shared.UnitOfWork
	users queries.UserReadStore
	jwt   *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, users queries.UserReadStore, jwtSvc *jwt.Service) *AuthCommands {
	return &AuthCommands{uow: uow, users: users, jwt: jwtSvc}
}

// Login deliberately collapses every failure into the same error so
// responses never reveal whether an email exists.
func (c *AuthCommands) Login(ctx context.Context, creds user.Credentials) (*LoginResult, error) {
	row, err := c.users.FindAuthByEmail(ctx, creds.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrInvalidCredentials)
		}
		return nil, errs.Wrap(err, "failed to look up user")
	}

	if !row.IsActive {
		return nil, errs.Mark(errs.New("account disabled"), ErrInvalidCredentials)
	}

	if err := password.ComparePassword(row.PasswordHash, creds.Password().Value()); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	role, err := user.NewRole(row.Role)
	if err != nil {
		return nil, errs.Wrap(err, "corrupt role on user row")
	}

	accessToken, err := c.jwt.GenerateAccessToken(row.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate access token")
	}
	refreshToken, err := c.jwt.GenerateRefreshToken(row.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate refresh token")
	}

	if err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, tx.DB(), row.ID)
	}); err != nil {
		// Login still succeeds; the timestamp is best-effort bookkeeping.
		slog.Warn("failed to update last login", "user_id", row.ID, "error", err.Error())
	}

	return &LoginResult{
		UserID:       row.ID,
		Role:         role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

func (c *AuthCommands) Register(ctx context.Context, input RegisterInput) (uuid.UUID, error) {
	email, err := user.NewEmail(input.Email)
	if err != nil {
		return uuid.Nil, err
	}
	pass, err := user.NewPassword(input.Password)
	if err != nil {
		return uuid.Nil, err
	}
	role, err := user.NewRole(input.Role)
	if err != nil {
		return uuid.Nil, err
	}

	hash, err := password.HashPassword(pass.Value())
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to hash password")
	}

	u := user.NewUser(email, hash, role)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, tx.DB(), u)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, errs.Mark(err, ErrEmailTaken)
		}
		return uuid.Nil, errs.Wrap(err, "failed to create user")
	}

	return u.ID(), nil
}
