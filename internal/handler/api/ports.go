package api

import (
	"context"

	"clubcore/internal/domain/catalog"
	"clubcore/internal/domain/user"
	"clubcore/internal/usecase/commands"
	"clubcore/internal/usecase/queries"

	"github.com/google/uuid"
)

// Usecase surfaces consumed by the handlers. Declared here so handler
// tests can substitute mocks without touching the usecase packages.

type AuthCommands interface {
	Login(ctx context.Context, creds user.Credentials) (*commands.LoginResult, error)
	Register(ctx context.Context, input commands.RegisterInput) (uuid.UUID, error)
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, actor *commands.Actor, input commands.CheckoutInput) (*commands.CheckoutResult, error)
}

type PaymentCommands interface {
	ProcessCallback(ctx context.Context, input commands.CallbackInput) error
	ForceApprove(ctx context.Context, id uuid.UUID) error
}

type CatalogCommands interface {
	CreateResource(ctx context.Context, input commands.ResourceInput) (uuid.UUID, error)
	UpdateResource(ctx context.Context, id uuid.UUID, input commands.ResourceInput) error
	SetQuantity(ctx context.Context, id uuid.UUID, quantity int32) error
	DeleteResource(ctx context.Context, id uuid.UUID) error
}

type TransactionQueries interface {
	StatusByID(ctx context.Context, id uuid.UUID) (*queries.TransactionStatusView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*queries.TransactionView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]queries.TransactionView, error)
	List(ctx context.Context, filter queries.TransactionFilter) ([]queries.TransactionView, error)
}

type CatalogQueries interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error)
	List(ctx context.Context, kind *catalog.Kind) ([]queries.ResourceView, error)
}

type UserQueries interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error)
}
