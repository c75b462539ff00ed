package shared

import (
	"context"
	"time"

	"clubcore/internal/domain/catalog"
	"clubcore/internal/domain/transaction"
	"clubcore/internal/domain/user"
	"clubcore/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Transactions() TransactionRepository
	Ledger() LedgerRepository
	Catalog() CatalogRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ResourceByID(ctx context.Context, id uuid.UUID) (*ResourceSnapshot, error)
	TransactionByID(ctx context.Context, id uuid.UUID) (*TransactionSnapshot, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx db.DBTX, t *transaction.Transaction) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	SetExternalPaymentRef(ctx context.Context, tx db.DBTX, id uuid.UUID, ref string) error
	// Settle applies the conditional pending -> terminal transition and
	// reports whether a row actually changed. A false return means the
	// transaction was already settled or never existed; this is the
	// caller's idempotency gate.
	Settle(ctx context.Context, tx db.DBTX, id uuid.UUID, status transaction.Status, externalTransactionID string) (bool, error)
}

type LedgerRepository interface {
	// Decrement is a single atomic UPDATE at the storage layer; it must
	// never be a read-modify-write in the application.
	Decrement(ctx context.Context, tx db.DBTX, resourceID uuid.UUID, qty int32) error
	SetQuantity(ctx context.Context, tx db.DBTX, resourceID uuid.UUID, qty int32) error
}

type CatalogRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *catalog.Resource) error
	Update(ctx context.Context, tx db.DBTX, res *catalog.Resource) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) (bool, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) error
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
