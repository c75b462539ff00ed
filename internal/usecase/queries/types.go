package queries

import (
	"time"

	"clubcore/internal/domain/transaction"

	"github.com/google/uuid"
)

// Read models returned to handlers. These are flat view structs scanned
// straight from the read store; they never round-trip through the
// domain entities.

type LineItemView struct {
	ResourceID uuid.UUID `json:"resource_id"`
	Name       string    `json:"name"`
	UnitPrice  int64     `json:"unit_price"`
	Quantity   int32     `json:"quantity"`
	Subtotal   int64     `json:"subtotal"`
}

type TransactionView struct {
	ID                    uuid.UUID              `json:"id"`
	Kind                  string                 `json:"kind"`
	Status                string                 `json:"status"`
	UserID                *uuid.UUID             `json:"user_id,omitempty"`
	Guest                 *transaction.GuestInfo `json:"guest,omitempty"`
	PayerEmail            string                 `json:"payer_email"`
	LineItems             []LineItemView         `json:"line_items"`
	TotalAmount           int64                  `json:"total_amount"`
	ExternalPaymentRef    *string                `json:"external_payment_ref,omitempty"`
	ExternalTransactionID *string                `json:"external_transaction_id,omitempty"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

// TransactionStatusView is the polling payload for the post-checkout
// confirmation page.
type TransactionStatusView struct {
	ID     uuid.UUID `json:"id"`
	Kind   string    `json:"kind"`
	Status string    `json:"status"`
}

type TransactionFilter struct {
	Status *string
	Kind   *string
	Limit  int32
	Offset int32
}

type PricingWindowView struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Price int64     `json:"price"`
}

type ResourceView struct {
	ID                uuid.UUID           `json:"id"`
	Kind              string              `json:"kind"`
	Name              string              `json:"name"`
	Description       string              `json:"description"`
	BasePrice         int64               `json:"base_price"`
	CurrentPrice      int64               `json:"current_price"`
	QuantityAvailable int32               `json:"quantity_available"`
	PricingSchedule   []PricingWindowView `json:"pricing_schedule,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

// AuthUserRow carries the password hash and is only ever handed to the
// login command, never serialized.
type AuthUserRow struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}
