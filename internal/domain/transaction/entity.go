package transaction

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind       = errors.New("invalid transaction kind")
	ErrMissingPayer      = errors.New("payer identity required")
	ErrAmbiguousPayer    = errors.New("payer cannot be both account and guest")
	ErrMissingContact    = errors.New("guest name and email required")
	ErrNoLineItems       = errors.New("at least one line item required")
	ErrInvalidQuantity   = errors.New("line item quantity must be positive")
	ErrUnknownResource   = errors.New("unknown resource reference")
	ErrKindMismatch      = errors.New("resource kind does not match transaction kind")
	ErrPriceMismatch     = errors.New("declared unit price does not match current price")
	ErrTotalMismatch     = errors.New("declared total does not match computed total")
	ErrInsufficientStock = errors.New("insufficient quantity available")
)

// GuestInfo is the embedded contact snapshot for unauthenticated payers.
// Creating a transaction never provisions an account from it.
type GuestInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Payer links the transaction to either a registered account or a guest
// snapshot, never both.
type Payer struct {
	userID *uuid.UUID
	guest  *GuestInfo
	email  string
}

func NewAccountPayer(userID uuid.UUID, email string) (Payer, error) {
	if userID == uuid.Nil {
		return Payer{}, ErrMissingPayer
	}
	id := userID
	return Payer{userID: &id, email: email}, nil
}

func NewGuestPayer(name, email, phone string) (Payer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return Payer{}, ErrMissingContact
	}
	return Payer{
		guest: &GuestInfo{Name: name, Email: email, Phone: strings.TrimSpace(phone)},
		email: email,
	}, nil
}

func ReconstructPayer(userID *uuid.UUID, guest *GuestInfo, email string) Payer {
	return Payer{userID: userID, guest: guest, email: email}
}

func (p Payer) UserID() *uuid.UUID { return p.userID }
func (p Payer) Guest() *GuestInfo  { return p.guest }
func (p Payer) Email() string      { return p.email }
func (p Payer) IsGuest() bool      { return p.guest != nil }

// LineItem is a snapshot taken at creation time, deliberately decoupled
// from the live resource price.
type LineItem struct {
	ResourceID uuid.UUID `json:"resource_id"`
	Name       string    `json:"name"`
	UnitPrice  int64     `json:"unit_price"`
	Quantity   int32     `json:"quantity"`
}

func (li LineItem) Subtotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// Transaction tracks one payment attempt end-to-end: an order or a
// registration. Its id doubles as the gateway reference. Status moves
// pending_payment -> completed|failed at most once; the conditional
// update in the repository is what enforces that, not this struct.
type Transaction struct {
	id                    uuid.UUID
	kind                  Kind
	status                Status
	payer                 Payer
	lineItems             []LineItem
	totalAmount           int64
	externalPaymentRef    *string
	externalTransactionID *string
	createdAt             time.Time
	updatedAt             time.Time
}

func ReconstructTransaction(
	id uuid.UUID,
	kind Kind,
	status Status,
	payer Payer,
	lineItems []LineItem,
	totalAmount int64,
	externalPaymentRef, externalTransactionID *string,
	createdAt, updatedAt time.Time,
) *Transaction {
	return &Transaction{
		id:                    id,
		kind:                  kind,
		status:                status,
		payer:                 payer,
		lineItems:             lineItems,
		totalAmount:           totalAmount,
		externalPaymentRef:    externalPaymentRef,
		externalTransactionID: externalTransactionID,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}
}

func (t *Transaction) IsSettled() bool {
	return t.status.IsSettled()
}

func (t *Transaction) IsZeroAmount() bool {
	return t.totalAmount == 0
}

func (t *Transaction) ID() uuid.UUID                  { return t.id }
func (t *Transaction) Kind() Kind                     { return t.kind }
func (t *Transaction) Status() Status                 { return t.status }
func (t *Transaction) Payer() Payer                   { return t.payer }
func (t *Transaction) LineItems() []LineItem          { return t.lineItems }
func (t *Transaction) TotalAmount() int64             { return t.totalAmount }
func (t *Transaction) ExternalPaymentRef() *string    { return t.externalPaymentRef }
func (t *Transaction) ExternalTransactionID() *string { return t.externalTransactionID }
func (t *Transaction) CreatedAt() time.Time           { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time           { return t.updatedAt }
