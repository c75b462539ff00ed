package response

import (
	"time"

	"clubcore/internal/domain/transaction"
	"clubcore/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Public status vocabulary. Internal statuses never leak to clients.
const (
	PublicStatusProcessing = "processing"
	PublicStatusConfirmed  = "confirmed"
	PublicStatusFailed     = "failed"
)

func PublicStatus(internal string) string {
	switch transaction.Status(internal) {
	case transaction.StatusCompleted:
		return PublicStatusConfirmed
	case transaction.StatusFailed:
		return PublicStatusFailed
	default:
		return PublicStatusProcessing
	}
}

// InternalStatus resolves a public status name back to the stored value,
// for back-office list filters. Reports false for anything outside the
// public vocabulary.
func InternalStatus(public string) (string, bool) {
	switch public {
	case PublicStatusProcessing:
		return transaction.StatusPendingPayment.String(), true
	case PublicStatusConfirmed:
		return transaction.StatusCompleted.String(), true
	case PublicStatusFailed:
		return transaction.StatusFailed.String(), true
	default:
		return "", false
	}
}

type TransactionStatusResponse struct {
	ID     uuid.UUID `json:"id"`
	Kind   string    `json:"kind"`
	Status string    `json:"status"`
}

func FromTransactionStatusView(view *queries.TransactionStatusView) *TransactionStatusResponse {
	return &TransactionStatusResponse{
		ID:     view.ID,
		Kind:   view.Kind,
		Status: PublicStatus(view.Status),
	}
}

type LineItemResponse struct {
	ResourceID uuid.UUID `json:"resource_id"`
	Name       string    `json:"name"`
	UnitPrice  int64     `json:"unit_price"`
	Quantity   int32     `json:"quantity"`
	Subtotal   int64     `json:"subtotal"`
}

type GuestResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type TransactionResponse struct {
	ID                    uuid.UUID          `json:"id"`
	Kind                  string             `json:"kind"`
	Status                string             `json:"status"`
	UserID                *uuid.UUID         `json:"user_id,omitempty"`
	Guest                 *GuestResponse     `json:"guest,omitempty"`
	PayerEmail            string             `json:"payer_email"`
	LineItems             []LineItemResponse `json:"line_items"`
	TotalAmount           int64              `json:"total_amount"`
	ExternalPaymentRef    *string            `json:"external_payment_ref,omitempty"`
	ExternalTransactionID *string            `json:"external_transaction_id,omitempty"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

func FromTransactionView(view *queries.TransactionView) (*TransactionResponse, error) {
	var resp TransactionResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	resp.Status = PublicStatus(view.Status)
	return &resp, nil
}
