package shared

import (
	"github.com/google/uuid"
)

const (
	NotificationKindEmail = "email"

	TopicPaymentConfirmed = "payment_confirmed"
)

// ConfirmationEmailPayload is the outbox job body for a settled payment.
// The worker renders the email from this snapshot alone, so the
// transaction row can change later without affecting the mail.
type ConfirmationEmailPayload struct {
	TransactionID uuid.UUID                   `json:"transaction_id"`
	Kind          string                      `json:"kind"`
	Email         string                      `json:"email"`
	TotalAmount   int64                       `json:"total_amount"`
	LineItems     []ConfirmationEmailLineItem `json:"line_items"`
}

type ConfirmationEmailLineItem struct {
	Name      string `json:"name"`
	Quantity  int32  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}
