package response

import (
	"clubcore/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutResponse struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Status        string    `json:"status"`
	CheckoutURL   string    `json:"checkout_url"`
}

func FromCheckoutResult(result *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		TransactionID: result.TransactionID,
		Status:        PublicStatus(result.Status.String()),
		CheckoutURL:   result.CheckoutURL,
	}
}
