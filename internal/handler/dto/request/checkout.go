package request

import (
	"github.com/google/uuid"
)

type CheckoutItem struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	UnitPrice  int64     `json:"unit_price" binding:"min=0"`
	Quantity   int32     `json:"quantity" binding:"required,min=1"`
}

type GuestContact struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

type CheckoutRequest struct {
	Kind          string         `json:"kind" binding:"required,oneof=order registration"`
	Items         []CheckoutItem `json:"items" binding:"required,min=1,dive"`
	DeclaredTotal int64          `json:"declared_total" binding:"min=0"`
	Guest         *GuestContact  `json:"guest"`
}
