package shared

import (
	"time"

	"clubcore/internal/domain/catalog"
	"clubcore/internal/domain/transaction"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side reads, decoupled from both the
// domain entities and the row shapes.

type ResourceSnapshot struct {
	ID                uuid.UUID
	Kind              catalog.Kind
	Name              string
	Description       string
	BasePrice         int64
	QuantityAvailable int32
	Schedule          catalog.PricingSchedule
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (s *ResourceSnapshot) ToDomain() *catalog.Resource {
	return catalog.ReconstructResource(
		s.ID, s.Kind, s.Name, s.Description,
		s.BasePrice, s.QuantityAvailable, s.Schedule,
		s.CreatedAt, s.UpdatedAt,
	)
}

type TransactionSnapshot struct {
	ID                    uuid.UUID
	Kind                  transaction.Kind
	Status                transaction.Status
	UserID                *uuid.UUID
	Guest                 *transaction.GuestInfo
	PayerEmail            string
	LineItems             []transaction.LineItem
	TotalAmount           int64
	ExternalPaymentRef    *string
	ExternalTransactionID *string
	CreatedAt             time.Time
}
