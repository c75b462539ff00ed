//go:build unit || e2e

package builder

import (
	"time"

	"clubcore/internal/domain/transaction"
	reqdto "clubcore/internal/handler/dto/request"
	"clubcore/internal/usecase/queries"
	"clubcore/internal/usecase/shared"

	"github.com/google/uuid"
)

type TransactionBuilder struct {
	ID          uuid.UUID
	Kind        transaction.Kind
	Status      transaction.Status
	UserID      *uuid.UUID
	Guest       *transaction.GuestInfo
	PayerEmail  string
	LineItems   []transaction.LineItem
	TotalAmount int64
	ExternalRef *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewTransactionBuilder() *TransactionBuilder {
	now := time.Now()
	userID := uuid.New()
	resourceID := uuid.New()
	return &TransactionBuilder{
		ID:         uuid.New(),
		Kind:       transaction.KindOrder,
		Status:     transaction.StatusPendingPayment,
		UserID:     &userID,
		PayerEmail: "member@example.com",
		LineItems: []transaction.LineItem{
			{ResourceID: resourceID, Name: "Club Jersey", UnitPrice: 45, Quantity: 2},
		},
		TotalAmount: 90,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *TransactionBuilder) With(mutate func(*TransactionBuilder)) *TransactionBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *TransactionBuilder) BuildSnapshot() *shared.TransactionSnapshot {
	return &shared.TransactionSnapshot{
		ID:                 b.ID,
		Kind:               b.Kind,
		Status:             b.Status,
		UserID:             b.UserID,
		Guest:              b.Guest,
		PayerEmail:         b.PayerEmail,
		LineItems:          b.LineItems,
		TotalAmount:        b.TotalAmount,
		ExternalPaymentRef: b.ExternalRef,
		CreatedAt:          b.CreatedAt,
	}
}

func (b *TransactionBuilder) BuildView() *queries.TransactionView {
	items := make([]queries.LineItemView, 0, len(b.LineItems))
	for _, li := range b.LineItems {
		items = append(items, queries.LineItemView{
			ResourceID: li.ResourceID,
			Name:       li.Name,
			UnitPrice:  li.UnitPrice,
			Quantity:   li.Quantity,
			Subtotal:   li.Subtotal(),
		})
	}
	return &queries.TransactionView{
		ID:                 b.ID,
		Kind:               b.Kind.String(),
		Status:             b.Status.String(),
		UserID:             b.UserID,
		Guest:              b.Guest,
		PayerEmail:         b.PayerEmail,
		LineItems:          items,
		TotalAmount:        b.TotalAmount,
		ExternalPaymentRef: b.ExternalRef,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (b *TransactionBuilder) BuildStatusView() *queries.TransactionStatusView {
	return &queries.TransactionStatusView{
		ID:     b.ID,
		Kind:   b.Kind.String(),
		Status: b.Status.String(),
	}
}

func (b *TransactionBuilder) BuildCheckoutRequestDTO() reqdto.CheckoutRequest {
	items := make([]reqdto.CheckoutItem, 0, len(b.LineItems))
	for _, li := range b.LineItems {
		items = append(items, reqdto.CheckoutItem{
			ResourceID: li.ResourceID,
			UnitPrice:  li.UnitPrice,
			Quantity:   li.Quantity,
		})
	}
	req := reqdto.CheckoutRequest{
		Kind:          b.Kind.String(),
		Items:         items,
		DeclaredTotal: b.TotalAmount,
	}
	if b.Guest != nil {
		req.Guest = &reqdto.GuestContact{
			Name:  b.Guest.Name,
			Email: b.Guest.Email,
			Phone: b.Guest.Phone,
		}
	}
	return req
}

// Fluent builder methods
func (b *TransactionBuilder) WithID(id uuid.UUID) *TransactionBuilder {
	b.ID = id
	return b
}

func (b *TransactionBuilder) WithKind(kind transaction.Kind) *TransactionBuilder {
	b.Kind = kind
	return b
}

func (b *TransactionBuilder) WithStatus(status transaction.Status) *TransactionBuilder {
	b.Status = status
	return b
}

func (b *TransactionBuilder) WithUserID(userID uuid.UUID) *TransactionBuilder {
	id := userID
	b.UserID = &id
	b.Guest = nil
	return b
}

func (b *TransactionBuilder) WithLineItems(items []transaction.LineItem) *TransactionBuilder {
	b.LineItems = items
	var total int64
	for _, li := range items {
		total += li.Subtotal()
	}
	b.TotalAmount = total
	return b
}

func (b *TransactionBuilder) WithExternalRef(ref string) *TransactionBuilder {
	b.ExternalRef = &ref
	return b
}

func (b *TransactionBuilder) AsGuest() *TransactionBuilder {
	b.UserID = nil
	b.Guest = &transaction.GuestInfo{
		Name:  "Guest Visitor",
		Email: "guest@example.com",
		Phone: "+31 6 1234 5678",
	}
	b.PayerEmail = b.Guest.Email
	return b
}

func (b *TransactionBuilder) AsCompleted() *TransactionBuilder {
	b.Status = transaction.StatusCompleted
	return b
}

func (b *TransactionBuilder) AsFailed() *TransactionBuilder {
	b.Status = transaction.StatusFailed
	return b
}

func (b *TransactionBuilder) AsRegistration() *TransactionBuilder {
	b.Kind = transaction.KindRegistration
	resourceID := uuid.New()
	b.LineItems = []transaction.LineItem{
		{ResourceID: resourceID, Name: "Spring Tournament", UnitPrice: 80, Quantity: 1},
	}
	b.TotalAmount = 80
	return b
}
