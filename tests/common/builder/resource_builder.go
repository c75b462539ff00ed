//go:build unit || e2e

package builder

import (
	"time"

	"clubcore/internal/domain/catalog"
	reqdto "clubcore/internal/handler/dto/request"
	"clubcore/internal/usecase/queries"
	"clubcore/internal/usecase/shared"

	"github.com/google/uuid"
)

type ResourceBuilder struct {
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

func NewResourceBuilder() *ResourceBuilder {
	now := time.Now()
	return &ResourceBuilder{
		ID:                uuid.New(),
		Kind:              catalog.KindProduct,
		Name:              "Club Jersey",
		Description:       "Official club jersey",
		BasePrice:         45,
		QuantityAvailable: 20,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (b *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ResourceBuilder) BuildDomain() (*catalog.Resource, error) {
	return catalog.NewResource(b.Kind, b.Name, b.Description, b.BasePrice, b.QuantityAvailable, b.Schedule)
}

func (b *ResourceBuilder) BuildSnapshot() *shared.ResourceSnapshot {
	return &shared.ResourceSnapshot{
		ID:                b.ID,
		Kind:              b.Kind,
		Name:              b.Name,
		Description:       b.Description,
		BasePrice:         b.BasePrice,
		QuantityAvailable: b.QuantityAvailable,
		Schedule:          b.Schedule,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (b *ResourceBuilder) BuildView() *queries.ResourceView {
	schedule := make([]queries.PricingWindowView, 0, len(b.Schedule))
	for _, w := range b.Schedule {
		schedule = append(schedule, queries.PricingWindowView{
			Label: w.Label, Start: w.Start, End: w.End, Price: w.Price,
		})
	}
	return &queries.ResourceView{
		ID:                b.ID,
		Kind:              b.Kind.String(),
		Name:              b.Name,
		Description:       b.Description,
		BasePrice:         b.BasePrice,
		CurrentPrice:      b.BasePrice,
		QuantityAvailable: b.QuantityAvailable,
		PricingSchedule:   schedule,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (b *ResourceBuilder) BuildRequestDTO() reqdto.ResourceRequest {
	schedule := make([]reqdto.PricingWindowRequest, 0, len(b.Schedule))
	for _, w := range b.Schedule {
		schedule = append(schedule, reqdto.PricingWindowRequest{
			Label: w.Label, Start: w.Start, End: w.End, Price: w.Price,
		})
	}
	return reqdto.ResourceRequest{
		Kind:              b.Kind.String(),
		Name:              b.Name,
		Description:       b.Description,
		BasePrice:         b.BasePrice,
		QuantityAvailable: b.QuantityAvailable,
		PricingSchedule:   schedule,
	}
}

// Fluent builder methods
func (b *ResourceBuilder) WithID(id uuid.UUID) *ResourceBuilder {
	b.ID = id
	return b
}

func (b *ResourceBuilder) WithKind(kind catalog.Kind) *ResourceBuilder {
	b.Kind = kind
	return b
}

func (b *ResourceBuilder) WithName(name string) *ResourceBuilder {
	b.Name = name
	return b
}

func (b *ResourceBuilder) WithBasePrice(price int64) *ResourceBuilder {
	b.BasePrice = price
	return b
}

func (b *ResourceBuilder) WithQuantity(qty int32) *ResourceBuilder {
	b.QuantityAvailable = qty
	return b
}

func (b *ResourceBuilder) WithSchedule(schedule catalog.PricingSchedule) *ResourceBuilder {
	b.Schedule = schedule
	return b
}

func (b *ResourceBuilder) AsEvent() *ResourceBuilder {
	b.Kind = catalog.KindEvent
	b.Name = "Spring Tournament"
	b.Description = "Annual spring tournament registration"
	b.BasePrice = 80
	b.QuantityAvailable = 64
	return b
}

func (b *ResourceBuilder) AsFreeEvent() *ResourceBuilder {
	b.AsEvent()
	b.Name = "Open Training Day"
	b.BasePrice = 0
	return b
}
