package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind      = errors.New("invalid resource kind")
	ErrEmptyName        = errors.New("resource name must not be empty")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
)

// Resource is a sellable item of the club: an event (finite registration
// slots) or a store product (finite stock). Both share quantity semantics;
// only events carry a pricing schedule.
type Resource struct {
	id                uuid.UUID
	kind              Kind
	name              string
	description       string
	basePrice         int64
	quantityAvailable int32
	schedule          PricingSchedule
	createdAt         time.Time
	updatedAt         time.Time
}

func NewResource(kind Kind, name, description string, basePrice int64, quantity int32, schedule PricingSchedule) (*Resource, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if basePrice < 0 {
		return nil, ErrNegativePrice
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if kind == KindProduct {
		schedule = nil
	}

	return &Resource{
		id:                uuid.New(),
		kind:              kind,
		name:              name,
		description:       description,
		basePrice:         basePrice,
		quantityAvailable: quantity,
		schedule:          schedule,
	}, nil
}

func ReconstructResource(
	id uuid.UUID,
	kind Kind,
	name, description string,
	basePrice int64,
	quantity int32,
	schedule PricingSchedule,
	createdAt, updatedAt time.Time,
) *Resource {
	return &Resource{
		id:                id,
		kind:              kind,
		name:              name,
		description:       description,
		basePrice:         basePrice,
		quantityAvailable: quantity,
		schedule:          schedule,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// CurrentPrice applies the pricing-window rule for events; products always
// sell at base price.
func (r *Resource) CurrentPrice(now time.Time) int64 {
	if r.kind == KindEvent {
		return r.schedule.PriceAt(now, r.basePrice)
	}
	return r.basePrice
}

func (r *Resource) HasAvailable(qty int32) bool {
	return r.quantityAvailable >= qty
}

func (r *Resource) ID() uuid.UUID             { return r.id }
func (r *Resource) Kind() Kind                { return r.kind }
func (r *Resource) Name() string              { return r.name }
func (r *Resource) Description() string       { return r.description }
func (r *Resource) BasePrice() int64          { return r.basePrice }
func (r *Resource) QuantityAvailable() int32  { return r.quantityAvailable }
func (r *Resource) Schedule() PricingSchedule { return r.schedule }
func (r *Resource) CreatedAt() time.Time      { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time      { return r.updatedAt }
