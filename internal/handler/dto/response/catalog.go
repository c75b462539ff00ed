package response

import (
	"time"

	"clubcore/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PricingWindowResponse struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Price int64     `json:"price"`
}

type ResourceResponse struct {
	ID                uuid.UUID               `json:"id"`
	Kind              string                  `json:"kind"`
	Name              string                  `json:"name"`
	Description       string                  `json:"description"`
	BasePrice         int64                   `json:"base_price"`
	CurrentPrice      int64                   `json:"current_price"`
	QuantityAvailable int32                   `json:"quantity_available"`
	PricingSchedule   []PricingWindowResponse `json:"pricing_schedule,omitempty"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

func FromResourceView(view *queries.ResourceView) (*ResourceResponse, error) {
	var resp ResourceResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}
