package request

import (
	"time"
)

type PricingWindowRequest struct {
	Label string    `json:"label" binding:"required"`
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
	Price int64     `json:"price" binding:"min=0"`
}

type ResourceRequest struct {
	Kind              string                 `json:"kind" binding:"required,oneof=event product"`
	Name              string                 `json:"name" binding:"required"`
	Description       string                 `json:"description"`
	BasePrice         int64                  `json:"base_price" binding:"min=0"`
	QuantityAvailable int32                  `json:"quantity_available" binding:"min=0"`
	PricingSchedule   []PricingWindowRequest `json:"pricing_schedule" binding:"dive"`
}

type QuantityRequest struct {
	Quantity *int32 `json:"quantity" binding:"required,min=0"`
}
