package catalog

import (
	"time"
)

// PricingWindow is a time-bounded price override on an event, e.g. an
// early-bird rate. Windows are an ordered list; the current price is the
// price of the first window whose [Start, End] contains now. Overlaps are
// not validated; first match wins by list order.
type PricingWindow struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Price int64     `json:"price"`
}

func (w PricingWindow) Contains(now time.Time) bool {
	return !now.Before(w.Start) && !now.After(w.End)
}

type PricingSchedule []PricingWindow

// PriceAt resolves the effective price at the given instant, falling back
// to basePrice when no window matches.
func (s PricingSchedule) PriceAt(now time.Time, basePrice int64) int64 {
	for _, w := range s {
		if w.Contains(now) {
			return w.Price
		}
	}
	return basePrice
}
