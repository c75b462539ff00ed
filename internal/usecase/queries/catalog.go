package queries

import (
	"context"

	"clubcore/internal/domain/catalog"
	"clubcore/internal/infra"
	"clubcore/internal/pkg/clock"
	"clubcore/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrResourceNotFound = errs.New("resource not found")

type CatalogReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context, kind *catalog.Kind) ([]ResourceView, error)
}

type CatalogQueries struct {
	rs  CatalogReadStore
	clk clock.Clock
}

func NewCatalogQueries(rs CatalogReadStore, clk clock.Clock) *CatalogQueries {
	return &CatalogQueries{rs: rs, clk: clk}
}

func (q *CatalogQueries) FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	view, err := q.rs.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrResourceNotFound)
		}
		return nil, errs.Wrap(err, "failed to get resource")
	}
	q.resolveCurrentPrice(view)
	return view, nil
}

func (q *CatalogQueries) List(ctx context.Context, kind *catalog.Kind) ([]ResourceView, error) {
	views, err := q.rs.List(ctx, kind)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list resources")
	}
	for i := range views {
		q.resolveCurrentPrice(&views[i])
	}
	return views, nil
}

// resolveCurrentPrice evaluates the pricing windows against the query
// clock so clients see the same price checkout will enforce.
func (q *CatalogQueries) resolveCurrentPrice(view *ResourceView) {
	schedule := make(catalog.PricingSchedule, 0, len(view.PricingSchedule))
	for _, w := range view.PricingSchedule {
		schedule = append(schedule, catalog.PricingWindow{
			Label: w.Label, Start: w.Start, End: w.End, Price: w.Price,
		})
	}
	view.CurrentPrice = schedule.PriceAt(q.clk.Now(), view.BasePrice)
}
