package readstore

import (
	"context"
	"encoding/json"
	"errors"

	"clubcore/internal/domain/catalog"
	"clubcore/internal/infra"
	"clubcore/internal/infra/db"
	"clubcore/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CatalogReadStore struct {
	dbtx db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{dbtx: dbtx}
}

const resourceViewColumns = `
	id, kind, name, description, base_price, quantity_available,
	pricing_schedule, created_at, updated_at`

func (r *CatalogReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	row := r.dbtx.QueryRow(ctx,
		`SELECT `+resourceViewColumns+` FROM resources WHERE id = $1`, id,
	)

	view, err := scanResourceView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get resource", err)
	}
	return view, nil
}

func (r *CatalogReadStore) List(ctx context.Context, kind *catalog.Kind) ([]queries.ResourceView, error) {
	var kindFilter *string
	if kind != nil {
		s := kind.String()
		kindFilter = &s
	}

	rows, err := r.dbtx.Query(ctx,
		`SELECT `+resourceViewColumns+`
		 FROM resources
		 WHERE ($1::text IS NULL OR kind = $1)
		 ORDER BY created_at DESC`,
		kindFilter,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}
	defer rows.Close()

	views := make([]queries.ResourceView, 0)
	for rows.Next() {
		view, err := scanResourceView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read resources", err)
	}
	return views, nil
}

func scanResourceView(row pgx.Row) (*queries.ResourceView, error) {
	var (
		view        queries.ResourceView
		rawSchedule []byte
	)
	err := row.Scan(
		&view.ID, &view.Kind, &view.Name, &view.Description,
		&view.BasePrice, &view.QuantityAvailable,
		&rawSchedule, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	var schedule []catalog.PricingWindow
	if err := json.Unmarshal(rawSchedule, &schedule); err != nil {
		return nil, err
	}
	view.PricingSchedule = make([]queries.PricingWindowView, 0, len(schedule))
	for _, w := range schedule {
		view.PricingSchedule = append(view.PricingSchedule, queries.PricingWindowView{
			Label: w.Label, Start: w.Start, End: w.End, Price: w.Price,
		})
	}

	return &view, nil
}
