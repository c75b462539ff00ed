package repository

import (
	"context"
	"encoding/json"

	"clubcore/internal/domain/catalog"
	"clubcore/internal/infra"
	"clubcore/internal/infra/db"

	"github.com/google/uuid"
)

type CatalogRepository struct{}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

const createResourceSQL = `
INSERT INTO resources (id, kind, name, description, base_price, quantity_available, pricing_schedule)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (r *CatalogRepository) Create(ctx context.Context, tx db.DBTX, res *catalog.Resource) error {
	schedule, err := marshalSchedule(res.Schedule())
	if err != nil {
		return infra.WrapRepoErr("failed to encode pricing schedule", err)
	}

	_, err = tx.Exec(ctx, createResourceSQL,
		res.ID(), res.Kind().String(), res.Name(), res.Description(),
		res.BasePrice(), res.QuantityAvailable(), schedule,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create resource", err, classifyPgErr(err))
	}

	return nil
}

const updateResourceSQL = `
UPDATE resources
SET kind = $2, name = $3, description = $4, base_price = $5,
    quantity_available = $6, pricing_schedule = $7, updated_at = now()
WHERE id = $1`

func (r *CatalogRepository) Update(ctx context.Context, tx db.DBTX, res *catalog.Resource) error {
	schedule, err := marshalSchedule(res.Schedule())
	if err != nil {
		return infra.WrapRepoErr("failed to encode pricing schedule", err)
	}

	tag, err := tx.Exec(ctx, updateResourceSQL,
		res.ID(), res.Kind().String(), res.Name(), res.Description(),
		res.BasePrice(), res.QuantityAvailable(), schedule,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update resource", err, classifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *CatalogRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) (bool, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete resource", err, classifyPgErr(err))
	}
	return tag.RowsAffected() == 1, nil
}

// marshalSchedule encodes an empty schedule as JSON [] rather than SQL
// NULL so the column stays uniformly typed.
func marshalSchedule(s catalog.PricingSchedule) ([]byte, error) {
	if s == nil {
		s = catalog.PricingSchedule{}
	}
	return json.Marshal(s)
}
