package commands

import (
	"context"

	"clubcore/internal/domain/catalog"
	"clubcore/internal/infra"
	"clubcore/internal/pkg/errs"
	"clubcore/internal/usecase/shared"

	"github.com/google/uuid"
)

type PricingWindowInput struct {
	Label string
	Start string
	End   string
	Price int64
}

type ResourceInput struct {
	Kind            string
	Name            string
	Description     string
	BasePrice       int64
	Quantity        int32
	PricingSchedule catalog.PricingSchedule
}

// CatalogCommands is the admin back-office surface. Quantity here is an
// absolute restock value, unrelated to settlement decrements.
type CatalogCommands struct {
	uow shared.UnitOfWork
}

func NewCatalogCommands(uow shared.UnitOfWork) *CatalogCommands {
	return &CatalogCommands{uow: uow}
}

func (c *CatalogCommands) CreateResource(ctx context.Context, input ResourceInput) (uuid.UUID, error) {
	kind, err := catalog.NewKind(input.Kind)
	if err != nil {
		return uuid.Nil, err
	}

	res, err := catalog.NewResource(kind, input.Name, input.Description, input.BasePrice, input.Quantity, input.PricingSchedule)
	if err != nil {
		return uuid.Nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Catalog().Create(ctx, tx.DB(), res)
	})
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to create resource")
	}

	return res.ID(), nil
}

func (c *CatalogCommands) UpdateResource(ctx context.Context, id uuid.UUID, input ResourceInput) error {
	kind, err := catalog.NewKind(input.Kind)
	if err != nil {
		return err
	}

	res, err := catalog.NewResource(kind, input.Name, input.Description, input.BasePrice, input.Quantity, input.PricingSchedule)
	if err != nil {
		return err
	}
	res = catalog.ReconstructResource(
		id, res.Kind(), res.Name(), res.Description(),
		res.BasePrice(), res.QuantityAvailable(), res.Schedule(),
		res.CreatedAt(), res.UpdatedAt(),
	)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Catalog().Update(ctx, tx.DB(), res)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrResourceNotFound)
		}
		return errs.Wrap(err, "failed to update resource")
	}

	return nil
}

func (c *CatalogCommands) SetQuantity(ctx context.Context, id uuid.UUID, quantity int32) error {
	if quantity < 0 {
		return catalog.ErrNegativeQuantity
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Ledger().SetQuantity(ctx, tx.DB(), id, quantity)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrResourceNotFound)
		}
		return errs.Wrap(err, "failed to set resource quantity")
	}

	return nil
}

func (c *CatalogCommands) DeleteResource(ctx context.Context, id uuid.UUID) error {
	var deleted bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		deleted, err = tx.Catalog().Delete(ctx, tx.DB(), id)
		return err
	})
	if err != nil {
		return errs.Wrap(err, "failed to delete resource")
	}
	if !deleted {
		return errs.Mark(errs.New("resource not found"), ErrResourceNotFound)
	}

	return nil
}
