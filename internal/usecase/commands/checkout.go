package commands

import (
	"context"
	"fmt"
	"log/slog"

	"clubcore/internal/domain/catalog"
	"clubcore/internal/domain/transaction"
	"clubcore/internal/infra"
	"clubcore/internal/infra/gateway"
	"clubcore/internal/pkg/config"
	"clubcore/internal/pkg/errs"
	"clubcore/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrResourceNotFound   = errs.New("resource not found")
	ErrGatewayUnavailable = errs.New("payment gateway unavailable")
)

// Actor is the authenticated principal placing the checkout, nil for
// guest checkouts.
type Actor struct {
	UserID uuid.UUID
	Email  string
}

type CheckoutItemInput struct {
	ResourceID uuid.UUID
	UnitPrice  int64
	Quantity   int32
}

type GuestInput struct {
	Name  string
	Email string
	Phone string
}

type CheckoutInput struct {
	Kind          string
	Items         []CheckoutItemInput
	DeclaredTotal int64
	Guest         *GuestInput
}

type CheckoutResult struct {
	TransactionID uuid.UUID
	Status        transaction.Status
	CheckoutURL   string
}

type CheckoutCommands struct {
	uow     shared.UnitOfWork
	gw      PaymentGateway
	factory *transaction.Factory
	gwCfg   config.GatewayConfig
}

func NewCheckoutCommands(uow shared.UnitOfWork, gw PaymentGateway, factory *transaction.Factory, gwCfg config.GatewayConfig) *CheckoutCommands {
	return &CheckoutCommands{uow: uow, gw: gw, factory: factory, gwCfg: gwCfg}
}

// Checkout validates the declared intent, persists the transaction and
// obtains a hosted-checkout link. Zero-total transactions settle
// immediately and skip both the gateway and the ledger.
func (c *CheckoutCommands) Checkout(ctx context.Context, actor *Actor, input CheckoutInput) (*CheckoutResult, error) {
	kind, err := transaction.NewKind(input.Kind)
	if err != nil {
		return nil, err
	}

	payer, err := buildPayer(actor, input.Guest)
	if err != nil {
		return nil, err
	}

	specs := make([]transaction.ItemSpec, 0, len(input.Items))
	for _, item := range input.Items {
		specs = append(specs, transaction.ItemSpec{
			ResourceID:        item.ResourceID,
			DeclaredUnitPrice: item.UnitPrice,
			Quantity:          item.Quantity,
		})
	}

	resources, err := c.loadResources(ctx, specs)
	if err != nil {
		return nil, err
	}

	txn, err := c.factory.CreateTransaction(kind, payer, specs, resources, input.DeclaredTotal)
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Transactions().Create(ctx, tx.DB(), txn)
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to persist transaction")
	}

	if txn.IsZeroAmount() {
		return &CheckoutResult{
			TransactionID: txn.ID(),
			Status:        txn.Status(),
			CheckoutURL:   c.statusPageURL(txn.ID()),
		}, nil
	}

	link, err := c.gw.CreatePaymentLink(ctx, gateway.PaymentLinkRequest{
		Reference:     txn.ID().String(),
		Amount:        txn.TotalAmount(),
		CustomerEmail: txn.Payer().Email(),
	})
	if err != nil {
		// Compensating delete: a pending row without a payment link can
		// never settle, so it must not survive.
		if delErr := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Transactions().Delete(ctx, tx.DB(), txn.ID())
		}); delErr != nil {
			slog.Error("failed to delete transaction after gateway failure",
				"transaction_id", txn.ID(), "error", delErr.Error())
		}
		return nil, errs.Mark(errs.Wrap(err, "failed to create payment link"), ErrGatewayUnavailable)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Transactions().SetExternalPaymentRef(ctx, tx.DB(), txn.ID(), link.ID)
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to store payment ref")
	}

	return &CheckoutResult{
		TransactionID: txn.ID(),
		Status:        txn.Status(),
		CheckoutURL:   link.CheckoutURL,
	}, nil
}

func buildPayer(actor *Actor, guest *GuestInput) (transaction.Payer, error) {
	if actor != nil {
		if guest != nil {
			return transaction.Payer{}, transaction.ErrAmbiguousPayer
		}
		return transaction.NewAccountPayer(actor.UserID, actor.Email)
	}
	if guest == nil {
		return transaction.Payer{}, transaction.ErrMissingPayer
	}
	return transaction.NewGuestPayer(guest.Name, guest.Email, guest.Phone)
}

// loadResources resolves the declared items outside any transaction.
// The check it feeds is advisory; settlement owns the authoritative
// decrement.
func (c *CheckoutCommands) loadResources(ctx context.Context, specs []transaction.ItemSpec) (map[uuid.UUID]*catalog.Resource, error) {
	reads := c.uow.CommandReads()
	resources := make(map[uuid.UUID]*catalog.Resource, len(specs))

	for _, spec := range specs {
		if _, ok := resources[spec.ResourceID]; ok {
			continue
		}
		snap, err := reads.ResourceByID(ctx, spec.ResourceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, ErrResourceNotFound)
			}
			return nil, errs.Wrap(err, "failed to load resource")
		}
		resources[spec.ResourceID] = snap.ToDomain()
	}

	return resources, nil
}

func (c *CheckoutCommands) statusPageURL(id uuid.UUID) string {
	return fmt.Sprintf("%s?id=%s", c.gwCfg.RedirectURL, id)
}
