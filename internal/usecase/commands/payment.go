package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"clubcore/internal/domain/transaction"
	"clubcore/internal/infra"
	"clubcore/internal/pkg/clock"
	"clubcore/internal/pkg/errs"
	"clubcore/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUnknownTransaction  = errs.New("unknown transaction reference")
	ErrTransactionNotFound = errs.New("transaction not found")
)

// CallbackInput is the normalized gateway callback after signature
// verification and JSON parsing.
type CallbackInput struct {
	Reference             string
	GatewayStatus         string
	ExternalTransactionID string
}

type PaymentCommands struct {
	uow shared.UnitOfWork
	clk clock.Clock
}

func NewPaymentCommands(uow shared.UnitOfWork, clk clock.Clock) *PaymentCommands {
	return &PaymentCommands{uow: uow, clk: clk}
}

// ProcessCallback applies a verified gateway callback. Every return path
// other than a real processing failure is deliberately nil: redeliveries,
// unknown references and intermediate statuses must not provoke gateway
// retries.
func (c *PaymentCommands) ProcessCallback(ctx context.Context, input CallbackInput) error {
	id, err := uuid.Parse(input.Reference)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "malformed transaction reference"), ErrUnknownTransaction)
	}

	snap, err := c.uow.CommandReads().TransactionByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrUnknownTransaction)
		}
		return errs.Wrap(err, "failed to load transaction")
	}

	if snap.Status.IsSettled() {
		slog.Info("callback for settled transaction ignored",
			"transaction_id", snap.ID, "status", snap.Status.String())
		return nil
	}

	outcome := transaction.OutcomeForGatewayStatus(input.GatewayStatus)
	if outcome == transaction.OutcomeUnknown {
		slog.Info("unhandled gateway status, no transition",
			"transaction_id", snap.ID, "gateway_status", input.GatewayStatus)
		return nil
	}

	return c.settle(ctx, snap, outcome, input.ExternalTransactionID)
}

// ForceApprove is the operator override: it synthesizes an approval and
// pushes it through the same transition path as a gateway callback.
func (c *PaymentCommands) ForceApprove(ctx context.Context, id uuid.UUID) error {
	snap, err := c.uow.CommandReads().TransactionByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrTransactionNotFound)
		}
		return errs.Wrap(err, "failed to load transaction")
	}

	if snap.Status == transaction.StatusCompleted {
		return nil
	}

	syntheticID := fmt.Sprintf("manual-%d", c.clk.Now().UnixMilli())
	return c.settle(ctx, snap, transaction.OutcomeApprove, syntheticID)
}

// settle is the single transition path shared by webhook and override.
// The conditional update inside Settle is the idempotency gate; ledger
// decrement and the confirmation job ride the same DB transaction so
// they exist iff the flip committed.
func (c *PaymentCommands) settle(ctx context.Context, snap *shared.TransactionSnapshot, outcome transaction.SettlementOutcome, externalID string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		status := transaction.StatusCompleted
		if outcome == transaction.OutcomeFail {
			status = transaction.StatusFailed
		}

		applied, err := tx.Transactions().Settle(ctx, tx.DB(), snap.ID, status, externalID)
		if err != nil {
			return err
		}
		if !applied {
			slog.Info("settlement lost the race, no-op", "transaction_id", snap.ID)
			return nil
		}

		if outcome != transaction.OutcomeApprove {
			return nil
		}

		for _, li := range snap.LineItems {
			if err := tx.Ledger().Decrement(ctx, tx.DB(), li.ResourceID, li.Quantity); err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					slog.Warn("resource missing during settlement decrement",
						"transaction_id", snap.ID, "resource_id", li.ResourceID)
					continue
				}
				return err
			}
		}

		return c.enqueueConfirmation(ctx, tx, snap)
	})
}

func (c *PaymentCommands) enqueueConfirmation(ctx context.Context, tx shared.Tx, snap *shared.TransactionSnapshot) error {
	items := make([]shared.ConfirmationEmailLineItem, 0, len(snap.LineItems))
	for _, li := range snap.LineItems {
		items = append(items, shared.ConfirmationEmailLineItem{
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		})
	}

	payload, err := json.Marshal(shared.ConfirmationEmailPayload{
		TransactionID: snap.ID,
		Kind:          snap.Kind.String(),
		Email:         snap.PayerEmail,
		TotalAmount:   snap.TotalAmount,
		LineItems:     items,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode confirmation payload")
	}

	return tx.Notifications().CreateJob(ctx, tx.DB(),
		shared.NotificationKindEmail, shared.TopicPaymentConfirmed, payload, c.clk.Now())
}
