//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"clubcore/internal/domain/transaction"
	"clubcore/internal/infra"
	"clubcore/internal/infra/db"
	"clubcore/internal/pkg/clock"
	"clubcore/internal/usecase/commands"
	"clubcore/internal/usecase/shared"
	"clubcore/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hand-rolled fakes: the unit of work is a plumbing interface, so simple
// recording stubs read better here than generated mocks.

type settleCall struct {
	id         uuid.UUID
	status     transaction.Status
	externalID string
}

type fakeTransactionRepo struct {
	settleApplied bool
	settleErr     error
	settleCalls   []settleCall
	createErr     error
	created       []*transaction.Transaction
	deleted       []uuid.UUID
	refErr        error
	externalRefs  map[uuid.UUID]string
}

func (f *fakeTransactionRepo) Create(_ context.Context, _ db.DBTX, t *transaction.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, t)
	return nil
}

func (f *fakeTransactionRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeTransactionRepo) SetExternalPaymentRef(_ context.Context, _ db.DBTX, id uuid.UUID, ref string) error {
	if f.refErr != nil {
		return f.refErr
	}
	if f.externalRefs == nil {
		f.externalRefs = map[uuid.UUID]string{}
	}
	f.externalRefs[id] = ref
	return nil
}

func (f *fakeTransactionRepo) Settle(_ context.Context, _ db.DBTX, id uuid.UUID, status transaction.Status, externalTransactionID string) (bool, error) {
	f.settleCalls = append(f.settleCalls, settleCall{id: id, status: status, externalID: externalTransactionID})
	return f.settleApplied, f.settleErr
}

type decrementCall struct {
	resourceID uuid.UUID
	qty        int32
}

type fakeLedgerRepo struct {
	shared.LedgerRepository
	errByResource  map[uuid.UUID]error
	decrementCalls []decrementCall
}

func (f *fakeLedgerRepo) Decrement(_ context.Context, _ db.DBTX, resourceID uuid.UUID, qty int32) error {
	f.decrementCalls = append(f.decrementCalls, decrementCall{resourceID: resourceID, qty: qty})
	return f.errByResource[resourceID]
}

type jobCall struct {
	kind    string
	topic   string
	payload []byte
	runAt   time.Time
}

type fakeNotificationRepo struct {
	createErr error
	jobs      []jobCall
}

func (f *fakeNotificationRepo) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	f.jobs = append(f.jobs, jobCall{kind: kind, topic: topic, payload: payload, runAt: runAt})
	return f.createErr
}

type fakeTx struct {
	transactions  *fakeTransactionRepo
	ledger        *fakeLedgerRepo
	notifications *fakeNotificationRepo
}

func (f *fakeTx) Transactions() shared.TransactionRepository   { return f.transactions }
func (f *fakeTx) Ledger() shared.LedgerRepository              { return f.ledger }
func (f *fakeTx) Catalog() shared.CatalogRepository            { return nil }
func (f *fakeTx) Notifications() shared.NotificationRepository { return f.notifications }
func (f *fakeTx) Users() shared.UserRepository                 { return nil }
func (f *fakeTx) Reads() shared.CommandReads                   { return nil }
func (f *fakeTx) DB() db.DBTX                                  { return nil }

type fakeReads struct {
	snapshots map[uuid.UUID]*shared.TransactionSnapshot
	resources map[uuid.UUID]*shared.ResourceSnapshot
	readErr   error
}

func (f *fakeReads) ResourceByID(_ context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	snap, ok := f.resources[id]
	if !ok {
		return nil, infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return snap, nil
}

func (f *fakeReads) TransactionByID(_ context.Context, id uuid.UUID) (*shared.TransactionSnapshot, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	snap, ok := f.snapshots[id]
	if !ok {
		return nil, infra.WrapRepoErr("transaction not found", nil, infra.KindNotFound)
	}
	return snap, nil
}

type fakeUoW struct {
	tx          *fakeTx
	reads       *fakeReads
	withinCalls int
}

func (f *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	f.withinCalls++
	return fn(ctx, f.tx)
}

func (f *fakeUoW) CommandReads() shared.CommandReads { return f.reads }

type paymentFixture struct {
	uow   *fakeUoW
	clk   *clock.MockClock
	cmds  *commands.PaymentCommands
	snap  *shared.TransactionSnapshot
	txnID uuid.UUID
}

func newPaymentFixture(settleApplied bool) *paymentFixture {
	snap := builder.NewTransactionBuilder().BuildSnapshot()
	uow := &fakeUoW{
		tx: &fakeTx{
			transactions:  &fakeTransactionRepo{settleApplied: settleApplied},
			ledger:        &fakeLedgerRepo{errByResource: map[uuid.UUID]error{}},
			notifications: &fakeNotificationRepo{},
		},
		reads: &fakeReads{snapshots: map[uuid.UUID]*shared.TransactionSnapshot{snap.ID: snap}},
	}
	clk := clock.NewMockClock(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	return &paymentFixture{
		uow:   uow,
		clk:   clk,
		cmds:  commands.NewPaymentCommands(uow, clk),
		snap:  snap,
		txnID: snap.ID,
	}
}

func TestProcessCallback(t *testing.T) {
	t.Run("approved callback settles, decrements and enqueues confirmation", func(t *testing.T) {
		f := newPaymentFixture(true)

		err := f.cmds.ProcessCallback(context.Background(), commands.CallbackInput{
			Reference:             f.txnID.String(),
			GatewayStatus:         transaction.GatewayStatusApproved,
			ExternalTransactionID: "ext-123",
		})
		require.NoError(t, err)

		repo := f.uow.tx.transactions
		require.Len(t, repo.settleCalls, 1)
		assert.Equal(t, f.txnID, repo.settleCalls[0].id)
		assert.Equal(t, transaction.StatusCompleted, repo.settleCalls[0].status)
		assert.Equal(t, "ext-123", repo.settleCalls[0].externalID)

		ledger := f.uow.tx.ledger
		require.Len(t, ledger.decrementCalls, 1)
		assert.Equal(t, f.snap.LineItems[0].ResourceID, ledger.decrementCalls[0].resourceID)
		assert.Equal(t, f.snap.LineItems[0].Quantity, ledger.decrementCalls[0].qty)

		jobs := f.uow.tx.notifications.jobs
		require.Len(t, jobs, 1)
		assert.Equal(t, shared.NotificationKindEmail, jobs[0].kind)
		assert.Equal(t, shared.TopicPaymentConfirmed, jobs[0].topic)

		var payload shared.ConfirmationEmailPayload
		require.NoError(t, json.Unmarshal(jobs[0].payload, &payload))
		want := shared.ConfirmationEmailPayload{
			TransactionID: f.txnID,
			Kind:          f.snap.Kind.String(),
			Email:         f.snap.PayerEmail,
			TotalAmount:   f.snap.TotalAmount,
			LineItems: []shared.ConfirmationEmailLineItem{{
				Name:      f.snap.LineItems[0].Name,
				Quantity:  f.snap.LineItems[0].Quantity,
				UnitPrice: f.snap.LineItems[0].UnitPrice,
			}},
		}
		if diff := cmp.Diff(want, payload); diff != "" {
			t.Errorf("confirmation payload mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("declined callback fails the transaction without side effects", func(t *testing.T) {
		f := newPaymentFixture(true)

		err := f.cmds.ProcessCallback(context.Background(), commands.CallbackInput{
			Reference:             f.txnID.String(),
			GatewayStatus:         transaction.GatewayStatusDeclined,
			ExternalTransactionID: "ext-123",
		})
		require.NoError(t, err)

		repo := f.uow.tx.transactions
		require.Len(t, repo.settleCalls, 1)
		assert.Equal(t, transaction.StatusFailed, repo.settleCalls[0].status)

		assert.Empty(t, f.uow.tx.ledger.decrementCalls)
		assert.Empty(t, f.uow.tx.notifications.jobs)
	})

	t.Run("voided and error statuses also fail the transaction", func(t *testing.T) {
		for _, status := range []string{transaction.GatewayStatusVoided, transaction.GatewayStatusError} {
			f := newPaymentFixture(true)

			err := f.cmds.ProcessCallback(context.Background(), commands.CallbackInput{
				Reference:     f.txnID.String(),
				GatewayStatus: status,
			})
			require.NoError(t, err)
			require.Len(t, f.uow.tx.transactions.settleCalls, 1)
			assert.Equal(t, transaction.StatusFailed, f.uow.tx.transactions.settleCalls[0].status)
		}
	})

	t.Run("redelivery for a settled transaction is a no-op", func(t *testing.T) {
		f := newPaymentFixture(true)
		f.snap.Status = transaction.StatusCompleted

		err := f.cmds.ProcessCallback(context.Background(), commands.CallbackInput{
			Reference:     f.txnID.String(),
			GatewayStatus: transaction.GatewayStatusApproved,
		})
		require.NoError(t, err)
		assert.Zero(t, f.uow.withinCalls)
	})

	t.Run("losing the settle race leaves no side effects", func(t *testing.T) {
		f := newPaymentFixture(false)

		err := f.cmds.ProcessCallback(context.Background(), commands.CallbackInput{
			Reference:     f.txnID.String(),
			GatewayStatus: transaction.GatewayStatusApproved,
		})
		require.NoError(t, err)

		require.Len(t, f.uow.tx.transactions.settleCalls, 1)
		assert.Empty(t, f.uow.tx.ledger.decrementCalls)
		assert.Empty(t, f.uow.tx.notifications.jobs)
	})

	t.Run("intermediate gateway status applies no transition", func(t *testing.T) {
		f := newPaymentFixture(true)

		err := f.cmds.ProcessCallback(context.Background(), commands.CallbackInput{
			Reference:     f.txnID.String(),
			GatewayStatus: "PENDING",
		})
		require.NoError(t, err)
		assert.Zero(t, f.uow.withinCalls)
	})

	t.Run("malformed reference maps to unknown transaction", func(t *testing.T) {
		f := newPaymentFixture(true)

		err := f.cmds.ProcessCallback(context.Background(), commands.CallbackInput{
			Reference:     "not-a-uuid",
			GatewayStatus: transaction.GatewayStatusApproved,
		})
		require.ErrorIs(t, err, commands.ErrUnknownTransaction)
	})

	t.Run("missing transaction maps to unknown transaction", func(t *testing.T) {
		f := newPaymentFixture(true)

		err := f.cmds.ProcessCallback(context.Background(), commands.CallbackInput{
			Reference:     uuid.New().String(),
			GatewayStatus: transaction.GatewayStatusApproved,
		})
		require.ErrorIs(t, err, commands.ErrUnknownTransaction)
	})

	t.Run("read failure is a processing error, not unknown", func(t *testing.T) {
		f := newPaymentFixture(true)
		f.uow.reads.readErr = errors.New("db down")

		err := f.cmds.ProcessCallback(context.Background(), commands.CallbackInput{
			Reference:     f.txnID.String(),
			GatewayStatus: transaction.GatewayStatusApproved,
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, commands.ErrUnknownTransaction)
	})

	t.Run("missing resource during decrement is skipped, confirmation still queued", func(t *testing.T) {
		f := newPaymentFixture(true)
		resourceID := f.snap.LineItems[0].ResourceID
		f.uow.tx.ledger.errByResource[resourceID] =
			infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)

		err := f.cmds.ProcessCallback(context.Background(), commands.CallbackInput{
			Reference:     f.txnID.String(),
			GatewayStatus: transaction.GatewayStatusApproved,
		})
		require.NoError(t, err)
		assert.Len(t, f.uow.tx.notifications.jobs, 1)
	})
}

func TestForceApprove(t *testing.T) {
	t.Run("synthesizes a manual external id and settles as approved", func(t *testing.T) {
		f := newPaymentFixture(true)

		err := f.cmds.ForceApprove(context.Background(), f.txnID)
		require.NoError(t, err)

		repo := f.uow.tx.transactions
		require.Len(t, repo.settleCalls, 1)
		assert.Equal(t, transaction.StatusCompleted, repo.settleCalls[0].status)
		assert.Equal(t,
			fmt.Sprintf("manual-%d", f.clk.Now().UnixMilli()),
			repo.settleCalls[0].externalID)

		assert.Len(t, f.uow.tx.ledger.decrementCalls, 1)
		assert.Len(t, f.uow.tx.notifications.jobs, 1)
	})

	t.Run("already completed transaction is a no-op", func(t *testing.T) {
		f := newPaymentFixture(true)
		f.snap.Status = transaction.StatusCompleted

		err := f.cmds.ForceApprove(context.Background(), f.txnID)
		require.NoError(t, err)
		assert.Zero(t, f.uow.withinCalls)
	})

	t.Run("failed transaction can still be forced through", func(t *testing.T) {
		f := newPaymentFixture(true)
		f.snap.Status = transaction.StatusFailed

		err := f.cmds.ForceApprove(context.Background(), f.txnID)
		require.NoError(t, err)
		require.Len(t, f.uow.tx.transactions.settleCalls, 1)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		f := newPaymentFixture(true)

		err := f.cmds.ForceApprove(context.Background(), uuid.New())
		require.ErrorIs(t, err, commands.ErrTransactionNotFound)
	})
}
