//go:build unit

package transaction_test

import (
	"testing"
	"time"

	"clubcore/internal/domain/catalog"
	"clubcore/internal/domain/transaction"
	"clubcore/internal/pkg/clock"
	"clubcore/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type factoryFixture struct {
	factory   *transaction.Factory
	clock     *clock.MockClock
	product   *catalog.Resource
	event     *catalog.Resource
	freeEvent *catalog.Resource
	resources map[uuid.UUID]*catalog.Resource
}

func newFactoryFixture(t *testing.T) *factoryFixture {
	t.Helper()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	mockClock := clock.NewMockClock(now)

	product, err := builder.NewResourceBuilder().BuildDomain()
	require.NoError(t, err)
	event, err := builder.NewResourceBuilder().AsEvent().BuildDomain()
	require.NoError(t, err)
	freeEvent, err := builder.NewResourceBuilder().AsFreeEvent().BuildDomain()
	require.NoError(t, err)

	return &factoryFixture{
		factory:   transaction.NewFactory(mockClock),
		clock:     mockClock,
		product:   product,
		event:     event,
		freeEvent: freeEvent,
		resources: map[uuid.UUID]*catalog.Resource{
			product.ID():   product,
			event.ID():     event,
			freeEvent.ID(): freeEvent,
		},
	}
}

func accountPayer(t *testing.T) transaction.Payer {
	t.Helper()
	payer, err := transaction.NewAccountPayer(uuid.New(), "member@example.com")
	require.NoError(t, err)
	return payer
}

func TestCreateTransaction(t *testing.T) {
	t.Run("order success", func(t *testing.T) {
		f := newFactoryFixture(t)
		specs := []transaction.ItemSpec{
			{ResourceID: f.product.ID(), DeclaredUnitPrice: 45, Quantity: 2},
		}

		tx, err := f.factory.CreateTransaction(
			transaction.KindOrder, accountPayer(t), specs, f.resources, 90)
		require.NoError(t, err)
		require.NotNil(t, tx)

		assert.NotEqual(t, uuid.Nil, tx.ID())
		assert.Equal(t, transaction.StatusPendingPayment, tx.Status())
		assert.Equal(t, int64(90), tx.TotalAmount())
		require.Len(t, tx.LineItems(), 1)
		assert.Equal(t, "Club Jersey", tx.LineItems()[0].Name)
		assert.Equal(t, int64(45), tx.LineItems()[0].UnitPrice)
	})

	t.Run("registration success", func(t *testing.T) {
		f := newFactoryFixture(t)
		specs := []transaction.ItemSpec{
			{ResourceID: f.event.ID(), DeclaredUnitPrice: 80, Quantity: 1},
		}

		tx, err := f.factory.CreateTransaction(
			transaction.KindRegistration, accountPayer(t), specs, f.resources, 80)
		require.NoError(t, err)

		assert.Equal(t, transaction.StatusPendingPayment, tx.Status())
	})

	t.Run("zero total is immediately completed", func(t *testing.T) {
		f := newFactoryFixture(t)
		specs := []transaction.ItemSpec{
			{ResourceID: f.freeEvent.ID(), DeclaredUnitPrice: 0, Quantity: 1},
		}

		tx, err := f.factory.CreateTransaction(
			transaction.KindRegistration, accountPayer(t), specs, f.resources, 0)
		require.NoError(t, err)

		assert.Equal(t, transaction.StatusCompleted, tx.Status())
		assert.True(t, tx.IsZeroAmount())
		assert.True(t, tx.IsSettled())
	})

	t.Run("repeated line items within availability are allowed", func(t *testing.T) {
		f := newFactoryFixture(t)
		specs := []transaction.ItemSpec{
			{ResourceID: f.product.ID(), DeclaredUnitPrice: 45, Quantity: 10},
			{ResourceID: f.product.ID(), DeclaredUnitPrice: 45, Quantity: 10},
		}

		tx, err := f.factory.CreateTransaction(
			transaction.KindOrder, accountPayer(t), specs, f.resources, 45*20)
		require.NoError(t, err)
		require.Len(t, tx.LineItems(), 2)
	})

	t.Run("guest payer success", func(t *testing.T) {
		f := newFactoryFixture(t)
		payer, err := transaction.NewGuestPayer("Guest Visitor", "guest@example.com", "")
		require.NoError(t, err)
		specs := []transaction.ItemSpec{
			{ResourceID: f.product.ID(), DeclaredUnitPrice: 45, Quantity: 1},
		}

		tx, err := f.factory.CreateTransaction(
			transaction.KindOrder, payer, specs, f.resources, 45)
		require.NoError(t, err)

		assert.True(t, tx.Payer().IsGuest())
		assert.Equal(t, "guest@example.com", tx.Payer().Email())
	})

	t.Run("event price follows pricing window at creation time", func(t *testing.T) {
		f := newFactoryFixture(t)
		now := f.clock.Now()
		windowed, err := builder.NewResourceBuilder().AsEvent().
			WithSchedule(catalog.PricingSchedule{{
				Label: "early-bird",
				Start: now.Add(-time.Hour),
				End:   now.Add(time.Hour),
				Price: 60,
			}}).BuildDomain()
		require.NoError(t, err)
		f.resources[windowed.ID()] = windowed

		specs := []transaction.ItemSpec{
			{ResourceID: windowed.ID(), DeclaredUnitPrice: 60, Quantity: 1},
		}
		tx, err := f.factory.CreateTransaction(
			transaction.KindRegistration, accountPayer(t), specs, f.resources, 60)
		require.NoError(t, err)
		assert.Equal(t, int64(60), tx.LineItems()[0].UnitPrice)

		// Outside the window the declared price no longer matches.
		f.clock.Add(2 * time.Hour)
		_, err = f.factory.CreateTransaction(
			transaction.KindRegistration, accountPayer(t), specs, f.resources, 60)
		require.ErrorIs(t, err, transaction.ErrPriceMismatch)
	})

	t.Run("validation failures", func(t *testing.T) {
		f := newFactoryFixture(t)
		orderSpecs := func() []transaction.ItemSpec {
			return []transaction.ItemSpec{
				{ResourceID: f.product.ID(), DeclaredUnitPrice: 45, Quantity: 2},
			}
		}

		cases := []struct {
			name  string
			kind  transaction.Kind
			payer func(t *testing.T) transaction.Payer
			specs func() []transaction.ItemSpec
			total int64
			errIs error
		}{
			{
				name:  "invalid kind",
				kind:  "subscription",
				payer: accountPayer,
				specs: orderSpecs,
				total: 90,
				errIs: transaction.ErrInvalidKind,
			},
			{
				name:  "missing payer",
				kind:  transaction.KindOrder,
				payer: func(*testing.T) transaction.Payer { return transaction.Payer{} },
				specs: orderSpecs,
				total: 90,
				errIs: transaction.ErrMissingPayer,
			},
			{
				name:  "no line items",
				kind:  transaction.KindOrder,
				payer: accountPayer,
				specs: func() []transaction.ItemSpec { return nil },
				total: 0,
				errIs: transaction.ErrNoLineItems,
			},
			{
				name:  "zero quantity",
				kind:  transaction.KindOrder,
				payer: accountPayer,
				specs: func() []transaction.ItemSpec {
					s := orderSpecs()
					s[0].Quantity = 0
					return s
				},
				total: 0,
				errIs: transaction.ErrInvalidQuantity,
			},
			{
				name:  "unknown resource",
				kind:  transaction.KindOrder,
				payer: accountPayer,
				specs: func() []transaction.ItemSpec {
					s := orderSpecs()
					s[0].ResourceID = uuid.New()
					return s
				},
				total: 90,
				errIs: transaction.ErrUnknownResource,
			},
			{
				name:  "order referencing an event",
				kind:  transaction.KindOrder,
				payer: accountPayer,
				specs: func() []transaction.ItemSpec {
					return []transaction.ItemSpec{
						{ResourceID: f.event.ID(), DeclaredUnitPrice: 80, Quantity: 1},
					}
				},
				total: 80,
				errIs: transaction.ErrKindMismatch,
			},
			{
				name:  "registration referencing a product",
				kind:  transaction.KindRegistration,
				payer: accountPayer,
				specs: orderSpecs,
				total: 90,
				errIs: transaction.ErrKindMismatch,
			},
			{
				name:  "stale declared unit price",
				kind:  transaction.KindOrder,
				payer: accountPayer,
				specs: func() []transaction.ItemSpec {
					s := orderSpecs()
					s[0].DeclaredUnitPrice = 40
					return s
				},
				total: 80,
				errIs: transaction.ErrPriceMismatch,
			},
			{
				name:  "quantity exceeds availability",
				kind:  transaction.KindOrder,
				payer: accountPayer,
				specs: func() []transaction.ItemSpec {
					s := orderSpecs()
					s[0].Quantity = 21
					return s
				},
				total: 45 * 21,
				errIs: transaction.ErrInsufficientStock,
			},
			{
				name:  "summed quantity across repeated line items exceeds availability",
				kind:  transaction.KindOrder,
				payer: accountPayer,
				specs: func() []transaction.ItemSpec {
					return []transaction.ItemSpec{
						{ResourceID: f.product.ID(), DeclaredUnitPrice: 45, Quantity: 11},
						{ResourceID: f.product.ID(), DeclaredUnitPrice: 45, Quantity: 10},
					}
				},
				total: 45 * 21,
				errIs: transaction.ErrInsufficientStock,
			},
			{
				name:  "declared total does not match",
				kind:  transaction.KindOrder,
				payer: accountPayer,
				specs: orderSpecs,
				total: 89,
				errIs: transaction.ErrTotalMismatch,
			},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				tx, err := f.factory.CreateTransaction(c.kind, c.payer(t), c.specs(), f.resources, c.total)
				require.Nil(t, tx)
				require.ErrorIs(t, err, c.errIs)
			})
		}
	})
}

func TestPayer(t *testing.T) {
	t.Run("account payer requires user id", func(t *testing.T) {
		_, err := transaction.NewAccountPayer(uuid.Nil, "member@example.com")
		require.ErrorIs(t, err, transaction.ErrMissingPayer)
	})

	t.Run("guest payer requires name and email", func(t *testing.T) {
		_, err := transaction.NewGuestPayer("", "guest@example.com", "")
		require.ErrorIs(t, err, transaction.ErrMissingContact)

		_, err = transaction.NewGuestPayer("Guest Visitor", "  ", "")
		require.ErrorIs(t, err, transaction.ErrMissingContact)
	})

	t.Run("both account and guest rejected by factory", func(t *testing.T) {
		f := newFactoryFixture(t)
		userID := uuid.New()
		payer := transaction.ReconstructPayer(&userID,
			&transaction.GuestInfo{Name: "Guest Visitor", Email: "guest@example.com"},
			"guest@example.com")
		specs := []transaction.ItemSpec{
			{ResourceID: f.product.ID(), DeclaredUnitPrice: 45, Quantity: 1},
		}

		_, err := f.factory.CreateTransaction(
			transaction.KindOrder, payer, specs, f.resources, 45)
		require.ErrorIs(t, err, transaction.ErrAmbiguousPayer)
	})
}
