//go:build unit

package catalog_test

import (
	"testing"
	"time"

	"clubcore/internal/domain/catalog"
	"clubcore/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ResourceBuilder)
	errIs  error
}

func TestNewResource(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewResourceBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, catalog.KindProduct, actual.Kind())
		assert.Equal(t, "Club Jersey", actual.Name())
		assert.Equal(t, int64(45), actual.BasePrice())
		assert.Equal(t, int32(20), actual.QuantityAvailable())
	})

	t.Run("field validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "unknown kind",
				mutate: func(b *builder.ResourceBuilder) { b.WithKind("subscription") },
				errIs:  catalog.ErrInvalidKind,
			},
			{
				name:   "empty name",
				mutate: func(b *builder.ResourceBuilder) { b.WithName("") },
				errIs:  catalog.ErrEmptyName,
			},
			{
				name:   "whitespace only name",
				mutate: func(b *builder.ResourceBuilder) { b.WithName("   ") },
				errIs:  catalog.ErrEmptyName,
			},
			{
				name:   "negative base price",
				mutate: func(b *builder.ResourceBuilder) { b.WithBasePrice(-1) },
				errIs:  catalog.ErrNegativePrice,
			},
			{
				name:   "zero base price",
				mutate: func(b *builder.ResourceBuilder) { b.WithBasePrice(0) },
			},
			{
				name:   "negative quantity",
				mutate: func(b *builder.ResourceBuilder) { b.WithQuantity(-1) },
				errIs:  catalog.ErrNegativeQuantity,
			},
			{
				name:   "zero quantity",
				mutate: func(b *builder.ResourceBuilder) { b.WithQuantity(0) },
			},
		})
	})

	t.Run("name trimming", func(t *testing.T) {
		actual, err := builder.NewResourceBuilder().WithName("  Club Jersey  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Club Jersey", actual.Name())
	})

	t.Run("product discards pricing schedule", func(t *testing.T) {
		schedule := catalog.PricingSchedule{
			{Label: "early", Start: time.Now(), End: time.Now().Add(time.Hour), Price: 10},
		}
		actual, err := builder.NewResourceBuilder().WithSchedule(schedule).BuildDomain()
		require.NoError(t, err)
		assert.Empty(t, actual.Schedule())
	})
}

func TestCurrentPrice(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	earlyBird := catalog.PricingWindow{
		Label: "early-bird",
		Start: now.AddDate(0, -1, 0),
		End:   now.AddDate(0, 1, 0),
		Price: 60,
	}
	lateWindow := catalog.PricingWindow{
		Label: "late",
		Start: now.AddDate(0, -2, 0),
		End:   now.AddDate(0, 2, 0),
		Price: 95,
	}

	t.Run("event uses matching window price", func(t *testing.T) {
		res, err := builder.NewResourceBuilder().AsEvent().
			WithSchedule(catalog.PricingSchedule{earlyBird}).BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, int64(60), res.CurrentPrice(now))
	})

	t.Run("first matching window wins", func(t *testing.T) {
		res, err := builder.NewResourceBuilder().AsEvent().
			WithSchedule(catalog.PricingSchedule{earlyBird, lateWindow}).BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, int64(60), res.CurrentPrice(now))
	})

	t.Run("no matching window falls back to base price", func(t *testing.T) {
		res, err := builder.NewResourceBuilder().AsEvent().
			WithSchedule(catalog.PricingSchedule{earlyBird}).BuildDomain()
		require.NoError(t, err)

		afterAll := now.AddDate(1, 0, 0)
		assert.Equal(t, int64(80), res.CurrentPrice(afterAll))
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		res, err := builder.NewResourceBuilder().AsEvent().
			WithSchedule(catalog.PricingSchedule{earlyBird}).BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, int64(60), res.CurrentPrice(earlyBird.Start))
		assert.Equal(t, int64(60), res.CurrentPrice(earlyBird.End))
		assert.Equal(t, int64(80), res.CurrentPrice(earlyBird.End.Add(time.Second)))
	})

	t.Run("product ignores any schedule", func(t *testing.T) {
		res, err := builder.NewResourceBuilder().BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, int64(45), res.CurrentPrice(now))
	})
}

func TestHasAvailable(t *testing.T) {
	res, err := builder.NewResourceBuilder().WithQuantity(3).BuildDomain()
	require.NoError(t, err)

	assert.True(t, res.HasAvailable(1))
	assert.True(t, res.HasAvailable(3))
	assert.False(t, res.HasAvailable(4))
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewResourceBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
