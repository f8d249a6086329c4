package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T) *Item {
	t.Helper()
	item, err := NewItem(uuid.New(), "WIDGET-1", "Widget", uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	return item
}

func TestNewItem(t *testing.T) {
	t.Run("creates an item with zero valuation state", func(t *testing.T) {
		item := newTestItem(t)
		assert.True(t, item.CurrentQty.IsZero())
		assert.True(t, item.CurrentWAC.IsZero())
		assert.True(t, item.TotalValue.IsZero())
		assert.Equal(t, 1, item.Version)
	})

	t.Run("rejects empty SKU", func(t *testing.T) {
		_, err := NewItem(uuid.New(), "", "Widget", uuid.New(), uuid.New(), uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects missing linked accounts", func(t *testing.T) {
		_, err := NewItem(uuid.New(), "WIDGET-1", "Widget", uuid.Nil, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrLinkedAccountMissing)
	})
}

func TestItemApplyReceipt(t *testing.T) {
	t.Run("maintains qty, WAC and total value", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyReceipt(d("100"), d("2.00")))
		require.NoError(t, item.ApplyReceipt(d("50"), d("3.00")))

		assert.True(t, item.CurrentQty.Equal(d("150")))
		assert.True(t, item.CurrentWAC.Equal(d("2.3333")), "got %s", item.CurrentWAC)
		assert.True(t, item.TotalValue.Equal(d("350")), "got %s", item.TotalValue)
	})

	t.Run("bumps the version per receipt", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyReceipt(d("10"), d("1")))
		require.NoError(t, item.ApplyReceipt(d("10"), d("1")))
		assert.Equal(t, 3, item.Version)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		item := newTestItem(t)
		assert.Error(t, item.ApplyReceipt(decimal.Zero, d("1")))
		assert.Error(t, item.ApplyReceipt(d("-5"), d("1")))
	})

	t.Run("rejects negative cost but accepts zero cost", func(t *testing.T) {
		item := newTestItem(t)
		assert.Error(t, item.ApplyReceipt(d("5"), d("-1")))
		assert.NoError(t, item.ApplyReceipt(d("5"), decimal.Zero))
		assert.True(t, item.TotalValue.IsZero())
	})
}

func TestItemApplyIssue(t *testing.T) {
	t.Run("values the issue at WAC and leaves WAC unchanged", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyReceipt(d("100"), d("2.00")))
		require.NoError(t, item.ApplyReceipt(d("50"), d("3.00")))

		cost, err := item.ApplyIssue(d("120"))
		require.NoError(t, err)

		assert.True(t, cost.Equal(d("279.996")), "got %s", cost)
		assert.True(t, item.CurrentQty.Equal(d("30")))
		assert.True(t, item.CurrentWAC.Equal(d("2.3333")))
		assert.True(t, item.TotalValue.Equal(d("70.004")), "got %s", item.TotalValue)
	})

	t.Run("rejects issuing more than on hand", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyReceipt(d("10"), d("2")))

		_, err := item.ApplyIssue(d("11"))
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, item.CurrentQty.Equal(d("10")))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		item := newTestItem(t)
		_, err := item.ApplyIssue(decimal.Zero)
		assert.Error(t, err)
	})
}

func TestItemApplyAdjustment(t *testing.T) {
	t.Run("positive delta behaves like a receipt at WAC", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyReceipt(d("100"), d("2.00")))

		require.NoError(t, item.ApplyAdjustment(d("5")))
		assert.True(t, item.CurrentQty.Equal(d("105")))
		assert.True(t, item.CurrentWAC.Equal(d("2.00")))
		assert.True(t, item.TotalValue.Equal(d("210")))
	})

	t.Run("negative delta behaves like an issue", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyReceipt(d("100"), d("2.00")))

		require.NoError(t, item.ApplyAdjustment(d("-3")))
		assert.True(t, item.CurrentQty.Equal(d("97")))
		assert.True(t, item.TotalValue.Equal(d("194")))
	})

	t.Run("rejects zero delta and write-downs below zero", func(t *testing.T) {
		item := newTestItem(t)
		require.NoError(t, item.ApplyReceipt(d("2"), d("1")))

		assert.Error(t, item.ApplyAdjustment(decimal.Zero))
		assert.ErrorIs(t, item.ApplyAdjustment(d("-3")), shared.ErrInsufficientStock)
	})
}

func TestItemStockChecks(t *testing.T) {
	item := newTestItem(t)
	require.NoError(t, item.ApplyReceipt(d("10"), d("2")))
	require.NoError(t, item.SetMinStockLevel(d("15")))

	assert.True(t, item.CanFulfill(d("10")))
	assert.False(t, item.CanFulfill(d("10.0001")))
	assert.True(t, item.IsBelowMinimum())

	require.NoError(t, item.SetMinStockLevel(decimal.Zero))
	assert.False(t, item.IsBelowMinimum())
}
