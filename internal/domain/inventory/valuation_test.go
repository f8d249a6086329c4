package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReceive(t *testing.T) {
	t.Run("first receipt takes the incoming cost as WAC", func(t *testing.T) {
		qty, wac := Receive(decimal.Zero, decimal.Zero, d("100"), d("2.00"))
		assert.True(t, qty.Equal(d("100")))
		assert.True(t, wac.Equal(d("2.00")))
	})

	t.Run("second receipt shifts the weighted average", func(t *testing.T) {
		qty, wac := Receive(d("100"), d("2.00"), d("50"), d("3.00"))
		assert.True(t, qty.Equal(d("150")))
		// (100*2 + 50*3) / 150 = 2.3333...
		assert.True(t, wac.Equal(d("2.3333")), "got %s", wac)
	})

	t.Run("receipt at the current WAC leaves it unchanged", func(t *testing.T) {
		qty, wac := Receive(d("100"), d("2.5"), d("40"), d("2.5"))
		assert.True(t, qty.Equal(d("140")))
		assert.True(t, wac.Equal(d("2.5")))
	})

	t.Run("first receipt rounds the incoming cost to the valuation scale", func(t *testing.T) {
		_, wac := Receive(decimal.Zero, decimal.Zero, d("10"), d("2.00005"))
		assert.True(t, wac.Equal(d("2.0001")), "got %s", wac)
	})

	t.Run("rounds the WAC to four decimals", func(t *testing.T) {
		_, wac := Receive(d("3"), d("1"), d("1"), d("2"))
		// 5/4 = 1.25, exact
		assert.True(t, wac.Equal(d("1.25")))

		_, wac = Receive(d("1"), d("1"), d("2"), d("2"))
		// 5/3 = 1.6667 after rounding
		assert.True(t, wac.Equal(d("1.6667")), "got %s", wac)
	})
}

func TestIssue(t *testing.T) {
	t.Run("values the issue at the current WAC", func(t *testing.T) {
		qty, cost := Issue(d("150"), d("2.3333"), d("120"))
		assert.True(t, qty.Equal(d("30")))
		assert.True(t, cost.Equal(d("279.996")), "got %s", cost)
	})

	t.Run("issuing everything empties the position", func(t *testing.T) {
		qty, cost := Issue(d("10"), d("4"), d("10"))
		assert.True(t, qty.IsZero())
		assert.True(t, cost.Equal(d("40")))
	})
}
