package accounting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillLifecycle(t *testing.T) {
	newBill := func(t *testing.T) *Bill {
		t.Helper()
		bill, err := NewBill(uuid.New(), "BILL-1", uuid.New(), uuid.New(), d("350"), time.Now())
		require.NoError(t, err)
		return bill
	}

	t.Run("born posted with the full amount open", func(t *testing.T) {
		bill := newBill(t)
		assert.Equal(t, BillStatusPosted, bill.Status)
		assert.True(t, bill.RemainingAmount.Equal(d("350")))
		assert.True(t, bill.PaidAmount.IsZero())
	})

	t.Run("partial payments reduce the remaining amount", func(t *testing.T) {
		bill := newBill(t)
		require.NoError(t, bill.RecordPayment(d("100")))

		assert.True(t, bill.PaidAmount.Equal(d("100")))
		assert.True(t, bill.RemainingAmount.Equal(d("250")))
		assert.Equal(t, BillStatusPosted, bill.Status)
	})

	t.Run("settling in full marks the bill paid", func(t *testing.T) {
		bill := newBill(t)
		require.NoError(t, bill.RecordPayment(d("350")))
		assert.Equal(t, BillStatusPaid, bill.Status)
		assert.True(t, bill.RemainingAmount.IsZero())
	})

	t.Run("rejects overpayment and non-positive amounts", func(t *testing.T) {
		bill := newBill(t)
		assert.Error(t, bill.RecordPayment(d("350.0001")))
		assert.Error(t, bill.RecordPayment(decimal.Zero))
		assert.True(t, bill.RemainingAmount.Equal(d("350")))
	})

	t.Run("rejects a missing supplier or non-positive total", func(t *testing.T) {
		_, err := NewBill(uuid.New(), "BILL-1", uuid.Nil, uuid.New(), d("350"), time.Now())
		assert.Error(t, err)
		_, err = NewBill(uuid.New(), "BILL-1", uuid.New(), uuid.New(), decimal.Zero, time.Now())
		assert.Error(t, err)
	})
}

func TestInvoiceLifecycle(t *testing.T) {
	invoice, err := NewInvoice(uuid.New(), "INV-1", uuid.New(), uuid.New(), d("600"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, InvoiceStatusPosted, invoice.Status)

	require.NoError(t, invoice.RecordReceipt(d("200")))
	assert.True(t, invoice.RemainingAmount.Equal(d("400")))

	assert.Error(t, invoice.RecordReceipt(d("500")))

	require.NoError(t, invoice.RecordReceipt(d("400")))
	assert.Equal(t, InvoiceStatusPaid, invoice.Status)
}
