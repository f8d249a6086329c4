package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceDocType(t *testing.T) {
	t.Run("wire values match the document codes", func(t *testing.T) {
		assert.Equal(t, "GRN", SourceDocTypeGRN.String())
		assert.Equal(t, "DO", SourceDocTypeDO.String())
		assert.Equal(t, "TRF", SourceDocTypeTRF.String())
		assert.Equal(t, "ADJ", SourceDocTypeADJ.String())
	})

	t.Run("validates known types", func(t *testing.T) {
		assert.True(t, SourceDocTypeGRN.IsValid())
		assert.True(t, SourceDocTypeDO.IsValid())
		assert.True(t, SourceDocTypeTRF.IsValid())
		assert.True(t, SourceDocTypeADJ.IsValid())
		assert.False(t, SourceDocType("PO").IsValid())
	})
}

func TestNewStockLedgerEntry(t *testing.T) {
	tenantID, itemID, warehouseID := uuid.New(), uuid.New(), uuid.New()

	t.Run("records a signed movement", func(t *testing.T) {
		entry, err := NewStockLedgerEntry(tenantID, itemID, warehouseID,
			d("-120"), d("2.3333"), d("2.3333"), SourceDocTypeDO, uuid.NewString())
		require.NoError(t, err)

		assert.False(t, entry.IsInbound())
		assert.True(t, entry.MovementValue().Equal(d("-279.996")), "got %s", entry.MovementValue())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewStockLedgerEntry(tenantID, itemID, warehouseID,
			decimal.Zero, d("2"), d("2"), SourceDocTypeGRN, uuid.NewString())
		assert.Error(t, err)

		_, err = NewStockLedgerEntry(tenantID, uuid.Nil, warehouseID,
			d("10"), d("2"), d("2"), SourceDocTypeGRN, uuid.NewString())
		assert.ErrorIs(t, err, shared.ErrItemNotFound)

		_, err = NewStockLedgerEntry(tenantID, itemID, warehouseID,
			d("10"), d("2"), d("2"), SourceDocType("PO"), uuid.NewString())
		assert.Error(t, err)

		_, err = NewStockLedgerEntry(tenantID, itemID, warehouseID,
			d("10"), d("2"), d("2"), SourceDocTypeGRN, "")
		assert.Error(t, err)
	})
}
