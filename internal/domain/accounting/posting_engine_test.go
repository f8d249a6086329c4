package accounting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGoodsReceiptJournal(t *testing.T) {
	engine := NewPostingEngine()
	tenantID := uuid.New()
	inventoryID, payableID := uuid.New(), uuid.New()

	t.Run("debits inventory per line and credits payable for the total", func(t *testing.T) {
		entry, err := engine.BuildGoodsReceiptJournal(tenantID, "JE-GRN-1", "Goods receipt", time.Now(), []ReceiptPosting{
			{InventoryAccountID: inventoryID, Amount: d("200"), Memo: "WIDGET-1"},
			{InventoryAccountID: inventoryID, Amount: d("150"), Memo: "WIDGET-2"},
		}, payableID)
		require.NoError(t, err)

		require.Len(t, entry.Lines, 3)
		assert.True(t, entry.IsBalanced())
		last := entry.Lines[2]
		assert.Equal(t, payableID, last.AccountID)
		assert.True(t, last.Credit.Equal(d("350")))
		assert.Equal(t, JournalStatusDraft, entry.Status)
	})

	t.Run("rejects empty postings and missing accounts", func(t *testing.T) {
		_, err := engine.BuildGoodsReceiptJournal(tenantID, "JE-GRN-1", "", time.Now(), nil, payableID)
		assert.Error(t, err)

		_, err = engine.BuildGoodsReceiptJournal(tenantID, "JE-GRN-1", "", time.Now(), []ReceiptPosting{
			{InventoryAccountID: inventoryID, Amount: d("200")},
		}, uuid.Nil)
		assert.ErrorIs(t, err, shared.ErrLinkedAccountMissing)

		_, err = engine.BuildGoodsReceiptJournal(tenantID, "JE-GRN-1", "", time.Now(), []ReceiptPosting{
			{InventoryAccountID: uuid.Nil, Amount: d("200")},
		}, payableID)
		assert.ErrorIs(t, err, shared.ErrLinkedAccountMissing)
	})

	t.Run("rejects non-positive line values", func(t *testing.T) {
		_, err := engine.BuildGoodsReceiptJournal(tenantID, "JE-GRN-1", "", time.Now(), []ReceiptPosting{
			{InventoryAccountID: inventoryID, Amount: decimal.Zero},
		}, payableID)
		assert.Error(t, err)
	})
}

func TestBuildDeliveryJournal(t *testing.T) {
	engine := NewPostingEngine()
	tenantID := uuid.New()
	cogsID, inventoryID, revenueID, receivableID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	t.Run("books cost and revenue per line and receivable for the sale total", func(t *testing.T) {
		entry, err := engine.BuildDeliveryJournal(tenantID, "JE-DO-1", "Delivery", time.Now(), []DeliveryPosting{
			{COGSAccountID: cogsID, InventoryAccountID: inventoryID, RevenueAccountID: revenueID, COGSAmount: d("279.996"), Revenue: d("600"), Memo: "WIDGET-1"},
		}, receivableID)
		require.NoError(t, err)

		require.Len(t, entry.Lines, 4)
		assert.True(t, entry.IsBalanced())
		assert.True(t, entry.Lines[0].Debit.Equal(d("279.996")))
		assert.True(t, entry.Lines[1].Credit.Equal(d("279.996")))
		assert.True(t, entry.Lines[2].Credit.Equal(d("600")))
		assert.Equal(t, receivableID, entry.Lines[3].AccountID)
		assert.True(t, entry.Lines[3].Debit.Equal(d("600")))
	})

	t.Run("zero-cost line books revenue only", func(t *testing.T) {
		entry, err := engine.BuildDeliveryJournal(tenantID, "JE-DO-2", "Delivery", time.Now(), []DeliveryPosting{
			{COGSAccountID: cogsID, InventoryAccountID: inventoryID, RevenueAccountID: revenueID, COGSAmount: decimal.Zero, Revenue: d("100")},
		}, receivableID)
		require.NoError(t, err)

		require.Len(t, entry.Lines, 2)
		assert.True(t, entry.IsBalanced())
	})

	t.Run("revenue accounts can differ per line", func(t *testing.T) {
		otherRevenueID := uuid.New()
		entry, err := engine.BuildDeliveryJournal(tenantID, "JE-DO-3", "Delivery", time.Now(), []DeliveryPosting{
			{COGSAccountID: cogsID, InventoryAccountID: inventoryID, RevenueAccountID: revenueID, COGSAmount: d("50"), Revenue: d("80")},
			{COGSAccountID: cogsID, InventoryAccountID: inventoryID, RevenueAccountID: otherRevenueID, COGSAmount: d("30"), Revenue: d("70")},
		}, receivableID)
		require.NoError(t, err)

		assert.True(t, entry.IsBalanced())
		assert.True(t, entry.Lines[len(entry.Lines)-1].Debit.Equal(d("150")))
	})

	t.Run("rejects missing linked accounts and non-positive revenue", func(t *testing.T) {
		_, err := engine.BuildDeliveryJournal(tenantID, "JE-DO-4", "", time.Now(), []DeliveryPosting{
			{COGSAccountID: uuid.Nil, InventoryAccountID: inventoryID, RevenueAccountID: revenueID, COGSAmount: d("1"), Revenue: d("2")},
		}, receivableID)
		assert.ErrorIs(t, err, shared.ErrLinkedAccountMissing)

		_, err = engine.BuildDeliveryJournal(tenantID, "JE-DO-4", "", time.Now(), []DeliveryPosting{
			{COGSAccountID: cogsID, InventoryAccountID: inventoryID, RevenueAccountID: revenueID, COGSAmount: d("1"), Revenue: decimal.Zero},
		}, receivableID)
		assert.Error(t, err)
	})
}

func TestBuildAdjustmentJournal(t *testing.T) {
	engine := NewPostingEngine()
	tenantID := uuid.New()
	inventoryID, varianceID := uuid.New(), uuid.New()

	t.Run("positive value debits inventory", func(t *testing.T) {
		entry, err := engine.BuildAdjustmentJournal(tenantID, "JE-ADJ-1", "Count gain", time.Now(), inventoryID, varianceID, d("10"))
		require.NoError(t, err)

		require.Len(t, entry.Lines, 2)
		assert.Equal(t, inventoryID, entry.Lines[0].AccountID)
		assert.True(t, entry.Lines[0].Debit.Equal(d("10")))
		assert.True(t, entry.Lines[1].Credit.Equal(d("10")))
	})

	t.Run("negative value credits inventory", func(t *testing.T) {
		entry, err := engine.BuildAdjustmentJournal(tenantID, "JE-ADJ-2", "Shrinkage", time.Now(), inventoryID, varianceID, d("-6"))
		require.NoError(t, err)

		require.Len(t, entry.Lines, 2)
		assert.Equal(t, varianceID, entry.Lines[0].AccountID)
		assert.True(t, entry.Lines[0].Debit.Equal(d("6")))
		assert.Equal(t, inventoryID, entry.Lines[1].AccountID)
		assert.True(t, entry.Lines[1].Credit.Equal(d("6")))
	})

	t.Run("rejects zero value and missing accounts", func(t *testing.T) {
		_, err := engine.BuildAdjustmentJournal(tenantID, "JE-ADJ-3", "", time.Now(), inventoryID, varianceID, decimal.Zero)
		assert.Error(t, err)

		_, err = engine.BuildAdjustmentJournal(tenantID, "JE-ADJ-3", "", time.Now(), uuid.Nil, varianceID, d("5"))
		assert.ErrorIs(t, err, shared.ErrLinkedAccountMissing)
	})
}

func TestApplyJournal(t *testing.T) {
	engine := NewPostingEngine()
	tenantID := uuid.New()

	newChart := func(t *testing.T) (map[uuid.UUID]*Account, *Account, *Account) {
		t.Helper()
		inventory, err := NewAccount(tenantID, "1400", "Inventory", AccountTypeAsset)
		require.NoError(t, err)
		payable, err := NewAccount(tenantID, "2100", "Accounts Payable", AccountTypeLiability)
		require.NoError(t, err)
		accounts := map[uuid.UUID]*Account{inventory.ID: inventory, payable.ID: payable}
		return accounts, inventory, payable
	}

	t.Run("posts the entry and moves balances", func(t *testing.T) {
		accounts, inventory, payable := newChart(t)

		entry, err := engine.BuildGoodsReceiptJournal(tenantID, "JE-GRN-1", "", time.Now(), []ReceiptPosting{
			{InventoryAccountID: inventory.ID, Amount: d("200")},
		}, payable.ID)
		require.NoError(t, err)

		require.NoError(t, engine.ApplyJournal(entry, accounts))
		assert.Equal(t, JournalStatusPosted, entry.Status)
		assert.True(t, inventory.Balance.Equal(d("200")))
		assert.True(t, payable.Balance.Equal(d("-200")))
	})

	t.Run("fails when a line's account is missing from the set", func(t *testing.T) {
		accounts, inventory, payable := newChart(t)
		delete(accounts, payable.ID)

		entry, err := engine.BuildGoodsReceiptJournal(tenantID, "JE-GRN-2", "", time.Now(), []ReceiptPosting{
			{InventoryAccountID: inventory.ID, Amount: d("200")},
		}, payable.ID)
		require.NoError(t, err)

		assert.ErrorIs(t, engine.ApplyJournal(entry, accounts), shared.ErrAccountNotFound)
	})

	t.Run("refuses an unbalanced entry before touching balances", func(t *testing.T) {
		accounts, inventory, _ := newChart(t)

		entry, err := NewJournalEntry(tenantID, "JE-GRN-3", "", time.Now())
		require.NoError(t, err)
		require.NoError(t, entry.AddLine(inventory.ID, d("10"), decimal.Zero, ""))

		assert.ErrorIs(t, engine.ApplyJournal(entry, accounts), shared.ErrUnbalancedJournal)
		assert.True(t, inventory.Balance.IsZero())
	})
}
