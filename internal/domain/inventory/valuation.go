package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared/valueobject"
)

// Receive computes the weighted-average-cost transition for incoming stock.
//
//	newQty = currentQty + incomingQty
//	newWAC = (currentQty*currentWAC + incomingQty*incomingCost) / newQty
//
// On a first receipt (newQty would otherwise divide by zero) the WAC is the
// incoming unit cost. All arithmetic is exact decimal; the WAC is rounded to
// the valuation scale.
func Receive(currentQty, currentWAC, incomingQty, incomingCost decimal.Decimal) (newQty, newWAC decimal.Decimal) {
	newQty = currentQty.Add(incomingQty)
	if newQty.IsZero() || currentQty.IsZero() {
		return newQty, incomingCost.Round(valueobject.ValuationScale)
	}
	totalValue := currentQty.Mul(currentWAC).Add(incomingQty.Mul(incomingCost))
	newWAC = totalValue.Div(newQty).Round(valueobject.ValuationScale)
	return newQty, newWAC
}

// Issue computes the state transition for outgoing stock. The cost of the
// issue is valued at the current WAC; only receipts shift the average, so
// the WAC is not returned because it does not change.
func Issue(currentQty, currentWAC, outgoingQty decimal.Decimal) (newQty, costOfIssue decimal.Decimal) {
	newQty = currentQty.Sub(outgoingQty)
	costOfIssue = outgoingQty.Mul(currentWAC)
	return newQty, costOfIssue
}
