package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/aristath/spacefolio/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// CalculatePnL computes the profit/loss of a holding at the given
// market price. Pure function, no rounding - presentation formatting
// is the caller's problem.
//
// Callers must only invoke this with a defined price; a holding with
// no observable price gets a zero-contribution position instead (see
// zeroContribution in service.go).
func CalculatePnL(holding domain.Holding, price decimal.Decimal) domain.PositionPnL {
	diff := price.Sub(holding.CostBasis)
	value := price.Mul(holding.Quantity)

	return domain.PositionPnL{
		PnL:           diff.Mul(holding.Quantity),
		PnLPercent:    diff.Div(holding.CostBasis).Mul(hundred),
		BuyPrice:      holding.CostBasis,
		CurrentPrice:  &price,
		PositionValue: &value,
	}
}
