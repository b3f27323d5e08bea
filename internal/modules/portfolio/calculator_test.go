package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/spacefolio/internal/domain"
)

func TestCalculatePnL_Gain(t *testing.T) {
	holding := domain.Holding{
		Exchange:  domain.ExchangeJarsy,
		Symbol:    "JSPAX",
		CostBasis: decimal.RequireFromString("840"),
		Quantity:  decimal.RequireFromString("2.489"),
	}
	price := decimal.RequireFromString("1000")

	position := CalculatePnL(holding, price)

	// (1000 - 840) * 2.489 = 398.24, exactly, no rounding
	assert.True(t, position.PnL.Equal(decimal.RequireFromString("398.24")),
		"pnl = %s", position.PnL)
	// (1000 - 840) / 840 * 100 = 19.0476...
	assert.Equal(t, "19.0476", position.PnLPercent.StringFixed(4))
	assert.True(t, position.BuyPrice.Equal(decimal.RequireFromString("840")))

	require.NotNil(t, position.CurrentPrice)
	assert.True(t, position.CurrentPrice.Equal(price))
	require.NotNil(t, position.PositionValue)
	assert.True(t, position.PositionValue.Equal(decimal.RequireFromString("2489")),
		"position_value = %s", position.PositionValue)
}

func TestCalculatePnL_Loss(t *testing.T) {
	holding := domain.Holding{
		Exchange:  domain.ExchangeJupiter,
		CostBasis: decimal.RequireFromString("335.07"),
		Quantity:  decimal.RequireFromString("4.531"),
	}
	price := decimal.RequireFromString("300")

	position := CalculatePnL(holding, price)

	// (300 - 335.07) * 4.531 = -158.90217
	assert.True(t, position.PnL.Equal(decimal.RequireFromString("-158.90217")),
		"pnl = %s", position.PnL)
	assert.True(t, position.PnLPercent.IsNegative())
	require.NotNil(t, position.PositionValue)
	assert.True(t, position.PositionValue.Equal(decimal.RequireFromString("1359.3")))
}

func TestCalculatePnL_BreakEven(t *testing.T) {
	holding := domain.Holding{
		CostBasis: decimal.RequireFromString("335.07"),
		Quantity:  decimal.RequireFromString("4.531"),
	}

	position := CalculatePnL(holding, decimal.RequireFromString("335.07"))

	assert.True(t, position.PnL.IsZero())
	assert.True(t, position.PnLPercent.IsZero())
}
