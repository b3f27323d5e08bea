// Package domain contains the core portfolio types.
// The domain layer is pure - no infrastructure dependencies.
package domain

import (
	"github.com/shopspring/decimal"
)

// Exchange identifiers for the two venues holding the SPACEX token.
const (
	ExchangeJarsy   = "jarsy"
	ExchangeJupiter = "jupiter"
)

// Holding is a static position: how much was bought on one exchange
// and at what price. Holdings are fixed at startup and never change
// at runtime.
type Holding struct {
	Exchange  string          // Exchange identifier (jarsy, jupiter)
	Symbol    string          // Symbol or mint address on that exchange
	CostBasis decimal.Decimal // Purchase price per unit
	Quantity  decimal.Decimal // Units held
}

// Invested returns the historical cost of the holding (cost basis x quantity).
func (h Holding) Invested() decimal.Decimal {
	return h.CostBasis.Mul(h.Quantity)
}

// PositionPnL is the computed profit/loss for a single holding.
// CurrentPrice and PositionValue are nil when the exchange has no
// quotable price for the token right now - the position then
// contributes nothing to portfolio totals.
type PositionPnL struct {
	PnL           decimal.Decimal  `json:"pnl"`
	PnLPercent    decimal.Decimal  `json:"pnl_percent"`
	BuyPrice      decimal.Decimal  `json:"buy_price"`
	CurrentPrice  *decimal.Decimal `json:"current_price"`
	PositionValue *decimal.Decimal `json:"position_value"`
}

// PortfolioTotals aggregates P&L across all positions.
type PortfolioTotals struct {
	PnL            decimal.Decimal `json:"pnl"`
	PnLPercent     decimal.Decimal `json:"pnl_percent"`
	PortfolioValue decimal.Decimal `json:"portfolio_value"`
	Invested       decimal.Decimal `json:"invested"`
}

// PortfolioSummary is the consolidated view served by the API and
// cached between refresh cycles. Summaries are recreated on every
// refresh, never mutated in place.
type PortfolioSummary struct {
	Positions map[string]PositionPnL `json:"positions"`
	Total     PortfolioTotals        `json:"total"`
}

// DefaultHoldings returns the static SPACEX positions.
// Jarsy lists the token as JSPAX; on Jupiter it is identified by its
// Solana mint address.
func DefaultHoldings() []Holding {
	return []Holding{
		{
			Exchange:  ExchangeJarsy,
			Symbol:    "JSPAX",
			CostBasis: decimal.RequireFromString("840"),
			Quantity:  decimal.RequireFromString("2.489"),
		},
		{
			Exchange:  ExchangeJupiter,
			Symbol:    "PreANxuXjsy2pvisWWMNB6YaJNzr7681wJJr2rHsfTh",
			CostBasis: decimal.RequireFromString("335.07"),
			Quantity:  decimal.RequireFromString("4.531"),
		},
	}
}
