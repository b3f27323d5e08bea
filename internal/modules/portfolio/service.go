// Package portfolio aggregates exchange prices into a consolidated
// P&L summary and owns the cached copy served by the API.
package portfolio

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/aristath/spacefolio/internal/domain"
)

// Service builds portfolio summaries from live exchange prices.
type Service struct {
	holdings []domain.Holding
	fetchers map[string]domain.PriceFetcher // keyed by exchange id
	log      zerolog.Logger
}

// NewService creates a new portfolio service. Every holding must have
// a fetcher registered for its exchange.
func NewService(holdings []domain.Holding, fetchers map[string]domain.PriceFetcher, log zerolog.Logger) *Service {
	return &Service{
		holdings: holdings,
		fetchers: fetchers,
		log:      log.With().Str("component", "portfolio").Logger(),
	}
}

// BuildSummary fetches current prices from all exchanges in parallel
// and computes per-position and total P&L.
//
// A hard fetcher failure fails the whole build - no partial summary is
// ever returned. An exchange reporting "no price" for its token is not
// a failure: that position is included with nil price fields and a
// zero contribution to totals.
func (s *Service) BuildSummary(ctx context.Context) (*domain.PortfolioSummary, error) {
	prices := make([]*decimal.Decimal, len(s.holdings))

	g, gctx := errgroup.WithContext(ctx)
	for i, holding := range s.holdings {
		fetcher, ok := s.fetchers[holding.Exchange]
		if !ok {
			return nil, fmt.Errorf("no price fetcher for exchange %q", holding.Exchange)
		}

		i, holding := i, holding
		g.Go(func() error {
			price, err := fetcher.FetchPrice(gctx, holding)
			if err != nil {
				return fmt.Errorf("%s: %w", holding.Exchange, err)
			}
			prices[i] = price
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("price fetch failed: %w", err)
	}

	summary := &domain.PortfolioSummary{
		Positions: make(map[string]domain.PositionPnL, len(s.holdings)),
	}

	for i, holding := range s.holdings {
		var position domain.PositionPnL
		if prices[i] != nil {
			position = CalculatePnL(holding, *prices[i])
			summary.Total.PortfolioValue = summary.Total.PortfolioValue.Add(*position.PositionValue)
		} else {
			position = zeroContribution(holding)
			s.log.Warn().
				Str("exchange", holding.Exchange).
				Str("symbol", holding.Symbol).
				Msg("No price available, position excluded from totals")
		}

		summary.Positions[holding.Exchange] = position
		summary.Total.PnL = summary.Total.PnL.Add(position.PnL)
		summary.Total.Invested = summary.Total.Invested.Add(holding.Invested())
	}

	// Guard against zero invested; cannot happen with the static
	// holdings but a division panic would take the refresh loop down.
	if summary.Total.Invested.IsPositive() {
		summary.Total.PnLPercent = summary.Total.PnL.Div(summary.Total.Invested).Mul(hundred)
	}

	s.log.Info().
		Str("total_pnl", summary.Total.PnL.String()).
		Str("portfolio_value", summary.Total.PortfolioValue.String()).
		Msg("Summary built")

	return summary, nil
}

// zeroContribution is the position reported when an exchange has no
// quotable price: present in the output, absent from the totals.
func zeroContribution(holding domain.Holding) domain.PositionPnL {
	return domain.PositionPnL{
		PnL:        decimal.Zero,
		PnLPercent: decimal.Zero,
		BuyPrice:   holding.CostBasis,
	}
}
