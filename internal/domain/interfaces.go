package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceFetcher fetches the current price of a holding from one exchange.
//
// The contract distinguishes two failure modes:
//   - (nil, nil): the exchange answered but has no quotable price for
//     the token right now. Expected and frequent; the position degrades
//     to a zero contribution.
//   - (nil, err): the exchange is broken (transport error, non-success
//     status, malformed body). Fails the whole aggregation cycle.
//
// Implementations make exactly one attempt per invocation - no retries.
type PriceFetcher interface {
	FetchPrice(ctx context.Context, holding Holding) (*decimal.Decimal, error)
}

// VideoUpdater pushes a new title to an external video-metadata service.
type VideoUpdater interface {
	UpdateTitle(ctx context.Context, videoID, title string) error
}
