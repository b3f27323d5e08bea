// Package jarsy provides a price client for the Jarsy exchange.
package jarsy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/spacefolio/internal/domain"
)

// Client for the Jarsy public token-list API
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new Jarsy client
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		baseURL: "https://api.jarsy.com",
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("client", "jarsy").Logger(),
	}
}

// tokenListResponse is the top-level shape of /api/home/token_list.
// Price arrives as json.Number so we can parse it as a decimal without
// a float round-trip; the API has been observed returning it both as a
// number and as a string, so RawMessage + Number covers both.
type tokenListResponse struct {
	Code int `json:"code"`
	Data []struct {
		Coin  string          `json:"coin"`
		Price json.RawMessage `json:"price"`
	} `json:"data"`
}

// FetchPrice looks up the holding's symbol in the Jarsy token list and
// returns its current price.
//
// A missing symbol or an unparseable price field means the token is
// temporarily unlisted: (nil, nil). A non-success status or malformed
// response means the service itself is broken and returns an error.
func (c *Client) FetchPrice(ctx context.Context, holding domain.Holding) (*decimal.Decimal, error) {
	url := c.baseURL + "/api/home/token_list"
	c.log.Debug().Str("url", url).Str("symbol", holding.Symbol).Msg("Fetching token list")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var result tokenListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// The envelope carries its own status code alongside HTTP 200.
	if result.Code != 200 {
		return nil, fmt.Errorf("unexpected API response code %d", result.Code)
	}

	for _, token := range result.Data {
		if token.Coin != holding.Symbol {
			continue
		}

		price, ok := parsePrice(token.Price)
		if !ok {
			c.log.Warn().Str("symbol", holding.Symbol).Msg("Token listed without a usable price")
			return nil, nil
		}

		c.log.Info().Str("symbol", holding.Symbol).Str("price", price.String()).Msg("Fetched price")
		return &price, nil
	}

	c.log.Warn().Str("symbol", holding.Symbol).Msg("Symbol not in token list")
	return nil, nil
}

// parsePrice turns the raw price field into a decimal. Handles the
// field being absent, null, a JSON number, or a numeric string.
func parsePrice(raw json.RawMessage) (decimal.Decimal, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Decimal{}, false
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		// Maybe a quoted string like "123.45"
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Decimal{}, false
		}
		num = json.Number(s)
	}

	price, err := decimal.NewFromString(num.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return price, true
}
