// Package jupiter provides a price client for the Jupiter aggregator
// on Solana. Prices are derived by quoting a swap of exactly one token
// into USDC, so the quoted USD value is the per-unit price.
package jupiter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/spacefolio/internal/domain"
)

// usdcMint is the reference stablecoin the probe swap quotes into.
const usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

// probeAmount is one whole token in base units (9 decimals on Solana).
const probeAmount = "1000000000"

// Client for the Jupiter ultra-api order endpoint
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new Jupiter client
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		baseURL: "https://ultra-api.jup.ag",
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log.With().Str("client", "jupiter").Logger(),
	}
}

// orderResponse holds the only field we need from the quote.
type orderResponse struct {
	InUsdValue *decimal.Decimal `json:"inUsdValue"`
}

// FetchPrice quotes a swap of one token into USDC and returns the USD
// value of the probe as the current price.
//
// A missing quote value means Jupiter has no route for the token right
// now: (nil, nil). A non-success status or malformed body is a hard
// failure.
func (c *Client) FetchPrice(ctx context.Context, holding domain.Holding) (*decimal.Decimal, error) {
	params := url.Values{}
	params.Set("inputMint", holding.Symbol)
	params.Set("outputMint", usdcMint)
	params.Set("amount", probeAmount)
	params.Set("swapMode", "ExactIn")

	reqURL := c.baseURL + "/order?" + params.Encode()
	c.log.Debug().Str("url", reqURL).Msg("Requesting swap quote")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	setBrowserHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var result orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.InUsdValue == nil {
		c.log.Warn().Str("mint", holding.Symbol).Msg("Quote has no USD value")
		return nil, nil
	}

	c.log.Info().Str("mint", holding.Symbol).Str("price", result.InUsdValue.String()).Msg("Fetched price")
	return result.InUsdValue, nil
}

// setBrowserHeaders makes the request look like it comes from a
// desktop Chrome. The endpoint sits behind anti-bot protection that
// rejects the default Go user agent.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Sec-Ch-Ua", `"Chromium";v="124", "Google Chrome";v="124", "Not-A.Brand";v="99"`)
	req.Header.Set("Sec-Ch-Ua-Mobile", "?0")
	req.Header.Set("Sec-Ch-Ua-Platform", `"macOS"`)
	req.Header.Set("Sec-Fetch-Dest", "empty")
	req.Header.Set("Sec-Fetch-Mode", "cors")
	req.Header.Set("Sec-Fetch-Site", "same-site")
	req.Header.Set("Referer", "https://jup.ag/")
}
