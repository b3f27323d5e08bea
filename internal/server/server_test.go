package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/spacefolio/internal/domain"
	"github.com/aristath/spacefolio/internal/modules/portfolio"
	portfoliohandlers "github.com/aristath/spacefolio/internal/modules/portfolio/handlers"
	"github.com/aristath/spacefolio/internal/modules/title"
)

type fixedFetcher struct {
	price decimal.Decimal
}

func (f *fixedFetcher) FetchPrice(ctx context.Context, holding domain.Holding) (*decimal.Decimal, error) {
	p := f.price
	return &p, nil
}

type noopUpdater struct{}

func (noopUpdater) UpdateTitle(ctx context.Context, videoID, title string) error { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	service := portfolio.NewService(domain.DefaultHoldings(), map[string]domain.PriceFetcher{
		domain.ExchangeJarsy:   &fixedFetcher{price: decimal.RequireFromString("1000")},
		domain.ExchangeJupiter: &fixedFetcher{price: decimal.RequireFromString("400")},
	}, zerolog.Nop())
	cache := portfolio.NewCache(service, zerolog.Nop())
	publisher := title.NewPublisher(noopUpdater{}, "video123", zerolog.Nop())
	handlers := portfoliohandlers.NewHandler(cache, service, publisher, "", zerolog.Nop())

	return New(Config{
		Port:              0,
		Log:               zerolog.Nop(),
		PortfolioHandlers: handlers,
		Cache:             cache,
	})
}

func TestDashboardServedAtRoot(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "SpaceX Portfolio Tracker")
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
		Cache  struct {
			Populated bool `json:"populated"`
		} `json:"cache"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.False(t, body.Cache.Populated)
}

func TestPortfolioRouteMounted(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
