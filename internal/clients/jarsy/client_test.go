package jarsy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/spacefolio/internal/domain"
)

func testHolding() domain.Holding {
	return domain.Holding{
		Exchange:  domain.ExchangeJarsy,
		Symbol:    "JSPAX",
		CostBasis: decimal.RequireFromString("840"),
		Quantity:  decimal.RequireFromString("2.489"),
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(zerolog.Nop())
	client.baseURL = srv.URL
	return client
}

func TestFetchPrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/home/token_list", r.URL.Path)
		w.Write([]byte(`{"code":200,"data":[{"coin":"OTHER","price":1.5},{"coin":"JSPAX","price":987.65}]}`))
	})

	price, err := client.FetchPrice(context.Background(), testHolding())
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.True(t, price.Equal(decimal.RequireFromString("987.65")), "price = %s", price)
}

func TestFetchPrice_PriceAsString(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"data":[{"coin":"JSPAX","price":"987.65"}]}`))
	})

	price, err := client.FetchPrice(context.Background(), testHolding())
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.True(t, price.Equal(decimal.RequireFromString("987.65")))
}

func TestFetchPrice_SymbolNotListed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"data":[{"coin":"OTHER","price":1.5}]}`))
	})

	price, err := client.FetchPrice(context.Background(), testHolding())
	require.NoError(t, err)
	assert.Nil(t, price)
}

func TestFetchPrice_UnusablePriceField(t *testing.T) {
	bodies := []string{
		`{"code":200,"data":[{"coin":"JSPAX"}]}`,
		`{"code":200,"data":[{"coin":"JSPAX","price":null}]}`,
		`{"code":200,"data":[{"coin":"JSPAX","price":"not-a-number"}]}`,
	}

	for _, body := range bodies {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})

		price, err := client.FetchPrice(context.Background(), testHolding())
		require.NoError(t, err, "body %s", body)
		assert.Nil(t, price, "body %s", body)
	}
}

func TestFetchPrice_HTTPErrorIsHardFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchPrice(context.Background(), testHolding())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchPrice_EnvelopeErrorIsHardFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":500,"data":[]}`))
	})

	_, err := client.FetchPrice(context.Background(), testHolding())
	require.Error(t, err)
}

func TestFetchPrice_MalformedBodyIsHardFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>cloudflare</html>`))
	})

	_, err := client.FetchPrice(context.Background(), testHolding())
	require.Error(t, err)
}
