package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/service/catalog"
)

func TestClient_GetProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/5", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":5,"name":"widget","price":19.99}`))
	}))
	defer server.Close()

	client := catalog.NewClient(server.URL)

	got, err := client.GetProduct(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, int64(5), got.ID)
	require.Equal(t, "widget", got.Name)
	require.True(t, got.Price.Equal(decimal.RequireFromString("19.99")))
}

func TestClient_GetProduct_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such product", http.StatusNotFound)
	}))
	defer server.Close()

	client := catalog.NewClient(server.URL)

	_, err := client.GetProduct(context.Background(), 99)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestClient_CheckStock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/5/stock", r.URL.Path)
		require.Equal(t, "3", r.URL.Query().Get("quantity"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"available":true,"current_stock":100,"message":"stock available"}`))
	}))
	defer server.Close()

	client := catalog.NewClient(server.URL)

	report, err := client.CheckStock(context.Background(), 5, 3)
	require.NoError(t, err)
	require.True(t, report.Available)
	require.Equal(t, int32(100), report.CurrentStock)
}

func TestClient_CheckStock_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"available":false,"current_stock":2,"message":"insufficient stock"}`))
	}))
	defer server.Close()

	client := catalog.NewClient(server.URL)

	report, err := client.CheckStock(context.Background(), 5, 10)
	require.NoError(t, err)
	require.False(t, report.Available)
	require.Equal(t, int32(2), report.CurrentStock)
}

func TestClient_TransportFailureIsNotNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := catalog.NewClient(server.URL)

	_, err := client.GetProduct(context.Background(), 5)
	require.Error(t, err)
	require.False(t, errors.Is(err, domain.ErrProductNotFound))

	_, err = client.CheckStock(context.Background(), 5, 1)
	require.Error(t, err)
	require.False(t, errors.Is(err, domain.ErrProductNotFound))
}
