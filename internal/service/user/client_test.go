package user_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/service/user"
)

func TestClient_GetUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/users/42", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"email":"alice@example.com"}`))
	}))
	defer server.Close()

	client := user.NewClient(server.URL)

	got, err := client.GetUser(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, int64(42), got.ID)
	require.Equal(t, "alice@example.com", got.Email)
}

func TestClient_GetUser_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such user", http.StatusNotFound)
	}))
	defer server.Close()

	client := user.NewClient(server.URL)

	_, err := client.GetUser(context.Background(), 7)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestClient_GetUser_TransportFailureIsNotNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := user.NewClient(server.URL)

	_, err := client.GetUser(context.Background(), 7)
	require.Error(t, err)
	require.False(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestClient_GetUser_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := user.NewClient(server.URL, user.WithTimeout(5*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.GetUser(ctx, 1)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_GetUser_BadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"not-a-number"`))
	}))
	defer server.Close()

	client := user.NewClient(server.URL)

	_, err := client.GetUser(context.Background(), 1)
	require.Error(t, err)
}
