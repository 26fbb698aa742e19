package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccounts(t *testing.T, handler http.HandlerFunc) *Accounts {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewAccounts(Client{BaseURL: server.URL, HTTPClient: server.Client()})
}

func TestAccountsLogin(t *testing.T) {
	t.Parallel()

	accounts := newTestAccounts(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"email": "ada@example.com", "password": "pw"}, body)

		_, _ = w.Write([]byte(`{"token":"jwt","user":{"id":3,"full_name":"Ada Lovelace","email":"ada@example.com"}}`))
	})

	session, err := accounts.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jwt", session.Token)
	assert.Equal(t, &domain.User{ID: 3, FullName: "Ada Lovelace", Email: "ada@example.com"}, session.User)
}

func TestAccountsLoginSurfacesMessage(t *testing.T) {
	t.Parallel()

	accounts := newTestAccounts(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	_, err := accounts.Login(context.Background(), "ada@example.com", "nope")
	require.EqualError(t, err, "Invalid credentials")
}

func TestAccountsRegisterVehicle(t *testing.T) {
	t.Parallel()

	accounts := newTestAccounts(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/vehicles", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"type": "car", "brand": "Toyota", "model": "Corolla", "year": float64(2018), "mileage": float64(65000)}, body)

		w.WriteHeader(http.StatusCreated)
	})

	err := accounts.Register(context.Background(), "tok", domain.Registration{
		VehicleType: domain.VehicleTypeCar, Brand: "Toyota", Model: "Corolla", Year: 2018, Mileage: 65000,
	})
	require.NoError(t, err)
}

func TestAccountsRegisterVehicleFallsBackToStatusText(t *testing.T) {
	t.Parallel()

	accounts := newTestAccounts(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream down</html>"))
	})

	err := accounts.Register(context.Background(), "tok", domain.Registration{VehicleType: domain.VehicleTypeBike})
	require.EqualError(t, err, "Submission failed: Bad Gateway")
}

func TestAccountsRegisterVehicleRequiresToken(t *testing.T) {
	t.Parallel()

	accounts := NewAccounts(Client{BaseURL: "http://127.0.0.1:1"})

	err := accounts.Register(context.Background(), "", domain.Registration{})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}
