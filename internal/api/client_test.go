package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devGospel/jetstores/internal/models"
)

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "buyer@example.com", body["email"])
		require.Equal(t, "hunter22", body["password"])

		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "acc-123",
			"refresh_token": "ref-456",
			"user": map[string]any{
				"_id":       "u1",
				"email":     "buyer@example.com",
				"role":      "buyer",
				"is_active": true,
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Login(context.Background(), "buyer@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "acc-123", resp.AccessToken)
	require.Equal(t, "ref-456", resp.RefreshToken)
	require.Equal(t, "u1", resp.User.ID)
	require.True(t, resp.User.IsActive)
}

func TestLoginFailureUsesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Login(context.Background(), "buyer@example.com", "wrong")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Invalid credentials", apiErr.Message)
	require.Equal(t, "Invalid credentials", ErrorMessage(err, "Login failed"))
}

func TestLoginFailureFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)
	require.Equal(t, "Login failed", ErrorMessage(err, "Login failed"))
}

func TestVerifySendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-789", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"_id": "u1", "email": "buyer@example.com"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	user, err := client.Verify(context.Background(), "tok-789")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
}

func TestGetSellers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/sellers", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]map[string]any{
			{"_id": "s1", "email": "one@shop.com", "role": "seller", "is_active": true},
			{"_id": "s2", "email": "two@shop.com", "name": "Two", "role": "seller", "is_active": false},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	sellers, err := client.GetSellers(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, sellers, 2)
	require.Equal(t, "one@shop.com", sellers[0].DisplayName())
	require.Equal(t, "Two", sellers[1].DisplayName())
}

func TestCreateTransactionRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transactions/create", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req models.TransactionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Smartwatch", req.Title)
		require.Equal(t, "paypal", req.PaymentPlatform)
		require.Equal(t, "s1", req.SellerID)

		json.NewEncoder(w).Encode(map[string]any{
			"message":        "Transaction created",
			"transaction_id": "tx-1",
			"redirect_url":   "https://pay.example.com/tx-1",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	res, err := client.CreateTransaction(context.Background(), "tok", models.TransactionRequest{
		Title:           "Smartwatch",
		Amount:          199.99 * 1500,
		PaymentPlatform: models.PlatformPaypal,
		SellerID:        "s1",
	})
	require.NoError(t, err)
	require.Equal(t, "https://pay.example.com/tx-1", res.RedirectURL)
}

func TestCreateTransactionMissingRedirectIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"message":        "Transaction created",
			"transaction_id": "tx-2",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	res, err := client.CreateTransaction(context.Background(), "tok", models.TransactionRequest{
		Title:           "Sunglasses",
		PaymentPlatform: models.PlatformFlutterwave,
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoRedirectURL))
	// The result still carries the id for reporting, but the flow must not navigate.
	require.Equal(t, "tx-2", res.TransactionID)
}

func TestCreateTransactionServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "Seller is not active"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.CreateTransaction(context.Background(), "tok", models.TransactionRequest{Title: "x"})
	require.Equal(t, "Seller is not active", ErrorMessage(err, "Failed to create transaction"))
}
