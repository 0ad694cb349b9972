package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"drivehub-backend/internal/config"
	"drivehub-backend/internal/middleware"
)

func TestCreateOrderValidation(t *testing.T) {
	h := NewPaymentsHandler(nil, zap.NewNop())

	t.Run("nonpositive amount", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/paypal/create-order", strings.NewReader(`{"amount":0}`))
		h.CreateOrder(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "amount")
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.CreateOrder(rec, httptest.NewRequest(http.MethodGet, "/api/payments/paypal/create-order", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestCaptureOrderValidation(t *testing.T) {
	h := NewPaymentsHandler(nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.CaptureOrder(rec, httptest.NewRequest(http.MethodPost, "/api/payments/paypal/capture/", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "orderID")
}

func TestPaymentRoutesRequireToken(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}
	h := NewPaymentsHandler(nil, zap.NewNop())
	wrapped := middleware.AuthMiddleware(h.CreateOrder, cfg)

	t.Run("no token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/paypal/create-order", strings.NewReader(`{"amount":10}`))
		wrapped(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches handler", func(t *testing.T) {
		token, err := middleware.GenerateToken(uuid.New(), "driver@example.com", "user", cfg)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/paypal/create-order", strings.NewReader(`{"amount":-1}`))
		req.Header.Set("Authorization", "Bearer "+token)
		wrapped(rec, req)

		// Past the middleware, the handler's own validation answers
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
