package webhook_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-practice/internal/http-server/handlers/payment/webhook"
	"github.com/magabrotheeeer/daily-practice/internal/models"
)

type mockService struct {
	ProcessFunc func(ctx context.Context, payload *models.WebhookPayload) error
}

func (m *mockService) ProcessWebhookEvent(ctx context.Context, payload *models.WebhookPayload) error {
	return m.ProcessFunc(ctx, payload)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

const secret = "whsec_test"

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestWebhookHandler(t *testing.T) {
	body := []byte(`{"event":"payment.succeeded","object":{"id":"pay_1","customer_id":"cus_1"}}`)

	t.Run("valid signature processes event", func(t *testing.T) {
		var got *models.WebhookPayload
		svc := &mockService{
			ProcessFunc: func(ctx context.Context, payload *models.WebhookPayload) error {
				got = payload
				return nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))
		req.Header.Set("X-Api-Signature", sign(body))
		w := httptest.NewRecorder()

		webhook.New(makeLogger(), svc, secret).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got)
		assert.Equal(t, models.EventPaymentSucceeded, got.Event)
		assert.Equal(t, "cus_1", got.Object.CustomerID)
	})

	t.Run("missing signature rejected", func(t *testing.T) {
		svc := &mockService{
			ProcessFunc: func(ctx context.Context, payload *models.WebhookPayload) error {
				t.Fatal("ProcessWebhookEvent should not be called")
				return nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))
		w := httptest.NewRecorder()

		webhook.New(makeLogger(), svc, secret).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("tampered body rejected", func(t *testing.T) {
		svc := &mockService{
			ProcessFunc: func(ctx context.Context, payload *models.WebhookPayload) error {
				t.Fatal("ProcessWebhookEvent should not be called")
				return nil
			},
		}

		tampered := []byte(`{"event":"payment.succeeded","object":{"id":"pay_2","customer_id":"cus_1"}}`)
		req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(tampered))
		req.Header.Set("X-Api-Signature", sign(body))
		w := httptest.NewRecorder()

		webhook.New(makeLogger(), svc, secret).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed payload rejected", func(t *testing.T) {
		svc := &mockService{
			ProcessFunc: func(ctx context.Context, payload *models.WebhookPayload) error {
				t.Fatal("ProcessWebhookEvent should not be called")
				return nil
			},
		}

		bad := []byte("{not json")
		req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(bad))
		req.Header.Set("X-Api-Signature", sign(bad))
		w := httptest.NewRecorder()

		webhook.New(makeLogger(), svc, secret).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
