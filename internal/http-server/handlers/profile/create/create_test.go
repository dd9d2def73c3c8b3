package create_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-practice/internal/http-server/handlers/profile/create"
	"github.com/magabrotheeeer/daily-practice/internal/http-server/mware"
	"github.com/magabrotheeeer/daily-practice/internal/models"
)

type mockCreater struct {
	CreateFunc func(ctx context.Context, userUID string, req models.DummyProfile) (int, error)
}

func (m *mockCreater) Create(ctx context.Context, userUID string, req models.DummyProfile) (int, error) {
	return m.CreateFunc(ctx, userUID, req)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func newRequest(t *testing.T, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/profile", bytes.NewReader(body))
	return req.WithContext(context.WithValue(req.Context(), mware.UserUID, "uid-1"))
}

func TestCreateHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		creater := &mockCreater{
			CreateFunc: func(ctx context.Context, userUID string, req models.DummyProfile) (int, error) {
				require.Equal(t, "uid-1", userUID)
				require.Equal(t, []string{"math", "english"}, req.Subjects)
				return 2, nil
			},
		}

		w := httptest.NewRecorder()
		create.New(ctx, makeLogger(), creater).ServeHTTP(w, newRequest(t, models.DummyProfile{
			ChildName:    "Alex",
			Grade:        3,
			Subjects:     []string{"math", "english"},
			DeliveryTime: "09:00 AM",
		}))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "subjects_count")
	})

	t.Run("empty subjects list rejected", func(t *testing.T) {
		creater := &mockCreater{
			CreateFunc: func(ctx context.Context, u string, r models.DummyProfile) (int, error) {
				t.Fatal("Create should not be called")
				return 0, nil
			},
		}

		w := httptest.NewRecorder()
		create.New(ctx, makeLogger(), creater).ServeHTTP(w, newRequest(t, models.DummyProfile{
			ChildName:    "Alex",
			Grade:        3,
			Subjects:     []string{},
			DeliveryTime: "09:00 AM",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown subject rejected", func(t *testing.T) {
		creater := &mockCreater{
			CreateFunc: func(ctx context.Context, u string, r models.DummyProfile) (int, error) {
				t.Fatal("Create should not be called")
				return 0, nil
			},
		}

		w := httptest.NewRecorder()
		create.New(ctx, makeLogger(), creater).ServeHTTP(w, newRequest(t, models.DummyProfile{
			ChildName:    "Alex",
			Grade:        3,
			Subjects:     []string{"history"},
			DeliveryTime: "09:00 AM",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "must be one of the allowed values")
	})

	t.Run("unreadable delivery time rejected", func(t *testing.T) {
		creater := &mockCreater{
			CreateFunc: func(ctx context.Context, u string, r models.DummyProfile) (int, error) {
				t.Fatal("Create should not be called")
				return 0, nil
			},
		}

		w := httptest.NewRecorder()
		create.New(ctx, makeLogger(), creater).ServeHTTP(w, newRequest(t, models.DummyProfile{
			ChildName:    "Alex",
			Grade:        3,
			Subjects:     []string{"math"},
			DeliveryTime: "25:00",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "delivery_time")
	})

	t.Run("missing identity", func(t *testing.T) {
		creater := &mockCreater{
			CreateFunc: func(ctx context.Context, u string, r models.DummyProfile) (int, error) {
				t.Fatal("Create should not be called")
				return 0, nil
			},
		}

		body, _ := json.Marshal(models.DummyProfile{
			ChildName:    "Alex",
			Grade:        3,
			Subjects:     []string{"math"},
			DeliveryTime: "09:00 AM",
		})
		req := httptest.NewRequest(http.MethodPost, "/profile", bytes.NewReader(body))
		w := httptest.NewRecorder()

		create.New(ctx, makeLogger(), creater).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
