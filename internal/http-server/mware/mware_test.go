package mware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/daily-practice/internal/lib/token"
	"github.com/magabrotheeeer/daily-practice/internal/models"
)

type MockSessionValidator struct {
	mock.Mock
}

func (m *MockSessionValidator) ValidateSession(ctx context.Context, tokenStr string) (*token.SessionClaims, error) {
	args := m.Called(ctx, tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.SessionClaims), args.Error(1)
}

type MockUserProvider struct {
	mock.Mock
}

func (m *MockUserProvider) CurrentUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		cookie     *http.Cookie
		mockSetup  func(v *MockSessionValidator)
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "missing cookie",
			cookie:     nil,
			mockSetup:  func(_ *MockSessionValidator) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "invalid token",
			cookie: &http.Cookie{Name: "session", Value: "garbage"},
			mockSetup: func(v *MockSessionValidator) {
				v.On("ValidateSession", mock.Anything, "garbage").
					Return(nil, errors.New("token is invalid")).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid session",
			cookie: &http.Cookie{Name: "session", Value: "good-token"},
			mockSetup: func(v *MockSessionValidator) {
				v.On("ValidateSession", mock.Anything, "good-token").
					Return(&token.SessionClaims{
						Username:  "parent",
						UserUID:   "uid-1",
						SessionID: "sid-1",
					}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := new(MockSessionValidator)
			tt.mockSetup(validator)

			var called bool
			var gotUID any
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUID = r.Context().Value(UserUID)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/questions", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rr := httptest.NewRecorder()

			SessionMiddleware(validator, "session", newNoopLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, called)
			if tt.wantNext {
				assert.Equal(t, "uid-1", gotUID)
			}
			validator.AssertExpectations(t)
		})
	}
}

func TestAccessMiddleware(t *testing.T) {
	now := time.Now()
	expired := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	tests := []struct {
		name       string
		user       *models.User
		userErr    error
		wantStatus int
		wantNext   bool
	}{
		{
			name: "active subscription passes",
			user: &models.User{
				UUID:               "uid-1",
				SubscriptionStatus: models.SubscriptionActive,
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name: "trial still running passes",
			user: &models.User{
				UUID:               "uid-1",
				SubscriptionStatus: models.SubscriptionTrial,
				TrialEndDate:       &future,
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name: "expired trial blocked with payment required",
			user: &models.User{
				UUID:               "uid-1",
				SubscriptionStatus: models.SubscriptionTrial,
				TrialEndDate:       &expired,
			},
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name: "canceled subscription blocked with payment required",
			user: &models.User{
				UUID:               "uid-1",
				SubscriptionStatus: models.SubscriptionCanceled,
			},
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name:       "storage error",
			userErr:    errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserProvider)
			users.On("CurrentUser", mock.Anything, "uid-1").Return(tt.user, tt.userErr).Once()

			var called bool
			req := httptest.NewRequest(http.MethodGet, "/questions", nil)
			req = req.WithContext(context.WithValue(req.Context(), UserUID, "uid-1"))
			rr := httptest.NewRecorder()

			AccessMiddleware(users, newNoopLogger())(okHandler(&called)).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, called)
			users.AssertExpectations(t)
		})
	}
}

func TestAccessMiddleware_NoIdentity(t *testing.T) {
	users := new(MockUserProvider)

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/questions", nil)
	rr := httptest.NewRecorder()

	AccessMiddleware(users, newNoopLogger())(okHandler(&called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)
	users.AssertNotCalled(t, "CurrentUser", mock.Anything, mock.Anything)
}
