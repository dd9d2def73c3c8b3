// Package mware содержит middleware HTTP-сервера: сессионную аутентификацию
// по cookie, проверку доступа по подписке и ограничение частоты запросов.
package mware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/daily-practice/internal/http-server/response"
	"github.com/magabrotheeeer/daily-practice/internal/lib/sl"
	"github.com/magabrotheeeer/daily-practice/internal/lib/token"
	"github.com/magabrotheeeer/daily-practice/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для имени пользователя в контексте
	User Key = "username"
	// UserUID — ключ для идентификатора пользователя в контексте
	UserUID Key = "user_uid"
	// SessionID — ключ для идентификатора сессии в контексте
	SessionID Key = "session_id"
)

// SessionValidator описывает проверку сессионного токена из cookie.
type SessionValidator interface {
	ValidateSession(ctx context.Context, tokenStr string) (*token.SessionClaims, error)
}

// UserProvider описывает получение пользователя для проверки доступа.
type UserProvider interface {
	CurrentUser(ctx context.Context, userUID string) (*models.User, error)
}

// SessionMiddleware возвращает middleware, которое проверяет сессионную cookie.
//
// Логика работы:
//  1. Считывает cookie с токеном сессии.
//  2. Проверяет подпись токена и наличие сессии в реестре.
//  3. Кладёт имя пользователя, его UID и ID сессии в контекст запроса.
//  4. Передаёт управление следующему обработчику.
func SessionMiddleware(validator SessionValidator, cookieName string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "mware.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(cookieName)
			if err != nil {
				log.Error("missing session cookie")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			claims, err := validator.ValidateSession(r.Context(), cookie.Value)
			if err != nil {
				log.Error("invalid or revoked session", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired session"))
				return
			}

			ctx := context.WithValue(r.Context(), User, claims.Username)
			ctx = context.WithValue(ctx, UserUID, claims.UserUID)
			ctx = context.WithValue(ctx, SessionID, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccessMiddleware пускает дальше только пользователей с действующим
// пробным периодом или оплаченной подпиской, иначе отвечает 402.
func AccessMiddleware(users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "mware.AccessMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			user, err := users.CurrentUser(r.Context(), userUID)
			if err != nil {
				log.Error("failed to load user", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal server error"))
				return
			}

			if !user.HasAccess(time.Now()) {
				log.Info("access denied, subscription required", slog.String("user_uid", userUID))
				render.Status(r, http.StatusPaymentRequired)
				render.JSON(w, r, response.Error("active trial or subscription required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

var limiter = rate.NewLimiter(20, 40)

// RateLimitMiddleware ограничивает частоту запросов к защищённым маршрутам.
func RateLimitMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Error("too many requests")
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
