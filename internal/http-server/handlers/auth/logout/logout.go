package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-practice/internal/http-server/mware"
	"github.com/magabrotheeeer/daily-practice/internal/http-server/response"
	"github.com/magabrotheeeer/daily-practice/internal/lib/sl"
)

// SessionRevoker описывает отзыв активной сессии из реестра.
type SessionRevoker interface {
	Logout(ctx context.Context, sessionID string) error
}

// New возвращает обработчик выхода: сессия отзывается в реестре,
// cookie затирается. Токен после этого перестаёт приниматься.
func New(ctx context.Context, log *slog.Logger, revoker SessionRevoker, cookieName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.logout.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sessionID, ok := r.Context().Value(mware.SessionID).(string)
		if !ok || sessionID == "" {
			log.Error("session identification missing")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		if err := revoker.Logout(ctx, sessionID); err != nil {
			log.Error("failed to revoke session", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to logout"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		log.Info("session revoked", slog.String("session_id", sessionID))
		render.JSON(w, r, response.OK())
	}
}
