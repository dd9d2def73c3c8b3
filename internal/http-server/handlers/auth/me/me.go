package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-practice/internal/http-server/mware"
	"github.com/magabrotheeeer/daily-practice/internal/http-server/response"
	"github.com/magabrotheeeer/daily-practice/internal/lib/sl"
	"github.com/magabrotheeeer/daily-practice/internal/models"
)

// UserProvider описывает получение текущего пользователя.
type UserProvider interface {
	CurrentUser(ctx context.Context, userUID string) (*models.User, error)
}

// New возвращает обработчик профиля аккаунта текущего пользователя.
func New(ctx context.Context, log *slog.Logger, users UserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.me.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userUID, ok := r.Context().Value(mware.UserUID).(string)
		if !ok || userUID == "" {
			log.Error("user identification missing")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		user, err := users.CurrentUser(ctx, userUID)
		if err != nil {
			log.Error("failed to load user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"email":               user.Email,
			"username":            user.Username,
			"subscription_status": user.SubscriptionStatus,
			"trial_end_date":      user.TrialEndDate,
		}))
	}
}
