package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-practice/internal/http-server/mware"
	"github.com/magabrotheeeer/daily-practice/internal/http-server/response"
	"github.com/magabrotheeeer/daily-practice/internal/lib/sl"
	"github.com/magabrotheeeer/daily-practice/internal/models"
	"github.com/magabrotheeeer/daily-practice/internal/services/profile"
)

// Reader описывает чтение агрегированного профиля обучения.
type Reader interface {
	Read(ctx context.Context, userUID string) (*models.Profile, error)
}

// New возвращает обработчик чтения профиля обучения текущего пользователя.
func New(ctx context.Context, log *slog.Logger, reader Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.profile.read.New"

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

		result, err := reader.Read(ctx, userUID)
		if err != nil {
			if errors.Is(err, profile.ErrProfileNotFound) {
				log.Info("profile not found", slog.String("user_uid", userUID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("profile not found"))
				return
			}
			log.Error("failed to read profile", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to read profile"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(result))
	}
}
