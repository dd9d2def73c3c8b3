package status

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

// StatusProvider описывает чтение текущего состояния подписки.
type StatusProvider interface {
	Status(ctx context.Context, userUID string) (*models.SubscriptionInfo, error)
}

// New возвращает обработчик статуса подписки текущего пользователя.
func New(ctx context.Context, log *slog.Logger, provider StatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.status.New"

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

		info, err := provider.Status(ctx, userUID)
		if err != nil {
			log.Error("failed to read subscription status", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to read subscription status"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(info))
	}
}
