package cancel

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
	"github.com/magabrotheeeer/daily-practice/internal/services/payment"
)

// Canceler описывает отмену подписки у платёжного провайдера.
type Canceler interface {
	Cancel(ctx context.Context, userUID string) error
}

// New возвращает обработчик отмены подписки текущего пользователя.
func New(ctx context.Context, log *slog.Logger, canceler Canceler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.cancel.New"

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

		if err := canceler.Cancel(ctx, userUID); err != nil {
			if errors.Is(err, payment.ErrNoSubscription) {
				log.Info("no subscription to cancel", slog.String("user_uid", userUID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("no subscription to cancel"))
				return
			}
			log.Error("failed to cancel subscription", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to cancel subscription"))
			return
		}

		log.Info("subscription canceled", slog.String("user_uid", userUID))
		render.JSON(w, r, response.OK())
	}
}
