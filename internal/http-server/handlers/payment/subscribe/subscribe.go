package subscribe

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

// Subscriber описывает оформление подписки у платёжного провайдера.
type Subscriber interface {
	Subscribe(ctx context.Context, userUID string) (*models.SubscriptionInfo, error)
}

// New возвращает обработчик оформления подписки. Повторный вызов при
// уже активной подписке возвращает её текущее состояние.
func New(ctx context.Context, log *slog.Logger, subscriber Subscriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.subscribe.New"

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

		info, err := subscriber.Subscribe(ctx, userUID)
		if err != nil {
			log.Error("failed to create subscription", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create subscription"))
			return
		}

		log.Info("subscription requested", slog.String("user_uid", userUID))
		render.JSON(w, r, response.StatusOKWithData(info))
	}
}
