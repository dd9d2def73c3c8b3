package list

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

// Lister описывает выдачу свежих вопросов по профилю пользователя.
type Lister interface {
	List(ctx context.Context, userUID string) ([]models.SubjectBundle, error)
}

// New
// @Summary Получение свежего набора вопросов
// @Description Генерирует вопросы по каждому предмету профиля. Тот же набор
// @Description уходит письмом на email родителя.
// @Tags questions
// @Produce json
// @Success 200 {object} response.Response "Вопросы по предметам"
// @Failure 402 {object} response.Response "Нужен активный пробный период или подписка"
// @Failure 404 {object} response.Response "Профиль обучения не создан"
// @Router /questions [get]
func New(ctx context.Context, log *slog.Logger, lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.questions.list.New"

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

		bundles, err := lister.List(ctx, userUID)
		if err != nil {
			if errors.Is(err, profile.ErrProfileNotFound) {
				log.Info("profile not found", slog.String("user_uid", userUID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("profile not found"))
				return
			}
			log.Error("failed to generate questions", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to generate questions"))
			return
		}

		log.Info("questions generated",
			slog.String("user_uid", userUID), slog.Int("subjects", len(bundles)))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"subjects": bundles,
		}))
	}
}
