package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-practice/internal/http-server/mware"
	"github.com/magabrotheeeer/daily-practice/internal/http-server/response"
	"github.com/magabrotheeeer/daily-practice/internal/lib/clockfmt"
	"github.com/magabrotheeeer/daily-practice/internal/lib/sl"
	"github.com/magabrotheeeer/daily-practice/internal/models"
)

// Creater описывает создание или замену профиля обучения.
type Creater interface {
	Create(ctx context.Context, userUID string, req models.DummyProfile) (int, error)
}

// New
// @Summary Создание профиля обучения ребёнка
// @Tags profile
// @Accept  json
// @Produce json
// @Param   request body models.DummyProfile true "Имя ребёнка, класс, предметы, время доставки"
// @Success 200 {object} response.Response "Профиль сохранён"
// @Failure 400 {object} response.Response "Ошибка валидации или нечитаемое время доставки"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /profile [post]
func New(ctx context.Context, log *slog.Logger, creater Creater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.profile.create.New"

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

		var req models.DummyProfile
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		if _, _, err := clockfmt.Parse(req.DeliveryTime); err != nil {
			log.Error("failed to parse delivery time", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("delivery_time must look like 09:00 AM"))
			return
		}

		count, err := creater.Create(ctx, userUID, req)
		if err != nil {
			log.Error("failed to save profile", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to save profile"))
			return
		}

		log.Info("profile saved", slog.String("user_uid", userUID), slog.Int("subjects", count))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"subjects_count": count,
		}))
	}
}
