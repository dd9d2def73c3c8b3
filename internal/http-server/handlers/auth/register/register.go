package register

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-practice/internal/http-server/response"
	"github.com/magabrotheeeer/daily-practice/internal/lib/sl"
)

// Request — данные для регистрации нового пользователя.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=6,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// Registration описывает регистрацию пользователя с запуском пробного периода.
type Registration interface {
	Register(ctx context.Context, email, username, rawPassword string) (string, error)
}

// New
// @Summary Регистрация нового пользователя
// @Tags auth
// @Accept  json
// @Produce json
// @Param   request body Request true "Данные для регистрации (email, username, password)"
// @Success 200 {object} response.Response "Пользователь создан, пробный период запущен"
// @Failure 400 {object} response.Response "Ошибка валидации или некорректный запрос"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /register [post]
func New(ctx context.Context, log *slog.Logger, registration Registration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.register.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
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

		useruid, err := registration.Register(ctx, req.Email, req.Username, req.Password)
		if err != nil {
			log.Error("failed to register new user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register new user"))
			return
		}

		log.Info("created new user", slog.String("username", req.Username))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"username": req.Username,
			"user_uid": useruid,
		}))
	}
}
