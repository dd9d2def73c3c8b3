package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-practice/internal/http-server/response"
	"github.com/magabrotheeeer/daily-practice/internal/lib/sl"
	"github.com/magabrotheeeer/daily-practice/internal/services/auth"
)

// Request — данные для входа.
type Request struct {
	Username string `json:"username" validate:"required,min=6,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// Authenticator описывает проверку пары логин/пароль с созданием сессии.
type Authenticator interface {
	Login(ctx context.Context, username, rawPassword string) (string, error)
}

// New
// @Summary Вход пользователя
// @Tags auth
// @Accept  json
// @Produce json
// @Param   request body Request true "Данные для входа (username, password)"
// @Success 200 {object} response.Response "Сессионная cookie установлена"
// @Failure 400 {object} response.Response "Ошибка валидации"
// @Failure 401 {object} response.Response "Неверные логин или пароль"
// @Router /login [post]
func New(ctx context.Context, log *slog.Logger, authenticator Authenticator,
	cookieName string, sessionTTL time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.New"

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

		tokenStr, err := authenticator.Login(ctx, req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				log.Error("incorrect user or password")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("incorrect user or password"))
				return
			}
			log.Error("failed to login", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to login"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    tokenStr,
			Path:     "/",
			Expires:  time.Now().Add(sessionTTL),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		log.Info("user logged in", slog.String("username", req.Username))
		render.JSON(w, r, response.OK())
	}
}
