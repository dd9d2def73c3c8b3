package app

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/daily-practice/internal/config"
	"github.com/magabrotheeeer/daily-practice/internal/http-server/mware"

	"github.com/magabrotheeeer/daily-practice/internal/http-server/handlers/auth/login"
	"github.com/magabrotheeeer/daily-practice/internal/http-server/handlers/auth/logout"
	"github.com/magabrotheeeer/daily-practice/internal/http-server/handlers/auth/me"
	"github.com/magabrotheeeer/daily-practice/internal/http-server/handlers/auth/register"
	"github.com/magabrotheeeer/daily-practice/internal/http-server/handlers/payment/cancel"
	"github.com/magabrotheeeer/daily-practice/internal/http-server/handlers/payment/status"
	"github.com/magabrotheeeer/daily-practice/internal/http-server/handlers/payment/subscribe"
	"github.com/magabrotheeeer/daily-practice/internal/http-server/handlers/payment/webhook"
	profilecreate "github.com/magabrotheeeer/daily-practice/internal/http-server/handlers/profile/create"
	profileread "github.com/magabrotheeeer/daily-practice/internal/http-server/handlers/profile/read"
	questionslist "github.com/magabrotheeeer/daily-practice/internal/http-server/handlers/questions/list"

	authservice "github.com/magabrotheeeer/daily-practice/internal/services/auth"
	paymentservice "github.com/magabrotheeeer/daily-practice/internal/services/payment"
	profileservice "github.com/magabrotheeeer/daily-practice/internal/services/profile"
	questionsservice "github.com/magabrotheeeer/daily-practice/internal/services/questions"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	authService *authservice.AuthService,
	profileService *profileservice.ProfileService,
	questionsService *questionsservice.QuestionsService,
	paymentService *paymentservice.PaymentService) {
	ctx := context.Background()

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(ctx, logger, authService))
		r.Post("/login", login.New(ctx, logger, authService, cfg.CookieName, cfg.SessionTTL))

		// Группа с сессионной аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(mware.SessionMiddleware(authService, cfg.CookieName, logger))
			r.Use(mware.RateLimitMiddleware(logger))

			r.Post("/logout", logout.New(ctx, logger, authService, cfg.CookieName))
			r.Get("/me", me.New(ctx, logger, authService))

			r.Post("/profile", profilecreate.New(ctx, logger, profileService))
			r.Get("/profile", profileread.New(ctx, logger, profileService))

			r.Post("/subscription", subscribe.New(ctx, logger, paymentService))
			r.Get("/subscription", status.New(ctx, logger, paymentService))
			r.Delete("/subscription", cancel.New(ctx, logger, paymentService))

			// Вопросы доступны только при действующем пробном периоде или подписке
			r.Group(func(r chi.Router) {
				r.Use(mware.AccessMiddleware(authService, logger))
				r.Get("/questions", questionslist.New(ctx, logger, questionsService))
			})
		})

		// Webhook endpoint (без аутентификации, подпись проверяется в обработчике)
		r.Post("/payments/webhook", webhook.New(logger, paymentService, cfg.WebhookSecret).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
