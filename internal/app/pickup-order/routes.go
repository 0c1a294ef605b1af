// Package pickuporder предоставляет маршруты для основного приложения.
package pickuporder

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/pickup-order/internal/http/handlers/ai/suggesttime"
	"github.com/magabrotheeeer/pickup-order/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/pickup-order/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/pickup-order/internal/http/handlers/order/create"
	"github.com/magabrotheeeer/pickup-order/internal/http/handlers/order/read"
	"github.com/magabrotheeeer/pickup-order/internal/http/handlers/order/update"
	"github.com/magabrotheeeer/pickup-order/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/pickup-order/internal/services/auth"
	orderservice "github.com/magabrotheeeer/pickup-order/internal/services/order"
	suggestionservice "github.com/magabrotheeeer/pickup-order/internal/services/suggestion"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, parser middlewarectx.TokenParser,
	authService *authservice.AuthService, orderService *orderservice.OrderService,
	suggestionService *suggestionservice.SuggestionService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(parser, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Get("/auth/me", me.New(logger, authService).ServeHTTP)
		r.Post("/orders", create.New(logger, orderService).ServeHTTP)
		r.Get("/orders/{id}", read.New(logger, orderService).ServeHTTP)
		r.Put("/orders/{id}", update.New(logger, orderService).ServeHTTP)
		r.Post("/ai/suggest-time", suggesttime.New(logger, suggestionService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
