// Package pickuporder собирает приложение: хранилище, кеш, сервисы и HTTP-сервер.
package pickuporder

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/pickup-order/internal/aiprovider"
	"github.com/magabrotheeeer/pickup-order/internal/cache"
	"github.com/magabrotheeeer/pickup-order/internal/config"
	jwtlib "github.com/magabrotheeeer/pickup-order/internal/lib/jwt"
	"github.com/magabrotheeeer/pickup-order/internal/lib/password"
	"github.com/magabrotheeeer/pickup-order/internal/migrations"
	authservice "github.com/magabrotheeeer/pickup-order/internal/services/auth"
	orderservice "github.com/magabrotheeeer/pickup-order/internal/services/order"
	suggestionservice "github.com/magabrotheeeer/pickup-order/internal/services/suggestion"
	"github.com/magabrotheeeer/pickup-order/internal/storage/repository"
)

// Демо-учётка, которой наполняется локальная база.
const (
	demoUserEmail    = "user@example.com"
	demoUserPassword = "password123"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New создает приложение: подключает базу, применяет миграции,
// подключает Redis и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if cfg.Env == "local" {
		if err = seedDemoUser(ctx, db); err != nil {
			return nil, err
		}
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTToken.SecretKey, cfg.JWTToken.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	orderService := orderservice.NewOrderService(db, cacheRedis, logger)

	var provider suggestionservice.Provider
	if cfg.AISuggester.Enabled && cfg.AISuggester.APIKey != "" {
		provider = aiprovider.NewClient(cfg.AISuggester.APIURL, cfg.AISuggester.APIKey, cfg.AISuggester.Timeout)
	}
	suggestionService := suggestionservice.NewSuggestionService(logger, provider)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, authService, orderService, suggestionService)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до остановки контекста
// либо ошибки сервера. При остановке выполняет graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		_ = a.cache.Db.Close()
		return err
	}
}

// seedDemoUser наполняет локальную базу демо-пользователем,
// если его там ещё нет.
func seedDemoUser(ctx context.Context, db *repository.Storage) error {
	hash, err := password.GetHash(demoUserPassword)
	if err != nil {
		return err
	}
	return db.SeedUser(ctx, demoUserEmail, hash)
}
