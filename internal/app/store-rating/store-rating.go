package storerating

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/store-rating/internal/config"
	"github.com/magabrotheeeer/store-rating/internal/lib/jwt"
	"github.com/magabrotheeeer/store-rating/internal/migrations"
	adminservice "github.com/magabrotheeeer/store-rating/internal/services/admin"
	authservice "github.com/magabrotheeeer/store-rating/internal/services/auth"
	ratingservice "github.com/magabrotheeeer/store-rating/internal/services/rating"
	storeservice "github.com/magabrotheeeer/store-rating/internal/services/store"
	"github.com/magabrotheeeer/store-rating/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker, cfg.AdminCredentials)
	ratingService := ratingservice.NewRatingService(db, logger)
	storeService := storeservice.NewStoreService(db, logger)
	adminService := adminservice.NewAdminService(db, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, db, authService, ratingService, storeService, adminService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

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
		return err
	}
}
