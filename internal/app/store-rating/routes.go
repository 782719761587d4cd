// Package storerating предоставляет маршруты для основного приложения.
package storerating

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	adminratings "github.com/magabrotheeeer/store-rating/internal/http/handlers/admin/ratings"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/admin/stats"
	adminstores "github.com/magabrotheeeer/store-rating/internal/http/handlers/admin/stores"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/admin/storeprovision"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/admin/usercreate"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/admin/userread"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/admin/users"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/auth/changepassword"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/health"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/rating/listmy"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/rating/rate"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/rating/remove"
	"github.com/magabrotheeeer/store-rating/internal/http/handlers/store/dashboard"
	storelist "github.com/magabrotheeeer/store-rating/internal/http/handlers/store/list"
	"github.com/magabrotheeeer/store-rating/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating/internal/models"
	adminservice "github.com/magabrotheeeer/store-rating/internal/services/admin"
	authservice "github.com/magabrotheeeer/store-rating/internal/services/auth"
	ratingservice "github.com/magabrotheeeer/store-rating/internal/services/rating"
	storeservice "github.com/magabrotheeeer/store-rating/internal/services/store"
	"github.com/magabrotheeeer/store-rating/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	db *repository.Storage,
	authService *authservice.AuthService,
	ratingService *ratingservice.RatingService,
	storeService *storeservice.StoreService,
	adminService *adminservice.AdminService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			// Доступно любому авторизованному пользователю
			r.Get("/me", me.New(logger, authService).ServeHTTP)
			r.Post("/password", changepassword.New(logger, authService).ServeHTTP)
			r.Get("/stores", storelist.New(logger, storeService).ServeHTTP)
			r.Post("/stores/{storeId}/rating", rate.New(logger, ratingService).ServeHTTP)
			r.Get("/ratings/my", listmy.New(logger, ratingService).ServeHTTP)
			r.Delete("/ratings/{ratingId}", remove.New(logger, ratingService).ServeHTTP)

			// Только владелец магазина
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleStoreOwner))
				r.Get("/owner/dashboard", dashboard.New(logger, storeService).ServeHTTP)
			})

			// Только администратор
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))
				r.Get("/admin/stats", stats.New(logger, adminService).ServeHTTP)
				r.Get("/admin/users", users.New(logger, adminService).ServeHTTP)
				r.Post("/admin/users", usercreate.New(logger, adminService).ServeHTTP)
				r.Get("/admin/users/{uid}", userread.New(logger, adminService).ServeHTTP)
				r.Get("/admin/stores", adminstores.New(logger, adminService).ServeHTTP)
				r.Post("/admin/stores", storeprovision.New(logger, adminService).ServeHTTP)
				r.Get("/admin/ratings", adminratings.New(logger, adminService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
