// Package stores реализует HTTP-обработчик списка магазинов для
// администратора с фильтрами и сортировкой через query-параметры.
package stores

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
)

// Handler обрабатывает запросы на список магазинов справочника.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики справочника магазинов.
type Service interface {
	ListStores(ctx context.Context, filter models.DirectoryFilter) ([]*models.StoreDirectoryRow, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список магазинов справочника
// @Description Возвращает магазины с фильтрами по имени, email и адресу, со средней оценкой каждого.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param name query string false "Подстрока имени"
// @Param email query string false "Подстрока email"
// @Param address query string false "Подстрока адреса"
// @Param sort_by query string false "Поле сортировки: name, email, address, created_at"
// @Param sort_order query string false "Порядок: asc или desc"
// @Success 200 {object} map[string]any "Список магазинов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/stores [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stores"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	filter := models.DirectoryFilter{
		Name:      q.Get("name"),
		Email:     q.Get("email"),
		Address:   q.Get("address"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	res, err := h.service.ListStores(r.Context(), filter)
	if err != nil {
		log.Error("failed to list stores", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list stores"))
		return
	}

	log.Info("list stores", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(res),
		"stores":     res,
	}))
}
