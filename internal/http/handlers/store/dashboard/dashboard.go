// Package dashboard реализует HTTP-обработчик кабинета владельца магазина.
//
// Владелец видит свои магазины, их средние оценки и список
// оценивших пользователей.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/store-rating/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
)

// Handler обрабатывает запросы кабинета владельца.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики кабинета владельца.
type Service interface {
	OwnerDashboard(ctx context.Context, ownerUID string) ([]*models.OwnerStore, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Кабинет владельца
// @Description Возвращает магазины владельца со средними оценками и списком оценивших пользователей.
// @Tags Stores
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Магазины владельца"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /owner/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.store.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ownerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || ownerUID == "" {
		log.Error("useruid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.OwnerDashboard(r.Context(), ownerUID)
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build dashboard"))
		return
	}

	log.Info("owner dashboard built", "stores_count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"stores_count": len(res),
		"stores":       res,
	}))
}
