// Package remove реализует HTTP-обработчик удаления собственной оценки.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/store-rating/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
)

// Handler обрабатывает запросы на удаление оценки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления оценки.
type Service interface {
	Delete(ctx context.Context, userUID string, ratingID int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить свою оценку
// @Description Удаляет оценку текущего пользователя. Чужая или несуществующая оценка дает 404.
// @Tags Ratings
// @Produce  json
// @Security BearerAuth
// @Param ratingId path int true "ID оценки"
// @Success 200 {object} map[string]any "Оценка удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Оценка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /ratings/{ratingId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rating.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("useruid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	ratingID, err := strconv.Atoi(chi.URLParam(r, "ratingId"))
	if err != nil {
		log.Error("invalid rating id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid rating id"))
		return
	}

	if err := h.service.Delete(r.Context(), userUID, ratingID); err != nil {
		if errors.Is(err, models.ErrRatingNotFound) {
			log.Error("rating not found", slog.Int("rating_id", ratingID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("rating not found"))
			return
		}
		log.Error("failed to delete rating", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete rating"))
		return
	}

	log.Info("rating deleted", slog.Int("rating_id", ratingID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "rating deleted successfully",
	}))
}
