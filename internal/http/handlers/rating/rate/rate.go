// Package rate реализует HTTP-обработчик выставления оценки магазину.
//
// Повторная оценка той же пары пользователь-магазин перезаписывает
// предыдущую, в ответе различаются варианты created и updated.
package rate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/store-rating/internal/http/middlewarectx"
	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
)

// Handler обрабатывает запросы на выставление или обновление оценки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики сохранения оценки.
type Service interface {
	Upsert(ctx context.Context, userUID string, storeID int, req models.DummyRating) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оценить магазин
// @Description Сохраняет оценку текущего пользователя для магазина. Повторный вызов обновляет оценку.
// @Tags Ratings
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param storeId path int true "ID магазина"
// @Param request body models.DummyRating true "Оценка и комментарий"
// @Success 200 {object} map[string]any "Результат: created или updated"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Магазин не найден"
// @Failure 422 {object} response.ErrorResponse "Оценка вне диапазона"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /stores/{storeId}/rating [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rating.rate"

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

	storeID, err := strconv.Atoi(chi.URLParam(r, "storeId"))
	if err != nil {
		log.Error("invalid store id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid store id"))
		return
	}

	var req models.DummyRating
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, err := h.service.Upsert(r.Context(), userUID, storeID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrRatingOutOfRange):
			log.Error("rating out of range", slog.Int("rating", req.Rating))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("rating must be between 1 and 5"))
		case errors.Is(err, models.ErrStoreNotFound):
			log.Error("store not found", slog.Int("store_id", storeID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("store not found"))
		default:
			log.Error("failed to save rating", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to save rating"))
		}
		return
	}

	log.Info("rating saved", slog.Int("store_id", storeID), slog.String("result", result))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"result": result,
	}))
}
