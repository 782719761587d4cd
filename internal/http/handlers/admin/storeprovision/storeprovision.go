// Package storeprovision реализует HTTP-обработчик создания магазина
// вместе с его владельцем одной транзакцией.
//
// Временный пароль владельца возвращается в ответе один раз и хранится
// только в виде хеша.
package storeprovision

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/store-rating/internal/http/response"
	"github.com/magabrotheeeer/store-rating/internal/lib/sl"
	"github.com/magabrotheeeer/store-rating/internal/models"
)

// Handler обрабатывает запросы на создание магазина с владельцем.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания магазина.
type Service interface {
	ProvisionStore(ctx context.Context, req models.DummyStore) (*models.Store, *models.User, error)
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
// @Summary Создать магазин с владельцем
// @Description Создает нового владельца с ролью store_owner и магазин на него одной транзакцией. Занятый email владельца отменяет всю операцию.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyStore true "Данные магазина и владельца"
// @Success 200 {object} map[string]any "Магазин и владелец созданы"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 409 {object} response.ErrorResponse "Email владельца уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/stores [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.storeprovision"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyStore
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded",
		slog.String("store_name", req.Name),
		slog.String("owner_email", req.Owner.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	store, owner, err := h.service.ProvisionStore(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			log.Error("owner email already taken", slog.String("owner_email", req.Owner.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("owner email already taken"))
			return
		}
		log.Error("failed to provision store", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to provision store"))
		return
	}

	log.Info("store provisioned",
		slog.Int("store_id", store.ID),
		slog.String("owner_uid", owner.UID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"store": store.Info(),
		"owner": map[string]any{
			"useruid":            owner.UID,
			"name":               owner.Name,
			"email":              owner.Email,
			"temporary_password": req.Owner.TemporaryPassword,
		},
	}))
}
