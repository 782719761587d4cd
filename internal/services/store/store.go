// Package services содержит бизнес-логику витрины магазинов:
// общий список с агрегатами для пользователя и панель владельца.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/store-rating/internal/models"
)

// StoreRepository определяет методы для чтения магазинов и агрегатов.
type StoreRepository interface {
	// ListStoresForUser возвращает все магазины с агрегатами и оценкой пользователя.
	ListStoresForUser(ctx context.Context, userUID string) ([]*models.StoreWithRating, error)
	// ListStoresByOwner возвращает магазины владельца с оценками.
	ListStoresByOwner(ctx context.Context, ownerUID string) ([]*models.OwnerStore, error)
}

// StoreService реализует чтение витрины магазинов. Агрегаты считаются
// базой на каждый запрос, кэша нет: пользователь сразу видит собственную
// только что отправленную оценку.
type StoreService struct {
	repo StoreRepository
	log  *slog.Logger
}

// NewStoreService создает новый экземпляр StoreService.
func NewStoreService(repo StoreRepository, log *slog.Logger) *StoreService {
	return &StoreService{
		repo: repo,
		log:  log,
	}
}

// ListForUser возвращает все магазины со средней оценкой (два знака,
// nil при отсутствии оценок), количеством оценок и собственной оценкой
// запрашивающего, новые магазины первыми.
func (s *StoreService) ListForUser(ctx context.Context, userUID string) ([]*models.StoreWithRating, error) {
	return s.repo.ListStoresForUser(ctx, userUID)
}

// OwnerDashboard возвращает магазины владельца с агрегатами и списком
// оценок. Владелец может иметь ноль и более магазинов.
func (s *StoreService) OwnerDashboard(ctx context.Context, ownerUID string) ([]*models.OwnerStore, error) {
	return s.repo.ListStoresByOwner(ctx, ownerUID)
}
