// Package services содержит бизнес-логику работы с оценками магазинов.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/store-rating/internal/models"
)

// RatingRepository определяет методы для работы с оценками в хранилище.
type RatingRepository interface {
	// UpsertRating вставляет или обновляет оценку пары (магазин, пользователь).
	UpsertRating(ctx context.Context, rating models.Rating) (int, bool, error)
	// DeleteRating удаляет оценку, если она принадлежит пользователю.
	DeleteRating(ctx context.Context, ratingID int, userUID string) error
	// ListRatingsByUser возвращает оценки пользователя с данными магазинов.
	ListRatingsByUser(ctx context.Context, userUID string) ([]*models.RatingWithStore, error)
}

// RatingService реализует бизнес-логику оценок: идемпотентный upsert,
// удаление только собственных оценок и список своих оценок.
type RatingService struct {
	repo RatingRepository
	log  *slog.Logger
}

// NewRatingService создает новый экземпляр RatingService.
func NewRatingService(repo RatingRepository, log *slog.Logger) *RatingService {
	return &RatingService{
		repo: repo,
		log:  log,
	}
}

// Upsert сохраняет оценку пользователя для магазина. Повторный вызов той же
// пары обновляет существующую запись. Возвращает models.RatingCreated или
// models.RatingUpdated.
//
// Значение вне [1,5] отклоняется до обращения к хранилищу и строки
// не создаёт.
func (s *RatingService) Upsert(ctx context.Context, userUID string, storeID int, req models.DummyRating) (string, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return "", models.ErrRatingOutOfRange
	}

	rating := models.Rating{
		StoreID: storeID,
		UserUID: userUID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	id, created, err := s.repo.UpsertRating(ctx, rating)
	if err != nil {
		return "", err
	}

	result := models.RatingUpdated
	if created {
		result = models.RatingCreated
	}
	s.log.Info("rating saved",
		slog.Int("id", id),
		slog.Int("store_id", storeID),
		slog.String("result", result))
	return result, nil
}

// Delete удаляет оценку пользователя. Чужие и несуществующие оценки
// неразличимы: в обоих случаях возвращается models.ErrRatingNotFound.
func (s *RatingService) Delete(ctx context.Context, userUID string, ratingID int) error {
	return s.repo.DeleteRating(ctx, ratingID, userUID)
}

// ListOwn возвращает все оценки пользователя, новые первыми.
func (s *RatingService) ListOwn(ctx context.Context, userUID string) ([]*models.RatingWithStore, error) {
	return s.repo.ListRatingsByUser(ctx, userUID)
}
