package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/store-rating/internal/models"
)

// UpsertRating атомарно вставляет или обновляет оценку пары
// (магазин, пользователь). Конкурентные вызовы для одной пары не могут
// создать две строки: конфликт по уникальному индексу разрешается в том же
// запросе через ON CONFLICT ... DO UPDATE. Возвращает true, если строка
// была создана, false — если обновлена существующая.
//
// Ссылка на несуществующий магазин возвращается как models.ErrStoreNotFound.
func (s *Storage) UpsertRating(ctx context.Context, rating models.Rating) (int, bool, error) {
	const op = "storage.UpsertRating"
	select {
	case <-ctx.Done():
		return 0, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	// xmax = 0 верно только для строки, вставленной этим же запросом,
	// поэтому отличает created от updated без второго обращения к базе.
	query := `INSERT INTO ratings (store_id, user_uid, rating, comment)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (store_id, user_uid) DO UPDATE
			  SET rating = EXCLUDED.rating,
			      comment = EXCLUDED.comment,
			      updated_at = now()
			  RETURNING id, (xmax = 0) AS inserted`
	var id int
	var inserted bool
	err := s.DB.QueryRowContext(ctx, query,
		rating.StoreID, rating.UserUID, rating.Rating, rating.Comment).Scan(&id, &inserted)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, false, fmt.Errorf("%s: %w", op, models.ErrStoreNotFound)
		}
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return id, inserted, nil
}

// DeleteRating удаляет оценку, только если она принадлежит указанному
// пользователю. Чужая и несуществующая оценка неразличимы, в обоих
// случаях возвращается models.ErrRatingNotFound.
func (s *Storage) DeleteRating(ctx context.Context, ratingID int, userUID string) error {
	const op = "storage.DeleteRating"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM ratings WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, ratingID, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrRatingNotFound)
	}
	return nil
}

// ListRatingsByUser возвращает оценки пользователя вместе с данными
// магазинов, новые первыми.
func (s *Storage) ListRatingsByUser(ctx context.Context, userUID string) ([]*models.RatingWithStore, error) {
	const op = "storage.ListRatingsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.store_id, r.rating, r.comment, r.created_at, r.updated_at,
			      s.name, s.email, s.address
			  FROM ratings r
			  JOIN stores s ON r.store_id = s.id
			  WHERE r.user_uid = $1
			  ORDER BY r.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.RatingWithStore
	for rows.Next() {
		var item models.RatingWithStore
		var comment sql.NullString
		if err := rows.Scan(&item.ID, &item.StoreID, &item.Rating, &comment,
			&item.CreatedAt, &item.UpdatedAt, &item.StoreName, &item.StoreEmail,
			&item.StoreAddress); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Comment = comment.String
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllRatings возвращает все оценки с данными пользователей и магазинов
// для административного списка.
func (s *Storage) ListAllRatings(ctx context.Context) ([]models.RatingWithUser, error) {
	const op = "storage.ListAllRatings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.store_id, s.name, u.name, u.email, r.rating, r.comment, r.updated_at
			  FROM ratings r
			  JOIN users u ON r.user_uid = u.uid
			  JOIN stores s ON r.store_id = s.id
			  ORDER BY r.updated_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.RatingWithUser
	for rows.Next() {
		var item models.RatingWithUser
		var comment sql.NullString
		if err := rows.Scan(&item.ID, &item.StoreID, &item.StoreName, &item.UserName,
			&item.UserEmail, &item.Rating, &comment, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Comment = comment.String
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountRatings возвращает количество оценок.
func (s *Storage) CountRatings(ctx context.Context) (int, error) {
	const op = "storage.CountRatings"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
