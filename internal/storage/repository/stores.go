package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/store-rating/internal/models"
)

// storeSortColumns — разрешённые колонки сортировки списка магазинов.
var storeSortColumns = map[string]string{
	"id":         "s.id",
	"name":       "s.name",
	"email":      "s.email",
	"created_at": "s.created_at",
}

// CreateStoreWithOwner создаёт магазин и учётную запись его владельца
// в одной транзакции. Если почта владельца уже занята любым пользователем,
// откатываются обе вставки и возвращается models.ErrEmailTaken.
func (s *Storage) CreateStoreWithOwner(ctx context.Context, store models.Store, owner models.User) (*models.Store, string, error) {
	const op = "storage.CreateStoreWithOwner"
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var ownerUID string
	ownerQuery := `INSERT INTO users (name, email, password_hash, address, role)
				   VALUES ($1, $2, $3, '', $4)
				   RETURNING uid`
	if err := tx.QueryRowContext(ctx, ownerQuery,
		owner.Name, owner.Email, owner.PasswordHash, models.RoleStoreOwner).Scan(&ownerUID); err != nil {
		if isUniqueViolation(err) {
			return nil, "", fmt.Errorf("%s: %w", op, models.ErrEmailTaken)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	storeQuery := `INSERT INTO stores (name, email, address, description, owner_uid)
				   VALUES ($1, $2, $3, $4, $5)
				   RETURNING id, created_at`
	created := store
	created.OwnerUID = ownerUID
	if err := tx.QueryRowContext(ctx, storeQuery,
		store.Name, store.Email, store.Address, store.Description, ownerUID).Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &created, ownerUID, nil
}

// ListStoresForUser возвращает все магазины с агрегатами по оценкам и —
// отдельно — оценкой запрашивающего пользователя, если она есть.
// Среднее округляется до двух знаков; магазин без оценок отдаёт NULL,
// а не ноль. Список читается напрямую из базы, без кэша: пользователь
// сразу видит только что отправленную им оценку.
func (s *Storage) ListStoresForUser(ctx context.Context, userUID string) ([]*models.StoreWithRating, error) {
	const op = "storage.ListStoresForUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.name, s.address, s.description, u.name AS owner_name,
			      ROUND(AVG(r.rating)::numeric, 2) AS average_rating,
			      COUNT(r.id) AS ratings_count,
			      ur.id AS user_rating_id, ur.rating AS user_rating, ur.comment AS user_comment
			  FROM stores s
			  JOIN users u ON s.owner_uid = u.uid
			  LEFT JOIN ratings r ON s.id = r.store_id
			  LEFT JOIN ratings ur ON s.id = ur.store_id AND ur.user_uid = $1
			  GROUP BY s.id, s.name, s.address, s.description, s.created_at,
			      u.name, ur.id, ur.rating, ur.comment
			  ORDER BY s.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.StoreWithRating
	for rows.Next() {
		var item models.StoreWithRating
		var avg sql.NullFloat64
		var ownID, ownRating sql.NullInt64
		var ownComment sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.Address, &item.Description,
			&item.OwnerName, &avg, &item.RatingsCount, &ownID, &ownRating, &ownComment); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if avg.Valid {
			item.AverageRating = &avg.Float64
		}
		if ownID.Valid {
			item.UserRating = &models.OwnRating{
				ID:      int(ownID.Int64),
				Rating:  int(ownRating.Int64),
				Comment: ownComment.String,
			}
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListStoresWithFilters возвращает магазины для административного списка:
// необязательные фильтры подстроки и сортировка по разрешённой колонке,
// каждая строка — с агрегатами по оценкам.
func (s *Storage) ListStoresWithFilters(ctx context.Context, filter models.DirectoryFilter) ([]*models.StoreDirectoryRow, error) {
	const op = "storage.ListStoresWithFilters"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.name, s.email, s.address, s.description, s.owner_uid, s.created_at,
			      ROUND(AVG(r.rating)::numeric, 2) AS average_rating,
			      COUNT(r.id) AS ratings_count
			  FROM stores s
			  LEFT JOIN ratings r ON s.id = r.store_id
			  WHERE ($1 = '' OR s.name ILIKE '%' || $1 || '%')
			    AND ($2 = '' OR s.email ILIKE '%' || $2 || '%')
			    AND ($3 = '' OR s.address ILIKE '%' || $3 || '%')
			  GROUP BY s.id, s.name, s.email, s.address, s.description, s.owner_uid, s.created_at`
	query += orderClause(storeSortColumns, filter.SortBy, filter.SortOrder)

	rows, err := s.DB.QueryContext(ctx, query, filter.Name, filter.Email, filter.Address)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.StoreDirectoryRow
	for rows.Next() {
		var item models.StoreDirectoryRow
		var avg sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &item.Address,
			&item.Description, &item.OwnerUID, &item.CreatedAt, &avg, &item.RatingsCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if avg.Valid {
			item.AverageRating = &avg.Float64
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListStoresByOwner возвращает магазины владельца с агрегатами и полным
// списком оценок каждого магазина для панели владельца.
func (s *Storage) ListStoresByOwner(ctx context.Context, ownerUID string) ([]*models.OwnerStore, error) {
	const op = "storage.ListStoresByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.name, s.email, s.address, s.description, s.owner_uid, s.created_at,
			      ROUND(AVG(r.rating)::numeric, 2) AS average_rating,
			      COUNT(r.id) AS ratings_count
			  FROM stores s
			  LEFT JOIN ratings r ON s.id = r.store_id
			  WHERE s.owner_uid = $1
			  GROUP BY s.id, s.name, s.email, s.address, s.description, s.owner_uid, s.created_at
			  ORDER BY s.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.OwnerStore
	for rows.Next() {
		var item models.OwnerStore
		var avg sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &item.Address,
			&item.Description, &item.OwnerUID, &item.CreatedAt, &avg, &item.RatingsCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if avg.Valid {
			item.AverageRating = &avg.Float64
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, store := range result {
		ratings, err := s.ListRatingsForStore(ctx, store.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		store.Ratings = ratings
	}
	return result, nil
}

// ListRatingsForStore возвращает оценки магазина вместе с данными
// оценивших пользователей, новые изменения первыми.
func (s *Storage) ListRatingsForStore(ctx context.Context, storeID int) ([]models.RatingWithUser, error) {
	const op = "storage.ListRatingsForStore"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.store_id, s.name, u.name, u.email, r.rating, r.comment, r.updated_at
			  FROM ratings r
			  JOIN users u ON r.user_uid = u.uid
			  JOIN stores s ON r.store_id = s.id
			  WHERE r.store_id = $1
			  ORDER BY r.updated_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, storeID)
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

// GetStore возвращает магазин по его ID.
func (s *Storage) GetStore(ctx context.Context, storeID int) (*models.Store, error) {
	const op = "storage.GetStore"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, address, description, owner_uid, created_at
			  FROM stores
			  WHERE id = $1`
	var result models.Store
	row := s.DB.QueryRowContext(ctx, query, storeID)
	if err := row.Scan(&result.ID, &result.Name, &result.Email, &result.Address,
		&result.Description, &result.OwnerUID, &result.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrStoreNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// CountStores возвращает количество магазинов.
func (s *Storage) CountStores(ctx context.Context) (int, error) {
	const op = "storage.CountStores"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM stores`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
