package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/store-rating/internal/models"
)

// userSortColumns — явный список разрешённых колонок сортировки списка
// пользователей. Значение из запроса никогда не подставляется в SQL
// напрямую: неизвестный ключ молча заменяется сортировкой по умолчанию.
var userSortColumns = map[string]string{
	"uid":        "uid",
	"name":       "name",
	"email":      "email",
	"role":       "role",
	"created_at": "created_at",
}

// orderClause возвращает безопасный ORDER BY для запрошенной пары
// колонка/направление по списку разрешённых колонок.
func orderClause(columns map[string]string, sortBy, sortOrder string) string {
	column, ok := columns[sortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
// Дубликат почты возвращается как models.ErrEmailTaken.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (name, email, password_hash, address, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Address, user.Role).Scan(&newUID); err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%s: %w", op, models.ErrEmailTaken)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по его почте без учёта регистра.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, password_hash, address, role, created_at
			  FROM users
			  WHERE lower(email) = lower($1)`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Address, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, password_hash, address, role, created_at
			  FROM users
			  WHERE uid = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Address, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserWithRating возвращает пользователя вместе со средней оценкой его
// магазинов. Для пользователей без роли store_owner среднее всегда nil.
func (s *Storage) GetUserWithRating(ctx context.Context, userUID string) (*models.UserWithRating, error) {
	const op = "storage.GetUserWithRating"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.uid, u.name, u.email, u.address, u.role, u.created_at,
			      CASE WHEN u.role = 'store_owner' THEN (
			          SELECT ROUND(AVG(r.rating)::numeric, 2)
			          FROM stores s
			          LEFT JOIN ratings r ON s.id = r.store_id
			          WHERE s.owner_uid = u.uid
			      ) ELSE NULL END AS average_rating
			  FROM users u
			  WHERE u.uid = $1`
	var result models.UserWithRating
	var avg sql.NullFloat64
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&result.UID, &result.Name, &result.Email, &result.Address,
		&result.Role, &result.CreatedAt, &avg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if avg.Valid {
		result.AverageRating = &avg.Float64
	}
	return &result, nil
}

// ListUsersWithFilters возвращает пользователей по необязательным фильтрам
// подстроки и точному фильтру роли, отсортированных по разрешённой колонке.
func (s *Storage) ListUsersWithFilters(ctx context.Context, filter models.DirectoryFilter) ([]*models.User, error) {
	const op = "storage.ListUsersWithFilters"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, password_hash, address, role, created_at
			  FROM users
			  WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
			    AND ($2 = '' OR email ILIKE '%' || $2 || '%')
			    AND ($3 = '' OR address ILIKE '%' || $3 || '%')
			    AND ($4 = '' OR role = $4)`
	query += orderClause(userSortColumns, filter.SortBy, filter.SortOrder)

	rows, err := s.DB.QueryContext(ctx, query, filter.Name, filter.Email, filter.Address, filter.Role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash,
			&u.Address, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePassword заменяет хэш пароля пользователя.
func (s *Storage) UpdatePassword(ctx context.Context, userUID, passwordHash string) error {
	const op = "storage.UpdatePassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET password_hash = $1 WHERE uid = $2`
	result, err := s.DB.ExecContext(ctx, query, passwordHash, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	return nil
}

// CountUsers возвращает количество зарегистрированных пользователей.
// Администратор в базе не хранится и в счётчик не входит.
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.CountUsers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
