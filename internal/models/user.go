// Package models содержит доменные структуры системы рейтинга магазинов:
// пользователей, магазины, оценки и вспомогательные типы для приёма
// данных из JSON-запросов.
package models

import "time"

// Роли пользователей системы. Роль admin не хранится в базе —
// это единственная захардкоженная учётная запись администратора.
const (
	RoleAdmin      = "admin"
	RoleStoreOwner = "store_owner"
	RoleNormalUser = "normal_user"
)

// AdminUID — сентинельный идентификатор администратора. Обычные uid —
// это uuid, поэтому коллизия с реальным пользователем невозможна.
const AdminUID = "admin"

// IsAssignableRole проверяет, что роль может быть присвоена хранимому
// пользователю. Роль admin присвоить нельзя.
func IsAssignableRole(role string) bool {
	return role == RoleStoreOwner || role == RoleNormalUser
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Name         string    // Имя пользователя
	Email        string    // Электронная почта (уникальная, без учёта регистра)
	PasswordHash string    // Хэш пароля пользователя
	Address      string    // Адрес (может быть пустым)
	Role         string    // Роль пользователя: store_owner или normal_user
	CreatedAt    time.Time // Дата создания учётной записи
}

// UserInfo — представление пользователя для ответов API, без хэша пароля.
type UserInfo struct {
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserWithRating — пользователь вместе со средней оценкой его магазинов.
// AverageRating заполняется только для владельцев магазинов,
// nil — если оценок нет или пользователь не владелец.
type UserWithRating struct {
	UserInfo
	AverageRating *float64 `json:"average_rating"`
}

// Info возвращает представление пользователя без чувствительных полей.
func (u *User) Info() UserInfo {
	return UserInfo{
		UID:       u.UID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Stats — глобальные счётчики для административной панели.
type Stats struct {
	TotalUsers   int `json:"total_users"`
	TotalStores  int `json:"total_stores"`
	TotalRatings int `json:"total_ratings"`
}
