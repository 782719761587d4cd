package models

import "time"

// Store представляет магазин каталога. Магазины создаются только
// администратором вместе с учётной записью владельца и далее не изменяются.
type Store struct {
	ID          int       // Уникальный идентификатор магазина
	Name        string    // Название магазина
	Email       string    // Контактная почта магазина
	Address     string    // Адрес магазина
	Description string    // Описание магазина
	OwnerUID    string    // Идентификатор владельца (пользователь с ролью store_owner)
	CreatedAt   time.Time // Дата создания
}

// StoreInfo — представление магазина для ответов API.
type StoreInfo struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	OwnerUID    string    `json:"owner_uid"`
	CreatedAt   time.Time `json:"created_at"`
}

// Info возвращает представление магазина для ответа API.
func (s *Store) Info() StoreInfo {
	return StoreInfo{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		Address:     s.Address,
		Description: s.Description,
		OwnerUID:    s.OwnerUID,
		CreatedAt:   s.CreatedAt,
	}
}

// OwnRating — оценка текущего пользователя, отдаваемая вместе с магазином
// в общем списке. nil-указатель в StoreWithRating означает, что пользователь
// магазин ещё не оценивал.
type OwnRating struct {
	ID      int    `json:"id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// StoreWithRating — строка витрины магазинов для обычного пользователя:
// агрегаты по всем оценкам плюс собственная оценка запрашивающего.
// AverageRating равен nil, если у магазина ещё нет ни одной оценки.
type StoreWithRating struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	Description   string     `json:"description"`
	OwnerName     string     `json:"owner_name"`
	AverageRating *float64   `json:"average_rating"`
	RatingsCount  int        `json:"ratings_count"`
	UserRating    *OwnRating `json:"user_rating,omitempty"`
}

// StoreDirectoryRow — строка административного списка магазинов:
// магазин с агрегатами, без привязки к конкретному пользователю.
type StoreDirectoryRow struct {
	StoreInfo
	AverageRating *float64 `json:"average_rating"`
	RatingsCount  int      `json:"ratings_count"`
}

// DummyStoreOwner — данные владельца в запросе на создание магазина.
type DummyStoreOwner struct {
	Name              string `json:"name" validate:"required,min=2,max=100"`
	Email             string `json:"email" validate:"required,email"`
	TemporaryPassword string `json:"temporary_password" validate:"required,min=6"`
}

// DummyStore используется для приёма данных из JSON-запроса на создание
// магазина вместе с учётной записью владельца.
type DummyStore struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Email       string          `json:"email" validate:"required,email"`
	Address     string          `json:"address" validate:"required,max=400"`
	Description string          `json:"description" validate:"max=1000"`
	Owner       DummyStoreOwner `json:"owner" validate:"required"`
}
