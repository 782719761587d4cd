package models

import "time"

// Результат upsert-операции с оценкой: создана новая запись или
// обновлена существующая.
const (
	RatingCreated = "created"
	RatingUpdated = "updated"
)

// Rating представляет оценку магазина пользователем. На пару
// (магазин, пользователь) существует не больше одной оценки — это
// центральный инвариант системы, закреплённый уникальным индексом.
type Rating struct {
	ID        int       // Уникальный идентификатор оценки
	StoreID   int       // Магазин, к которому относится оценка
	UserUID   string    // Пользователь, поставивший оценку
	Rating    int       // Значение оценки, целое в диапазоне [1,5]
	Comment   string    // Необязательный комментарий
	CreatedAt time.Time // Дата первой оценки
	UpdatedAt time.Time // Дата последнего изменения
}

// RatingWithStore — оценка пользователя вместе с данными магазина,
// используется в списке собственных оценок.
type RatingWithStore struct {
	ID           int       `json:"id"`
	StoreID      int       `json:"store_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	StoreName    string    `json:"store_name"`
	StoreEmail   string    `json:"store_email"`
	StoreAddress string    `json:"store_address"`
}

// RatingWithUser — оценка вместе с данными оценившего пользователя,
// используется в панели владельца и в административном списке.
type RatingWithUser struct {
	ID        int       `json:"id"`
	StoreID   int       `json:"store_id"`
	StoreName string    `json:"store_name"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerStore — магазин владельца с агрегатами и списком оценок,
// используется в панели владельца.
type OwnerStore struct {
	StoreInfo
	AverageRating *float64         `json:"average_rating"`
	RatingsCount  int              `json:"ratings_count"`
	Ratings       []RatingWithUser `json:"ratings"`
}

// DummyRating используется для приёма оценки из JSON-запроса.
// Диапазон значения проверяется валидатором до обращения к хранилищу.
type DummyRating struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}
