package models

import "errors"

// Ошибки доменного уровня. Слой хранилища и сервисы возвращают их
// (обёрнутыми через %w), обработчики сопоставляют с HTTP-статусами
// через errors.Is. Всё остальное считается внутренней ошибкой сервера
// и наружу не раскрывается.
var (
	// ErrEmailTaken — пользователь с такой почтой уже существует.
	ErrEmailTaken = errors.New("email already taken")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrStoreNotFound — магазин не найден.
	ErrStoreNotFound = errors.New("store not found")
	// ErrRatingNotFound — оценка не найдена или принадлежит другому
	// пользователю. Случаи намеренно не различаются, чтобы не раскрывать
	// существование чужих оценок.
	ErrRatingNotFound = errors.New("rating not found")
	// ErrInvalidCredentials — неверная пара почта/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRatingOutOfRange — значение оценки вне диапазона [1,5].
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	// ErrInvalidRole — роль вне множества присваиваемых ролей.
	ErrInvalidRole = errors.New("invalid role")
)
