package models

// DirectoryFilter представляет параметры фильтрации и сортировки
// административных списков пользователей и магазинов. Пустая строка
// означает отсутствие фильтра по соответствующему полю.
//
// SortBy проверяется по явному списку разрешённых колонок в слое
// хранилища; неизвестные значения молча заменяются сортировкой по
// умолчанию (created_at DESC), а не превращаются в ошибку.
type DirectoryFilter struct {
	Name      string // Подстрока имени (без учёта регистра)
	Email     string // Подстрока почты (без учёта регистра)
	Address   string // Подстрока адреса (без учёта регистра)
	Role      string // Точное совпадение роли (только для пользователей)
	SortBy    string // Запрошенная колонка сортировки
	SortOrder string // asc или desc; всё остальное трактуется как desc
}
