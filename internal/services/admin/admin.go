// Package services содержит бизнес-логику административных операций:
// списки пользователей и магазинов с фильтрами, создание учётных записей,
// создание магазина вместе с владельцем и глобальную статистику.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/store-rating/internal/lib/password"
	"github.com/magabrotheeeer/store-rating/internal/models"
)

// DirectoryRepository определяет методы хранилища, используемые
// административными операциями.
type DirectoryRepository interface {
	// ListUsersWithFilters возвращает пользователей по фильтрам.
	ListUsersWithFilters(ctx context.Context, filter models.DirectoryFilter) ([]*models.User, error)
	// GetUserWithRating возвращает пользователя со средней оценкой его магазинов.
	GetUserWithRating(ctx context.Context, userUID string) (*models.UserWithRating, error)
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// ListStoresWithFilters возвращает магазины по фильтрам с агрегатами.
	ListStoresWithFilters(ctx context.Context, filter models.DirectoryFilter) ([]*models.StoreDirectoryRow, error)
	// CreateStoreWithOwner создаёт магазин и владельца в одной транзакции.
	CreateStoreWithOwner(ctx context.Context, store models.Store, owner models.User) (*models.Store, string, error)
	// ListAllRatings возвращает все оценки с данными пользователей и магазинов.
	ListAllRatings(ctx context.Context) ([]models.RatingWithUser, error)
	// CountUsers возвращает количество пользователей.
	CountUsers(ctx context.Context) (int, error)
	// CountStores возвращает количество магазинов.
	CountStores(ctx context.Context) (int, error)
	// CountRatings возвращает количество оценок.
	CountRatings(ctx context.Context) (int, error)
}

// AdminService реализует операции, доступные только администратору.
type AdminService struct {
	repo DirectoryRepository
	log  *slog.Logger
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(repo DirectoryRepository, log *slog.Logger) *AdminService {
	return &AdminService{
		repo: repo,
		log:  log,
	}
}

// ListUsers возвращает пользователей по фильтрам. Администратор в базе
// не хранится и в список не попадает.
func (s *AdminService) ListUsers(ctx context.Context, filter models.DirectoryFilter) ([]models.UserInfo, error) {
	users, err := s.repo.ListUsersWithFilters(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]models.UserInfo, 0, len(users))
	for _, u := range users {
		result = append(result, u.Info())
	}
	return result, nil
}

// GetUser возвращает пользователя по UID; для владельцев магазинов
// дополнительно заполняется средняя оценка их магазинов.
func (s *AdminService) GetUser(ctx context.Context, userUID string) (*models.UserWithRating, error) {
	return s.repo.GetUserWithRating(ctx, userUID)
}

// CreateUser создает пользователя с явно заданной ролью.
// Пустая роль трактуется как normal_user; роль admin присвоить нельзя.
func (s *AdminService) CreateUser(ctx context.Context, name, email, rawPassword, address, role string) (string, error) {
	if role == "" {
		role = models.RoleNormalUser
	}
	if !models.IsAssignableRole(role) {
		return "", models.ErrInvalidRole
	}
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Address:      address,
		Role:         role,
	}
	return s.repo.RegisterUser(ctx, user)
}

// ListStores возвращает магазины по фильтрам с агрегатами по оценкам.
func (s *AdminService) ListStores(ctx context.Context, filter models.DirectoryFilter) ([]*models.StoreDirectoryRow, error) {
	return s.repo.ListStoresWithFilters(ctx, filter)
}

// ProvisionStore создаёт магазин и учётную запись владельца как одну
// логическую операцию: если почта владельца занята любым пользователем,
// не создаётся ни магазин, ни владелец. Временный пароль хэшируется
// немедленно и возвращается вызывающему единственный раз.
func (s *AdminService) ProvisionStore(ctx context.Context, req models.DummyStore) (*models.Store, *models.User, error) {
	hashed, err := password.GetHash(req.Owner.TemporaryPassword)
	if err != nil {
		return nil, nil, err
	}
	owner := models.User{
		Name:         req.Owner.Name,
		Email:        req.Owner.Email,
		PasswordHash: hashed,
		Role:         models.RoleStoreOwner,
	}
	store := models.Store{
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		Description: req.Description,
	}

	created, ownerUID, err := s.repo.CreateStoreWithOwner(ctx, store, owner)
	if err != nil {
		return nil, nil, err
	}
	owner.UID = ownerUID

	s.log.Info("store provisioned",
		slog.Int("store_id", created.ID),
		slog.String("owner_uid", ownerUID))
	return created, &owner, nil
}

// ListRatings возвращает все оценки системы.
func (s *AdminService) ListRatings(ctx context.Context) ([]models.RatingWithUser, error) {
	return s.repo.ListAllRatings(ctx)
}

// Stats возвращает глобальные счётчики. Значения считаются заново
// на каждый вызов: это редкое административное чтение.
func (s *AdminService) Stats(ctx context.Context) (*models.Stats, error) {
	totalUsers, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	totalStores, err := s.repo.CountStores(ctx)
	if err != nil {
		return nil, err
	}
	totalRatings, err := s.repo.CountRatings(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Stats{
		TotalUsers:   totalUsers,
		TotalStores:  totalStores,
		TotalRatings: totalRatings,
	}, nil
}
