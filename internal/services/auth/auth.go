// Package services содержит логику бизнес-уровня для регистрации,
// аутентификации и управления учётными записями.
package services

import (
	"context"
	"crypto/subtle"

	"github.com/magabrotheeeer/store-rating/internal/config"
	"github.com/magabrotheeeer/store-rating/internal/lib/jwt"
	"github.com/magabrotheeeer/store-rating/internal/lib/password"
	"github.com/magabrotheeeer/store-rating/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по почте или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по его UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// UpdatePassword заменяет хэш пароля пользователя.
	UpdatePassword(ctx context.Context, userUID, passwordHash string) error
}

// AuthService отвечает за регистрацию, авторизацию, смену пароля
// и валидацию JWT.
//
// Учётная запись администратора в хранилище отсутствует: это явный
// привилегированный обход, сверяющий конфигурационные учётные данные
// за постоянное время до любого обращения к базе и использующий
// сентинельный uid вне пространства обычных идентификаторов.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	admin    config.AdminCredentials
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, admin config.AdminCredentials) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		admin:    admin,
	}
}

// Register создает нового пользователя с хэшированием пароля и ролью normal_user.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword, address string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Address:      address,
		Role:         models.RoleNormalUser, // дефолтная роль при регистрации
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет учётные данные и генерирует JWT.
//
// Сначала проверяются учётные данные администратора — без обращения
// к хранилищу; затем идёт обычный путь: поиск по почте и сверка bcrypt-хэша.
// Неверная почта и неверный пароль для клиента неразличимы.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	if s.isAdmin(email, rawPassword) {
		admin := s.adminUser()
		token, err := s.jwtMaker.GenerateToken(admin.Email, admin.Role, admin.UID)
		if err != nil {
			return "", nil, err
		}
		return token, admin, nil
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, models.ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Email, user.Role, user.UID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает данные пользователя из claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email: claims.Email,
		Role:  claims.Role,
		UID:   claims.UserUID,
	}
	return user, nil
}

// GetProfile возвращает профиль пользователя по uid из токена.
// Для сентинельного uid администратора профиль синтезируется из конфига.
func (s *AuthService) GetProfile(ctx context.Context, userUID string) (*models.UserInfo, error) {
	if userUID == models.AdminUID {
		info := s.adminUser().Info()
		return &info, nil
	}
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	info := user.Info()
	return &info, nil
}

// ChangePassword меняет пароль пользователя после проверки текущего.
// Пароль администратора задаётся конфигурацией и через API не меняется.
func (s *AuthService) ChangePassword(ctx context.Context, userUID, currentPassword, newPassword string) error {
	if userUID == models.AdminUID {
		return models.ErrUserNotFound
	}
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return err
	}
	if err := password.CompareHash(user.PasswordHash, currentPassword); err != nil {
		return models.ErrInvalidCredentials
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userUID, hashed)
}

// isAdmin сверяет пару почта/пароль с учётными данными администратора.
// Оба сравнения выполняются за постоянное время и безусловно,
// чтобы по времени ответа нельзя было отличить совпавшую почту.
func (s *AuthService) isAdmin(email, rawPassword string) bool {
	emailMatch := subtle.ConstantTimeCompare([]byte(email), []byte(s.admin.AdminEmail))
	passwordMatch := subtle.ConstantTimeCompare([]byte(rawPassword), []byte(s.admin.AdminPassword))
	return emailMatch&passwordMatch == 1
}

// adminUser синтезирует модель администратора из конфигурации.
func (s *AuthService) adminUser() *models.User {
	return &models.User{
		UID:   models.AdminUID,
		Name:  s.admin.AdminName,
		Email: s.admin.AdminEmail,
		Role:  models.RoleAdmin,
	}
}
