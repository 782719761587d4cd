package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/store-rating/internal/migrations"
)

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
// и применяет миграции проекта.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		_ = storage.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его uid.
func (f *TestDataFactory) CreateUser(t *testing.T, name, email, role string) string {
	uid := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		uid, name, email, "hashedpassword", role)
	require.NoError(t, err)
	return uid
}

// CreateStore создает тестовый магазин и возвращает его id.
func (f *TestDataFactory) CreateStore(t *testing.T, name, email, address, ownerUID string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO stores (name, email, address, owner_uid)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		name, email, address, ownerUID).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateRating создает тестовую оценку и возвращает ее id.
func (f *TestDataFactory) CreateRating(t *testing.T, storeID int, userUID string, rating int, comment string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO ratings (store_id, user_uid, rating, comment)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		storeID, userUID, rating, comment).Scan(&id)
	require.NoError(t, err)
	return id
}
