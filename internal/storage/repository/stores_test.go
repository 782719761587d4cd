package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/store-rating/internal/models"
)

func TestStorage_CreateStoreWithOwner(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	store := models.Store{
		Name:        "New Shop",
		Email:       "shop@example.com",
		Address:     "Main street 1",
		Description: "groceries",
	}
	owner := models.User{
		Name:         "Shop Owner",
		Email:        "owner@example.com",
		PasswordHash: "hashedpassword",
	}

	created, ownerUID, err := storage.CreateStoreWithOwner(context.Background(), store, owner)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, ownerUID, created.OwnerUID)

	gotOwner, err := storage.GetUser(context.Background(), ownerUID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStoreOwner, gotOwner.Role)
	assert.Empty(t, gotOwner.Address)
}

func TestStorage_CreateStoreWithOwner_EmailTakenRollsBack(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "Existing", "owner@example.com", models.RoleNormalUser)

	_, _, err := storage.CreateStoreWithOwner(context.Background(),
		models.Store{Name: "New Shop", Email: "shop@example.com"},
		models.User{Name: "Shop Owner", Email: "owner@example.com", PasswordHash: "hashedpassword"},
	)
	require.ErrorIs(t, err, models.ErrEmailTaken)

	// Магазин не должен появиться при откате транзакции
	count, err := storage.CountStores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_ListStoresForUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "Owner", "owner@example.com", models.RoleStoreOwner)
	userUID := factory.CreateUser(t, "Rater", "rater@example.com", models.RoleNormalUser)
	otherUID := factory.CreateUser(t, "Other", "other@example.com", models.RoleNormalUser)
	ratedStore := factory.CreateStore(t, "Rated Shop", "rated@example.com", "Main street 1", ownerUID)
	factory.CreateStore(t, "Unrated Shop", "unrated@example.com", "Main street 2", ownerUID)
	factory.CreateRating(t, ratedStore, userUID, 5, "great")
	factory.CreateRating(t, ratedStore, otherUID, 2, "meh")

	got, err := storage.ListStoresForUser(context.Background(), userUID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byName := map[string]*models.StoreWithRating{}
	for _, item := range got {
		byName[item.Name] = item
	}

	rated := byName["Rated Shop"]
	require.NotNil(t, rated)
	require.NotNil(t, rated.AverageRating)
	assert.InDelta(t, 3.5, *rated.AverageRating, 0.001)
	assert.Equal(t, 2, rated.RatingsCount)
	require.NotNil(t, rated.UserRating)
	assert.Equal(t, 5, rated.UserRating.Rating)

	unrated := byName["Unrated Shop"]
	require.NotNil(t, unrated)
	assert.Nil(t, unrated.AverageRating)
	assert.Equal(t, 0, unrated.RatingsCount)
	assert.Nil(t, unrated.UserRating)
}

func TestStorage_ListStoresWithFilters(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "Owner", "owner@example.com", models.RoleStoreOwner)
	factory.CreateStore(t, "Bakery", "bakery@example.com", "Bread street 1", ownerUID)
	factory.CreateStore(t, "Butcher", "butcher@example.com", "Meat street 2", ownerUID)

	got, err := storage.ListStoresWithFilters(context.Background(), models.DirectoryFilter{Name: "bak"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bakery", got[0].Name)

	got, err = storage.ListStoresWithFilters(context.Background(),
		models.DirectoryFilter{SortBy: "name", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bakery", got[0].Name)
}

func TestStorage_ListStoresByOwner(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "Owner", "owner@example.com", models.RoleStoreOwner)
	strangerUID := factory.CreateUser(t, "Stranger", "stranger@example.com", models.RoleStoreOwner)
	userUID := factory.CreateUser(t, "Rater", "rater@example.com", models.RoleNormalUser)
	storeID := factory.CreateStore(t, "Shop", "shop@example.com", "Main street 1", ownerUID)
	factory.CreateStore(t, "Foreign Shop", "foreign@example.com", "Main street 2", strangerUID)
	factory.CreateRating(t, storeID, userUID, 4, "good")

	got, err := storage.ListStoresByOwner(context.Background(), ownerUID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Shop", got[0].Name)
	require.NotNil(t, got[0].AverageRating)
	assert.InDelta(t, 4.0, *got[0].AverageRating, 0.001)
	require.Len(t, got[0].Ratings, 1)
	assert.Equal(t, "Rater", got[0].Ratings[0].UserName)
	assert.Equal(t, "rater@example.com", got[0].Ratings[0].UserEmail)
}

func TestStorage_GetStore(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "Owner", "owner@example.com", models.RoleStoreOwner)
	storeID := factory.CreateStore(t, "Shop", "shop@example.com", "Main street 1", ownerUID)

	got, err := storage.GetStore(context.Background(), storeID)
	require.NoError(t, err)
	assert.Equal(t, "Shop", got.Name)

	_, err = storage.GetStore(context.Background(), 9999)
	require.ErrorIs(t, err, models.ErrStoreNotFound)
}
