package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/store-rating/internal/models"
)

// MockRatingRepository реализует интерфейс RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) UpsertRating(ctx context.Context, rating models.Rating) (int, bool, error) {
	args := m.Called(ctx, rating)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockRatingRepository) DeleteRating(ctx context.Context, ratingID int, userUID string) error {
	args := m.Called(ctx, ratingID, userUID)
	return args.Error(0)
}

func (m *MockRatingRepository) ListRatingsByUser(ctx context.Context, userUID string) ([]*models.RatingWithStore, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RatingWithStore), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRatingService_Upsert(t *testing.T) {
	tests := []struct {
		name       string
		rating     int
		inserted   bool
		wantResult string
	}{
		{name: "new rating is created", rating: 5, inserted: true, wantResult: models.RatingCreated},
		{name: "repeated rating is updated", rating: 3, inserted: false, wantResult: models.RatingUpdated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRatingRepository)
			repo.On("UpsertRating", mock.Anything, mock.MatchedBy(func(r models.Rating) bool {
				return r.StoreID == 7 && r.UserUID == "uid-1" && r.Rating == tt.rating
			})).Return(42, tt.inserted, nil)

			service := NewRatingService(repo, testLogger())

			result, err := service.Upsert(context.Background(), "uid-1", 7,
				models.DummyRating{Rating: tt.rating, Comment: "ok"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, result)
			repo.AssertExpectations(t)
		})
	}
}

func TestRatingService_Upsert_OutOfRange(t *testing.T) {
	repo := new(MockRatingRepository)
	service := NewRatingService(repo, testLogger())

	for _, rating := range []int{0, 6, -1, 100} {
		_, err := service.Upsert(context.Background(), "uid-1", 7, models.DummyRating{Rating: rating})
		require.ErrorIs(t, err, models.ErrRatingOutOfRange)
	}

	// Значение вне диапазона не доходит до хранилища
	repo.AssertNotCalled(t, "UpsertRating", mock.Anything, mock.Anything)
}

func TestRatingService_Delete(t *testing.T) {
	repo := new(MockRatingRepository)
	repo.On("DeleteRating", mock.Anything, 42, "uid-1").Return(models.ErrRatingNotFound)
	service := NewRatingService(repo, testLogger())

	err := service.Delete(context.Background(), "uid-1", 42)
	require.ErrorIs(t, err, models.ErrRatingNotFound)
	repo.AssertExpectations(t)
}

func TestRatingService_ListOwn(t *testing.T) {
	repo := new(MockRatingRepository)
	repo.On("ListRatingsByUser", mock.Anything, "uid-1").
		Return([]*models.RatingWithStore{{ID: 1, StoreID: 7, Rating: 5}}, nil)
	service := NewRatingService(repo, testLogger())

	got, err := service.ListOwn(context.Background(), "uid-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].Rating)
}
