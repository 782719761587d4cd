package usercreate

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/store-rating/internal/models"
)

// MockService реализует интерфейс usercreate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateUser(ctx context.Context, name, email, rawPassword, address, role string) (string, error) {
	args := m.Called(ctx, name, email, rawPassword, address, role)
	return args.String(0), args.Error(1)
}

func TestUserCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "создание владельца магазина",
			body: `{"name":"Shop Owner","email":"owner@example.com","password":"secret123","role":"store_owner"}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, "Shop Owner", "owner@example.com", "secret123", "", "store_owner").
					Return("uid-1", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"useruid":"uid-1"`,
		},
		{
			name: "пустая роль допустима",
			body: `{"name":"Test User","email":"user@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, "Test User", "user@example.com", "secret123", "", "").
					Return("uid-2", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"useruid":"uid-2"`,
		},
		{
			name:           "роль admin отклоняется валидатором",
			body:           `{"name":"Test User","email":"user@example.com","password":"secret123","role":"admin"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Role has an unsupported value`,
		},
		{
			name: "почта уже занята",
			body: `{"name":"Test User","email":"taken@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, "Test User", "taken@example.com", "secret123", "", "").
					Return("", models.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `email already taken`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/admin/users", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
