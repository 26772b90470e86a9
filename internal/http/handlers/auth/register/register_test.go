package register

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

	"github.com/investwisepro/admin-console/internal/models"
	"github.com/investwisepro/admin-console/internal/services/user"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"email":"alice@example.com","name":"Alice"}`,
			setupMock: func(m *MockService) {
				u := &models.User{ID: "user_1", Email: "alice@example.com", Name: "Alice", Role: models.RoleUser}
				m.On("Register", mock.Anything, models.RegisterRequest{Email: "alice@example.com", Name: "Alice"}).
					Return(u, "jwt-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"jwt-token"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "невалидный email",
			body:           `{"email":"not-an-email","name":"Alice"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusOK, // ошибка валидации отдаётся в теле со статусом 200
			expectedBody:   `field Email must be a valid email address`,
		},
		{
			name: "email уже занят",
			body: `{"email":"alice@example.com","name":"Alice"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything).Return(nil, "", user.ErrUserExists)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"email already registered"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
