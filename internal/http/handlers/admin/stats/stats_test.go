package stats

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/investwisepro/admin-console/internal/models"
)

// MockService реализует интерфейс stats.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Stats(ctx context.Context) (*models.AdminStats, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.(*models.AdminStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestStatsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная сводка",
			setupMock: func(m *MockService) {
				m.On("Stats", mock.Anything).Return(&models.AdminStats{
					TotalUsers:        3,
					TotalCalculations: 10,
					TotalExports:      2,
					Revenue:           70,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"revenue":70`,
		},
		{
			name: "ошибка агрегации",
			setupMock: func(m *MockService) {
				m.On("Stats", mock.Anything).Return(nil, errors.New("kv read failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to aggregate admin stats"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
