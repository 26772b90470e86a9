package systemupdate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/investwisepro/admin-console/internal/models"
	"github.com/investwisepro/admin-console/internal/services/admin"
)

// MockService реализует интерфейс systemupdate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateSystemSetting(ctx context.Context, id string, value any) (*models.SystemSetting, error) {
	args := m.Called(ctx, id, value)
	if res := args.Get(0); res != nil {
		return res.(*models.SystemSetting), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSystemUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное обновление",
			id:   "set_api_timeout",
			body: `{"value":8000}`,
			setupMock: func(m *MockService) {
				st := &models.SystemSetting{ID: "set_api_timeout", Name: "apiTimeout", Value: float64(8000)}
				m.On("UpdateSystemSetting", mock.Anything, "set_api_timeout", float64(8000)).Return(st, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"apiTimeout"`,
		},
		{
			name: "значение вне диапазона",
			id:   "set_api_timeout",
			body: `{"value":60000}`,
			setupMock: func(m *MockService) {
				m.On("UpdateSystemSetting", mock.Anything, "set_api_timeout", float64(60000)).
					Return(nil, fmt.Errorf("%w: apiTimeout must be within [1000, 30000]", admin.ErrValidation))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `apiTimeout must be within [1000, 30000]`,
		},
		{
			name: "настройка не найдена",
			id:   "set_ghost",
			body: `{"value":1}`,
			setupMock: func(m *MockService) {
				m.On("UpdateSystemSetting", mock.Anything, "set_ghost", float64(1)).
					Return(nil, admin.ErrSettingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"system setting not found"`,
		},
		{
			name:           "значение не передано",
			id:             "set_api_timeout",
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusOK,
			expectedBody:   `field Value is a required field`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPatch, "/settings/system/"+tt.id, strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
