package generate

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
)

// MockService реализует интерфейс generate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Generate(ctx context.Context, req models.GenerateReportRequest) (*models.Report, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestGenerateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "запуск генерации",
			body: `{"type":"revenue","format":"PDF"}`,
			setupMock: func(m *MockService) {
				r := &models.Report{ID: "report_1", Status: models.ReportStatusGenerating}
				m.On("Generate", mock.Anything, models.GenerateReportRequest{Type: "revenue", Format: "PDF"}).
					Return(r, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"generating"`,
		},
		{
			name:           "неизвестный тип отчёта",
			body:           `{"type":"payroll","format":"PDF"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusOK,
			expectedBody:   `field Type must be one of`,
		},
		{
			name:           "неизвестный формат",
			body:           `{"type":"revenue","format":"DOCX"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusOK,
			expectedBody:   `field Format must be one of`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/reports", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
