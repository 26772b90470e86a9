package download

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/investwisepro/admin-console/internal/models"
	"github.com/investwisepro/admin-console/internal/services/report"
)

// MockService реализует интерфейс download.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Download(ctx context.Context, id string) (*models.Report, string, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Report), args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func TestDownloadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dir := t.TempDir()
	path := filepath.Join(dir, "revenue_report_2026-08-01.csv")
	require.NoError(t, os.WriteFile(path, []byte("report,Revenue Report\n"), 0o644))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "скачивание готового отчёта",
			id:   "report_1",
			setupMock: func(m *MockService) {
				r := &models.Report{ID: "report_1", Status: models.ReportStatusCompleted, FileName: "revenue_report_2026-08-01.csv"}
				m.On("Download", mock.Anything, "report_1").Return(r, path, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Revenue Report",
		},
		{
			name: "отчёт не найден",
			id:   "report_ghost",
			setupMock: func(m *MockService) {
				m.On("Download", mock.Anything, "report_ghost").Return(nil, "", report.ErrReportNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"report not found"`,
		},
		{
			name: "отчёт ещё генерируется",
			id:   "report_2",
			setupMock: func(m *MockService) {
				m.On("Download", mock.Anything, "report_2").Return(nil, "", report.ErrReportNotReady)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"report is not ready for download"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/reports/"+tt.id+"/download", nil)
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
