package contactcreate

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

// MockService реализует интерфейс contactcreate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Add(ctx context.Context, req models.ContactRequest) (*models.ContactSubmission, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.ContactSubmission), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestContactCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная отправка обращения",
			body: `{"name":"Alice","email":"a@b.com","subject":"Help","message":"ROI question"}`,
			setupMock: func(m *MockService) {
				c := &models.ContactSubmission{ID: "contact_1", Status: models.ContactStatusNew}
				m.On("Add", mock.Anything, models.ContactRequest{
					Name: "Alice", Email: "a@b.com", Subject: "Help", Message: "ROI question",
				}).Return(c, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"new"`,
		},
		{
			name:           "пустое сообщение",
			body:           `{"name":"Alice","email":"a@b.com","subject":"Help"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusOK,
			expectedBody:   `field Message is a required field`,
		},
		{
			name: "ошибка хранилища",
			body: `{"name":"Alice","email":"a@b.com","subject":"Help","message":"x"}`,
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, mock.Anything).Return(nil, errors.New("kv write failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to save contact submission"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
