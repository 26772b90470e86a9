package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investwisepro/admin-console/internal/lib/jwt"
	"github.com/investwisepro/admin-console/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken("admin@investwisepro.com", models.RoleAdmin, "session_1")
	require.NoError(t, err)

	cases := []struct {
		name       string
		authHeader string
		wantStatus int
		wantNext   bool
	}{
		{"валидный токен", "Bearer " + token, http.StatusOK, true},
		{"нет заголовка", "", http.StatusUnauthorized, false},
		{"не Bearer", "Basic abc", http.StatusUnauthorized, false},
		{"мусорный токен", "Bearer not-a-token", http.StatusUnauthorized, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, "admin@investwisepro.com", r.Context().Value(Email))
				assert.Equal(t, models.RoleAdmin, r.Context().Value(Role))
				assert.Equal(t, "session_1", r.Context().Value(SessionID))
			})

			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()
			JWTMiddleware(maker, discardLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantNext, nextCalled)
		})
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	cases := []struct {
		name       string
		role       any
		wantStatus int
		wantNext   bool
	}{
		{"роль admin", models.RoleAdmin, http.StatusOK, true},
		{"роль user", models.RoleUser, http.StatusForbidden, false},
		{"роль отсутствует", nil, http.StatusForbidden, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			if tc.role != nil {
				req = req.WithContext(context.WithValue(req.Context(), Role, tc.role))
			}
			rr := httptest.NewRecorder()
			AdminOnlyMiddleware(discardLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantNext, nextCalled)
		})
	}
}
