// Package healthrefresh реализует HTTP-обработчик принудительного
// пересчёта снимка состояния системы.
package healthrefresh

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/investwisepro/admin-console/internal/http/response"
	"github.com/investwisepro/admin-console/internal/lib/sl"
	"github.com/investwisepro/admin-console/internal/models"
)

// Handler обрабатывает запросы пересчёта состояния.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики состояния системы.
type Service interface {
	Refresh(ctx context.Context) (*models.SystemHealth, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Пересчитать состояние системы
// @Description Строит новый снимок из источника замеров и сохраняет его.
// @Tags System
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Новый снимок состояния"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /system/health/refresh [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.system.healthrefresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	snapshot, err := h.service.Refresh(r.Context())
	if err != nil {
		log.Error("failed to refresh system health", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to refresh system health"))
		return
	}

	log.Info("system health refreshed")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"health": snapshot,
	}))
}
