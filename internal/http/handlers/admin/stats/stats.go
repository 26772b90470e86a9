// Package stats реализует HTTP-обработчик агрегированной сводки
// панели администратора.
package stats

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

// Handler обрабатывает запросы сводки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводки.
type Service interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сводка панели администратора
// @Description Возвращает агрегированную сводку: пользователи, журналы, выручка, сценарии, состояние системы.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Агрегированная сводка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to aggregate admin stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to aggregate admin stats"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stats": stats,
	}))
}
