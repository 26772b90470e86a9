// Package health реализует HTTP-обработчик чтения снимка состояния
// системы.
package health

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

// Handler обрабатывает запросы снимка состояния.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики состояния системы.
type Service interface {
	Current(ctx context.Context) (*models.SystemHealth, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Состояние системы
// @Description Возвращает последний снимок состояния, пересчитывая его при первом чтении.
// @Tags System
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Снимок состояния"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /system/health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.system.health"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	snapshot, err := h.service.Current(r.Context())
	if err != nil {
		log.Error("failed to read system health", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read system health"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"health": snapshot,
	}))
}
