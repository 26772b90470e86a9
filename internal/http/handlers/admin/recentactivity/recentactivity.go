// Package recentactivity реализует HTTP-обработчик последней активности:
// объединённые записи журналов расчётов и экспортов.
package recentactivity

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

// Handler обрабатывает запросы последней активности.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики журнала активности.
type Service interface {
	RecentActivity(ctx context.Context) ([]models.ActivityRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Последняя активность
// @Description Возвращает до десяти последних записей журналов расчётов и экспортов.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Записи журнала активности"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/activity [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.recentactivity"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	records, err := h.service.RecentActivity(r.Context())
	if err != nil {
		log.Error("failed to list recent activity", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list recent activity"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"activity": records,
	}))
}
