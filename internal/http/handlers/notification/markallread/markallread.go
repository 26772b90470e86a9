// Package markallread реализует HTTP-обработчик пометки всех
// уведомлений прочитанными.
package markallread

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/investwisepro/admin-console/internal/http/response"
	"github.com/investwisepro/admin-console/internal/lib/sl"
)

// Handler обрабатывает запросы пометки всех уведомлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики уведомлений.
type Service interface {
	MarkAllRead(ctx context.Context) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Пометить все уведомления прочитанными
// @Description Помечает все уведомления прочитанными. Пустая лента — no-op.
// @Tags Notifications
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Уведомления помечены"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /notifications/read [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.markallread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.MarkAllRead(r.Context()); err != nil {
		log.Error("failed to mark all notifications as read", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to mark all notifications as read"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "all notifications marked as read",
	}))
}
