// Package markread реализует HTTP-обработчик пометки уведомления
// прочитанным.
package markread

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/investwisepro/admin-console/internal/http/response"
	"github.com/investwisepro/admin-console/internal/lib/sl"
)

// Handler обрабатывает запросы пометки уведомлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики уведомлений.
type Service interface {
	MarkRead(ctx context.Context, id string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Пометить уведомление прочитанным
// @Description Помечает уведомление прочитанным. Повторная пометка и неизвестный ID — no-op.
// @Tags Notifications
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID уведомления"
// @Success 200 {object} response.Response "Уведомление помечено"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /notifications/{id}/read [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.markread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if err := h.service.MarkRead(r.Context(), id); err != nil {
		log.Error("failed to mark notification as read", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to mark notification as read"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
