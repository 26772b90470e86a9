// Package notificationsettings реализует HTTP-обработчик чтения
// переключателей категорий уведомлений.
package notificationsettings

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

// Handler обрабатывает запросы переключателей уведомлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики настроек уведомлений.
type Service interface {
	Settings(ctx context.Context) ([]models.NotificationSetting, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Настройки уведомлений
// @Description Возвращает переключатели категорий, засевая дефолты при первом чтении.
// @Tags Settings
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Переключатели категорий"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /settings/notifications [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.settings.notificationsettings"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	settings, err := h.service.Settings(r.Context())
	if err != nil {
		log.Error("failed to read notification settings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read notification settings"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"settings": settings,
	}))
}
