// Package systemsettings реализует HTTP-обработчик чтения системных
// настроек.
package systemsettings

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

// Handler обрабатывает запросы системных настроек.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики системных настроек.
type Service interface {
	SystemSettings(ctx context.Context) ([]models.SystemSetting, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Системные настройки
// @Description Возвращает системные настройки, засевая дефолты при первом чтении.
// @Tags Settings
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Системные настройки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /settings/system [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.settings.systemsettings"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	settings, err := h.service.SystemSettings(r.Context())
	if err != nil {
		log.Error("failed to read system settings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read system settings"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"settings": settings,
	}))
}
