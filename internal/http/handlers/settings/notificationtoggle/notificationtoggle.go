// Package notificationtoggle реализует HTTP-обработчик переключения
// категории уведомлений.
package notificationtoggle

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/investwisepro/admin-console/internal/http/response"
	"github.com/investwisepro/admin-console/internal/lib/sl"
	"github.com/investwisepro/admin-console/internal/models"
	"github.com/investwisepro/admin-console/internal/services/notification"
)

// Handler обрабатывает запросы переключения категории.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики настроек уведомлений.
type Service interface {
	ToggleSetting(ctx context.Context, id string, enabled bool) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Переключить категорию уведомлений
// @Description Включает или выключает категорию уведомлений по ID переключателя.
// @Tags Settings
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID переключателя"
// @Param request body models.ToggleNotificationSettingRequest true "Новое состояние"
// @Success 200 {object} response.Response "Переключатель обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Переключатель не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /settings/notifications/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.settings.notificationtoggle"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req models.ToggleNotificationSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.ToggleSetting(r.Context(), id, *req.Enabled); err != nil {
		if errors.Is(err, notification.ErrSettingNotFound) {
			log.Error("notification setting not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("notification setting not found"))
			return
		}
		log.Error("failed to toggle notification setting", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to toggle notification setting"))
		return
	}

	log.Info("notification setting toggled", slog.String("id", id), slog.Bool("enabled", *req.Enabled))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":      id,
		"enabled": *req.Enabled,
	}))
}
