// Package systemupdate реализует HTTP-обработчик обновления
// системной настройки с проверкой диапазона числовых значений.
package systemupdate

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
	"github.com/investwisepro/admin-console/internal/services/admin"
)

// Handler обрабатывает запросы обновления системных настроек.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики системных настроек.
type Service interface {
	UpdateSystemSetting(ctx context.Context, id string, value any) (*models.SystemSetting, error)
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
// @Summary Обновить системную настройку
// @Description Применяет новое значение настройки. Таймауты ограничены [1000,30000], лимиты — [1,1000].
// @Tags Settings
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID настройки"
// @Param request body models.UpdateSettingRequest true "Новое значение"
// @Success 200 {object} map[string]any "Обновлённая настройка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Настройка не найдена"
// @Failure 422 {object} response.ErrorResponse "Значение вне допустимого диапазона"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /settings/system/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.settings.systemupdate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req models.UpdateSettingRequest
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

	setting, err := h.service.UpdateSystemSetting(r.Context(), id, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrSettingNotFound):
			log.Error("system setting not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("system setting not found"))
		case errors.Is(err, admin.ErrValidation):
			log.Error("setting value out of range", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to update system setting", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update system setting"))
		}
		return
	}

	log.Info("system setting updated", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"setting": setting,
	}))
}
