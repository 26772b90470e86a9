// Package actions реализует HTTP-обработчик симулируемых системных
// действий: очистка кэша, бэкап, рестарт сервисов.
package actions

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/investwisepro/admin-console/internal/http/response"
	"github.com/investwisepro/admin-console/internal/lib/sl"
	"github.com/investwisepro/admin-console/internal/services/admin"
)

// Request — входные данные системного действия.
type Request struct {
	Action string `json:"action" validate:"required,oneof=clear_cache backup restart_services"`
}

// Handler обрабатывает запросы системных действий.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики системных действий.
type Service interface {
	RunAction(ctx context.Context, action string) error
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
// @Summary Выполнить системное действие
// @Description Выполняет симулируемое действие clear_cache, backup или restart_services.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Имя действия"
// @Success 200 {object} response.Response "Действие выполнено"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неизвестное действие"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /system/actions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.actions"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	if err := h.service.RunAction(r.Context(), req.Action); err != nil {
		if errors.Is(err, admin.ErrUnknownAction) {
			log.Error("unknown system action", slog.String("action", req.Action))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown system action"))
			return
		}
		log.Error("system action failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("system action failed"))
		return
	}

	log.Info("system action completed", slog.String("action", req.Action))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"action":  req.Action,
		"message": "action completed",
	}))
}
