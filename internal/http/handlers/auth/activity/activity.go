// Package activity реализует HTTP-обработчик записи активности:
// расчёт или экспорт попадает в журнал и увеличивает счётчики
// текущего пользователя.
package activity

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/investwisepro/admin-console/internal/http/middlewarectx"
	"github.com/investwisepro/admin-console/internal/http/response"
	"github.com/investwisepro/admin-console/internal/lib/sl"
	"github.com/investwisepro/admin-console/internal/models"
)

// Handler обрабатывает запросы на запись активности.
type Handler struct {
	log      *slog.Logger
	journal  Journal
	counters Counters
	validate *validator.Validate
}

// Journal описывает интерфейс журнала активности.
type Journal interface {
	RecordActivity(ctx context.Context, kind, user, label string) (*models.ActivityRecord, error)
}

// Counters описывает интерфейс счётчиков пользователя.
type Counters interface {
	RecordCalculation(ctx context.Context, sessionID string) error
	RecordExport(ctx context.Context, sessionID string) error
}

// New создает новый Handler с переданными логгером и сервисами.
func New(log *slog.Logger, journal Journal, counters Counters) *Handler {
	return &Handler{
		log:      log,
		journal:  journal,
		counters: counters,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Записать активность
// @Description Добавляет расчёт или экспорт в журнал и увеличивает счётчики пользователя.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.RecordActivityRequest true "Вид активности и метка"
// @Success 200 {object} map[string]any "Созданная запись журнала"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /activity [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.activity"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RecordActivityRequest
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

	email, _ := r.Context().Value(middlewarectx.Email).(string)
	sessionID, _ := r.Context().Value(middlewarectx.SessionID).(string)

	record, err := h.journal.RecordActivity(r.Context(), req.Type, email, req.Label)
	if err != nil {
		log.Error("failed to record activity", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to record activity"))
		return
	}

	switch req.Type {
	case models.ActivityCalculation:
		err = h.counters.RecordCalculation(r.Context(), sessionID)
	case models.ActivityExport:
		err = h.counters.RecordExport(r.Context(), sessionID)
	}
	if err != nil {
		log.Error("failed to bump user counters", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to record activity"))
		return
	}

	log.Info("activity recorded", slog.String("type", req.Type))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"record": record,
	}))
}
