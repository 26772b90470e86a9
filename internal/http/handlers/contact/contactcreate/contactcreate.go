// Package contactcreate реализует HTTP-обработчик публичной
// контактной формы.
package contactcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/investwisepro/admin-console/internal/http/response"
	"github.com/investwisepro/admin-console/internal/lib/sl"
	"github.com/investwisepro/admin-console/internal/models"
)

// Handler обрабатывает отправку контактной формы.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обращений.
type Service interface {
	Add(ctx context.Context, req models.ContactRequest) (*models.ContactSubmission, error)
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
// @Summary Отправить обращение
// @Description Сохраняет обращение контактной формы со статусом new.
// @Tags Contacts
// @Accept  json
// @Produce  json
// @Param request body models.ContactRequest true "Данные обращения"
// @Success 200 {object} map[string]any "Созданное обращение"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contacts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ContactRequest
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

	c, err := h.service.Add(r.Context(), req)
	if err != nil {
		log.Error("failed to save contact submission", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to save contact submission"))
		return
	}

	log.Info("contact submission saved", slog.String("id", c.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contact": c,
	}))
}
