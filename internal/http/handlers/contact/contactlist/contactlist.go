// Package contactlist реализует HTTP-обработчик списка обращений
// со счётчиками по статусам.
package contactlist

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

// Handler обрабатывает запросы списка обращений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики обращений.
type Service interface {
	List(ctx context.Context) ([]models.ContactSubmission, error)
	Counts(ctx context.Context) (models.ContactCounts, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список обращений
// @Description Возвращает все обращения и счётчики по статусам, новые обращения первыми.
// @Tags Contacts
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Обращения и счётчики"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contacts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	contacts, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list contact submissions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list contact submissions"))
		return
	}
	counts, err := h.service.Counts(r.Context())
	if err != nil {
		log.Error("failed to count contact submissions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to count contact submissions"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"contacts": contacts,
		"counts":   counts,
	}))
}
