// Package download реализует HTTP-обработчик скачивания готового отчёта.
package download

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/investwisepro/admin-console/internal/http/response"
	"github.com/investwisepro/admin-console/internal/lib/sl"
	"github.com/investwisepro/admin-console/internal/models"
	"github.com/investwisepro/admin-console/internal/services/report"
)

// Handler обрабатывает запросы на скачивание отчётов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отчётов.
type Service interface {
	Download(ctx context.Context, id string) (*models.Report, string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Скачать отчёт
// @Description Отдает файл готового отчёта. Для generating и failed возвращает ошибку.
// @Tags Reports
// @Produce  octet-stream
// @Security BearerAuth
// @Param id path string true "ID отчёта"
// @Success 200 {file} file "Файл отчёта"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Отчёт не найден"
// @Failure 409 {object} response.ErrorResponse "Отчёт ещё не готов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reports/{id}/download [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.download"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	rep, path, err := h.service.Download(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrReportNotFound):
			log.Error("report not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("report not found"))
		case errors.Is(err, report.ErrReportNotReady):
			log.Error("report is not ready", slog.String("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("report is not ready for download"))
		default:
			log.Error("failed to resolve report file", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to download report"))
		}
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=\""+rep.FileName+"\"")
	http.ServeFile(w, r, path)
}
