// Package me реализует HTTP-обработчик получения текущего пользователя
// по идентификатору сессии из JWT-токена.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/investwisepro/admin-console/internal/http/middlewarectx"
	"github.com/investwisepro/admin-console/internal/http/response"
	"github.com/investwisepro/admin-console/internal/lib/sl"
	"github.com/investwisepro/admin-console/internal/models"
)

// Handler обрабатывает запросы текущего пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики текущего пользователя.
type Service interface {
	CurrentUser(ctx context.Context, sessionID string) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Возвращает пользователя активной сессии из JWT-токена.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Текущий пользователь или null"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sessionID, _ := r.Context().Value(middlewarectx.SessionID).(string)
	u, err := h.service.CurrentUser(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to resolve current user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to resolve current user"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": u,
	}))
}
