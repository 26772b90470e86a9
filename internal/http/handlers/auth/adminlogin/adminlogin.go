// Package adminlogin реализует HTTP-обработчик входа администратора
// по email и паролю.
package adminlogin

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
	"github.com/investwisepro/admin-console/internal/models"
	"github.com/investwisepro/admin-console/internal/services/user"
)

// Handler обрабатывает запросы на вход администратора.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики входа администратора.
type Service interface {
	LoginAdmin(ctx context.Context, email, password string) (*models.User, string, error)
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
// @Summary Войти как администратор
// @Description Проверяет email и пароль администратора и возвращает JWT-токен с ролью admin.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.AdminLoginRequest true "Учётные данные администратора"
// @Success 200 {object} map[string]any "Администратор и JWT-токен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учётные данные"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.adminlogin"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.AdminLoginRequest
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

	u, token, err := h.service.LoginAdmin(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			log.Error("invalid admin credentials", slog.String("email", req.Email))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("admin login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to login"))
		return
	}

	log.Info("admin logged in", slog.String("id", u.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user":  u,
		"token": token,
	}))
}
