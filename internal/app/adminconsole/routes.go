// Package adminconsole собирает административную консоль: маршруты,
// службы и жизненный цикл HTTP-сервера.
package adminconsole

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/investwisepro/admin-console/internal/http/handlers/admin/actions"
	"github.com/investwisepro/admin-console/internal/http/handlers/admin/recentactivity"
	"github.com/investwisepro/admin-console/internal/http/handlers/admin/stats"
	"github.com/investwisepro/admin-console/internal/http/handlers/auth/activity"
	"github.com/investwisepro/admin-console/internal/http/handlers/auth/adminlogin"
	"github.com/investwisepro/admin-console/internal/http/handlers/auth/login"
	"github.com/investwisepro/admin-console/internal/http/handlers/auth/logout"
	"github.com/investwisepro/admin-console/internal/http/handlers/auth/me"
	"github.com/investwisepro/admin-console/internal/http/handlers/auth/register"
	"github.com/investwisepro/admin-console/internal/http/handlers/contact/contactcreate"
	"github.com/investwisepro/admin-console/internal/http/handlers/contact/contactlist"
	"github.com/investwisepro/admin-console/internal/http/handlers/contact/contactremove"
	"github.com/investwisepro/admin-console/internal/http/handlers/contact/contactstatus"
	notificationlist "github.com/investwisepro/admin-console/internal/http/handlers/notification/list"
	"github.com/investwisepro/admin-console/internal/http/handlers/notification/markallread"
	"github.com/investwisepro/admin-console/internal/http/handlers/notification/markread"
	notificationremove "github.com/investwisepro/admin-console/internal/http/handlers/notification/remove"
	"github.com/investwisepro/admin-console/internal/http/handlers/report/download"
	"github.com/investwisepro/admin-console/internal/http/handlers/report/generate"
	reportlist "github.com/investwisepro/admin-console/internal/http/handlers/report/list"
	reportremove "github.com/investwisepro/admin-console/internal/http/handlers/report/remove"
	"github.com/investwisepro/admin-console/internal/http/handlers/settings/notificationsettings"
	"github.com/investwisepro/admin-console/internal/http/handlers/settings/notificationtoggle"
	"github.com/investwisepro/admin-console/internal/http/handlers/settings/systemsettings"
	"github.com/investwisepro/admin-console/internal/http/handlers/settings/systemupdate"
	systemhealth "github.com/investwisepro/admin-console/internal/http/handlers/system/health"
	"github.com/investwisepro/admin-console/internal/http/handlers/system/healthrefresh"
	"github.com/investwisepro/admin-console/internal/http/middlewarectx"
	"github.com/investwisepro/admin-console/internal/lib/jwt"
	adminservice "github.com/investwisepro/admin-console/internal/services/admin"
	contactservice "github.com/investwisepro/admin-console/internal/services/contact"
	healthservice "github.com/investwisepro/admin-console/internal/services/health"
	notificationservice "github.com/investwisepro/admin-console/internal/services/notification"
	reportservice "github.com/investwisepro/admin-console/internal/services/report"
	userservice "github.com/investwisepro/admin-console/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты консоли.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	userService *userservice.Service,
	contactService *contactservice.Service,
	adminService *adminservice.Service,
	reportService *reportservice.Service,
	notificationService *notificationservice.Service,
	healthService *healthservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, userService).ServeHTTP)
		r.Post("/login", login.New(logger, userService).ServeHTTP)
		r.Post("/admin/login", adminlogin.New(logger, userService).ServeHTTP)
		r.Post("/contacts", contactcreate.New(logger, contactService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Get("/me", me.New(logger, userService).ServeHTTP)
			r.Post("/logout", logout.New(logger, userService).ServeHTTP)
			r.Post("/activity", activity.New(logger, adminService, userService).ServeHTTP)
		})

		// Группа административных конечных точек
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.AdminOnlyMiddleware(logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/contacts", contactlist.New(logger, contactService).ServeHTTP)
			r.Patch("/contacts/{id}/status", contactstatus.New(logger, contactService).ServeHTTP)
			r.Delete("/contacts/{id}", contactremove.New(logger, contactService).ServeHTTP)

			r.Get("/admin/stats", stats.New(logger, adminService).ServeHTTP)
			r.Get("/admin/activity", recentactivity.New(logger, adminService).ServeHTTP)

			r.Post("/reports", generate.New(logger, reportService).ServeHTTP)
			r.Get("/reports", reportlist.New(logger, reportService).ServeHTTP)
			r.Get("/reports/{id}/download", download.New(logger, reportService).ServeHTTP)
			r.Delete("/reports/{id}", reportremove.New(logger, reportService).ServeHTTP)

			r.Get("/notifications", notificationlist.New(logger, notificationService).ServeHTTP)
			r.Post("/notifications/{id}/read", markread.New(logger, notificationService).ServeHTTP)
			r.Post("/notifications/read", markallread.New(logger, notificationService).ServeHTTP)
			r.Delete("/notifications/{id}", notificationremove.New(logger, notificationService).ServeHTTP)

			r.Get("/settings/notifications", notificationsettings.New(logger, notificationService).ServeHTTP)
			r.Patch("/settings/notifications/{id}", notificationtoggle.New(logger, notificationService).ServeHTTP)
			r.Get("/settings/system", systemsettings.New(logger, adminService).ServeHTTP)
			r.Patch("/settings/system/{id}", systemupdate.New(logger, adminService).ServeHTTP)

			r.Get("/system/health", systemhealth.New(logger, healthService).ServeHTTP)
			r.Post("/system/health/refresh", healthrefresh.New(logger, healthService).ServeHTTP)
			r.Post("/system/actions", actions.New(logger, adminService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
