// Package kv реализует адаптер хранилища "ключ — JSON-документ",
// единственный слой персистентности консоли. Каждый слот хранит
// JSON-массив или объект целиком; атомарности между слотами нет,
// побеждает последняя запись.
package kv

import (
	"context"
	"errors"
)

// Фиксированные имена слотов хранилища. Совпадают с ключами
// исходного приложения для совместимости содержимого.
const (
	KeyUsers                = "registered_users"
	KeySessions             = "user_sessions"
	KeyCurrentUser          = "current_user"
	KeyAdminCredentials     = "admin_credentials"
	KeyContactSubmissions   = "contact_submissions"
	KeyCalculations         = "roi_calculations"
	KeyExports              = "pdf_exports"
	KeyReports              = "admin_reports"
	KeyNotifications        = "admin_notifications"
	KeyNotificationSettings = "notification_settings"
	KeySystemSettings       = "system_settings"
	KeySystemHealth         = "system_health"
	KeyLastActivity         = "last_activity"
)

// ErrClosed возвращается при обращении к закрытому хранилищу.
var ErrClosed = errors.New("kv: store is closed")

// Store описывает контракт адаптера хранилища.
//
// Get десериализует значение слота в result и возвращает false,
// если слот отсутствует. Set сериализует значение в JSON и
// перезаписывает слот целиком. Delete отсутствующего слота — no-op.
type Store interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
