// Package events определяет типизированные события консоли.
// Они заменяют сопоставление подстрок в тексте уведомлений:
// каждое событие обрабатывается явным обработчиком в сервисе
// уведомлений.
package events

import "github.com/investwisepro/admin-console/internal/models"

// Event — маркерный интерфейс события консоли.
type Event interface {
	Kind() string
}

// UserRegistered публикуется после успешной регистрации пользователя.
type UserRegistered struct {
	Email string
	Name  string
}

// HealthDegraded публикуется, когда подсистема перешла в warning или error.
type HealthDegraded struct {
	Component string // api, database или cache
	Status    string // warning или error
}

// RevenueMilestone публикуется при пересечении круглой отметки выручки.
type RevenueMilestone struct {
	Revenue float64
}

// ReportReady публикуется после завершения генерации отчёта.
type ReportReady struct {
	Report models.Report
}

// ReportFailed публикуется, если генерация отчёта завершилась ошибкой.
type ReportFailed struct {
	Report models.Report
	Reason string
}

// ContactReceived публикуется при новом обращении через контактную форму.
type ContactReceived struct {
	Subject string
	Email   string
}

// SettingChanged публикуется после применения системной настройки.
type SettingChanged struct {
	Name  string
	Value any
}

// ActionCompleted публикуется после завершения симулируемого
// системного действия (очистка кэша, бэкап, рестарт сервисов).
type ActionCompleted struct {
	Action string
}

func (UserRegistered) Kind() string   { return "user_registered" }
func (HealthDegraded) Kind() string   { return "health_degraded" }
func (RevenueMilestone) Kind() string { return "revenue_milestone" }
func (ReportReady) Kind() string      { return "report_ready" }
func (ReportFailed) Kind() string     { return "report_failed" }
func (ContactReceived) Kind() string  { return "contact_received" }
func (SettingChanged) Kind() string   { return "setting_changed" }
func (ActionCompleted) Kind() string  { return "action_completed" }
