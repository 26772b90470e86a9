// Package notification содержит бизнес-логику ленты уведомлений:
// создание с широковещательной рассылкой, обработку типизированных
// событий консоли и переключатели категорий.
package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/investwisepro/admin-console/internal/events"
	"github.com/investwisepro/admin-console/internal/lib/clock"
	"github.com/investwisepro/admin-console/internal/lib/sl"
	"github.com/investwisepro/admin-console/internal/models"
)

// ErrSettingNotFound возвращается при переключении неизвестной категории.
var ErrSettingNotFound = errors.New("notification setting not found")

// Repository описывает контракт для работы с уведомлениями и их настройками.
type Repository interface {
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	PrependNotification(ctx context.Context, n models.Notification) error
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
	ListNotificationSettings(ctx context.Context) ([]models.NotificationSetting, error)
	SaveNotificationSettings(ctx context.Context, settings []models.NotificationSetting) error
}

// Broadcaster публикует уведомление во внешний канал (RabbitMQ).
// Доставка best-effort: ошибка публикации логируется и глотается.
type Broadcaster interface {
	Broadcast(msg models.BroadcastMessage) error
}

// Service реализует операции над лентой уведомлений.
type Service struct {
	repo        Repository
	broadcaster Broadcaster // может быть nil, если канал не настроен
	clock       clock.Clock
	log         *slog.Logger
}

// New создает новый Service. broadcaster может быть nil.
func New(repo Repository, broadcaster Broadcaster, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		broadcaster: broadcaster,
		clock:       clk,
		log:         log,
	}
}

// Create добавляет уведомление в начало ленты и рассылает его
// в широковещательный канал. Если категория выключена переключателем,
// уведомление не создаётся.
func (s *Service) Create(ctx context.Context, typ, message, priority string) (*models.Notification, error) {
	const op = "services.notification.Create"

	enabled, err := s.typeEnabled(ctx, typ)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !enabled {
		s.log.Debug("notification type disabled, skipping", slog.String("type", typ))
		return nil, nil
	}

	n := models.Notification{
		ID:        "notif_" + uuid.NewString(),
		Type:      typ,
		Message:   message,
		Timestamp: s.clock.Now(),
		Priority:  priority,
	}
	if err := s.repo.PrependNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.broadcaster != nil {
		msg := models.BroadcastMessage{Type: "new_notification", Notification: n}
		if err := s.broadcaster.Broadcast(msg); err != nil {
			s.log.Warn("failed to broadcast notification", sl.Op(op), sl.Err(err))
		}
	}
	return &n, nil
}

// HandleEvent преобразует типизированное событие консоли в уведомление.
// Каждый вариант обрабатывается явно, без разбора текста сообщений.
func (s *Service) HandleEvent(ctx context.Context, ev events.Event) {
	const op = "services.notification.HandleEvent"

	var err error
	switch e := ev.(type) {
	case events.UserRegistered:
		_, err = s.Create(ctx, models.NotificationTypeUser,
			fmt.Sprintf("New user registered: %s (%s)", e.Name, e.Email), models.PriorityMedium)
	case events.HealthDegraded:
		priority := models.PriorityMedium
		if e.Status == models.StatusError {
			priority = models.PriorityHigh
		}
		_, err = s.Create(ctx, models.NotificationTypeSystem,
			fmt.Sprintf("Subsystem %s degraded to %s", e.Component, e.Status), priority)
	case events.RevenueMilestone:
		_, err = s.Create(ctx, models.NotificationTypeRevenue,
			fmt.Sprintf("Revenue milestone reached: $%.2f", e.Revenue), models.PriorityHigh)
	case events.ReportReady:
		_, err = s.Create(ctx, models.NotificationTypeReport,
			fmt.Sprintf("Report %q is ready for download", e.Report.Name), models.PriorityLow)
	case events.ReportFailed:
		_, err = s.Create(ctx, models.NotificationTypeReport,
			fmt.Sprintf("Report %q failed: %s", e.Report.Name, e.Reason), models.PriorityHigh)
	case events.ContactReceived:
		_, err = s.Create(ctx, models.NotificationTypeSupport,
			fmt.Sprintf("New contact submission: %s (%s)", e.Subject, e.Email), models.PriorityMedium)
	case events.SettingChanged:
		_, err = s.Create(ctx, models.NotificationTypeSystem,
			fmt.Sprintf("Setting %q updated to %v", e.Name, e.Value), models.PriorityLow)
	case events.ActionCompleted:
		_, err = s.Create(ctx, models.NotificationTypeSystem,
			fmt.Sprintf("System action completed: %s", e.Action), models.PriorityLow)
	default:
		s.log.Warn("unknown event kind", sl.Op(op), slog.String("kind", ev.Kind()))
	}
	if err != nil {
		s.log.Error("failed to create notification for event",
			sl.Op(op), slog.String("kind", ev.Kind()), sl.Err(err))
	}
}

// List возвращает уведомления, самые новые в начале.
func (s *Service) List(ctx context.Context) ([]models.Notification, error) {
	return s.repo.ListNotifications(ctx)
}

// UnreadCount возвращает число непрочитанных уведомлений.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	items, err := s.repo.ListNotifications(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range items {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

// MarkRead помечает уведомление прочитанным. Отсутствующий ID — no-op.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkNotificationRead(ctx, id)
}

// MarkAllRead помечает все уведомления прочитанными.
func (s *Service) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllNotificationsRead(ctx)
}

// Delete удаляет уведомление. Отсутствующий ID — no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteNotification(ctx, id)
}

// Settings возвращает переключатели категорий, засевая дефолты
// при первом чтении.
func (s *Service) Settings(ctx context.Context) ([]models.NotificationSetting, error) {
	const op = "services.notification.Settings"

	settings, err := s.repo.ListNotificationSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(settings) > 0 {
		return settings, nil
	}

	settings = defaultSettings()
	if err := s.repo.SaveNotificationSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return settings, nil
}

// ToggleSetting включает или выключает категорию уведомлений.
func (s *Service) ToggleSetting(ctx context.Context, id string, enabled bool) error {
	const op = "services.notification.ToggleSetting"

	settings, err := s.Settings(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for i, st := range settings {
		if st.ID == id {
			settings[i].Enabled = enabled
			return s.repo.SaveNotificationSettings(ctx, settings)
		}
	}
	return ErrSettingNotFound
}

func (s *Service) typeEnabled(ctx context.Context, typ string) (bool, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return false, err
	}
	for _, st := range settings {
		if st.Type == typ {
			return st.Enabled, nil
		}
	}
	// категория без переключателя включена
	return true, nil
}

func defaultSettings() []models.NotificationSetting {
	return []models.NotificationSetting{
		{ID: "notify_user", Name: "User activity", Description: "Registrations and logins", Enabled: true, Type: models.NotificationTypeUser},
		{ID: "notify_support", Name: "Support requests", Description: "New contact form submissions", Enabled: true, Type: models.NotificationTypeSupport},
		{ID: "notify_system", Name: "System events", Description: "Health changes and system actions", Enabled: true, Type: models.NotificationTypeSystem},
		{ID: "notify_revenue", Name: "Revenue milestones", Description: "Revenue threshold crossings", Enabled: true, Type: models.NotificationTypeRevenue},
		{ID: "notify_report", Name: "Report lifecycle", Description: "Report generation results", Enabled: true, Type: models.NotificationTypeReport},
	}
}
