package models

import "time"

// Типы уведомлений.
const (
	NotificationTypeUser    = "user"
	NotificationTypeSupport = "support"
	NotificationTypeSystem  = "system"
	NotificationTypeRevenue = "revenue"
	NotificationTypeReport  = "report"
)

// Приоритеты уведомлений.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Notification представляет запись в слоте admin_notifications.
// Новые уведомления добавляются в начало списка.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"isRead"`
	Priority  string    `json:"priority"`
	ActionURL string    `json:"actionUrl,omitempty"`
}

// BroadcastMessage — сообщение, публикуемое в обменник notifications.
// Получатели необязательны для корректности.
type BroadcastMessage struct {
	// Type — "new_notification" при создании уведомления или
	// "contact_submissions_updated" после изменения списка обращений.
	Type         string       `json:"type"`
	Notification Notification `json:"notification"`
}
