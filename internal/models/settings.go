package models

// NotificationSetting — переключатель категории уведомлений.
// Список хранится в слоте notification_settings и заполняется
// значениями по умолчанию при первом чтении.
type NotificationSetting struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
	Type        string `json:"type"` // Тип уведомлений, к которому относится переключатель
}

// SystemSetting — системная настройка консоли.
// Числовые настройки, содержащие в имени Timeout или Limit,
// валидируются при обновлении.
type SystemSetting struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       any    `json:"value"`
	Type        string `json:"type"` // number, boolean или string
	Category    string `json:"category,omitempty"`
}

// UpdateSettingRequest — входные данные обновления настройки.
type UpdateSettingRequest struct {
	Value any `json:"value" validate:"required"`
}

// ToggleNotificationSettingRequest — входные данные переключателя уведомлений.
type ToggleNotificationSettingRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
