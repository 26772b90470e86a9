package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/investwisepro/admin-console/internal/events"
	"github.com/investwisepro/admin-console/internal/models"
)

// Ошибки системных настроек.
var (
	ErrSettingNotFound = errors.New("system setting not found")
	ErrValidation      = errors.New("setting value out of range")
)

// Допустимые диапазоны числовых настроек.
const (
	timeoutMin = 1000
	timeoutMax = 30000
	limitMin   = 1
	limitMax   = 1000
)

// SystemSettings возвращает системные настройки, засевая дефолты
// при первом чтении.
func (s *Service) SystemSettings(ctx context.Context) ([]models.SystemSetting, error) {
	const op = "services.admin.SystemSettings"

	settings, err := s.repo.ListSystemSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(settings) > 0 {
		return settings, nil
	}

	settings = defaultSystemSettings()
	if err := s.repo.SaveSystemSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return settings, nil
}

// UpdateSystemSetting применяет новое значение настройки.
// Числовые настройки с Timeout или Limit в имени проверяются
// на допустимый диапазон.
func (s *Service) UpdateSystemSetting(ctx context.Context, id string, value any) (*models.SystemSetting, error) {
	const op = "services.admin.UpdateSystemSetting"

	settings, err := s.SystemSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i, st := range settings {
		if st.ID != id {
			continue
		}
		if err := validateSettingValue(st.Name, value); err != nil {
			return nil, err
		}
		settings[i].Value = value
		if err := s.repo.SaveSystemSettings(ctx, settings); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if s.sink != nil {
			s.sink.HandleEvent(ctx, events.SettingChanged{Name: st.Name, Value: value})
		}
		return &settings[i], nil
	}
	return nil, ErrSettingNotFound
}

// validateSettingValue проверяет диапазон числовых настроек.
// Значения приходят из JSON, поэтому числа имеют тип float64.
func validateSettingValue(name string, value any) error {
	n, ok := toFloat(value)
	if !ok {
		return nil
	}
	switch {
	case strings.Contains(name, "Timeout"):
		if n < timeoutMin || n > timeoutMax {
			return fmt.Errorf("%w: %s must be within [%d, %d]", ErrValidation, name, timeoutMin, timeoutMax)
		}
	case strings.Contains(name, "Limit"):
		if n < limitMin || n > limitMax {
			return fmt.Errorf("%w: %s must be within [%d, %d]", ErrValidation, name, limitMin, limitMax)
		}
	}
	return nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func defaultSystemSettings() []models.SystemSetting {
	return []models.SystemSetting{
		{ID: "set_maintenance", Name: "maintenanceMode", Description: "Disable public access during maintenance", Value: false, Type: "boolean", Category: "general"},
		{ID: "set_api_timeout", Name: "apiTimeout", Description: "Upstream API timeout, ms", Value: 5000, Type: "number", Category: "performance"},
		{ID: "set_session_timeout", Name: "sessionTimeout", Description: "Idle session timeout, ms", Value: 15000, Type: "number", Category: "security"},
		{ID: "set_export_limit", Name: "dailyExportLimit", Description: "Exports allowed per user per day", Value: 100, Type: "number", Category: "limits"},
		{ID: "set_user_limit", Name: "maxUsersLimit", Description: "Maximum registered users", Value: 1000, Type: "number", Category: "limits"},
		{ID: "set_support_email", Name: "supportEmail", Description: "Address shown on the contact page", Value: "support@investwisepro.com", Type: "string", Category: "general"},
	}
}
