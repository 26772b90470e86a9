package models

import "time"

// Виды записей журнала активности.
const (
	ActivityCalculation = "calculation"
	ActivityExport      = "export"
)

// ActivityRecord — запись журнала расчётов (слот roi_calculations)
// или экспортов (слот pdf_exports). Журналы ограничены 1000 записями,
// новые добавляются в начало.
type ActivityRecord struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // calculation или export
	User      string    `json:"user"`
	Scenario  string    `json:"scenario,omitempty"` // Для расчётов
	Template  string    `json:"template,omitempty"` // Для экспортов
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"` // completed или failed
}

// RecordActivityRequest — входные данные записи активности.
type RecordActivityRequest struct {
	Type  string `json:"type" validate:"required,oneof=calculation export"`
	Label string `json:"label" validate:"required"` // Сценарий или шаблон
}
