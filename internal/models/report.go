package models

import "time"

// Типы отчётов.
const (
	ReportTypeUser        = "user"
	ReportTypeCalculation = "calculation"
	ReportTypeExport      = "export"
	ReportTypeSupport     = "support"
	ReportTypeSystem      = "system"
	ReportTypeRevenue     = "revenue"
)

// Форматы отчётов. Excel намеренно рендерится как CSV —
// упрощение, унаследованное от исходной системы.
const (
	ReportFormatPDF   = "PDF"
	ReportFormatExcel = "Excel"
	ReportFormatCSV   = "CSV"
)

// Статусы жизненного цикла отчёта: generating -> completed | failed.
const (
	ReportStatusGenerating = "generating"
	ReportStatusCompleted  = "completed"
	ReportStatusFailed     = "failed"
)

// Report представляет запись отчёта в слоте admin_reports.
// Запись создаётся в статусе generating и после рендеринга
// переводится в completed (с заполненным DownloadURL) или failed.
type Report struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Format      string    `json:"format"`
	Size        string    `json:"size"` // Косметическая строка, не измеренный размер
	CreatedAt   time.Time `json:"createdAt"`
	Status      string    `json:"status"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
	FileName    string    `json:"fileName,omitempty"`
}

// GenerateReportRequest — входные данные запуска генерации отчёта.
type GenerateReportRequest struct {
	Type   string `json:"type" validate:"required,oneof=user calculation export support system revenue"`
	Format string `json:"format" validate:"required,oneof=PDF Excel CSV"`
}
