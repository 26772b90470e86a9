package models

// ScenarioUsage — популярность сценария расчёта.
type ScenarioUsage struct {
	Name   string  `json:"name"`
	Usage  int     `json:"usage"`
	Growth float64 `json:"growth"` // Синтетический процент роста
}

// TemplateStat — статистика экспортов по шаблону.
type TemplateStat struct {
	Template   string `json:"template"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// AdminStats — агрегированная сводка для панели администратора.
// Все поля пересчитываются из журналов и хранилищ при каждом запросе;
// выручка — детерминированная линейная функция счётчиков.
type AdminStats struct {
	TotalUsers        int              `json:"total_users"`
	ActiveUsers       int              `json:"active_users"`
	TotalCalculations int              `json:"total_calculations"`
	TotalExports      int              `json:"total_exports"`
	Revenue           float64          `json:"revenue"`
	GrowthRate        float64          `json:"growth_rate"`
	TotalContacts     int              `json:"total_contacts"`
	NewContacts       int              `json:"new_contacts"`
	PopularScenarios  []ScenarioUsage  `json:"popular_scenarios"`
	ExportStats       []TemplateStat   `json:"export_stats"`
	RecentActivity    []ActivityRecord `json:"recent_activity"`
	SystemHealth      *SystemHealth    `json:"system_health,omitempty"`
}
