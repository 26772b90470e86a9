package models

import "time"

// Статусы подсистем.
const (
	StatusHealthy = "healthy"
	StatusWarning = "warning"
	StatusError   = "error"
)

// SystemHealth — снимок состояния системы. Хранится только последний
// снимок (слот system_health), история не ведётся.
type SystemHealth struct {
	APIStatus         string      `json:"apiStatus"`
	DatabaseStatus    string      `json:"databaseStatus"`
	CacheStatus       string      `json:"cacheStatus"`
	Uptime            string      `json:"uptime"`
	LastBackup        time.Time   `json:"lastBackup"`
	ActiveConnections int         `json:"activeConnections"`
	Performance       Performance `json:"performance"`
}

// Performance — синтетические показатели производительности.
type Performance struct {
	ResponseTime int     `json:"responseTime"` // мс
	ErrorRate    float64 `json:"errorRate"`    // доля ошибок
	Throughput   int     `json:"throughput"`   // запросов в минуту
}
