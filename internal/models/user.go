// Package models содержит доменные структуры консоли администратора:
// пользователи и сессии, обращения, отчёты, уведомления, настройки
// и снимок состояния системы.
//
// JSON-теги хранимых сущностей повторяют формат слотов исходного
// приложения, чтобы содержимое хранилища оставалось совместимым.
package models

import "time"

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя.
type User struct {
	ID                string           `json:"id"`
	Email             string           `json:"email"` // Уникальна среди пользователей (проверка точным совпадением)
	Name              string           `json:"name"`
	RegistrationDate  time.Time        `json:"registrationDate"`
	LastLogin         time.Time        `json:"lastLogin"`
	TotalCalculations int              `json:"totalCalculations"`
	TotalExports      int              `json:"totalExports"`
	IsActive          bool             `json:"isActive"`
	Role              string           `json:"role"` // user или admin
	Country           string           `json:"country,omitempty"`
	Preferences       *UserPreferences `json:"preferences,omitempty"`
}

// UserPreferences хранит необязательные предпочтения пользователя.
type UserPreferences struct {
	DefaultScenario string `json:"defaultScenario,omitempty"`
	DefaultCountry  string `json:"defaultCountry,omitempty"`
	Notifications   bool   `json:"notifications"`
}

// Session представляет сессию пользователя. Сессии не удаляются:
// при выходе флаг IsActive переводится в false.
type Session struct {
	UserID       string    `json:"userId"`
	SessionID    string    `json:"sessionId"`
	LoginTime    time.Time `json:"loginTime"`
	LastActivity time.Time `json:"lastActivity"`
	IsActive     bool      `json:"isActive"`
}

// AdminCredentials хранит учётные данные администратора.
// Пароль хранится только в виде bcrypt-хэша.
type AdminCredentials struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// UserStats — производная сводка по пользователям,
// пересчитывается при каждом запросе.
type UserStats struct {
	TotalUsers       int    `json:"total_users"`
	ActiveUsers      int    `json:"active_users"`
	NewUsersThisWeek int    `json:"new_users_this_week"`
	GrowthRate       string `json:"growth_rate"` // Процент новых за неделю, один знак после запятой
}

// RegisterRequest — входные данные регистрации пользователя.
type RegisterRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"required"`
	Country string `json:"country,omitempty" validate:"omitempty"`
}

// LoginRequest — входные данные входа обычного пользователя.
// Пароль не требуется: упрощение, унаследованное от исходной системы.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AdminLoginRequest — входные данные входа администратора.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
