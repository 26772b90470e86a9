package models

import "time"

// Статусы обращений через контактную форму.
const (
	ContactStatusNew     = "new"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

// ContactSubmission представляет обращение через контактную форму.
// Список хранится в слоте contact_submissions, новые записи добавляются в начало.
type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"` // new, read или replied
}

// ContactCounts — количество обращений по статусам.
type ContactCounts struct {
	Total   int `json:"total"`
	New     int `json:"new"`
	Read    int `json:"read"`
	Replied int `json:"replied"`
}

// ContactRequest — входные данные контактной формы.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ContactStatusRequest — входные данные смены статуса обращения.
type ContactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied"`
}
