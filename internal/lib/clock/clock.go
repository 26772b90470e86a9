// Package clock предоставляет интерфейс источника времени,
// чтобы сервисы с жизненным циклом (отчёты, мониторинг) могли
// работать в тестах с фиксированным временем.
package clock

import "time"

// Clock описывает источник текущего времени.
type Clock interface {
	Now() time.Time
}

// Real возвращает системное время.
type Real struct{}

// Now возвращает time.Now().
func (Real) Now() time.Time { return time.Now() }

// Fixed всегда возвращает одно и то же время. Используется в тестах.
type Fixed struct {
	T time.Time
}

// Now возвращает зафиксированное время.
func (f Fixed) Now() time.Time { return f.T }
