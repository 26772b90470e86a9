package health

import (
	"math/rand"
	"time"
)

// Metrics — сырой замер показателей, из которого строится снимок состояния.
type Metrics struct {
	APIScore      float64 // [0,1), выше — хуже
	DatabaseScore float64
	CacheScore    float64

	UptimePercent     float64
	BackupAge         time.Duration
	ActiveConnections int
	ResponseTime      int // мс
	ErrorRate         float64
	Throughput        int // запросов в минуту
}

// MetricsSource поставляет замеры. В проде это синтетический
// генератор, в тестах — детерминированная заглушка.
type MetricsSource interface {
	Sample() Metrics
}

// RandomSource — синтетический генератор для демо-режима.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource создает генератор с собственным источником энтропии.
func NewRandomSource() *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Sample возвращает новый случайный замер.
func (s *RandomSource) Sample() Metrics {
	return Metrics{
		APIScore:          s.rng.Float64(),
		DatabaseScore:     s.rng.Float64(),
		CacheScore:        s.rng.Float64(),
		UptimePercent:     99.5 + s.rng.Float64()*0.49,
		BackupAge:         time.Duration(s.rng.Intn(24*60)) * time.Minute,
		ActiveConnections: 50 + s.rng.Intn(200),
		ResponseTime:      50 + s.rng.Intn(100),
		ErrorRate:         s.rng.Float64() * 0.05,
		Throughput:        800 + s.rng.Intn(400),
	}
}

// FixedSource возвращает один и тот же замер. Используется в тестах.
type FixedSource struct {
	M Metrics
}

// Sample возвращает заданный замер.
func (s FixedSource) Sample() Metrics { return s.M }
