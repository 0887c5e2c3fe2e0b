package driver

import (
	"abacus/internal/decimal"
)

// Options управляет вычислением выражений драйвером.
type Options struct {
	// MaxDiagnostics ограничивает ёмкость Bag и предел ошибок парсера.
	MaxDiagnostics int
	// Limits задаёт пределы точной арифметики (нулевое поле — без предела).
	Limits decimal.Limits
	// EnableTimings добавляет в Bag info-диагностику ObsTimings с фазами пайплайна.
	EnableTimings bool
}

// DefaultOptions возвращает опции по умолчанию: ёмкость диагностик 100,
// пределы decimal.DefaultLimits.
func DefaultOptions() Options {
	return Options{
		MaxDiagnostics: 100,
		Limits:         decimal.DefaultLimits(),
	}
}
