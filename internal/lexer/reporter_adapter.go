package lexer

import (
	"abacus/internal/diag"
	"abacus/internal/source"
)

// ReporterAdapter переводит сырые сигналы лексера в диагностики diag.
// Реализует Reporter; целевой diag.Reporter решает, куда их складывать.
type ReporterAdapter struct {
	Target diag.Reporter
}

// Report реализует интерфейс Reporter.
func (r *ReporterAdapter) Report(kind string, span source.Span, msg string) {
	if r.Target == nil {
		return
	}
	code := diag.LexInfo
	switch kind {
	case "UnknownChar":
		code = diag.LexUnknownChar
	case "BadNumber":
		code = diag.LexBadNumber
	}
	r.Target.Report(code, diag.SevError, span, msg, nil)
}
