package driver

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"abacus/internal/decimal"
	"abacus/internal/diag"
	"abacus/internal/lexer"
	"abacus/internal/observ"
	"abacus/internal/parser"
	"abacus/internal/source"
)

// ExprResult содержит результат вычисления одного выражения.
type ExprResult struct {
	FileSet *source.FileSet
	File    *source.File
	Value   decimal.Dec
	OK      bool
	Bag     *diag.Bag
}

// LineResult содержит результат одной непустой строки построчного входа.
type LineResult struct {
	Line  uint32 // 1-based номер строки в файле
	Text  string // выражение, как оно записано
	Value decimal.Dec
	OK    bool
}

// FileResult содержит результаты всех выражений одного входа
// вместе с общим Bag диагностик.
type FileResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Lines   []LineResult
	Bag     *diag.Bag
}

// HasErrors сообщает, была ли хотя бы одна error-диагностика.
func (r *FileResult) HasErrors() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// EvaluateSource вычисляет одно выражение из памяти (флаг -e, строка REPL).
// Это чистая точка входа: без I/O и без разделяемого состояния, повторный
// вызов с тем же входом даёт тот же результат.
func EvaluateSource(name string, text []byte, opts Options) *ExprResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, text)
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)

	var timer *observ.Timer
	var phase int
	if opts.EnableTimings {
		timer = observ.NewTimer()
		phase = timer.Begin(observ.PhaseEvaluate)
	}

	// AddVirtual нормализует содержимое, границу берём у файла, не у входа
	contentLen, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("file content overflow: %w", err))
	}
	value, ok := evaluateRange(file, 0, contentLen, bag, opts)

	// Стабильный порядок вывода; тайминги добавляются после сортировки
	bag.Sort()

	if timer != nil {
		timer.End(phase, "")
		report := timer.Report()
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "expression",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}

	return &ExprResult{FileSet: fs, File: file, Value: value, OK: ok, Bag: bag}
}

// EvaluateLines вычисляет построчный вход из памяти: каждая непустая строка —
// отдельное выражение (stdin, тестовые данные).
func EvaluateLines(name string, text []byte, opts Options) *FileResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, text)
	return evaluateFileLines(fs, fs.Get(fileID), opts, nil)
}

// EvaluateFile загружает файл выражений и вычисляет каждую непустую строку.
func EvaluateFile(path string, opts Options) (*FileResult, error) {
	var timer *observ.Timer
	var readPhase int
	if opts.EnableTimings {
		timer = observ.NewTimer()
		readPhase = timer.Begin(observ.PhaseRead)
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	if timer != nil {
		timer.End(readPhase, "")
	}

	return evaluateFileLines(fs, fs.Get(fileID), opts, timer), nil
}

// evaluateFileLines обходит строки файла; timer может быть nil.
func evaluateFileLines(fs *source.FileSet, file *source.File, opts Options, timer *observ.Timer) *FileResult {
	bag := diag.NewBag(opts.MaxDiagnostics)

	if opts.EnableTimings && timer == nil {
		timer = observ.NewTimer()
	}
	var evalPhase int
	if timer != nil {
		evalPhase = timer.Begin(observ.PhaseEvaluate)
	}

	numLines := file.NumLines()
	lines := make([]LineResult, 0, numLines)
	for n := uint32(1); n <= numLines; n++ {
		start, end := file.LineRange(n)
		text := string(file.Content[start:end])
		if strings.TrimSpace(text) == "" {
			continue
		}
		// Спаны токенов остаются абсолютными, диагностики указывают
		// в настоящую строку файла
		value, ok := evaluateRange(file, start, end, bag, opts)
		lines = append(lines, LineResult{Line: n, Text: text, Value: value, OK: ok})
	}

	// Стабильный порядок вывода; тайминги добавляются после сортировки
	bag.Sort()

	if timer != nil {
		timer.End(evalPhase, fmt.Sprintf("%d expressions", len(lines)))
		report := timer.Report()
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "file",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}

	return &FileResult{Path: file.Path, FileSet: fs, File: file, Lines: lines, Bag: bag}
}

// evaluateRange прогоняет диапазон [from, to) файла через lexer → parser.
// Диагностики обеих стадий попадают в общий bag.
func evaluateRange(file *source.File, from, to uint32, bag *diag.Bag, opts Options) (decimal.Dec, bool) {
	rep := &diag.BagReporter{Bag: bag}
	lx := lexer.NewRange(file, from, to, lexer.Options{
		Reporter: &lexer.ReporterAdapter{Target: rep},
	})

	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}

	res := parser.Evaluate(lx, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  rep,
		Limits:    opts.Limits,
	})
	return res.Value, res.OK
}
