package diagfmt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"abacus/internal/diag"
	"abacus/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() как есть (ожидается bag.Sort() заранее).
// Для каждой диагностики печатает:
//
//	<path>:<line>:<col>: <severity>[<CODE>]: <message>
//	    <строка исходника>
//	    ^~~~
//
// Подчёркивание выравнивается по дисплейной ширине символов, не по байтам.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	for i := range items {
		writeDiagnostic(w, &items[i], fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	head := headColor(d.Severity, opts.Color)
	label := fmt.Sprintf("%s[%s]", severityWord(d.Severity), d.Code.ID())

	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
		displayPath(file, opts.PathMode), start.Line, start.Col,
		head.Sprint(label), d.Message)

	if !opts.HideSource {
		writeSourceLine(w, file, d.Primary, start, end, head)
	}

	if opts.ShowNotes {
		for i := range d.Notes {
			writeNote(w, &d.Notes[i], fs, opts)
		}
	}
}

// writeSourceLine печатает строку исходника и каретку под спаном.
// Полностью нулевой спан (IO-ошибки, замеры) строки не имеет.
func writeSourceLine(w io.Writer, file *source.File, span source.Span, start, end source.LineCol, head *color.Color) {
	if span.Start == 0 && span.End == 0 {
		return
	}

	line := file.GetLine(start.Line)

	colIdx := int(start.Col) - 1
	if colIdx > len(line) {
		colIdx = len(line)
	}
	prefix := line[:colIdx]

	// Многострочный спан подчёркиваем до конца первой строки
	byteLen := int(span.End - span.Start)
	if end.Line != start.Line {
		byteLen = len(line) - colIdx
	}
	rest := line[colIdx:]
	if byteLen > len(rest) {
		byteLen = len(rest)
	}
	marked := rest[:byteLen]

	pad := runewidth.StringWidth(expandTabs(prefix))
	width := runewidth.StringWidth(expandTabs(marked))
	if width < 1 {
		// нулевые спаны (позиция после последнего токена) показываем одной кареткой
		width = 1
	}
	underline := "^" + strings.Repeat("~", width-1)

	fmt.Fprintf(w, "    %s\n", expandTabs(line))
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), head.Sprint(underline))
}

func writeNote(w io.Writer, note *diag.Note, fs *source.FileSet, opts PrettyOpts) {
	if note.Span.Start == 0 && note.Span.End == 0 {
		fmt.Fprintf(w, "    note: %s\n", note.Msg)
		return
	}
	file := fs.Get(note.Span.File)
	start, _ := fs.Resolve(note.Span)
	fmt.Fprintf(w, "    note: %s:%d:%d: %s\n",
		displayPath(file, opts.PathMode), start.Line, start.Col, note.Msg)
}

// displayPath форматирует путь согласно режиму. Имена виртуальных файлов
// (repl, stdin, -e) путями не являются и выводятся как есть.
func displayPath(file *source.File, mode PathMode) string {
	if file.Flags&source.FileVirtual != 0 {
		return file.Path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(file.Path); err == nil {
			return abs
		}
	case PathModeRelative:
		if cwd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(cwd, file.Path); err == nil && !strings.HasPrefix(rel, "..") {
				return filepath.ToSlash(rel)
			}
		}
	case PathModeBasename:
		return filepath.Base(file.Path)
	}
	return file.Path
}

// headColor возвращает цвет для severity; opts.Color управляет им явно,
// поверх глобального автоопределения терминала.
func headColor(sev diag.Severity, enabled bool) *color.Color {
	var c *color.Color
	switch sev {
	case diag.SevError:
		c = color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func severityWord(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	}
	return "info"
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}
