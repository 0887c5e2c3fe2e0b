package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"abacus/internal/diag"
	"abacus/internal/source"
)

// singleDiag собирает FileSet и Bag с одной диагностикой над заданным входом
func singleDiag(t *testing.T, content string, start, end uint32, code diag.Code, msg string) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.abx", []byte(content))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(code, source.Span{File: fileID, Start: start, End: end}, msg))
	return bag, fs
}

func render(bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) string {
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, opts)
	return buf.String()
}

// ====== Заголовок и каретка ======

func TestPretty_HeadlineAndCaret(t *testing.T) {
	bag, fs := singleDiag(t, "1 / 0", 2, 3, diag.ArithDivisionByZero, "division by zero")

	got := render(bag, fs, PrettyOpts{})
	want := "test.abx:1:3: error[ARI3001]: division by zero\n" +
		"    1 / 0\n" +
		"      ^\n"
	if got != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestPretty_UnderlineCoversSpan(t *testing.T) {
	// спан всего числа 123 → ^~~
	bag, fs := singleDiag(t, "123 + 4", 0, 3, diag.LexBadNumber, "malformed number")

	got := render(bag, fs, PrettyOpts{})
	if !strings.Contains(got, "\n    ^~~\n") {
		t.Errorf("expected ^~~ underline, got:\n%s", got)
	}
}

func TestPretty_ZeroWidthSpanGetsSingleCaret(t *testing.T) {
	// позиция после последнего токена ("5 + " обрывается)
	bag, fs := singleDiag(t, "5 + ", 3, 3, diag.SynExpectExpression, "expected an expression")

	got := render(bag, fs, PrettyOpts{})
	want := "test.abx:1:4: error[SYN2002]: expected an expression\n" +
		"    5 + \n" +
		"       ^\n"
	if got != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestPretty_WideRuneUnderline(t *testing.T) {
	// полноширинный ＋ занимает три байта и две колонки дисплея
	bag, fs := singleDiag(t, "2 ＋ 2", 2, 5, diag.LexUnknownChar, "character is not part of the expression grammar")

	got := render(bag, fs, PrettyOpts{})
	lines := strings.Split(got, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected 3 lines, got:\n%s", got)
	}
	if lines[2] != "      ^~" {
		t.Errorf("wide rune underline = %q, want %q", lines[2], "      ^~")
	}
}

func TestPretty_ZeroSpanSkipsSource(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("test.abx", []byte("1 + 1"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.IOReadFailed, source.Span{}, "failed to read file: no such file"))

	got := render(bag, fs, PrettyOpts{})
	if strings.Count(got, "\n") != 1 {
		t.Errorf("zero span must render the headline only, got:\n%s", got)
	}
}

func TestPretty_HideSource(t *testing.T) {
	bag, fs := singleDiag(t, "1 / 0", 2, 3, diag.ArithDivisionByZero, "division by zero")

	got := render(bag, fs, PrettyOpts{HideSource: true})
	if strings.Contains(got, "1 / 0") {
		t.Errorf("HideSource must omit the source line, got:\n%s", got)
	}
	if !strings.Contains(got, "division by zero") {
		t.Errorf("headline must stay, got:\n%s", got)
	}
}

// ====== Цвет ======

func TestPretty_ColorEmitsANSI(t *testing.T) {
	bag, fs := singleDiag(t, "1 / 0", 2, 3, diag.ArithDivisionByZero, "division by zero")

	colored := render(bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(colored, "\x1b[") {
		t.Error("Color: true must emit ANSI escapes")
	}

	plain := render(bag, fs, PrettyOpts{Color: false})
	if strings.Contains(plain, "\x1b[") {
		t.Error("Color: false must not emit ANSI escapes")
	}
}

// ====== Ноты ======

func TestPretty_Notes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.abx", []byte("(1 + 2"))
	bag := diag.NewBag(10)
	d := diag.NewError(diag.SynUnclosedParen, source.Span{File: fileID, Start: 6, End: 6}, "expected \")\" to close \"(\"")
	d = d.WithNote(source.Span{}, "opening parenthesis is here")
	bag.Add(d)

	withNotes := render(bag, fs, PrettyOpts{ShowNotes: true})
	if !strings.Contains(withNotes, "note: opening parenthesis is here") {
		t.Errorf("expected the note, got:\n%s", withNotes)
	}

	without := render(bag, fs, PrettyOpts{})
	if strings.Contains(without, "note:") {
		t.Errorf("notes must be opt-in, got:\n%s", without)
	}
}

// ====== Пути ======

func TestDisplayPath_VirtualNeverMangled(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("stdin", []byte("1"))
	file := fs.Get(fileID)

	for _, mode := range []PathMode{PathModeAuto, PathModeAbsolute, PathModeRelative, PathModeBasename} {
		if got := displayPath(file, mode); got != "stdin" {
			t.Errorf("mode %d: virtual path = %q, want stdin", mode, got)
		}
	}
}

func TestSeverityWord(t *testing.T) {
	if severityWord(diag.SevError) != "error" {
		t.Error("SevError must render as error")
	}
	if severityWord(diag.SevWarning) != "warning" {
		t.Error("SevWarning must render as warning")
	}
	if severityWord(diag.SevInfo) != "info" {
		t.Error("SevInfo must render as info")
	}
}
