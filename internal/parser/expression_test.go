package parser_test

import (
	"strings"
	"testing"

	"abacus/internal/decimal"
	"abacus/internal/diag"
	"abacus/internal/lexer"
	"abacus/internal/parser"
	"abacus/internal/source"
)

// evalExpr прогоняет строку через полный пайплайн lexer → parser → decimal
func evalExpr(input string) parser.Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.abx", []byte(input))
	file := fs.Get(id)

	bag := diag.NewBag(100)
	rep := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: &lexer.ReporterAdapter{Target: rep}})
	return parser.Evaluate(lx, parser.Options{
		MaxErrors: 100,
		Reporter:  rep,
		Limits:    decimal.DefaultLimits(),
	})
}

// expectValue проверяет успешное вычисление и каноничную строку результата
func expectValue(t *testing.T, input, want string) {
	t.Helper()
	res := evalExpr(input)
	if !res.OK {
		t.Fatalf("Evaluate(%q) failed; diagnostics: %v", input, diagCodes(res.Bag))
	}
	if res.Bag.HasErrors() {
		t.Fatalf("Evaluate(%q) reported errors despite OK: %v", input, diagCodes(res.Bag))
	}
	if got := res.Value.String(); got != want {
		t.Errorf("Evaluate(%q) = %s, want %s", input, got, want)
	}
}

// expectDiag проверяет отказ с первой диагностикой заданного кода
func expectDiag(t *testing.T, input string, code diag.Code) {
	t.Helper()
	res := evalExpr(input)
	if res.OK {
		t.Fatalf("Evaluate(%q) unexpectedly succeeded with %s", input, res.Value.String())
	}
	if !res.Value.IsZero() {
		t.Errorf("failed evaluation must not leak a partial value, got %s", res.Value.String())
	}
	if res.Bag.Len() == 0 {
		t.Fatalf("Evaluate(%q): no diagnostics recorded", input)
	}
	if got := res.Bag.Items()[0].Code; got != code {
		t.Errorf("Evaluate(%q): first diagnostic %s, want %s", input, got.ID(), code.ID())
	}
}

func diagCodes(bag *diag.Bag) []string {
	if bag == nil {
		return nil
	}
	codes := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		codes = append(codes, d.Code.ID())
	}
	return codes
}

// ====== Значения и приоритеты ======

func TestEvaluate_Literals(t *testing.T) {
	tests := []struct{ input, want string }{
		{"5", "5"},
		{"007", "7"},
		{"0.5", "0.5"},
		{".5", "0.5"},
		{"5.", "5"},
		{"123.450", "123.45"},
		{"0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectValue(t, tt.input, tt.want)
		})
	}
}

func TestEvaluate_Precedence(t *testing.T) {
	tests := []struct{ input, want string }{
		{"5 + 8 * 2", "21"},
		{"(5 + 8) * 2", "26"},
		{"2 + 3 * 4 ^ 2", "50"},
		{"2 * 3 + 4 * 5", "26"},
		{"10 - 2 + 3", "11"},  // левая ассоциативность
		{"100 - 20 - 30", "50"},
		{"100 / 10 / 2", "5"},
		{"3 * (2 + 4) / 9", "2"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectValue(t, tt.input, tt.want)
		})
	}
}

func TestEvaluate_PowerRightAssociative(t *testing.T) {
	// 2^3^2 = 2^(3^2) = 2^9 = 512, а не (2^3)^2 = 64
	expectValue(t, "2^3^2", "512")
	expectValue(t, "2 ^ 2 ^ 3", "256")
	expectValue(t, "(2^3)^2", "64")
}

func TestEvaluate_UnaryMinus(t *testing.T) {
	tests := []struct{ input, want string }{
		{"-5", "-5"},
		{"+5", "5"},
		{"--5", "5"},
		{"-0.5", "-0.5"},
		{"5 * -2", "-10"},
		{"-(5 + 3)", "-8"},
		{"-2^2", "-4"}, // минус слабее степени: -(2^2)
		{"(-2)^2", "4"},
		{"-2^3", "-8"},
		{"2 - -3", "5"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectValue(t, tt.input, tt.want)
		})
	}
}

func TestEvaluate_ExactDecimal(t *testing.T) {
	tests := []struct{ input, want string }{
		{"0.1 + 0.2", "0.3"}, // точная десятичная арифметика, не 0.30000000000000004
		{"0.1 + 0.2 - 0.3", "0"},
		{"0.3 - 0.1", "0.2"},
		{"1 / 4", "0.25"},
		{"1 / 8 + 1 / 8", "0.25"},
		{"2.5 * 4", "10"},
		{"0.1 * 0.1", "0.01"},
		{"10 / 4", "2.5"},
		{"1.5 ^ 2", "2.25"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectValue(t, tt.input, tt.want)
		})
	}
}

func TestEvaluate_DeepNesting(t *testing.T) {
	expectValue(t, "((((5))))", "5")
	expectValue(t, "(((1 + 2) * 3) - (4 / (2 ^ 1)))", "7")
}

func TestEvaluate_LongChain(t *testing.T) {
	parts := make([]string, 100)
	for i := range parts {
		parts[i] = "1"
	}
	expectValue(t, strings.Join(parts, " + "), "100")
}

// ====== Арифметические отказы ======

func TestEvaluate_DivisionByZero(t *testing.T) {
	expectDiag(t, "1 / 0", diag.ArithDivisionByZero)
	expectDiag(t, "5 / (3 - 3)", diag.ArithDivisionByZero)
	expectDiag(t, "0 / 0", diag.ArithDivisionByZero)
}

func TestEvaluate_NonTerminatingDivision(t *testing.T) {
	expectDiag(t, "1 / 3", diag.ArithNonTerminatingDivision)
	expectDiag(t, "10 / 7", diag.ArithNonTerminatingDivision)
}

func TestEvaluate_UnsupportedExponent(t *testing.T) {
	expectDiag(t, "2 ^ 1.5", diag.ArithUnsupportedExponent)
	expectDiag(t, "2 ^ -1", diag.ArithUnsupportedExponent)
	expectDiag(t, "4 ^ (1 - 2)", diag.ArithUnsupportedExponent)
}

func TestEvaluate_ResultTooLarge(t *testing.T) {
	// отбивается лимитами до того, как память кончится
	expectDiag(t, "9 ^ 99999999", diag.ArithResultTooLarge)
	expectDiag(t, "123456789 ^ 99999", diag.ArithResultTooLarge)
}

// ====== Синтаксические отказы ======

func TestEvaluate_SyntaxErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{"5 + ", diag.SynExpectExpression},
		{"5 +", diag.SynExpectExpression},
		{"(5 + 3", diag.SynUnclosedParen},
		{"((1)", diag.SynUnclosedParen},
		{"()", diag.SynEmptyParens},
		{"( )", diag.SynEmptyParens},
		{"5 5", diag.SynTrailingInput},
		{"5)", diag.SynTrailingInput},
		{"(1+2))", diag.SynTrailingInput},
		{"* 5", diag.SynUnexpectedToken},
		{"5 + * 2", diag.SynUnexpectedToken},
		{")", diag.SynUnexpectedToken},
		{"", diag.SynEmptyInput},
		{"   \t  ", diag.SynEmptyInput},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectDiag(t, tt.input, tt.code)
		})
	}
}

func TestEvaluate_LexErrors(t *testing.T) {
	expectDiag(t, "5 $ 3", diag.LexUnknownChar)
	expectDiag(t, "2 = 2", diag.LexUnknownChar)
	expectDiag(t, "5 + .", diag.LexBadNumber)
	expectDiag(t, ". + 5", diag.LexBadNumber)
}

func TestEvaluate_SingleDiagnosticPerFailure(t *testing.T) {
	// отказ быстрый: одна точная диагностика, без каскада
	for _, input := range []string{"5 $ 3", "1 / 0", "5 + ", "()"} {
		res := evalExpr(input)
		if res.Bag.Len() != 1 {
			t.Errorf("Evaluate(%q): expected exactly 1 diagnostic, got %v", input, diagCodes(res.Bag))
		}
	}
}

// ====== Спаны диагностик ======

func TestEvaluate_ErrorSpans(t *testing.T) {
	tests := []struct {
		input      string
		start, end uint32
	}{
		{"1 / 0", 2, 3},  // span оператора
		{"5 + ", 3, 3},   // сразу после последнего токена
		{"(5 + 3", 6, 6}, // позиция пропавшей скобки
		{"5 5", 2, 3},    // лишний токен
		{"5 $ 3", 2, 3},  // сам символ
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := evalExpr(tt.input)
			if res.Bag.Len() == 0 {
				t.Fatal("expected a diagnostic")
			}
			sp := res.Bag.Items()[0].Primary
			if sp.Start != tt.start || sp.End != tt.end {
				t.Errorf("span = (%d,%d), want (%d,%d)", sp.Start, sp.End, tt.start, tt.end)
			}
		})
	}
}

func TestEvaluate_UnclosedParenNote(t *testing.T) {
	res := evalExpr("(5 + 3")
	if res.Bag.Len() == 0 {
		t.Fatal("expected a diagnostic")
	}
	d := res.Bag.Items()[0]
	if d.Code != diag.SynUnclosedParen {
		t.Fatalf("code = %s, want %s", d.Code.ID(), diag.SynUnclosedParen.ID())
	}
	if len(d.Notes) != 1 {
		t.Fatalf("expected a note pointing at the opening paren, got %d notes", len(d.Notes))
	}
	note := d.Notes[0]
	if note.Span.Start != 0 || note.Span.End != 1 {
		t.Errorf("note span = (%d,%d), want (0,1)", note.Span.Start, note.Span.End)
	}
	if note.Msg != "opened here" {
		t.Errorf("note message = %q, want \"opened here\"", note.Msg)
	}
}

// ====== Повторяемость ======

func TestEvaluate_Idempotent(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.abx", []byte("(0.1 + 0.2) * 10 ^ 2"))
	file := fs.Get(id)

	run := func() parser.Result {
		bag := diag.NewBag(100)
		rep := &diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: &lexer.ReporterAdapter{Target: rep}})
		return parser.Evaluate(lx, parser.Options{MaxErrors: 100, Reporter: rep, Limits: decimal.DefaultLimits()})
	}

	first := run()
	second := run()
	if !first.OK || !second.OK {
		t.Fatal("both passes must succeed")
	}
	if !first.Value.Equal(second.Value) {
		t.Errorf("passes disagree: %s vs %s", first.Value.String(), second.Value.String())
	}
	if first.Value.String() != "30" {
		t.Errorf("(0.1 + 0.2) * 10 ^ 2 = %s, want 30", first.Value.String())
	}
}

func TestEvaluate_MaxErrorsCapsReports(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.abx", []byte("5 + "))
	file := fs.Get(id)

	bag := diag.NewBag(100)
	rep := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: &lexer.ReporterAdapter{Target: rep}})
	res := parser.Evaluate(lx, parser.Options{MaxErrors: 1, Reporter: rep, Limits: decimal.DefaultLimits()})

	if res.OK {
		t.Fatal("expected failure")
	}
	if bag.Len() != 1 {
		t.Errorf("MaxErrors=1 must still record the first error, got %d", bag.Len())
	}
}

// Бенчмарки

func BenchmarkEvaluate_Simple(b *testing.B) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bench.abx", []byte("12.5 + 456 * (7.25 - 3) ^ 2"))
	file := fs.Get(id)
	lim := decimal.DefaultLimits()

	b.ResetTimer()
	for b.Loop() {
		lx := lexer.New(file, lexer.Options{})
		res := parser.Evaluate(lx, parser.Options{Limits: lim})
		if !res.OK {
			b.Fatal("evaluation failed")
		}
	}
}
