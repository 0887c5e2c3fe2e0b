package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"abacus/internal/decimal"
)

func testOptions() Options {
	return Options{
		MaxDiagnostics: 10,
		Limits:         decimal.DefaultLimits(),
	}
}

func TestRunPlain_EvaluatesLines(t *testing.T) {
	in := strings.NewReader("1 + 2\n\n   \n0.1 + 0.2\nquit\n9 * 9\n")
	var out, errOut bytes.Buffer

	opts := testOptions()
	opts.ShowBanner = true
	if err := RunPlain(opts, in, &out, &errOut); err != nil {
		t.Fatalf("RunPlain returned error: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, Banner+"\n") {
		t.Errorf("output missing banner, got %q", got)
	}
	if !strings.Contains(got, "\n3\n") {
		t.Errorf("output missing result 3, got %q", got)
	}
	if !strings.Contains(got, "\n0.3\n") {
		t.Errorf("output missing exact result 0.3, got %q", got)
	}
	if strings.Contains(got, "81") {
		t.Errorf("lines after quit must not be evaluated, got %q", got)
	}
	if errOut.Len() != 0 {
		t.Errorf("expected no diagnostics, got %q", errOut.String())
	}
}

func TestRunPlain_BadLineKeepsGoing(t *testing.T) {
	in := strings.NewReader("1 / 0\n2 + 2\n")
	var out, errOut bytes.Buffer

	if err := RunPlain(testOptions(), in, &out, &errOut); err != nil {
		t.Fatalf("RunPlain returned error: %v", err)
	}

	if !strings.Contains(out.String(), "4\n") {
		t.Errorf("line after a failure was not evaluated, got %q", out.String())
	}
	diags := errOut.String()
	if !strings.Contains(diags, "division by zero") {
		t.Errorf("diagnostics missing division by zero, got %q", diags)
	}
	if !strings.Contains(diags, "ARI3001") {
		t.Errorf("diagnostics missing code, got %q", diags)
	}
}

func TestEvalLine(t *testing.T) {
	res := evalLine(testOptions(), "6 * 7")
	if !res.OK {
		t.Fatalf("evaluation failed: %v", res.Bag.Items())
	}
	if got := res.Value.String(); got != "42" {
		t.Errorf("Value = %q, want %q", got, "42")
	}
}

func TestReplModel_SubmitEvaluates(t *testing.T) {
	m := newReplModel(testOptions())
	m.input.SetValue("6 * 7")

	_, cmd := m.submit()
	if cmd == nil {
		t.Fatal("submit should scroll the result into history")
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared after submit: %q", m.input.Value())
	}
	if len(m.history) != 1 || m.history[0] != "6 * 7" {
		t.Errorf("history = %v, want [6 * 7]", m.history)
	}
}

func TestReplModel_BlankSubmitIsIgnored(t *testing.T) {
	m := newReplModel(testOptions())
	m.input.SetValue("   ")

	_, _ = m.submit()
	if len(m.history) != 0 {
		t.Errorf("blank input must not enter history, got %v", m.history)
	}
	if m.quitting {
		t.Error("blank input must not quit")
	}
}

func TestReplModel_QuitWord(t *testing.T) {
	m := newReplModel(testOptions())
	m.input.SetValue("quit")

	_, cmd := m.submit()
	if !m.quitting {
		t.Error("quit should end the session")
	}
	if cmd == nil {
		t.Fatal("quit should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should produce tea.Quit")
	}
	if len(m.history) != 0 {
		t.Errorf("quit must not enter history, got %v", m.history)
	}
}

func TestReplModel_CtrlDQuits(t *testing.T) {
	m := newReplModel(testOptions())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if !m.quitting {
		t.Error("Ctrl+D should end the session")
	}
	if cmd == nil {
		t.Fatal("Ctrl+D should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Ctrl+D should produce tea.Quit")
	}
}

func TestReplModel_HistoryNavigation(t *testing.T) {
	m := newReplModel(testOptions())
	for _, expr := range []string{"1 + 1", "2 + 2"} {
		m.input.SetValue(expr)
		_, _ = m.submit()
	}

	m.input.SetValue("3 +")
	m.recallPrevious()
	if got := m.input.Value(); got != "2 + 2" {
		t.Errorf("first recall = %q, want %q", got, "2 + 2")
	}
	m.recallPrevious()
	if got := m.input.Value(); got != "1 + 1" {
		t.Errorf("second recall = %q, want %q", got, "1 + 1")
	}
	// Walking past the oldest entry stays put
	m.recallPrevious()
	if got := m.input.Value(); got != "1 + 1" {
		t.Errorf("recall past oldest = %q, want %q", got, "1 + 1")
	}

	m.recallNext()
	if got := m.input.Value(); got != "2 + 2" {
		t.Errorf("forward recall = %q, want %q", got, "2 + 2")
	}
	// Walking past the newest entry restores the stashed draft
	m.recallNext()
	if got := m.input.Value(); got != "3 +" {
		t.Errorf("draft not restored, got %q", got)
	}
}

func TestReplModel_HistoryResetsAfterSubmit(t *testing.T) {
	m := newReplModel(testOptions())
	m.input.SetValue("5 - 3")
	_, _ = m.submit()

	m.recallPrevious()
	if got := m.input.Value(); got != "5 - 3" {
		t.Errorf("recall after submit = %q, want %q", got, "5 - 3")
	}

	m.input.SetValue("8 * 8")
	_, _ = m.submit()
	if m.histPos != len(m.history) {
		t.Errorf("histPos = %d, want %d", m.histPos, len(m.history))
	}
}
