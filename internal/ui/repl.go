package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"abacus/internal/decimal"
	"abacus/internal/diagfmt"
	"abacus/internal/driver"
)

// Banner is the greeting shown when an interactive session starts.
const Banner = "Type in an expression and hit enter"

// DefaultPrompt is used when the manifest does not configure one.
const DefaultPrompt = "> "

// Options configures an interactive session.
type Options struct {
	Prompt         string
	MaxDiagnostics int
	Limits         decimal.Limits
	ShowBanner     bool
	Color          bool
}

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Run starts the full-screen-free interactive session and blocks until the
// user quits with Ctrl+C, Ctrl+D or `quit`.
func Run(opts Options) error {
	model := newReplModel(opts)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, err := program.Run()
	return err
}

// RunPlain is the line-loop fallback for pipes and dumb terminals. It
// evaluates exactly like the TUI but reads with a bufio.Scanner and never
// draws.
func RunPlain(opts Options, in io.Reader, out, errOut io.Writer) error {
	if opts.ShowBanner {
		fmt.Fprintln(out, Banner)
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "quit" || text == "exit" {
			return nil
		}
		res := evalLine(opts, text)
		if res.OK {
			fmt.Fprintln(out, res.Value.String())
			continue
		}
		diagfmt.Pretty(errOut, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:      opts.Color,
			HideSource: true,
		})
	}
	return scanner.Err()
}

// evalLine runs one expression through the shared pipeline. Every line is a
// fresh evaluation, so a malformed one never poisons the next.
func evalLine(opts Options, text string) *driver.ExprResult {
	return driver.EvaluateSource("repl", []byte(text), driver.Options{
		MaxDiagnostics: opts.MaxDiagnostics,
		Limits:         opts.Limits,
	})
}

type replModel struct {
	opts     Options
	input    textinput.Model
	history  []string
	histPos  int
	draft    string
	quitting bool
}

func newReplModel(opts Options) *replModel {
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	ti := textinput.New()
	ti.Prompt = opts.Prompt
	ti.PromptStyle = promptStyle
	ti.Focus()
	return &replModel{opts: opts, input: ti}
}

func (m *replModel) Init() tea.Cmd {
	if m.opts.ShowBanner {
		return tea.Batch(textinput.Blink, tea.Println(bannerStyle.Render(Banner)))
	}
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp:
			m.recallPrevious()
			return m, nil
		case tea.KeyDown:
			m.recallNext()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) View() string {
	if m.quitting {
		return ""
	}
	return m.input.View() + "\n"
}

// submit evaluates the current line and scrolls the echo plus its result
// into the terminal history above the prompt.
func (m *replModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.draft = ""
	m.histPos = len(m.history)
	if text == "" {
		return m, nil
	}
	if text == "quit" || text == "exit" {
		m.quitting = true
		return m, tea.Quit
	}
	m.history = append(m.history, text)
	m.histPos = len(m.history)

	res := evalLine(m.opts, text)
	var output string
	if res.OK {
		output = valueStyle.Render(res.Value.String())
	} else {
		var buf strings.Builder
		diagfmt.Pretty(&buf, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:      m.opts.Color,
			HideSource: true,
		})
		output = strings.TrimRight(buf.String(), "\n")
	}
	echo := promptStyle.Render(m.opts.Prompt) + text
	return m, tea.Println(echo + "\n" + output)
}

// recallPrevious walks back through the session history, stashing the
// in-progress line so KeyDown can restore it.
func (m *replModel) recallPrevious() {
	if len(m.history) == 0 || m.histPos == 0 {
		return
	}
	if m.histPos == len(m.history) {
		m.draft = m.input.Value()
	}
	m.histPos--
	m.input.SetValue(m.history[m.histPos])
	m.input.CursorEnd()
}

func (m *replModel) recallNext() {
	if m.histPos >= len(m.history) {
		return
	}
	m.histPos++
	if m.histPos == len(m.history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[m.histPos])
	}
	m.input.CursorEnd()
}
