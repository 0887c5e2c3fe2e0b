package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// EvalResult представляет результат одного выражения для машинных форматов.
// Line заполняется только для построчных входов (файлы, stdin).
type EvalResult struct {
	File  string `json:"file,omitempty"`
	Line  uint32 `json:"line,omitempty"`
	Input string `json:"input"`
	Value string `json:"value,omitempty"`
	OK    bool   `json:"ok"`
}

// ResultsOutput представляет корневую структуру вывода результатов:
// значения вместе с диагностиками, чтобы потребителю хватило одного документа.
type ResultsOutput struct {
	Results     []EvalResult     `json:"results"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty"`
	Errors      int              `json:"errors"`
}

// ResultsJSON сериализует результаты вычисления в JSON.
func ResultsJSON(w io.Writer, out ResultsOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// ResultsMsgpack сериализует результаты вычисления в msgpack.
func ResultsMsgpack(w io.Writer, out ResultsOutput) error {
	return msgpack.NewEncoder(w).Encode(out)
}
