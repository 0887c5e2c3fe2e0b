// Package fuzztests houses Go fuzz harnesses that exercise the evaluation
// pipeline (source -> lexer -> parser -> decimal). Its goal is to smoke test
// robustness and guard against panics or allocator explosions on arbitrary
// inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер и вычислитель.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/decimal, internal/diag, internal/testkit.

package fuzztests
