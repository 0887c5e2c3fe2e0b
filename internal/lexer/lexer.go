package lexer

import (
	"abacus/internal/source"
	"abacus/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
	}
}

// NewRange лексирует только диапазон [from, to) файла. Спаны токенов остаются
// абсолютными для файла, так что диагностики указывают в настоящие строки.
// Диапазон должен быть непустым, если файл непуст.
func NewRange(file *source.File, from, to uint32, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: Cursor{File: file, Off: from, Limit: to},
		opts:   opts,
		look:   nil,
	}
}

// Next возвращает следующий значимый токен. После EOF всегда возвращает EOF.
// Повторный проход по тому же файлу даёт идентичную последовательность.
func (lx *Lexer) Next() token.Token {
	// 1) Если есть look — вернуть его и очистить
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	// 2) Пробелы между токенами не несут смысла
	lx.skipWhitespace()

	// 3) Если EOF → вернуть EOF
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Text: "",
		}
	}

	// 4) Посмотреть текущий байт и выбрать сканер
	ch := lx.cursor.Peek()
	switch {
	case isDec(ch) || ch == '.':
		// цифра или точка → scanNumber(); одиночная точка репортится там же
		return lx.scanNumber()
	default:
		// операторы, скобки и всё прочее → scanOperator()
		return lx.scanOperator()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

// EmptySpan возвращает пустой span на текущей позиции курсора.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
