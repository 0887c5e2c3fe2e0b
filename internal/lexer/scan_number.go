package lexer

import (
	"abacus/internal/token"
)

// Числовой литерал: digits? '.'? digits?, минимум одна цифра на токен,
// максимум одна точка. Без знака, без экспоненты, без подчёркиваний — знак
// всегда отдельный токен оператора. Неверные формы — репорт в opts.Reporter.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	// ведущая точка — значит формат ".digits"
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump() // '.'
		if !isDec(lx.cursor.Peek()) {
			// одиночная точка без цифр с обеих сторон
			sp := lx.cursor.SpanFrom(start)
			lx.report("BadNumber", sp, "decimal point needs a digit on at least one side")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Number, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	// целая часть
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// дробная часть; висячая точка ("5.") допустима
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump() // '.'
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Number, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
