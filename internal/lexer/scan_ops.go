package lexer

import (
	"fmt"

	"abacus/internal/token"
)

// Все операторы грамматики односимвольные; неизвестный символ репортим
// целой руной, чтобы UTF-8 не разваливался на байты.
func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}
	}

	switch lx.cursor.Peek() {
	case '+':
		lx.cursor.Bump()
		return emit(token.Plus)
	case '-':
		lx.cursor.Bump()
		return emit(token.Minus)
	case '*':
		lx.cursor.Bump()
		return emit(token.Star)
	case '/':
		lx.cursor.Bump()
		return emit(token.Slash)
	case '^':
		lx.cursor.Bump()
		return emit(token.Caret)
	case '(':
		lx.cursor.Bump()
		return emit(token.LParen)
	case ')':
		lx.cursor.Bump()
		return emit(token.RParen)
	default:
		return lx.scanUnknown(start)
	}
}

// scanUnknown потребляет одну руну и завершает токен как Invalid.
func (lx *Lexer) scanUnknown(start Mark) token.Token {
	r, _ := lx.peekRune()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.report("UnknownChar", sp, fmt.Sprintf("character %q is not part of the expression grammar", r))
	return token.Token{
		Kind: token.Invalid,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
