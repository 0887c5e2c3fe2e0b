package parser

import (
	"errors"
	"strconv"

	"abacus/internal/decimal"
	"abacus/internal/diag"
	"abacus/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
// Возвращает вычисленное значение и флаг успеха
func (p *Parser) parseExpr() (decimal.Dec, bool) {
	return p.parseBinaryExpr(0) // минимальный приоритет = 0
}

// parseBinaryExpr реализует precedence climbing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (decimal.Dec, bool) {
	// Парсим левую часть (унарные операторы + primary)
	left, ok := p.parseUnaryExpr()
	if !ok {
		return decimal.Dec{}, false
	}

	// Обрабатываем бинарные операторы в цикле
	for {
		tok := p.lx.Peek()

		// Проверяем, является ли токен бинарным оператором
		prec, isRightAssoc := p.getBinaryOperatorPrec(tok.Kind)
		if prec < minPrec {
			break // приоритет слишком низкий либо не оператор вовсе
		}

		// Съедаем оператор
		opTok := p.advance()

		// Вычисляем приоритет для правой части
		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}

		// Парсим правую часть
		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return decimal.Dec{}, false
		}

		// Сворачиваем немедленно; дерево не строится
		left, ok = p.applyBinary(opTok, left, right)
		if !ok {
			return decimal.Dec{}, false
		}
	}

	return left, true
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы).
// Унарный минус связывает слабее '^': -2^2 = -(2^2) = -4.
func (p *Parser) parseUnaryExpr() (decimal.Dec, bool) {
	tok := p.lx.Peek()
	if tok.Kind == token.Minus || tok.Kind == token.Plus {
		opTok := p.advance()
		// операнд берём на уровне precUnary: цепочки '^' уходят внутрь знака
		operand, ok := p.parseBinaryExpr(precUnary)
		if !ok {
			return decimal.Dec{}, false
		}
		if opTok.Kind == token.Minus {
			return operand.Neg(), true
		}
		return operand, true
	}
	return p.parsePrimary()
}

// parsePrimary — число или выражение в скобках.
func (p *Parser) parsePrimary() (decimal.Dec, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Number:
		p.advance()
		d, err := decimal.Parse(tok.Text)
		if err != nil {
			// лексер гарантирует форму литерала; сюда попадать не должны
			p.report(diag.LexBadNumber, diag.SevError, tok.Span,
				"malformed number literal "+strconv.Quote(tok.Text))
			return decimal.Dec{}, false
		}
		return d, true

	case token.LParen:
		open := p.advance()
		if p.at(token.RParen) {
			closing := p.advance()
			p.report(diag.SynEmptyParens, diag.SevError, open.Span.Cover(closing.Span),
				"parentheses contain no expression")
			return decimal.Dec{}, false
		}
		inner, ok := p.parseExpr()
		if !ok {
			return decimal.Dec{}, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected \")\" to close \"(\"", func(b *diag.ReportBuilder) {
			b.WithNote(open.Span, "opened here")
		}); !ok {
			return decimal.Dec{}, false
		}
		return inner, true

	case token.EOF:
		p.err(diag.SynExpectExpression, "expected an expression")
		return decimal.Dec{}, false

	case token.Invalid:
		// лексер уже выдал диагностику на этот токен; не дублируем
		return decimal.Dec{}, false

	default:
		p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span,
			"expected a number or \"(\", got \""+tok.Text+"\"")
		return decimal.Dec{}, false
	}
}

// applyBinary сворачивает один бинарный оператор через движок decimal.
// Арифметический отказ репортится на span оператора.
func (p *Parser) applyBinary(opTok token.Token, left, right decimal.Dec) (decimal.Dec, bool) {
	var (
		value decimal.Dec
		err   error
	)
	switch opTok.Kind {
	case token.Plus:
		value, err = left.Add(right, p.opts.Limits)
	case token.Minus:
		value, err = left.Sub(right, p.opts.Limits)
	case token.Star:
		value, err = left.Mul(right, p.opts.Limits)
	case token.Slash:
		value, err = left.Div(right, p.opts.Limits)
	case token.Caret:
		value, err = left.Pow(right, p.opts.Limits)
	default:
		// getBinaryOperatorPrec не пропускает сюда ничего другого
		p.report(diag.SynUnexpectedToken, diag.SevError, opTok.Span,
			"\""+opTok.Text+"\" is not a binary operator")
		return decimal.Dec{}, false
	}
	if err != nil {
		p.report(arithCode(err), diag.SevError, opTok.Span, err.Error())
		return decimal.Dec{}, false
	}
	return value, true
}

// arithCode сопоставляет ошибку движка diag-коду.
func arithCode(err error) diag.Code {
	switch {
	case errors.Is(err, decimal.ErrDivisionByZero):
		return diag.ArithDivisionByZero
	case errors.Is(err, decimal.ErrNonTerminatingDivision):
		return diag.ArithNonTerminatingDivision
	case errors.Is(err, decimal.ErrUnsupportedExponent):
		return diag.ArithUnsupportedExponent
	case errors.Is(err, decimal.ErrResultTooLarge):
		return diag.ArithResultTooLarge
	default:
		return diag.ArithInfo
	}
}
