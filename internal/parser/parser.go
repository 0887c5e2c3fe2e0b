package parser

import (
	"abacus/internal/decimal"
	"abacus/internal/diag"
	"abacus/internal/lexer"
	"abacus/internal/source"
	"abacus/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	Limits        decimal.Limits
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result — итог вычисления одного выражения.
type Result struct {
	Value decimal.Dec
	OK    bool
	Bag   *diag.Bag
}

// Parser — состояние парсера на одно выражение.
// Дерево не строится: precedence climbing сворачивает значение на месте.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// Evaluate — входная точка: разбирает и вычисляет ровно одно выражение.
// Требует уже созданный lexer (на основе source.File).
func Evaluate(lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:       lx,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	var value decimal.Dec
	ok := true
	if p.at(token.EOF) {
		p.err(diag.SynEmptyInput, "input contains no expression")
		ok = false
	} else {
		value, ok = p.parseExpr()
		if ok {
			ok = p.expectEnd()
		}
	}
	if !ok {
		value = decimal.Dec{}
	}

	var bag *diag.Bag
	if br, isBag := opts.Reporter.(*diag.BagReporter); isBag {
		bag = br.Bag
	}
	return Result{
		Value: value,
		OK:    ok,
		Bag:   bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// expectEnd — после полного выражения допустим только EOF.
func (p *Parser) expectEnd() bool {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.EOF:
		return true
	case token.Invalid:
		// лексер уже выдал диагностику на этот токен
		return false
	case token.RParen:
		p.report(diag.SynTrailingInput, diag.SevError, tok.Span, "unmatched \")\"")
		return false
	default:
		p.report(diag.SynTrailingInput, diag.SevError, tok.Span,
			"leftover input after a complete expression: \""+tok.Text+"\"")
		return false
	}
}
