package parser

import (
	"abacus/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAdditive       = 1 // + -
	precMultiplicative = 2 // * /
	precUnary          = 3 // унарные + и -
	precPower          = 4 // ^
)

// getBinaryOperatorPrec возвращает приоритет и ассоциативность оператора
// Возвращает (приоритет, правоассоциативный)
func (p *Parser) getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	// Аддитивные операторы
	case token.Plus, token.Minus:
		return precAdditive, false

	// Мультипликативные операторы
	case token.Star, token.Slash:
		return precMultiplicative, false

	// Возведение в степень (правоассоциативно: 2^3^2 = 2^(3^2))
	case token.Caret:
		return precPower, true

	default:
		return -1, false // не бинарный оператор
	}
}
