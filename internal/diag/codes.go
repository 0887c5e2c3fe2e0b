package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001
	LexBadNumber   Code = 1002

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectExpression Code = 2002
	SynUnclosedParen    Code = 2003
	SynEmptyParens      Code = 2004
	SynTrailingInput    Code = 2005
	SynEmptyInput       Code = 2006

	// Арифметические: отказ движка точной десятичной арифметики
	ArithInfo                   Code = 3000
	ArithDivisionByZero         Code = 3001
	ArithNonTerminatingDivision Code = 3002
	ArithUnsupportedExponent    Code = 3003
	ArithResultTooLarge         Code = 3004

	// IO / драйвер
	IOInfo       Code = 4000
	IOReadFailed Code = 4001

	// Observability
	ObsInfo    Code = 5000
	ObsTimings Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown failure",

	LexInfo:        "lexer note",
	LexUnknownChar: "character is not part of the expression grammar",
	LexBadNumber:   "malformed number literal",

	SynInfo:             "parser note",
	SynUnexpectedToken:  "token cannot appear here",
	SynExpectExpression: "expected an expression",
	SynUnclosedParen:    "parenthesis is never closed",
	SynEmptyParens:      "parentheses contain no expression",
	SynTrailingInput:    "leftover input after a complete expression",
	SynEmptyInput:       "input contains no expression",

	ArithInfo:                   "arithmetic note",
	ArithDivisionByZero:         "division by zero",
	ArithNonTerminatingDivision: "division does not terminate in decimal",
	ArithUnsupportedExponent:    "exponent must be a non-negative integer",
	ArithResultTooLarge:         "result exceeds the configured size limits",

	IOInfo:       "io note",
	IOReadFailed: "cannot read input",

	ObsInfo:    "observability note",
	ObsTimings: "pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("ARI%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
