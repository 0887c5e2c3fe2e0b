// Package token defines the lexical token kinds of the abacus expression
// grammar.
// Invariants:
//   - Token.Text repeats the source bytes the span covers, verbatim.
//   - Token.Span matches Text exactly (Start..End).
//   - Number carries the literal spelling untouched; the decimal engine
//     parses it, not the lexer.
//   - Signs are never part of a Number token: '-' and '+' are always
//     operator tokens and unary application is the parser's business.
package token
