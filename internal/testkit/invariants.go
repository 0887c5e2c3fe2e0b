package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"abacus/internal/source"
	"abacus/internal/token"
)

// CheckTokenInvariants runs a minimal set of stream invariants on lexer
// output:
// 1) the stream is non-empty and ends with exactly one EOF token
// 2) every span stays within the file content bounds
// 3) token starts never move backwards
// 4) non-EOF tokens cover at least one byte and number text matches the span
func CheckTokenInvariants(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}
	if last := tokens[len(tokens)-1]; !last.IsEOF() {
		return fmt.Errorf("stream does not end with EOF: %v", last.Kind)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevStart uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d span points to different file id: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End < sp.Start {
			return fmt.Errorf("token %d span is inverted: %v", i, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("token %d span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if tok.IsEOF() {
			if i != len(tokens)-1 {
				return fmt.Errorf("EOF token %d before end of stream", i)
			}
		} else if sp.End == sp.Start {
			return fmt.Errorf("token %d (%v) covers no bytes: %v", i, tok.Kind, sp)
		}
		if sp.Start < prevStart {
			return fmt.Errorf("token %d starts before its predecessor: %d < %d", i, sp.Start, prevStart)
		}
		prevStart = sp.Start

		if tok.Kind == token.Number {
			if got := string(sf.Content[sp.Start:sp.End]); got != tok.Text {
				return fmt.Errorf("token %d text %q does not match source %q", i, tok.Text, got)
			}
		}
	}
	return nil
}
