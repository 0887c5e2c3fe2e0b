package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Number represents a numeric literal token.
	Number

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Caret represents the caret operator token.
	Caret // ^
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
)

var kindNames = [...]string{
	Invalid: "Invalid",
	EOF:     "EOF",
	Number:  "Number",
	Plus:    "Plus",
	Minus:   "Minus",
	Star:    "Star",
	Slash:   "Slash",
	Caret:   "Caret",
	LParen:  "LParen",
	RParen:  "RParen",
}

// String returns the kind name for diagnostics and token dumps.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Glyph returns the concrete source character for operator and parenthesis
// kinds, or the empty string for kinds without a fixed spelling.
func (k Kind) Glyph() string {
	switch k {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Caret:
		return "^"
	case LParen:
		return "("
	case RParen:
		return ")"
	default:
		return ""
	}
}
