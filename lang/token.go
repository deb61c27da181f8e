package lang

//go:generate go tool stringer --linecomment --type Kind --output token_string.go

import "strings"

// Kind classifies a [Token].
type Kind int

const (
	KindOpenParen   Kind = iota // open-paren
	KindCloseParen              // close-paren
	KindNumber                  // number
	KindBoolean                 // boolean
	KindString                  // string
	KindComment                 // comment
	KindIdentifier              // identifier
	KindDefConstant             // defconstant
	KindDefFunction             // defun
	KindDefVariable             // defvar
)

// keywords maps each reserved word to its kind. Matching is exact and
// case-sensitive.
var keywords = map[string]Kind{
	"defconstant": KindDefConstant,
	"defun":       KindDefFunction,
	"defvar":      KindDefVariable,
}

// IsKeyword reports whether k is one of the definition keyword kinds.
func (k Kind) IsKeyword() bool {
	switch k {
	case KindDefConstant, KindDefFunction, KindDefVariable:
		return true
	default:
		return false
	}
}

// IsAtom reports whether a token of kind k may appear as a leaf value.
func (k Kind) IsAtom() bool {
	switch k {
	case KindNumber, KindBoolean, KindString, KindIdentifier:
		return true
	default:
		return false
	}
}

// Token is a classified chunk of source text.
type Token struct {
	Text string
	Kind Kind
}

// String returns the token as "kind text".
func (t Token) String() string {
	var sb strings.Builder

	sb.WriteString(t.Kind.String())
	sb.WriteByte(' ')
	sb.WriteString(t.Text)

	return sb.String()
}

func (Token) element() {}
