package lang

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Tokenize splits text into classified tokens. It never fails: any chunk that
// matches no other class is an identifier.
func Tokenize(text string) []Token {
	chunks := chunk(text)
	tokens := make([]Token, len(chunks))

	for i, c := range chunks {
		tokens[i] = classify(c)
	}

	return tokens
}

// chunk splits text at whitespace and parentheses, keeping string literals
// and comments intact.
//
// A '"' opens a string that runs to the next unescaped '"'. A ';' outside a
// string opens a comment that runs to the end of the line; the newline itself
// is not part of the comment. Within either region whitespace and parentheses
// are ordinary characters.
func chunk(text string) []string {
	var (
		chunks    []string
		cur       strings.Builder
		inString  bool
		inComment bool
		escaped   bool
	)

	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
	}

	for _, r := range text {
		switch {
		case inComment:
			if r == '\n' {
				inComment = false

				flush()

				continue
			}

			cur.WriteRune(r)

		case inString:
			cur.WriteRune(r)

			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}

		case r == '"':
			inString = true

			cur.WriteRune(r)

		case r == ';':
			flush()

			inComment = true

			cur.WriteRune(r)

		case r == '(' || r == ')':
			flush()

			chunks = append(chunks, string(r))

		case unicode.IsSpace(r):
			flush()

		default:
			cur.WriteRune(r)
		}
	}

	flush()

	return chunks
}

// classify assigns a kind to a single chunk. The order of the cases is
// significant: keywords and booleans shadow identifiers, and numbers are
// recognized before the quote and comment prefixes.
func classify(text string) Token {
	kind := KindIdentifier

	switch {
	case text == "(":
		kind = KindOpenParen
	case text == ")":
		kind = KindCloseParen
	case text == "true" || text == "false":
		kind = KindBoolean
	case keywords[text] != 0:
		kind = keywords[text]
	case isNumber(text):
		kind = KindNumber
	case strings.HasPrefix(text, `"`):
		kind = KindString
	case strings.HasPrefix(text, ";"):
		kind = KindComment
	}

	return Token{Kind: kind, Text: text}
}

// isNumber reports whether the whole of text parses as a floating-point
// number. Literals too large for float64 still count as numbers; the NaN and
// infinity spellings accepted by [strconv.ParseFloat] do not. Digit
// separators are not number syntax, so "1_000" is an identifier.
func isNumber(text string) bool {
	if strings.ContainsRune(text, '_') {
		return false
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return errors.Is(err, strconv.ErrRange)
	}

	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
