package lang

import (
	"log/slog"
	"slices"
)

// Element is one item of a [Group]: either a [Token] or a nested [Group].
type Element interface{ element() }

// Group is the sequence of elements enclosed by one pair of parentheses.
type Group []Element

func (Group) element() {}

// Structure nests tokens into groups by parenthesis depth and returns the
// top-level groups in source order. Comment tokens are discarded first.
//
// Every token must be enclosed by a group. Input that closes more groups than
// it opens fails with [ErrExpectedOpen]; input that leaves a group open fails
// with [ErrExpectedClose].
func Structure(tokens []Token) ([]Group, error) {
	depth, _, top, err := structure(withoutComments(tokens), 0)
	if err != nil {
		return nil, err
	}

	switch {
	case depth > 0:
		return nil, ErrExpectedClose.With(slog.Int("depth", depth))
	case depth < 0:
		return nil, ErrExpectedOpen.With(slog.Int("depth", depth))
	}

	groups := make([]Group, 0, len(top))

	for _, elem := range top {
		if g, ok := elem.(Group); ok {
			groups = append(groups, g)
		}
	}

	return groups, nil
}

// structure accumulates the elements of one nesting level.
//
// It returns the depth at which it stopped along with the unconsumed tokens.
// A close paren ends the level and yields depth-1. Running out of tokens
// yields the current depth, which callers above it see as a level that was
// never closed.
func structure(tokens []Token, depth int) (int, []Token, Group, error) {
	group := Group{}

	for len(tokens) > 0 {
		tok := tokens[0]
		tokens = tokens[1:]

		switch tok.Kind {
		case KindOpenParen:
			inner, rest, sub, err := structure(tokens, depth+1)
			if err != nil {
				return inner, rest, nil, err
			}

			group = append(group, sub)
			tokens = rest

			if inner != depth {
				return inner, tokens, group, nil
			}

		case KindCloseParen:
			return depth - 1, tokens, group, nil

		default:
			if depth <= 0 {
				return depth, tokens, nil, ErrOutsideParen.With(
					slog.String("token", tok.Text),
					slog.String("kind", tok.Kind.String()),
				)
			}

			group = append(group, tok)
		}
	}

	return depth, tokens, group, nil
}

func withoutComments(tokens []Token) []Token {
	return slices.DeleteFunc(slices.Clone(tokens), func(t Token) bool {
		return t.Kind == KindComment
	})
}
