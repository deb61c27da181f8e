package lang

import (
	"log/slog"
	"slices"
)

// Build converts each top-level group into exactly one node.
//
// Validation is purely syntactic. Identifiers are never resolved and call
// arity is never checked.
func Build(groups []Group) ([]Node, error) {
	nodes := make([]Node, 0, len(groups))

	for _, g := range groups {
		n, err := buildGroup(g)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, n)
	}

	return nodes, nil
}

func buildGroup(g Group) (Node, error) {
	if len(g) == 0 {
		return Empty{}, nil
	}

	head, ok := g[0].(Token)
	if !ok {
		return nil, ErrLeadingList.With(slog.Int("length", len(g)))
	}

	switch head.Kind {
	case KindIdentifier:
		return buildFunction(head.Text, g[1:])

	case KindDefConstant:
		name, value, err := buildDefinition(g, ErrDefConstantForm)
		if err != nil {
			return nil, err
		}

		return DefConstant{Name: name, Value: value}, nil

	case KindDefVariable:
		name, value, err := buildDefinition(g, ErrDefVariableForm)
		if err != nil {
			return nil, err
		}

		return DefVariable{Name: name, Value: value}, nil

	case KindDefFunction:
		return buildDefFunction(g)

	default:
		return nil, ErrUnexpectedToken.With(
			slog.String("token", head.Text),
			slog.String("kind", head.Kind.String()),
			slog.Int("position", 0),
		)
	}
}

func buildFunction(name string, args []Element) (Node, error) {
	fn := Function{Name: name, Children: make([]Node, 0, len(args))}

	for i, arg := range args {
		switch arg := arg.(type) {
		case Group:
			child, err := buildGroup(arg)
			if err != nil {
				return nil, err
			}

			fn.Children = append(fn.Children, child)

		case Token:
			if !arg.Kind.IsAtom() {
				return nil, ErrUnexpectedToken.With(
					slog.String("function", name),
					slog.String("token", arg.Text),
					slog.String("kind", arg.Kind.String()),
					slog.Int("position", i+1),
				)
			}

			fn.Children = append(fn.Children, Expression{Token: arg})
		}
	}

	return fn, nil
}

// buildDefinition validates the (keyword name value) shape shared by
// defconstant and defvar.
func buildDefinition(g Group, form *Error) (string, Token, error) {
	if len(g) != 3 {
		return "", Token{}, form.With(slog.Int("length", len(g)))
	}

	name, ok := g[1].(Token)
	if !ok || name.Kind != KindIdentifier {
		return "", Token{}, form.With(slog.String("element", "name"))
	}

	value, ok := g[2].(Token)
	if !ok || !value.Kind.IsAtom() {
		return "", Token{}, form.With(slog.String("element", "value"))
	}

	return name.Text, value, nil
}

func buildDefFunction(g Group) (Node, error) {
	if len(g) < 3 {
		return nil, ErrDefFunctionForm.With(slog.Int("length", len(g)))
	}

	name, ok := g[1].(Token)
	if !ok || name.Kind != KindIdentifier {
		return nil, ErrDefFunctionForm.With(slog.String("element", "name"))
	}

	list, ok := g[2].(Group)
	if !ok {
		return nil, ErrDefFunctionForm.With(
			slog.String("function", name.Text),
			slog.String("element", "params"),
		)
	}

	params := make([]string, 0, len(list))

	for _, elem := range list {
		p, ok := elem.(Token)
		if !ok || p.Kind != KindIdentifier {
			return nil, ErrDefFunctionForm.With(
				slog.String("function", name.Text),
				slog.String("element", "params"),
			)
		}

		if slices.Contains(params, p.Text) {
			return nil, ErrDuplicateParam.With(
				slog.String("function", name.Text),
				slog.String("param", p.Text),
			)
		}

		params = append(params, p.Text)
	}

	body := make([]Node, 0, len(g)-3)

	for _, elem := range g[3:] {
		stmt, ok := elem.(Group)
		if !ok {
			return nil, ErrDefFunctionForm.With(
				slog.String("function", name.Text),
				slog.String("element", "body"),
			)
		}

		n, err := buildGroup(stmt)
		if err != nil {
			return nil, err
		}

		body = append(body, n)
	}

	return DefFunction{Name: name.Text, Params: params, Body: body}, nil
}
