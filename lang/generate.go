package lang

// Generate renders n as JavaScript.
func Generate(n Node) string {
	return JavaScript().Generate(n)
}

// Generate renders n in the target language. It never fails: a node of an
// unknown kind renders as the empty string.
//
// The arguments of a call are generated before its name is resolved, so
// nested calls are valid operands of every form.
func (t *Target) Generate(n Node) string {
	switch n := n.(type) {
	case Expression:
		return t.atom(n.Token)

	case Function:
		params := make([]string, len(n.Children))
		for i, c := range n.Children {
			if params[i] = t.Generate(c); params[i] == "" {
				params[i] = t.Placeholder
			}
		}

		for _, r := range t.Rules {
			if op, ok := r.Match(n.Name); ok {
				return r.Emit(n.Name, op, params)
			}
		}

		return t.Call(t.ident(n.Name), params)

	case DefConstant:
		return t.Define(t.ident(n.Name), t.atom(n.Value))

	case DefVariable:
		return t.Define(t.ident(n.Name), t.atom(n.Value))

	case DefFunction:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = t.ident(p)
		}

		body := make([]string, len(n.Body))
		for i, c := range n.Body {
			body[i] = t.Generate(c)
		}

		return t.Define(t.ident(n.Name), t.Lambda(params, body))

	default:
		return ""
	}
}

// atom renders a literal verbatim and an identifier by the target's Ident.
func (t *Target) atom(tok Token) string {
	if tok.Kind == KindIdentifier {
		return t.ident(tok.Text)
	}

	return tok.Text
}
