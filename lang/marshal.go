package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler.
func (ast *AST) MarshalJSON() ([]byte, error) {
	return json.Marshal(ast.ToMap())
}

// ToMap converts the AST to a map for serialization.
func (ast *AST) ToMap() map[string]any {
	tokens := make([]any, len(ast.Tokens))
	for i, t := range ast.Tokens {
		tokens[i] = TokenToNative(t)
	}

	nodes := make([]any, len(ast.Nodes))
	for i, n := range ast.Nodes {
		nodes[i] = NodeToNative(n)
	}

	return map[string]any{
		"source": ast.Source,
		"tokens": tokens,
		"nodes":  nodes,
	}
}

// TokenToNative converts a token to a map with "kind" and "text" keys.
func TokenToNative(t Token) map[string]any {
	return map[string]any{
		"kind": t.Kind.String(),
		"text": t.Text,
	}
}

// NodeToNative converts a node to nested maps and slices. Every map has a
// "node" key naming the variant.
func NodeToNative(n Node) map[string]any {
	switch n := n.(type) {
	case Empty:
		return map[string]any{"node": "empty"}

	case Expression:
		return map[string]any{
			"node":  "expression",
			"token": TokenToNative(n.Token),
		}

	case Function:
		return map[string]any{
			"node":     "function",
			"name":     n.Name,
			"children": nodesToNative(n.Children),
		}

	case DefConstant:
		return map[string]any{
			"node":  "defconstant",
			"name":  n.Name,
			"value": TokenToNative(n.Value),
		}

	case DefVariable:
		return map[string]any{
			"node":  "defvar",
			"name":  n.Name,
			"value": TokenToNative(n.Value),
		}

	case DefFunction:
		params := make([]any, len(n.Params))
		for i, p := range n.Params {
			params[i] = p
		}

		return map[string]any{
			"node":   "defun",
			"name":   n.Name,
			"params": params,
			"body":   nodesToNative(n.Body),
		}

	default:
		return nil
	}
}

func nodesToNative(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = NodeToNative(n)
	}

	return out
}
