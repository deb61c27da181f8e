// Package host executes source lines in-process.
//
// Each line is compiled with the [lang.Expr] target and the generated
// expr-lang programs are run with github.com/expr-lang/expr against an
// environment of three layers, innermost first:
//
//   - instructions: define(name, value), lambda(params, body) and exit()
//   - slots: every name stored by a definition, shared by all lines
//   - builtins: print, console.log, env, cwd, xor, lshift, rshift and the
//     file, path, mung and platform namespaces
//
// Slots written by defun hold a [Lambda], which compiles its body against
// the slots current at call time. There is no lexical scoping; a lambda
// sees its parameters and the global slots only.
//
//	h := host.New(host.WithOutput(os.Stdout))
//	h.Exec(ctx, "(defun sq (n) (* n n))")
//	res, _ := h.Exec(ctx, "(sq 4)")
//	fmt.Println(host.FormatResult(res[0].Value)) // 16
package host
