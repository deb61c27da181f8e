// Package lang compiles a small parenthesis-delimited prefix language into
// text of an imperative target language, one top-level form at a time.
//
// # Pipeline
//
// Compilation runs four stages, each consuming the previous stage's output
// exactly once:
//
//  1. [Tokenize] splits source text into classified [Token] values.
//  2. [Structure] drops comments and nests tokens into [Group] values by
//     parenthesis depth, rejecting unbalanced input.
//  3. [Build] turns each top-level group into one [Node].
//  4. [Target.Generate] emits target text for a node.
//
// [Parse], [Translate] and [Compile] run the pipeline end to end.
//
// # Grammar
//
// Informal EBNF:
//
//	Program  → Group*
//	Group    → '(' Element* ')'
//	Element  → Group | Atom
//	Atom     → Number | String | Boolean | Identifier | Keyword
//	Keyword  → 'defconstant' | 'defvar' | 'defun'
//	Comment  → ';' <text to end of line>
//
// # Forms
//
//	(f a b)                   call f with arguments a and b
//	(+ 1 2 3)                 binary operator folded over all operands
//	(not x)                   unary operator on the first operand
//	(list 1 2 3)              literal sequence
//	(filter pred xs)          list operation on the second operand
//	(set name value)          store value in a named slot
//	(exit)                    terminate the host process
//	(defconstant name value)  store a literal in a named slot
//	(defvar name value)       same as defconstant
//	(defun name (a b) body…)  store a callable in a named slot
//
// # Targets
//
// Definitions never bind lexically. Every definition stores into a
// process-wide named slot whose storage model belongs to the runtime that
// executes the generated text. A [Target] describes that runtime: its
// operator tables, its call syntax and the shape of a slot definition.
// [JavaScript] writes slots as properties of the global object. [Expr]
// emits expr-lang source whose define and lambda calls are provided by the
// host package.
package lang
