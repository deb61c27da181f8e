// Package repl implements the interactive session of the repl command.
//
// Input lines are executed by a host session, so definitions persist
// across lines. Each line is also compiled with the selected target and
// the generated program is printed above the result.
//
// The prompt has two modes, toggled with Esc: eval mode executes
// S-expressions and command mode runs the session commands (help, list,
// edit, clear, quit). Both modes share one persistent history.
package repl
