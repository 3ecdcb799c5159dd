/*
File    : lumen/eval/evaluator.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package eval is the last stage of the pipeline: it walks the statement
// list the parser produced, consulting the resolver's depth side-table,
// and executes it directly against a scope.Environment chain. There is
// no bytecode and no separate "compile" step.
package eval

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/akashmaji946/lumen/function"
	"github.com/akashmaji946/lumen/objects"
	"github.com/akashmaji946/lumen/parser"
	"github.com/akashmaji946/lumen/scope"
	"github.com/akashmaji946/lumen/token"
)

// RuntimeError is the third error tier: a failure raised
// during evaluation, carrying the offending token for line reporting.
// It is a distinct channel from the control-signal type below -
// non-local return/break/continue never take this path.
type RuntimeError struct {
	Token token.Token
	Msg   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Line [%d]: %s", e.Token.Line, e.Msg)
}

func runtimeErr(tok token.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Msg: fmt.Sprintf(format, args...)}
}

// Evaluator holds everything live during one interpretation: the
// globals environment (seeded with print/clock), the current
// environment, the resolver's depth side-table, and the output
// destination for print. A single Evaluator is meant to run one
// program; the REPL reuses one across input lines so top-level var/fun
// declarations persist between them.
type Evaluator struct {
	Globals *scope.Environment
	env     *scope.Environment
	Depths  map[int]int
	Writer  io.Writer
	started time.Time
}

// New creates an Evaluator with depths as its resolver side-table and
// the native builtins (print, clock) bound in a fresh globals
// environment. Output defaults to os.Stdout; override with SetWriter.
func New(depths map[int]int) *Evaluator {
	if depths == nil {
		depths = make(map[int]int)
	}
	globals := scope.New(nil)
	e := &Evaluator{
		Globals: globals,
		env:     globals,
		Depths:  depths,
		Writer:  os.Stdout,
		started: time.Now(),
	}
	e.defineNatives()
	return e
}

// SetWriter redirects print's output; used by the REPL and by tests
// that capture stdout into a buffer.
func (e *Evaluator) SetWriter(w io.Writer) { e.Writer = w }

// Env returns the evaluator's current environment, for callers (the
// REPL's ".env" command) that want to inspect live top-level bindings.
func (e *Evaluator) Env() *scope.Environment { return e.env }

func (e *Evaluator) defineNatives() {
	e.Globals.Define("print", &function.NativeFn{
		Name: "print", Arity: 1,
		Call: func(args []objects.Value) (objects.Value, error) {
			fmt.Fprintf(e.Writer, "%s\n", objects.Display(args[0]))
			return objects.NilValue, nil
		},
	})
	e.Globals.Define("clock", &function.NativeFn{
		Name: "clock", Arity: 0,
		Call: func(args []objects.Value) (objects.Value, error) {
			return objects.Float(time.Since(e.started).Seconds()), nil
		},
	})
}

// Interpret runs stmts to completion or until the first runtime error.
// A runtime error is printed to stderr in the shared Line [n] style
// and halts further statements - it is never returned to the caller
// as a Go error; this is the only place one is caught. It reports
// whether the run completed without error.
func (e *Evaluator) Interpret(stmts []parser.Stmt) bool {
	for _, s := range stmts {
		if _, err := e.execStmt(s); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return false
		}
	}
	return true
}
