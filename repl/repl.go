/*
File    : lumen/repl/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package repl implements the Read-Eval-Print Loop for the Lumen
interpreter. A single Repl instance keeps one resolver and one
evaluator alive for the whole session, so top-level var/fun/class
declarations made on one line are visible on the next - the same
behavior file mode gets from running all statements through one
Evaluator, just split across readline calls instead of a whole file.
*/
package repl

import (
	"io"
	"strings"

	"github.com/akashmaji946/lumen/eval"
	"github.com/akashmaji946/lumen/objects"
	"github.com/akashmaji946/lumen/parser"
	"github.com/akashmaji946/lumen/resolver"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration of an interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// New creates a Repl with the given banner/version/author/separator/
// license/prompt.
func New(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and usage hints to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Lumen!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit, '.env' to dump global bindings")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL main loop until '.exit', EOF, or a readline
// error. reader is accepted for interface symmetry with file mode;
// readline itself always reads from the process's controlling
// terminal (or, for a piped connection, the handed-off descriptors).
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	res := resolver.New()
	interp := eval.New(res.Depths)
	interp.SetWriter(writer)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		if line == ".env" {
			rl.SaveHistory(line)
			r.dumpEnv(writer, interp)
			continue
		}

		rl.SaveHistory(line)
		r.executeWithRecovery(writer, line, res, interp)
	}
}

// executeWithRecovery parses, resolves, and evaluates one line of
// input, displaying the first failure at whichever stage it occurred
// and otherwise continuing the REPL - unlike file mode, a failing
// line never terminates the session.
func (r *Repl) executeWithRecovery(writer io.Writer, line string, res *resolver.Resolver, interp *eval.Evaluator) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	p := parser.New(line)
	stmts := p.Parse()
	if p.HasErrors() {
		for _, e := range p.Errors() {
			redColor.Fprintf(writer, "[PARSE ERROR] %s\n", e)
		}
		return
	}

	// The resolver is shared across REPL lines, so only the diagnostics
	// added by this line are reported.
	seen := len(res.Errors())
	if !res.Resolve(stmts) {
		for _, e := range res.Errors()[seen:] {
			redColor.Fprintf(writer, "[RESOLVE ERROR] %s\n", e)
		}
		return
	}

	if !interp.Interpret(stmts) {
		// Interpret already reported the runtime error to stderr.
		return
	}
}

// dumpEnv prints every binding visible in the evaluator's current
// top-level environment.
func (r *Repl) dumpEnv(writer io.Writer, interp *eval.Evaluator) {
	env := interp.Env()
	names := env.Names()
	if len(names) == 0 {
		cyanColor.Fprintln(writer, "(no bindings)")
		return
	}
	for _, name := range names {
		v, _ := env.Get(name)
		yellowColor.Fprintf(writer, "%s = %s\n", name, objects.Display(v))
	}
}
