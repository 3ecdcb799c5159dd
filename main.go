/*
File    : lumen/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package main is the entry point for the Lumen interpreter. It provides
two modes of operation:
 1. REPL mode (default): an interactive read-eval-print loop
 2. File mode: run a .lum source file given on the command line

The interpreter is a lexer -> parser -> resolver -> evaluator pipeline;
there is no bytecode and no separate compile step.
*/
package main

import (
	"os"

	"github.com/akashmaji946/lumen/eval"
	"github.com/akashmaji946/lumen/parser"
	"github.com/akashmaji946/lumen/repl"
	"github.com/akashmaji946/lumen/resolver"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// VERSION is the current version of the Lumen interpreter.
var VERSION = "v1.0.0"

// AUTHOR contains the contact information of the interpreter's author.
var AUTHOR = "akashmaji(@iisc.ac.in)"

// LICENSE specifies the software license.
var LICENSE = "MIT"

// PROMPT is the command prompt displayed in REPL mode.
var PROMPT = "lumen >>> "

// BANNER is the ASCII art logo displayed when starting the REPL.
var BANNER = `
  ██╗     ██╗   ██╗███╗   ███╗███████╗███╗   ██╗
  ██║     ██║   ██║████╗ ████║██╔════╝████╗  ██║
  ██║     ██║   ██║██╔████╔██║█████╗  ██╔██╗ ██║
  ██║     ██║   ██║██║╚██╔╝██║██╔══╝  ██║╚██╗██║
  ███████╗╚██████╔╝██║ ╚═╝ ██║███████╗██║ ╚████║
  ╚══════╝ ╚═════╝ ╚═╝     ╚═╝╚══════╝╚═╝  ╚═══╝
`

// LINE is a separator line used for visual formatting in the REPL.
var LINE = "----------------------------------------------------------------"

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

// config is the CLI's entire configuration surface: there are no env
// vars or config files, so this struct exists purely to
// give --show-config something concrete to render.
type config struct {
	Mode   string `yaml:"mode"`
	Prompt string `yaml:"prompt"`
	Banner bool   `yaml:"banner"`
	Color  bool   `yaml:"color"`
	File   string `yaml:"file,omitempty"`
}

func main() {
	if len(os.Args) > 1 {
		arg := os.Args[1]

		switch arg {
		case "--help", "-h":
			showHelp()
			os.Exit(0)
		case "--version", "-v":
			showVersion()
			os.Exit(0)
		case "--show-config":
			showConfig(os.Args[2:])
			os.Exit(0)
		}

		runFile(arg)
		return
	}

	repler := repl.New(BANNER, VERSION, AUTHOR, LINE, LICENSE, PROMPT)
	repler.Start(os.Stdin, os.Stdout)
}

func showHelp() {
	cyanColor.Println("Lumen - A Tree-Walking Interpreted Language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  lumen                      Start interactive REPL mode")
	yellowColor.Println("  lumen <path-to-file>       Run a Lumen file (.lum)")
	yellowColor.Println("  lumen --help               Display this help message")
	yellowColor.Println("  lumen --version             Display version information")
	yellowColor.Println("  lumen --show-config [file]  Dump the resolved CLI config as YAML")
	cyanColor.Println("")
	cyanColor.Println("REPL COMMANDS:")
	yellowColor.Println("  .exit                      Exit the REPL")
	yellowColor.Println("  .env                       Dump the current global bindings")
}

func showVersion() {
	cyanColor.Println("Lumen - A Tree-Walking Interpreted Language")
	cyanColor.Printf("Version: %s\n", VERSION)
	cyanColor.Printf("License: %s\n", LICENSE)
	cyanColor.Printf("Author : %s\n", AUTHOR)
}

// showConfig marshals the CLI's resolved configuration to YAML. args
// is the remainder of argv after "--show-config": an optional file
// path, mirroring what file mode would have run.
func showConfig(args []string) {
	cfg := config{Mode: "repl", Prompt: PROMPT, Banner: true, Color: true}
	if len(args) > 0 {
		cfg.Mode = "file"
		cfg.File = args[0]
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[CONFIG ERROR] %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}

// runFile reads and runs a single Lumen source file through the full
// pipeline, exiting 1 on any lex/parse/resolve/runtime failure.
func runFile(fileName string) {
	source, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read file '%s': %v\n", fileName, err)
		os.Exit(-1)
	}

	p := parser.New(string(source))
	stmts := p.Parse()
	if p.HasErrors() {
		for _, e := range p.Errors() {
			redColor.Fprintf(os.Stderr, "[PARSE ERROR] %s\n", e)
		}
		os.Exit(1)
	}

	res := resolver.New()
	if !res.Resolve(stmts) {
		for _, e := range res.Errors() {
			redColor.Fprintf(os.Stderr, "[RESOLVE ERROR] %s\n", e)
		}
		os.Exit(1)
	}

	interp := eval.New(res.Depths)
	interp.SetWriter(os.Stdout)
	if !interp.Interpret(stmts) {
		os.Exit(1)
	}
}
