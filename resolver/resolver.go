/*
File    : lumen/resolver/resolver.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package resolver performs the static pre-pass between parsing and
// evaluation: it walks the statement list once, computes each variable
// reference's scope distance, and reports the name-resolution static
// errors the language defines (use of this/super/return/break/continue
// outside their valid context, redeclaration, reading a declared-but-not-
// yet-defined name). It never evaluates anything.
package resolver

import (
	"fmt"

	"github.com/akashmaji946/lumen/parser"
)

type functionKind int

const (
	fkNone functionKind = iota
	fkFunction
	fkMethod
	fkInitializer
)

type classKind int

const (
	ckNone classKind = iota
	ckClass
	ckSubclass
)

type loopKind int

const (
	lkNone loopKind = iota
	lkLoop
)

// binding tracks one name's resolution state within a single lexical
// scope: whether its initializer has finished running yet, and whether
// it was declared with `let` (so a later Assign to it is rejected).
type binding struct {
	defined bool
	isLet   bool
}

// Resolver walks a parsed program and fills in Depths, a side-table
// from expression-node identity (parser.Expr.ID()) to scope distance.
type Resolver struct {
	scopes []map[string]*binding

	currentFunction functionKind
	currentClass    classKind
	currentLoop     loopKind

	// Depths is the resolution side-table: depth(d) for an expression
	// node with id e means the binding scope is d environments out from
	// the one active when the evaluator reaches e. Absent entries mean
	// the name is global.
	Depths map[int]int

	// globalLets marks top-level names declared with `let`. Top-level
	// declarations never push a scope (resolveLocal's "not found -
	// global" fallback), so they can't ride on the per-scope binding
	// above and need their own flat table; it is scoped to the single
	// real global namespace, not to every lexical scope the way a flat
	// map keyed across the whole program would be.
	globalLets map[string]bool

	errors []string
}

// New creates an empty Resolver.
func New() *Resolver {
	return &Resolver{Depths: make(map[int]int), globalLets: make(map[string]bool)}
}

// Errors returns the static diagnostics collected during Resolve.
func (r *Resolver) Errors() []string { return r.errors }

func (r *Resolver) errorf(line int, format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf("Line [%d]: %s", line, fmt.Sprintf(format, args...)))
}

// Resolve walks stmts and returns whether this walk succeeded: errors
// from earlier Resolve calls stay recorded (the REPL reuses one
// Resolver across input lines) but don't fail later, unrelated input.
func (r *Resolver) Resolve(stmts []parser.Stmt) bool {
	before := len(r.errors)
	r.resolveStmts(stmts)
	return len(r.errors) == before
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, map[string]*binding{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

// declare registers name in the innermost scope, not yet usable until
// define marks it initialized. isLet records whether this particular
// binding came from a `let` declaration, scoped to just this name in
// just this scope - a `let` in one function must never affect an
// unrelated `var` of the same name elsewhere.
func (r *Resolver) declare(name string, line int, isLet bool) {
	if len(r.scopes) == 0 {
		if isLet {
			r.globalLets[name] = true
		}
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name]; exists {
		r.errorf(line, "already a variable named '%s' in this scope", name)
	}
	scope[name] = &binding{isLet: isLet}
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	if b, ok := r.scopes[len(r.scopes)-1][name]; ok {
		b.defined = true
	}
}

func (r *Resolver) resolveLocal(exprID int, name string, line int) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i][name]; ok {
			if !b.defined {
				r.errorf(line, "can't read local variable '%s' in its own initializer", name)
			}
			r.Depths[exprID] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any scope: treated as global, no side-table entry.
}

// isLetBinding reports whether name currently resolves to a `let`
// binding, searching the same scope chain resolveLocal would.
func (r *Resolver) isLetBinding(name string) bool {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i][name]; ok {
			return b.isLet
		}
	}
	return r.globalLets[name]
}

func (r *Resolver) resolveStmts(stmts []parser.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s parser.Stmt) {
	switch st := s.(type) {
	case *parser.ExpressionStmt:
		r.resolveExpr(st.Expression)
	case *parser.VarStmt:
		r.declare(st.Name.Lexeme, st.Name.Line, false)
		if st.Init != nil {
			r.resolveExpr(st.Init)
		}
		r.define(st.Name.Lexeme)
	case *parser.LetStmt:
		r.declare(st.Name.Lexeme, st.Name.Line, true)
		r.resolveExpr(st.Init)
		r.define(st.Name.Lexeme)
	case *parser.BlockStmt:
		r.beginScope()
		r.resolveStmts(st.Statements)
		r.endScope()
	case *parser.IfStmt:
		r.resolveExpr(st.Condition)
		r.resolveStmt(st.Then)
		if st.Else != nil {
			r.resolveStmt(st.Else)
		}
	case *parser.WhileStmt:
		enclosingLoop := r.currentLoop
		r.currentLoop = lkLoop
		r.resolveExpr(st.Condition)
		r.resolveStmt(st.Body)
		r.currentLoop = enclosingLoop
	case *parser.ForStmt:
		enclosingLoop := r.currentLoop
		r.currentLoop = lkLoop
		r.resolveExpr(st.Iterable)
		r.beginScope()
		r.declare(st.VarName.Lexeme, st.VarName.Line, false)
		r.define(st.VarName.Lexeme)
		r.resolveStmt(st.Body)
		r.endScope()
		r.currentLoop = enclosingLoop
	case *parser.WhenStmt:
		r.resolveExpr(st.Subject)
		for _, branch := range st.Branches {
			for _, c := range branch.Conditions {
				r.resolveExpr(c)
			}
			r.resolveStmt(branch.Body)
		}
		if st.Else != nil {
			r.resolveStmt(st.Else)
		}
	case *parser.FunctionStmt:
		r.declare(st.Name.Lexeme, st.Name.Line, false)
		r.define(st.Name.Lexeme)
		r.resolveFunction(st, fkFunction)
	case *parser.ReturnStmt:
		if r.currentFunction == fkNone {
			r.errorf(st.Keyword.Line, "can't return from top-level code")
		}
		if st.Value != nil {
			if r.currentFunction == fkInitializer {
				r.errorf(st.Keyword.Line, "can't return a value from an initializer")
			}
			r.resolveExpr(st.Value)
		}
	case *parser.ClassStmt:
		r.resolveClass(st)
	case *parser.BreakStmt:
		if r.currentLoop == lkNone {
			r.errorf(st.Keyword.Line, "'break' outside a loop")
		}
	case *parser.ContinueStmt:
		if r.currentLoop == lkNone {
			r.errorf(st.Keyword.Line, "'continue' outside a loop")
		}
	}
}

func (r *Resolver) resolveFunction(fn *parser.FunctionStmt, kind functionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind
	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p.Lexeme, p.Line, false)
		r.define(p.Lexeme)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
	r.currentFunction = enclosing
}

func (r *Resolver) resolveClass(st *parser.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = ckClass
	r.declare(st.Name.Lexeme, st.Name.Line, false)
	r.define(st.Name.Lexeme)

	if st.Superclass != nil {
		if st.Superclass.Name.Lexeme == st.Name.Lexeme {
			r.errorf(st.Superclass.Name.Line, "a class can't inherit from itself")
		}
		r.currentClass = ckSubclass
		r.resolveExpr(st.Superclass)
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = &binding{defined: true}
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = &binding{defined: true}

	for _, method := range st.Methods {
		kind := fkMethod
		if method.Name.Lexeme == "init" {
			kind = fkInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()
	if st.Superclass != nil {
		r.endScope()
	}
	r.currentClass = enclosingClass
}

func (r *Resolver) resolveExpr(e parser.Expr) {
	switch ex := e.(type) {
	case *parser.LiteralExpr:
		// nothing to resolve
	case *parser.VariableExpr:
		r.resolveLocal(ex.ID(), ex.Name.Lexeme, ex.Name.Line)
	case *parser.AssignExpr:
		r.resolveExpr(ex.Value)
		if r.isLetBinding(ex.Name.Lexeme) {
			r.errorf(ex.Name.Line, "can't assign to 'let' binding '%s'", ex.Name.Lexeme)
		}
		r.resolveLocal(ex.ID(), ex.Name.Lexeme, ex.Name.Line)
	case *parser.UnaryExpr:
		r.resolveExpr(ex.Right)
	case *parser.BinaryExpr:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *parser.LogicalExpr:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *parser.GroupingExpr:
		r.resolveExpr(ex.Inner)
	case *parser.StrTemplateExpr:
		for _, part := range ex.Parts {
			r.resolveExpr(part)
		}
	case *parser.CallExpr:
		r.resolveExpr(ex.Callee)
		for _, a := range ex.Args {
			r.resolveExpr(a)
		}
	case *parser.GetExpr:
		r.resolveExpr(ex.Object)
	case *parser.SetExpr:
		r.resolveExpr(ex.Value)
		r.resolveExpr(ex.Object)
	case *parser.ThisExpr:
		if r.currentClass == ckNone {
			r.errorf(ex.Keyword.Line, "can't use 'this' outside of a class")
			return
		}
		r.resolveLocal(ex.ID(), "this", ex.Keyword.Line)
	case *parser.SuperExpr:
		if r.currentClass == ckNone {
			r.errorf(ex.Keyword.Line, "can't use 'super' outside of a class")
		} else if r.currentClass != ckSubclass {
			r.errorf(ex.Keyword.Line, "can't use 'super' in a class with no superclass")
		}
		r.resolveLocal(ex.ID(), "super", ex.Keyword.Line)
	}
}
