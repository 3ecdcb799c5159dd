/*
File    : lumen/resolver/resolver_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package resolver

import (
	"testing"

	"github.com/akashmaji946/lumen/parser"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) []parser.Stmt {
	t.Helper()
	p := parser.New(src)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), "parse errors: %v", p.Errors())
	return stmts
}

func TestResolveLocalDepth(t *testing.T) {
	stmts := parse(t, `fun make() { var i = 0; fun inc() { i = i + 1; return i; } return inc; }`)
	r := New()
	ok := r.Resolve(stmts)
	require.True(t, ok, "resolve errors: %v", r.Errors())
	require.NotEmpty(t, r.Depths)
}

func TestThisOutsideClassIsError(t *testing.T) {
	stmts := parse(t, `print(this);`)
	r := New()
	require.False(t, r.Resolve(stmts))
}

func TestSuperOutsideSubclassIsError(t *testing.T) {
	stmts := parse(t, `class A { fun m() { super.m(); } }`)
	r := New()
	require.False(t, r.Resolve(stmts))
}

func TestReturnAtTopLevelIsError(t *testing.T) {
	stmts := parse(t, `return 1;`)
	r := New()
	require.False(t, r.Resolve(stmts))
}

func TestReturnValueFromInitializerIsError(t *testing.T) {
	stmts := parse(t, `class P { fun init(x) { return x; } }`)
	r := New()
	require.False(t, r.Resolve(stmts))
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	stmts := parse(t, `break;`)
	r := New()
	require.False(t, r.Resolve(stmts))
}

func TestRedeclarationInSameScopeIsError(t *testing.T) {
	stmts := parse(t, `{ var a = 1; var a = 2; }`)
	r := New()
	require.False(t, r.Resolve(stmts))
}

func TestLetReassignmentIsError(t *testing.T) {
	stmts := parse(t, `let x = 1; x = 2;`)
	r := New()
	require.False(t, r.Resolve(stmts))
}

func TestLetInOneFunctionDoesNotPoisonUnrelatedVarElsewhere(t *testing.T) {
	stmts := parse(t, `
		fun f() { let y = 1; }
		fun g() { var y = 2; y = 3; }
	`)
	r := New()
	require.True(t, r.Resolve(stmts), "resolve errors: %v", r.Errors())
}

func TestLetShadowedByVarInNestedBlockIsReassignable(t *testing.T) {
	stmts := parse(t, `let x = 1; { var x = 2; x = 3; }`)
	r := New()
	require.True(t, r.Resolve(stmts), "resolve errors: %v", r.Errors())
}

// One Resolver is shared across REPL lines; a static error on one line
// must not fail every later, unrelated line.
func TestResolveFailureDoesNotPoisonLaterCalls(t *testing.T) {
	r := New()
	require.False(t, r.Resolve(parse(t, `break;`)))
	require.True(t, r.Resolve(parse(t, `var a = 1;`)), "resolve errors: %v", r.Errors())
}

func TestSuperResolvesOneScopeBeyondThis(t *testing.T) {
	stmts := parse(t, `class A { fun greet() { print("A"); } } class B : A { fun greet() { super.greet(); } }`)
	r := New()
	require.True(t, r.Resolve(stmts), "resolve errors: %v", r.Errors())

	classB := stmts[1].(*parser.ClassStmt)
	method := classB.Methods[0]
	exprStmt := method.Body[0].(*parser.ExpressionStmt)
	call := exprStmt.Expression.(*parser.CallExpr)
	super := call.Callee.(*parser.SuperExpr)
	// From the method body's parameter scope, "this" sits one
	// environment out (the bound-method frame) and "super" one further
	// (the class's super-binding frame): depth 2 for super, with the
	// receiver reachable at depth-1.
	require.Equal(t, 2, r.Depths[super.ID()])
}
