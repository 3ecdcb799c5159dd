/*
File    : lumen/parser/parser_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"testing"

	"github.com/akashmaji946/lumen/token"
	"github.com/stretchr/testify/require"
)

func TestParseVarAndArithmetic(t *testing.T) {
	p := New("var a = 1; var b = 2; print(a + b);")
	stmts := p.Parse()
	require.False(t, p.HasErrors())
	require.Len(t, stmts, 3)
	_, ok := stmts[0].(*VarStmt)
	require.True(t, ok)
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	p := New("2 ** 3 ** 2;")
	stmts := p.Parse()
	require.False(t, p.HasErrors())
	es := stmts[0].(*ExpressionStmt)
	bin := es.Expression.(*BinaryExpr)
	require.Equal(t, int64(2), bin.Left.(*LiteralExpr).Value)
	_, rightIsBinary := bin.Right.(*BinaryExpr)
	require.True(t, rightIsBinary)
}

func TestParseClassWithSuperclassAndInit(t *testing.T) {
	src := `class A { fun greet() { print("A"); } } class B : A { fun init(x) { this.x = x; } fun greet() { super.greet(); } }`
	p := New(src)
	stmts := p.Parse()
	require.False(t, p.HasErrors())
	require.Len(t, stmts, 2)
	b := stmts[1].(*ClassStmt)
	require.NotNil(t, b.Superclass)
	require.Equal(t, "A", b.Superclass.Name.Lexeme)
	require.Len(t, b.Methods, 2)
}

func TestParseIfElifElseDesugars(t *testing.T) {
	src := `if (a) { 1; } elif (b) { 2; } else { 3; }`
	p := New(src)
	stmts := p.Parse()
	require.False(t, p.HasErrors())
	top := stmts[0].(*IfStmt)
	elif := top.Else.(*IfStmt)
	require.NotNil(t, elif.Else)
}

func TestParseWhenDesugarsPlainConditionToEquality(t *testing.T) {
	src := `when (3) { 1, 2 -> print("a"); 3, 4 -> print("b"); else -> print("c"); }`
	p := New(src)
	stmts := p.Parse()
	require.False(t, p.HasErrors())
	w := stmts[0].(*WhenStmt)
	require.Len(t, w.Branches, 2)
	require.NotNil(t, w.Else)
	cond := w.Branches[0].Conditions[0].(*BinaryExpr)
	require.Equal(t, "==", cond.Op.Lexeme)
}

func TestParseCallGenericCallee(t *testing.T) {
	// Callee is an arbitrary expression, not just a bare identifier.
	src := `make()();`
	p := New(src)
	stmts := p.Parse()
	require.False(t, p.HasErrors())
	outer := stmts[0].(*ExpressionStmt).Expression.(*CallExpr)
	_, calleeIsCall := outer.Callee.(*CallExpr)
	require.True(t, calleeIsCall)
}

func TestParseStringTemplate(t *testing.T) {
	src := `var s = "x=${1 + 2}"; `
	p := New(src)
	stmts := p.Parse()
	require.False(t, p.HasErrors())
	v := stmts[0].(*VarStmt)
	tmpl := v.Init.(*StrTemplateExpr)
	require.Len(t, tmpl.Parts, 2)
}

func TestParseTooManyArgsIsSoftError(t *testing.T) {
	args := ""
	for i := 0; i < 256; i++ {
		if i > 0 {
			args += ","
		}
		args += "1"
	}
	p := New("f(" + args + ");")
	p.Parse()
	require.True(t, p.HasErrors())
}

func TestParseAssignmentToNonTargetIsError(t *testing.T) {
	p := New("1 + 2 = 3;")
	p.Parse()
	require.True(t, p.HasErrors())
}

func TestLexErrorFailsParse(t *testing.T) {
	p := New(`var s = "oops;`)
	stmts := p.Parse()
	require.True(t, p.HasErrors())
	require.Nil(t, stmts)
}

func TestParseWhenBangConditionDesugarsToEquality(t *testing.T) {
	p := New(`when (x) { !y -> print("a"); not in z -> print("b"); not is z -> print("c"); }`)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), "parse errors: %v", p.Errors())
	w := stmts[0].(*WhenStmt)
	require.Len(t, w.Branches, 3)

	// `!y` is an ordinary expression condition: subject == !y.
	c0 := w.Branches[0].Conditions[0].(*BinaryExpr)
	require.Equal(t, token.EQ, c0.Op.Kind)
	_, isUnary := c0.Right.(*UnaryExpr)
	require.True(t, isUnary)

	c1 := w.Branches[1].Conditions[0].(*BinaryExpr)
	require.Equal(t, token.NOTIN, c1.Op.Kind)
	c2 := w.Branches[2].Conditions[0].(*BinaryExpr)
	require.Equal(t, token.NOTIS, c2.Op.Kind)
}
