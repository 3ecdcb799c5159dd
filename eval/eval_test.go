/*
File    : lumen/eval/eval_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/akashmaji946/lumen/objects"
	"github.com/akashmaji946/lumen/parser"
	"github.com/akashmaji946/lumen/resolver"
	"github.com/stretchr/testify/require"
)

// run parses, resolves, and evaluates src end to end, returning
// whatever was written via print and whether the whole pipeline
// succeeded.
func run(t *testing.T, src string) (string, bool) {
	t.Helper()
	p := parser.New(src)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), "parse errors: %v", p.Errors())

	r := resolver.New()
	require.True(t, r.Resolve(stmts), "resolve errors: %v", r.Errors())

	var buf bytes.Buffer
	ev := New(r.Depths)
	ev.SetWriter(&buf)
	ok := ev.Interpret(stmts)
	return buf.String(), ok
}

func TestArithmeticAndPrint(t *testing.T) {
	out, ok := run(t, `var a = 1; var b = 2; print(a + b);`)
	require.True(t, ok)
	require.Equal(t, "3\n", out)
}

func TestClosureCounter(t *testing.T) {
	out, ok := run(t, `fun make() { var i = 0; fun inc() { i = i + 1; return i; } return inc; } var c = make(); print(c()); print(c()); print(c());`)
	require.True(t, ok)
	require.Equal(t, "1\n2\n3\n", out)
}

func TestSuperCallsParentMethod(t *testing.T) {
	out, ok := run(t, `class A { fun greet() { print("A"); } } class B : A { fun greet() { super.greet(); print("B"); } } B().greet();`)
	require.True(t, ok)
	require.Equal(t, "A\nB\n", out)
}

func TestInitializerSetsFields(t *testing.T) {
	out, ok := run(t, `class P { fun init(x) { this.x = x; } } var p = P(7); print(p.x);`)
	require.True(t, ok)
	require.Equal(t, "7\n", out)
}

func TestStringTemplateSplicesExpression(t *testing.T) {
	out, ok := run(t, `var s = "x=${1 + 2}"; print(s);`)
	require.True(t, ok)
	require.Equal(t, "x=3\n", out)
}

func TestWhenFirstMatchingBranchFires(t *testing.T) {
	out, ok := run(t, `when (3) { 1, 2 -> print("a"); 3, 4 -> print("b"); else -> print("c"); }`)
	require.True(t, ok)
	require.Equal(t, "b\n", out)
}

func TestWhenFallsThroughToElse(t *testing.T) {
	out, ok := run(t, `when (99) { 1, 2 -> print("a"); else -> print("c"); }`)
	require.True(t, ok)
	require.Equal(t, "c\n", out)
}

func TestIntegerDivisionByZeroIsRuntimeError(t *testing.T) {
	out, ok := run(t, `print(1 / 0);`)
	require.False(t, ok)
	require.Empty(t, out)
}

func TestFloatModuloByZeroIsRuntimeError(t *testing.T) {
	out, ok := run(t, `print(1.0 % 0.0);`)
	require.False(t, ok)
	require.Empty(t, out)
}

func TestWhileBreakAndContinue(t *testing.T) {
	out, ok := run(t, `
		var i = 0;
		while (i < 5) {
			i = i + 1;
			if (i == 2) { continue; }
			if (i == 4) { break; }
			print(i);
		}
	`)
	require.True(t, ok)
	require.Equal(t, "1\n3\n", out)
}

func TestBitwiseAndShift(t *testing.T) {
	out, ok := run(t, `print(6 & 3); print(6 | 1); print(1 << 3); print(16 >> 2); print(16 >>> 2);`)
	require.True(t, ok)
	require.Equal(t, "2\n7\n8\n4\n4\n", out)
}

func TestPowerAlwaysFloat(t *testing.T) {
	out, ok := run(t, `print(2 ** 10);`)
	require.True(t, ok)
	require.Equal(t, "1024\n", out)
}

func TestPlusConcatenatesWhenNotBothNumeric(t *testing.T) {
	out, ok := run(t, `print("n=" + 3);`)
	require.True(t, ok)
	require.Equal(t, "n=3\n", out)
}

func TestTruthinessZeroIntFalseZeroFloatTrue(t *testing.T) {
	out, ok := run(t, `if (0) { print("int-true"); } else { print("int-false"); } if (0.0) { print("float-true"); } else { print("float-false"); }`)
	require.True(t, ok)
	require.Equal(t, "int-false\nfloat-true\n", out)
}

func TestInIsAlwaysFalse(t *testing.T) {
	out, ok := run(t, `print(1 in 2); print(1 is 2); print(1 not in 2); print(1 not is 2);`)
	require.True(t, ok)
	require.Equal(t, "false\nfalse\nfalse\nfalse\n", out)
}

func TestCompoundAssignmentDesugars(t *testing.T) {
	out, ok := run(t, `var x = 10; x += 5; x -= 2; x *= 2; x /= 3; print(x);`)
	require.True(t, ok)
	require.Equal(t, "8\n", out)
}

func TestClassArityMatchesInit(t *testing.T) {
	out, ok := run(t, `class P { fun init(x, y) { this.x = x; this.y = y; } } var p = P(1, 2); print(p.x); print(p.y);`)
	require.True(t, ok)
	require.Equal(t, "1\n2\n", out)
}

func TestClassArityHelperMatchesInitOrZero(t *testing.T) {
	p := parser.New(`class P { fun init(x, y) {} } class Q {}`)
	stmts := p.Parse()
	require.False(t, p.HasErrors())
	r := resolver.New()
	require.True(t, r.Resolve(stmts))

	var buf bytes.Buffer
	ev := New(r.Depths)
	ev.SetWriter(&buf)
	require.True(t, ev.Interpret(stmts))

	pClass, ok := ev.Env().Get("P")
	require.True(t, ok)
	qClass, ok := ev.Env().Get("Q")
	require.True(t, ok)

	require.Equal(t, 2, ClassArity(pClass.(*objects.Class)))
	require.Equal(t, 0, ClassArity(qClass.(*objects.Class)))
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	out, ok := run(t, `print(doesNotExist);`)
	require.False(t, ok)
	require.Empty(t, out)
}

func TestClockReturnsFloat(t *testing.T) {
	out, ok := run(t, `print(clock() >= 0.0);`)
	require.True(t, ok)
	require.True(t, strings.TrimSpace(out) == "true")
}

func TestDisplayFormsForCallables(t *testing.T) {
	out, ok := run(t, `fun f() {} class C {} print(f); print(C); print(print); print(clock);`)
	require.True(t, ok)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Equal(t, []string{"<function f>", "<class C>", "<native-function print>", "<native-function clock>"}, lines)
}

func TestForStatementIsANoOp(t *testing.T) {
	out, ok := run(t, `for (x in 1) { print(x); } print("after");`)
	require.True(t, ok)
	require.Equal(t, "after\n", out)
}

func TestFieldHoldingBoundMethodIsNotRebound(t *testing.T) {
	out, ok := run(t, `
		class A { fun getThis() { return this; } }
		class B { fun getThis() { return this; } }
		var a = A();
		var b = B();
		b.hack = a.getThis;
		print(b.hack());
	`)
	require.True(t, ok)
	require.Equal(t, "<Instance A>\n", out)
}

func TestInstancesNeverCompareEqual(t *testing.T) {
	out, ok := run(t, `class C {} var a = C(); var b = C(); print(a == a); print(a == b);`)
	require.True(t, ok)
	require.Equal(t, "false\nfalse\n", out)
}

func TestNilEquality(t *testing.T) {
	require.True(t, objects.IsEqual(objects.NilValue, objects.NilValue))
	require.False(t, objects.IsEqual(objects.NilValue, objects.Int(0)))
}
