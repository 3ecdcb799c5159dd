/*
File    : lumen/function/function_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package function

import (
	"testing"

	"github.com/akashmaji946/lumen/objects"
	"github.com/akashmaji946/lumen/scope"
	"github.com/akashmaji946/lumen/token"
	"github.com/stretchr/testify/require"
)

func TestArityMatchesParamCount(t *testing.T) {
	fn := &Function{Params: []token.Token{{Kind: token.IDENTIFIER, Lexeme: "a"}, {Kind: token.IDENTIFIER, Lexeme: "b"}}}
	require.Equal(t, 2, fn.Arity())
}

func TestBindCreatesThisEnvironmentParentedOnClosure(t *testing.T) {
	closure := scope.New(nil)
	closure.Define("shared", objects.Int(42))
	fn := &Function{Name: "m", Closure: closure}

	instance := objects.NewInstance(&objects.Class{Name: "C"})
	bound := fn.Bind(instance)

	this, ok := bound.Closure.Get("this")
	require.True(t, ok)
	require.Same(t, instance, this)

	shared, ok := bound.Closure.Get("shared")
	require.True(t, ok)
	require.Equal(t, objects.Int(42), shared)

	// Binding does not mutate the original declaration closure.
	_, ok = closure.Get("this")
	require.False(t, ok)
}

func TestStringDisplayForm(t *testing.T) {
	fn := &Function{Name: "add"}
	require.Equal(t, "<function add>", fn.String())

	native := &NativeFn{Name: "clock"}
	require.Equal(t, "<native-function clock>", native.String())
}
