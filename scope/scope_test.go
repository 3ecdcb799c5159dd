/*
File    : lumen/scope/scope_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package scope

import (
	"testing"

	"github.com/akashmaji946/lumen/objects"
	"github.com/stretchr/testify/require"
)

func TestDefineAndGet(t *testing.T) {
	env := New(nil)
	env.Define("x", objects.Int(1))
	v, ok := env.Get("x")
	require.True(t, ok)
	require.Equal(t, objects.Int(1), v)
}

func TestGetWalksParentChain(t *testing.T) {
	outer := New(nil)
	outer.Define("x", objects.Int(10))
	inner := New(outer)
	v, ok := inner.Get("x")
	require.True(t, ok)
	require.Equal(t, objects.Int(10), v)
}

func TestAssignUpdatesDefiningScope(t *testing.T) {
	outer := New(nil)
	outer.Define("x", objects.Int(1))
	inner := New(outer)
	require.NoError(t, inner.Assign("x", objects.Int(2)))
	v, _ := outer.Get("x")
	require.Equal(t, objects.Int(2), v)
}

func TestAssignUndefinedIsError(t *testing.T) {
	env := New(nil)
	require.Error(t, env.Assign("missing", objects.Int(1)))
}

func TestGetAtAndAssignAtUseResolverDistance(t *testing.T) {
	global := New(nil)
	global.Define("x", objects.Int(1))
	block := New(global)
	block.Define("x", objects.Int(2))
	deepest := New(block)

	require.Equal(t, objects.Int(2), deepest.GetAt(1, "x"))
	require.Equal(t, objects.Int(1), deepest.GetAt(2, "x"))

	deepest.AssignAt(2, "x", objects.Int(99))
	v, _ := global.Get("x")
	require.Equal(t, objects.Int(99), v)
}
