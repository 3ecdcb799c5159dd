/*
File    : lumen/function/function.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package function defines the two callable Value variants: Function,
// a user-defined closure over its declaration environment, and
// NativeFn, a host-provided builtin such as print or clock. Both live
// here rather than in package objects to avoid an import cycle
// (Function holds a *scope.Environment, and package scope imports
// objects).
package function

import (
	"fmt"

	"github.com/akashmaji946/lumen/objects"
	"github.com/akashmaji946/lumen/parser"
	"github.com/akashmaji946/lumen/scope"
	"github.com/akashmaji946/lumen/token"
)

// Function is a user-defined closure: the declaring fun statement plus
// the environment active at its declaration site.
type Function struct {
	Name          string
	Params        []token.Token
	Body          []parser.Stmt
	Closure       *scope.Environment
	IsInitializer bool
}

func (*Function) ValueTag() {}

var _ objects.Value = (*Function)(nil)

func (f *Function) Arity() int { return len(f.Params) }

// Bind returns a new Function whose closure is a single-entry
// environment binding "this" to instance, parented on f's own closure.
// This is the method-binding rule: every method call sees a fresh
// environment for "this" without disturbing the class's shared
// declaration environment.
func (f *Function) Bind(instance *objects.Instance) *Function {
	env := scope.New(f.Closure)
	env.Define("this", instance)
	return &Function{
		Name:          f.Name,
		Params:        f.Params,
		Body:          f.Body,
		Closure:       env,
		IsInitializer: f.IsInitializer,
	}
}

func (f *Function) String() string {
	return fmt.Sprintf("<function %s>", f.Name)
}

// NativeFn wraps a host-provided builtin (print, clock, ...).
type NativeFn struct {
	Name  string
	Arity int
	Call  func(args []objects.Value) (objects.Value, error)
}

func (*NativeFn) ValueTag() {}

var _ objects.Value = (*NativeFn)(nil)

func (n *NativeFn) String() string {
	return fmt.Sprintf("<native-function %s>", n.Name)
}
