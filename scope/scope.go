/*
File    : lumen/scope/scope.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package scope implements the lexical environment chain: a linked
// sequence of bindings, one per block/function/class scope entered at
// runtime. Depth-indexed lookup (GetAt/AssignAt) lets the evaluator use
// the resolver's precomputed distances instead of searching the chain.
package scope

import (
	"fmt"

	"github.com/akashmaji946/lumen/objects"
)

// Environment is one frame of the scope chain.
type Environment struct {
	bindings map[string]objects.Value
	Parent   *Environment
}

// New creates a child environment of parent, or a root environment if
// parent is nil.
func New(parent *Environment) *Environment {
	return &Environment{bindings: make(map[string]objects.Value), Parent: parent}
}

// Define binds name to v in this environment, shadowing any binding of
// the same name in an enclosing environment.
func (e *Environment) Define(name string, v objects.Value) {
	e.bindings[name] = v
}

// Get searches this environment and its ancestors for name.
func (e *Environment) Get(name string) (objects.Value, bool) {
	if v, ok := e.bindings[name]; ok {
		return v, true
	}
	if e.Parent != nil {
		return e.Parent.Get(name)
	}
	return nil, false
}

// Assign updates name in the environment where it is already bound,
// searching outward from e. It reports an error if name is not bound
// anywhere in the chain; it never creates a new binding.
func (e *Environment) Assign(name string, v objects.Value) error {
	if _, ok := e.bindings[name]; ok {
		e.bindings[name] = v
		return nil
	}
	if e.Parent != nil {
		return e.Parent.Assign(name, v)
	}
	return fmt.Errorf("undefined variable '%s'", name)
}

// Names returns the bindings defined directly in this environment, in
// no particular order. Used by the REPL's ".env" introspection command.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.bindings))
	for name := range e.bindings {
		names = append(names, name)
	}
	return names
}

// ancestor walks distance environments out from e.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.Parent
	}
	return env
}

// GetAt reads name from the environment exactly distance frames out,
// as computed by the resolver. It panics if the resolver's distance is
// wrong, since that indicates a resolver/evaluator desync bug rather
// than a user-facing error.
func (e *Environment) GetAt(distance int, name string) objects.Value {
	env := e.ancestor(distance)
	v, ok := env.bindings[name]
	if !ok {
		panic(fmt.Sprintf("scope: resolved variable '%s' missing at depth %d", name, distance))
	}
	return v
}

// AssignAt writes name in the environment exactly distance frames out.
func (e *Environment) AssignAt(distance int, name string, v objects.Value) {
	e.ancestor(distance).bindings[name] = v
}
