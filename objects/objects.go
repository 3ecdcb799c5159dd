/*
File    : lumen/objects/objects.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package objects defines the runtime value model: a closed sum type
// with one variant per runtime kind (Nil, Bool, Int, Float, Str,
// *Class, *Instance. Function and NativeFn live in package function to
// avoid a dependency cycle, but implement the same Value interface).
// Callers switch over the concrete Go type rather than downcasting
// through a shared base, so the compiler flags an unhandled variant.
package objects

import "fmt"

// Value is the marker interface every runtime value implements.
type Value interface {
	ValueTag()
}

// Nil is the language's null value. There is exactly one meaningful
// instance; NilValue is it.
type Nil struct{}

func (Nil) ValueTag() {}

// NilValue is the sole Nil instance; compare/display code can use it
// directly instead of constructing Nil{} everywhere.
var NilValue = Nil{}

// Bool wraps a boolean runtime value.
type Bool bool

func (Bool) ValueTag() {}

// Int is a 64-bit signed integer runtime value.
type Int int64

func (Int) ValueTag() {}

// Float is an IEEE-754 double runtime value.
type Float float64

func (Float) ValueTag() {}

// Str is a string runtime value.
type Str string

func (Str) ValueTag() {}

// Class is a runtime class value: its name, optional superclass, and
// method table (name -> Function, stored as Value to avoid importing
// package function here; eval type-asserts back to *function.Function
// when it needs to call one).
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]Value
}

func (*Class) ValueTag() {}

// FindMethod looks up name on this class, then walks the superclass
// chain. Returns nil if not found anywhere in the chain.
func (c *Class) FindMethod(name string) Value {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Instance is a runtime object: a strong reference to its class plus a
// mutable field map, created on demand by Set (there is no
// declared-field restriction).
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (*Instance) ValueTag() {}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

// Get looks up name as a field first, then as a method on the class
// chain. The second return reports whether the hit came from the
// method chain (as opposed to a field) - callers need this to decide
// whether the value should be freshly bound to this instance, since a
// field may itself hold a previously-bound method value that must be
// returned verbatim.
func (i *Instance) Get(name string) (v Value, fromMethod bool, ok bool) {
	if v, ok := i.Fields[name]; ok {
		return v, false, true
	}
	if m := i.Class.FindMethod(name); m != nil {
		return m, true, true
	}
	return nil, false, false
}

func (i *Instance) Set(name string, v Value) {
	i.Fields[name] = v
}

// IsTruthy implements the language's total truthiness rule: Nil is
// false; Bool is itself; Int is false only at zero; Float is always
// true, even 0.0; everything else is true.
func IsTruthy(v Value) bool {
	switch t := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(t)
	case Int:
		return t != 0
	case Float:
		return true
	default:
		return true
	}
}

// IsEqual implements the language's equality rule: Nil equals
// only Nil; numerics compare by numeric value with promotion; strings
// by content; booleans by value; anything else compares unequal.
func IsEqual(a, b Value) bool {
	if _, aNil := a.(Nil); aNil {
		_, bNil := b.(Nil)
		return bNil
	}
	if af, bf, ok := promote(a, b); ok {
		return af == bf
	}
	if as, ok := a.(Str); ok {
		bs, ok := b.(Str)
		return ok && as == bs
	}
	if ab, ok := a.(Bool); ok {
		bb, ok := b.(Bool)
		return ok && ab == bb
	}
	return false
}

// promote reports whether both a and b are numeric, returning both
// values converted to float64 for IsEqual's comparison.
func promote(a, b Value) (float64, float64, bool) {
	af, aok := numeric(a)
	bf, bok := numeric(b)
	if !aok || !bok {
		return 0, 0, false
	}
	return af, bf, true
}

func numeric(v Value) (float64, bool) {
	switch t := v.(type) {
	case Int:
		return float64(t), true
	case Float:
		return float64(t), true
	default:
		return 0, false
	}
}

// BothInt reports whether a and b are both Int, the precondition for
// the bitwise operators.
func BothInt(a, b Value) (Int, Int, bool) {
	ai, aok := a.(Int)
	bi, bok := b.(Int)
	return ai, bi, aok && bok
}

// Display renders v in the form used by print and string concatenation:
// numbers in host-default decimal, true/false/nil literal,
// strings raw, functions/classes/instances in their bracketed forms.
// Function/NativeFn values are rendered by the function package's own
// Value implementations (they satisfy fmt.Stringer); Display falls back
// to that for any Value not recognized here.
func Display(v Value) string {
	switch t := v.(type) {
	case Nil:
		return "nil"
	case Bool:
		if t {
			return "true"
		}
		return "false"
	case Int:
		return fmt.Sprintf("%d", int64(t))
	case Float:
		return formatFloat(float64(t))
	case Str:
		return string(t)
	case *Class:
		return fmt.Sprintf("<class %s>", t.Name)
	case *Instance:
		return fmt.Sprintf("<Instance %s>", t.Class.Name)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}
