/*
File    : lumen/eval/eval_classes.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"github.com/akashmaji946/lumen/function"
	"github.com/akashmaji946/lumen/objects"
	"github.com/akashmaji946/lumen/parser"
	"github.com/akashmaji946/lumen/scope"
)

// execClass builds a runtime Class from a ClassStmt: it resolves the
// (optional) superclass, wraps method closures in a "super"-binding
// environment when there is one, and builds each method into a
// Function whose IsInitializer flag is set for the method named
// "init".
func (e *Evaluator) execClass(st *parser.ClassStmt) (signal, error) {
	var superclass *objects.Class
	if st.Superclass != nil {
		v, err := e.evalExpr(st.Superclass)
		if err != nil {
			return noSignal, err
		}
		sc, ok := v.(*objects.Class)
		if !ok {
			return noSignal, runtimeErr(st.Superclass.Name, "superclass must be a class")
		}
		superclass = sc
	}

	// Bind the name before building methods so a method body can refer
	// to the class by name (e.g. a factory method returning new
	// instances of its own type).
	e.env.Define(st.Name.Lexeme, objects.NilValue)

	methodEnv := e.env
	if superclass != nil {
		methodEnv = scope.New(e.env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]objects.Value, len(st.Methods))
	for _, m := range st.Methods {
		methods[m.Name.Lexeme] = &function.Function{
			Name:          m.Name.Lexeme,
			Params:        m.Params,
			Body:          m.Body,
			Closure:       methodEnv,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &objects.Class{Name: st.Name.Lexeme, Superclass: superclass, Methods: methods}
	e.env.Assign(st.Name.Lexeme, class)
	return noSignal, nil
}

// evalGet resolves obj.name: an instance field first, returned
// verbatim (even if the field itself holds a function value bound to
// some other instance), then a method on the class chain, bound fresh
// to this instance on every access.
func (e *Evaluator) evalGet(x *parser.GetExpr) (objects.Value, error) {
	obj, err := e.evalExpr(x.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*objects.Instance)
	if !ok {
		return nil, runtimeErr(x.Name, "only instances have properties")
	}
	v, fromMethod, ok := inst.Get(x.Name.Lexeme)
	if !ok {
		return nil, runtimeErr(x.Name, "undefined property '%s'", x.Name.Lexeme)
	}
	if fromMethod {
		return v.(*function.Function).Bind(inst), nil
	}
	return v, nil
}

// evalSet stores into an instance's field map, creating the field on
// demand.
func (e *Evaluator) evalSet(x *parser.SetExpr) (objects.Value, error) {
	obj, err := e.evalExpr(x.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*objects.Instance)
	if !ok {
		return nil, runtimeErr(x.Name, "only instances have fields")
	}
	v, err := e.evalExpr(x.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(x.Name.Lexeme, v)
	return v, nil
}

// evalSuper resolves super.method: the resolver guarantees "super" is
// bound at the use site's depth and the implicit "this" one
// environment further in, so the receiver is
// always reachable without an explicit this-expression at the call
// site.
func (e *Evaluator) evalSuper(x *parser.SuperExpr) (objects.Value, error) {
	depth := e.Depths[x.ID()]
	superclass := e.env.GetAt(depth, "super").(*objects.Class)
	instance := e.env.GetAt(depth-1, "this").(*objects.Instance)

	methodV := superclass.FindMethod(x.Method.Lexeme)
	if methodV == nil {
		return nil, runtimeErr(x.Method, "undefined property '%s'", x.Method.Lexeme)
	}
	fn, ok := methodV.(*function.Function)
	if !ok {
		return nil, runtimeErr(x.Method, "undefined property '%s'", x.Method.Lexeme)
	}
	return fn.Bind(instance), nil
}
