/*
File    : lumen/eval/eval_calls.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"github.com/akashmaji946/lumen/function"
	"github.com/akashmaji946/lumen/objects"
	"github.com/akashmaji946/lumen/parser"
	"github.com/akashmaji946/lumen/scope"
	"github.com/akashmaji946/lumen/token"
)

// evalCall evaluates the callee and arguments left to right, then
// dispatches on the callee's runtime kind.
func (e *Evaluator) evalCall(x *parser.CallExpr) (objects.Value, error) {
	callee, err := e.evalExpr(x.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]objects.Value, len(x.Args))
	for i, a := range x.Args {
		v, err := e.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch c := callee.(type) {
	case *function.Function:
		return e.callFunction(c, args, x.Paren)
	case *function.NativeFn:
		if len(args) != c.Arity {
			return nil, runtimeErr(x.Paren, "expected %d arguments but got %d", c.Arity, len(args))
		}
		return c.Call(args)
	case *objects.Class:
		return e.instantiate(c, args, x.Paren)
	default:
		return nil, runtimeErr(x.Paren, "can only call functions and classes")
	}
}

// callFunction invokes a user-defined closure: a fresh environment
// parented on the function's declaration scope, parameters bound to
// args, the body run as a block. An initializer always yields the
// bound instance, even for a bare "return;".
func (e *Evaluator) callFunction(fn *function.Function, args []objects.Value, paren token.Token) (objects.Value, error) {
	if len(args) != fn.Arity() {
		return nil, runtimeErr(paren, "expected %d arguments but got %d", fn.Arity(), len(args))
	}
	callEnv := scope.New(fn.Closure)
	for i, p := range fn.Params {
		callEnv.Define(p.Lexeme, args[i])
	}
	sig, err := e.execBlock(fn.Body, callEnv)
	if err != nil {
		return nil, err
	}
	if fn.IsInitializer {
		this := fn.Closure.GetAt(0, "this")
		return this, nil
	}
	if sig.kind == sigReturn {
		return sig.value, nil
	}
	return objects.NilValue, nil
}

// instantiate allocates an Instance and, if the class declares an
// init method, binds and calls it with args. Arity for a class
// without init is always zero.
func (e *Evaluator) instantiate(class *objects.Class, args []objects.Value, paren token.Token) (objects.Value, error) {
	inst := objects.NewInstance(class)
	if initV := class.FindMethod("init"); initV != nil {
		initFn, ok := initV.(*function.Function)
		if !ok {
			return nil, runtimeErr(paren, "'init' is not callable")
		}
		if _, err := e.callFunction(initFn.Bind(inst), args, paren); err != nil {
			return nil, err
		}
	} else if len(args) != 0 {
		return nil, runtimeErr(paren, "expected 0 arguments but got %d", len(args))
	}
	return inst, nil
}

// ClassArity reports a class's construction arity: its init method's
// arity if present, else zero.
func ClassArity(class *objects.Class) int {
	initV := class.FindMethod("init")
	if initV == nil {
		return 0
	}
	fn, ok := initV.(*function.Function)
	if !ok {
		return 0
	}
	return fn.Arity()
}
