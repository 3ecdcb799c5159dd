/*
File    : lumen/eval/eval_statements.go
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

// execStmt dispatches a single statement. It returns the control
// signal produced (sigNone for ordinary statements) and a RuntimeError
// if evaluation failed.
func (e *Evaluator) execStmt(s parser.Stmt) (signal, error) {
	switch st := s.(type) {
	case *parser.ExpressionStmt:
		_, err := e.evalExpr(st.Expression)
		return noSignal, err

	case *parser.VarStmt:
		v, err := e.evalInitOrNil(st.Init)
		if err != nil {
			return noSignal, err
		}
		e.env.Define(st.Name.Lexeme, v)
		return noSignal, nil

	case *parser.LetStmt:
		v, err := e.evalExpr(st.Init)
		if err != nil {
			return noSignal, err
		}
		e.env.Define(st.Name.Lexeme, v)
		return noSignal, nil

	case *parser.BlockStmt:
		return e.execBlock(st.Statements, scope.New(e.env))

	case *parser.IfStmt:
		return e.execIf(st)

	case *parser.WhileStmt:
		return e.execWhile(st)

	case *parser.ForStmt:
		// Declared but unimplemented: iteration over an arbitrary Expr
		// has no defined protocol.
		return noSignal, nil

	case *parser.WhenStmt:
		return e.execWhen(st)

	case *parser.FunctionStmt:
		fn := &function.Function{
			Name:    st.Name.Lexeme,
			Params:  st.Params,
			Body:    st.Body,
			Closure: e.env,
		}
		e.env.Define(st.Name.Lexeme, fn)
		return noSignal, nil

	case *parser.ReturnStmt:
		v, err := e.evalInitOrNil(st.Value)
		if err != nil {
			return noSignal, err
		}
		return signal{kind: sigReturn, value: v}, nil

	case *parser.ClassStmt:
		return e.execClass(st)

	case *parser.BreakStmt:
		return signal{kind: sigBreak}, nil

	case *parser.ContinueStmt:
		return signal{kind: sigContinue}, nil
	}
	return noSignal, nil
}

// evalInitOrNil evaluates expr if non-nil, else yields the language's
// Nil value - the shared default for Var's optional initializer and
// Return's optional value.
func (e *Evaluator) evalInitOrNil(expr parser.Expr) (objects.Value, error) {
	if expr == nil {
		return objects.NilValue, nil
	}
	return e.evalExpr(expr)
}

// execBlock runs stmts against env, restoring the evaluator's previous
// environment on every exit path (normal, signal, or error). A
// sigReturn/sigBreak/sigContinue short-circuits the remaining
// statements and propagates to the caller unchanged.
func (e *Evaluator) execBlock(stmts []parser.Stmt, env *scope.Environment) (signal, error) {
	previous := e.env
	e.env = env
	defer func() { e.env = previous }()

	for _, s := range stmts {
		sig, err := e.execStmt(s)
		if err != nil {
			return noSignal, err
		}
		if sig.kind != sigNone {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (e *Evaluator) execIf(st *parser.IfStmt) (signal, error) {
	cond, err := e.evalExpr(st.Condition)
	if err != nil {
		return noSignal, err
	}
	if objects.IsTruthy(cond) {
		return e.execStmt(st.Then)
	}
	if st.Else != nil {
		return e.execStmt(st.Else)
	}
	return noSignal, nil
}

func (e *Evaluator) execWhile(st *parser.WhileStmt) (signal, error) {
	for {
		cond, err := e.evalExpr(st.Condition)
		if err != nil {
			return noSignal, err
		}
		if !objects.IsTruthy(cond) {
			return noSignal, nil
		}
		sig, err := e.execStmt(st.Body)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case sigBreak:
			return noSignal, nil
		case sigReturn:
			return sig, nil
		}
		// sigContinue and sigNone both fall through to the next iteration.
	}
}

// execWhen runs each branch's conditions in order; the first branch
// with any truthy condition fires (disjunction across the
// comma-separated list). If none fire, the else arm runs if present.
func (e *Evaluator) execWhen(st *parser.WhenStmt) (signal, error) {
	for _, branch := range st.Branches {
		fired := false
		for _, cond := range branch.Conditions {
			v, err := e.evalExpr(cond)
			if err != nil {
				return noSignal, err
			}
			if objects.IsTruthy(v) {
				fired = true
				break
			}
		}
		if fired {
			return e.execStmt(branch.Body)
		}
	}
	if st.Else != nil {
		return e.execStmt(st.Else)
	}
	return noSignal, nil
}
