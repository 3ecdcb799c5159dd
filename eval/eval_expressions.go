/*
File    : lumen/eval/eval_expressions.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"strings"

	"github.com/akashmaji946/lumen/objects"
	"github.com/akashmaji946/lumen/parser"
	"github.com/akashmaji946/lumen/token"
)

// evalExpr dispatches a single expression to its value.
func (e *Evaluator) evalExpr(ex parser.Expr) (objects.Value, error) {
	switch x := ex.(type) {
	case *parser.LiteralExpr:
		return literalValue(x.Value), nil

	case *parser.VariableExpr:
		return e.lookupVariable(x.Name, x.ID())

	case *parser.ThisExpr:
		return e.lookupVariable(x.Keyword, x.ID())

	case *parser.AssignExpr:
		return e.evalAssign(x)

	case *parser.UnaryExpr:
		return e.evalUnary(x)

	case *parser.BinaryExpr:
		return e.evalBinary(x)

	case *parser.LogicalExpr:
		return e.evalLogical(x)

	case *parser.GroupingExpr:
		return e.evalExpr(x.Inner)

	case *parser.StrTemplateExpr:
		return e.evalStrTemplate(x)

	case *parser.CallExpr:
		return e.evalCall(x)

	case *parser.GetExpr:
		return e.evalGet(x)

	case *parser.SetExpr:
		return e.evalSet(x)

	case *parser.SuperExpr:
		return e.evalSuper(x)
	}
	return objects.NilValue, nil
}

// literalValue converts a LiteralExpr's raw Go value (set by the
// parser/lexer: int64, float64, string, bool, or nil) into the
// runtime Value sum.
func literalValue(v interface{}) objects.Value {
	switch t := v.(type) {
	case nil:
		return objects.NilValue
	case bool:
		return objects.Bool(t)
	case int64:
		return objects.Int(t)
	case float64:
		return objects.Float(t)
	case string:
		return objects.Str(t)
	default:
		return objects.NilValue
	}
}

// lookupVariable resolves name using the resolver's recorded depth for
// exprID if present, else falls back to the globals environment.
func (e *Evaluator) lookupVariable(name token.Token, exprID int) (objects.Value, error) {
	if depth, ok := e.Depths[exprID]; ok {
		return e.env.GetAt(depth, name.Lexeme), nil
	}
	v, ok := e.Globals.Get(name.Lexeme)
	if !ok {
		return nil, runtimeErr(name, "undefined variable '%s'", name.Lexeme)
	}
	return v, nil
}

func (e *Evaluator) evalAssign(x *parser.AssignExpr) (objects.Value, error) {
	v, err := e.evalExpr(x.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := e.Depths[x.ID()]; ok {
		e.env.AssignAt(depth, x.Name.Lexeme, v)
		return v, nil
	}
	if err := e.Globals.Assign(x.Name.Lexeme, v); err != nil {
		return nil, runtimeErr(x.Name, "undefined variable '%s'", x.Name.Lexeme)
	}
	return v, nil
}

func (e *Evaluator) evalUnary(x *parser.UnaryExpr) (objects.Value, error) {
	right, err := e.evalExpr(x.Right)
	if err != nil {
		return nil, err
	}
	switch x.Op.Kind {
	case token.MINUS:
		switch r := right.(type) {
		case objects.Int:
			return -r, nil
		case objects.Float:
			return -r, nil
		}
		return nil, runtimeErr(x.Op, "operand must be a number")
	case token.NOT:
		return objects.Bool(!objects.IsTruthy(right)), nil
	case token.BIT_NOT:
		i, ok := right.(objects.Int)
		if !ok {
			return nil, runtimeErr(x.Op, "operand must be an integer")
		}
		return ^i, nil
	}
	return objects.NilValue, nil
}

func (e *Evaluator) evalLogical(x *parser.LogicalExpr) (objects.Value, error) {
	left, err := e.evalExpr(x.Left)
	if err != nil {
		return nil, err
	}
	if x.Op.Kind == token.OR {
		if objects.IsTruthy(left) {
			return left, nil
		}
	} else { // token.AND
		if !objects.IsTruthy(left) {
			return left, nil
		}
	}
	return e.evalExpr(x.Right)
}

func (e *Evaluator) evalStrTemplate(x *parser.StrTemplateExpr) (objects.Value, error) {
	var b strings.Builder
	for _, part := range x.Parts {
		v, err := e.evalExpr(part)
		if err != nil {
			return nil, err
		}
		b.WriteString(objects.Display(v))
	}
	return objects.Str(b.String()), nil
}
