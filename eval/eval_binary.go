/*
File    : lumen/eval/eval_binary.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"math"

	"github.com/akashmaji946/lumen/objects"
	"github.com/akashmaji946/lumen/parser"
	"github.com/akashmaji946/lumen/token"
)

// evalBinary implements the BinaryExpr operator families:
// numeric arithmetic with string-concatenation fallback for +,
// bitwise ops (Int-only), comparisons and equality, and the in/is
// placeholder family. A range (`a..b`) has no runtime semantics and
// evaluates to nil.
func (e *Evaluator) evalBinary(x *parser.BinaryExpr) (objects.Value, error) {
	left, err := e.evalExpr(x.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(x.Right)
	if err != nil {
		return nil, err
	}

	switch x.Op.Kind {
	case token.PLUS:
		return e.evalPlus(x.Op, left, right)
	case token.MINUS, token.STAR, token.SLASH, token.PCT:
		return e.evalArith(x.Op, left, right)
	case token.POWER:
		return e.evalPower(x.Op, left, right)
	case token.BIT_AND, token.BIT_OR, token.BIT_XOR, token.SHIFT_L, token.SHIFT_R, token.SHIFT_RA:
		return e.evalBitwise(x.Op, left, right)
	case token.LT, token.LE, token.GT, token.GE:
		return e.evalCompare(x.Op, left, right)
	case token.EQ:
		return objects.Bool(objects.IsEqual(left, right)), nil
	case token.NE:
		return objects.Bool(!objects.IsEqual(left, right)), nil
	case token.IN, token.IS, token.NOTIN, token.NOTIS:
		// Documented placeholder: the operator surface is real but no
		// membership/type-identity semantics are defined yet.
		return objects.Bool(false), nil
	}
	return objects.NilValue, nil
}

// evalPlus adds two numerics (promoting to Float if either side is
// Float), or - if either operand is not numeric - stringifies both by
// their display form and concatenates.
func (e *Evaluator) evalPlus(op token.Token, left, right objects.Value) (objects.Value, error) {
	if li, lok := left.(objects.Int); lok {
		if ri, rok := right.(objects.Int); rok {
			return li + ri, nil
		}
	}
	if lf, rf, ok := numericPair(left, right); ok {
		return objects.Float(lf + rf), nil
	}
	return objects.Str(objects.Display(left) + objects.Display(right)), nil
}

func (e *Evaluator) evalArith(op token.Token, left, right objects.Value) (objects.Value, error) {
	li, lInt := left.(objects.Int)
	ri, rInt := right.(objects.Int)
	if lInt && rInt {
		switch op.Kind {
		case token.MINUS:
			return li - ri, nil
		case token.STAR:
			return li * ri, nil
		case token.SLASH:
			if ri == 0 {
				return nil, runtimeErr(op, "division by zero")
			}
			return li / ri, nil
		case token.PCT:
			if ri == 0 {
				return nil, runtimeErr(op, "modulo by zero")
			}
			return li % ri, nil
		}
	}
	lf, rf, ok := numericPair(left, right)
	if !ok {
		return nil, runtimeErr(op, "operands must be numbers")
	}
	switch op.Kind {
	case token.MINUS:
		return objects.Float(lf - rf), nil
	case token.STAR:
		return objects.Float(lf * rf), nil
	case token.SLASH:
		if rf == 0 {
			return nil, runtimeErr(op, "division by zero")
		}
		return objects.Float(lf / rf), nil
	case token.PCT:
		if rf == 0 {
			return nil, runtimeErr(op, "modulo by zero")
		}
		return objects.Float(math.Mod(lf, rf)), nil
	}
	return objects.NilValue, nil
}

// evalPower always computes in Float, whatever the operand kinds.
func (e *Evaluator) evalPower(op token.Token, left, right objects.Value) (objects.Value, error) {
	lf, rf, ok := numericPair(left, right)
	if !ok {
		return nil, runtimeErr(op, "operands must be numbers")
	}
	return objects.Float(math.Pow(lf, rf)), nil
}

func (e *Evaluator) evalBitwise(op token.Token, left, right objects.Value) (objects.Value, error) {
	li, ri, ok := objects.BothInt(left, right)
	if !ok {
		return nil, runtimeErr(op, "operands must be integers")
	}
	switch op.Kind {
	case token.BIT_AND:
		return li & ri, nil
	case token.BIT_OR:
		return li | ri, nil
	case token.BIT_XOR:
		return li ^ ri, nil
	case token.SHIFT_L:
		return li << uint(ri), nil
	case token.SHIFT_R, token.SHIFT_RA:
		// >>> is tokenized distinctly from >> but both compute an
		// arithmetic right shift.
		return li >> uint(ri), nil
	}
	return objects.NilValue, nil
}

func (e *Evaluator) evalCompare(op token.Token, left, right objects.Value) (objects.Value, error) {
	lf, rf, ok := numericPair(left, right)
	if !ok {
		return nil, runtimeErr(op, "operands must be numbers")
	}
	switch op.Kind {
	case token.LT:
		return objects.Bool(lf < rf), nil
	case token.LE:
		return objects.Bool(lf <= rf), nil
	case token.GT:
		return objects.Bool(lf > rf), nil
	case token.GE:
		return objects.Bool(lf >= rf), nil
	}
	return objects.NilValue, nil
}

func numericPair(a, b objects.Value) (float64, float64, bool) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	return af, bf, aok && bok
}

func asFloat(v objects.Value) (float64, bool) {
	switch t := v.(type) {
	case objects.Int:
		return float64(t), true
	case objects.Float:
		return float64(t), true
	default:
		return 0, false
	}
}
