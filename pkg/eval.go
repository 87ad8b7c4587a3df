package stride

import "fmt"

// Evaluate computes the value of expr in env. Type and scope errors are
// returned, never coerced away.
func Evaluate(env *Environment, expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *BoolLiteral:
		return Bool(e.Value), nil
	case *NumberLiteral:
		return Number(e.Value), nil
	case *Identifier:
		return env.Get(e.Name)
	case *BinaryExpr:
		return evaluateBinary(env, e)
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func evaluateBinary(env *Environment, e *BinaryExpr) (Value, error) {
	// Both sides are always evaluated, left first. && and || don't short
	// circuit.
	lhs, err := Evaluate(env, e.Op1)
	if err != nil {
		return nil, err
	}

	rhs, err := Evaluate(env, e.Op2)
	if err != nil {
		return nil, err
	}

	if e.Operation.IsLogical() {
		l, lok := lhs.(Bool)
		r, rok := rhs.(Bool)
		if !lok || !rok {
			return nil, &TypeMismatchError{Op: e.Operation, Left: lhs, Right: rhs}
		}

		return logicalOp(e.Operation, l, r), nil
	}

	l, lok := lhs.(Number)
	r, rok := rhs.(Number)
	if !lok || !rok {
		return nil, &TypeMismatchError{Op: e.Operation, Left: lhs, Right: rhs}
	}

	return numericOp(e.Operation, l, r)
}

func logicalOp(op BinaryOp, l, r Bool) Value {
	switch op {
	case BinaryAnd:
		return l && r
	case BinaryOr:
		return l || r
	default:
		panic("unexpected logical op: " + op)
	}
}

func numericOp(op BinaryOp, l, r Number) (Value, error) {
	switch op {
	case BinaryAddition:
		return l + r, nil
	case BinarySubtraction:
		return l - r, nil
	case BinaryMultiplication:
		return l * r, nil
	case BinaryDivision:
		if r == 0 {
			return nil, &DivisionByZeroError{}
		}

		return l / r, nil
	case BinaryGreater:
		return Bool(l > r), nil
	case BinaryLess:
		return Bool(l < r), nil
	case BinaryEqual:
		return Bool(l == r), nil
	default:
		panic("unexpected binary op: " + op)
	}
}
