// interp_ops.go — binary and unary operator evaluation.
//
// The four arithmetic operators dispatch on the value-tag pair of both
// operands: mixed Int/Float promotes to Float, "+" also concatenates
// strings and appends/extends lists, "*" repeats strings. Every pairing
// outside the matrix is a type error naming both tags and the operator.
//
// Unary operators are special: they pattern-match the UNEVALUATED operand
// node, so "!flag" is rejected even when flag holds a Bool — only literal
// operands (and, for "++"/"--", identifiers) are accepted.
package mar

import "strings"

func (ip *Interp) evalBinary(e *BinaryExpr) (Value, error) {
	switch e.Op {
	case "+", "-", "*", "/":
	default:
		return None, unsupportedf("operator `%s` is not supported", e.Op)
	}

	l, err := ip.eval(e.Left)
	if err != nil {
		return None, err
	}
	r, err := ip.eval(e.Right)
	if err != nil {
		return None, err
	}

	switch e.Op {
	case "+":
		return ip.opAdd(l, r)
	case "-":
		return ip.opSub(l, r)
	case "*":
		return ip.opMul(l, r)
	default:
		return ip.opDiv(l, r)
	}
}

func binTypeError(l Value, op string, r Value) error {
	return typeErrorf("no implementation for `%s %s %s`", l.Tag, op, r.Tag)
}

func (ip *Interp) opAdd(l, r Value) (Value, error) {
	switch l.Tag {
	case VTInt:
		switch r.Tag {
		case VTInt:
			return IntV(l.Data.(int32) + r.Data.(int32)), nil
		case VTFloat:
			return FloatV(float64(l.Data.(int32)) + r.Data.(float64)), nil
		}
	case VTFloat:
		switch r.Tag {
		case VTInt:
			return FloatV(l.Data.(float64) + float64(r.Data.(int32))), nil
		case VTFloat:
			return FloatV(l.Data.(float64) + r.Data.(float64)), nil
		}
	case VTStr:
		if r.Tag == VTStr {
			return StrV(l.Data.(string) + r.Data.(string)), nil
		}
	case VTList:
		// list + list extends, list + anything else appends; either way
		// the receiver is copied, never mutated
		ls := l.Data.([]Value)
		out := make([]Value, len(ls), len(ls)+1)
		copy(out, ls)
		if r.Tag == VTList {
			out = append(out, r.Data.([]Value)...)
		} else {
			out = append(out, r)
		}
		return ListV(out), nil
	}
	return None, binTypeError(l, "+", r)
}

func (ip *Interp) opSub(l, r Value) (Value, error) {
	switch l.Tag {
	case VTInt:
		switch r.Tag {
		case VTInt:
			return IntV(l.Data.(int32) - r.Data.(int32)), nil
		case VTFloat:
			return FloatV(float64(l.Data.(int32)) - r.Data.(float64)), nil
		}
	case VTFloat:
		switch r.Tag {
		case VTInt:
			return FloatV(l.Data.(float64) - float64(r.Data.(int32))), nil
		case VTFloat:
			return FloatV(l.Data.(float64) - r.Data.(float64)), nil
		}
	}
	return None, binTypeError(l, "-", r)
}

func (ip *Interp) opMul(l, r Value) (Value, error) {
	switch l.Tag {
	case VTInt:
		switch r.Tag {
		case VTInt:
			return IntV(l.Data.(int32) * r.Data.(int32)), nil
		case VTFloat:
			return FloatV(float64(l.Data.(int32)) * r.Data.(float64)), nil
		case VTStr:
			return StrV(repeat(r.Data.(string), l.Data.(int32))), nil
		}
	case VTFloat:
		switch r.Tag {
		case VTInt:
			return FloatV(l.Data.(float64) * float64(r.Data.(int32))), nil
		case VTFloat:
			return FloatV(l.Data.(float64) * r.Data.(float64)), nil
		}
	case VTStr:
		if r.Tag == VTInt {
			return StrV(repeat(l.Data.(string), r.Data.(int32))), nil
		}
	}
	return None, binTypeError(l, "*", r)
}

// repeat concatenates n copies of s; non-positive counts yield "".
func repeat(s string, n int32) string {
	if n <= 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(s) * int(n))
	for i := int32(0); i < n; i++ {
		sb.WriteString(s)
	}
	return sb.String()
}

func (ip *Interp) opDiv(l, r Value) (Value, error) {
	switch l.Tag {
	case VTInt:
		switch r.Tag {
		case VTInt:
			d := r.Data.(int32)
			if d == 0 {
				return None, arithErrorf("division by zero")
			}
			return IntV(l.Data.(int32) / d), nil
		case VTFloat:
			return FloatV(float64(l.Data.(int32)) / r.Data.(float64)), nil
		}
	case VTFloat:
		switch r.Tag {
		case VTInt:
			return FloatV(l.Data.(float64) / float64(r.Data.(int32))), nil
		case VTFloat:
			return FloatV(l.Data.(float64) / r.Data.(float64)), nil
		}
	}
	return None, binTypeError(l, "/", r)
}

// ──────────────────────────────── unary ───────────────────────────────────

func (ip *Interp) evalUnary(e *UnaryExpr) (Value, error) {
	switch e.Op {
	case "!":
		return ip.opNegate(e.Operand)
	case "-":
		return ip.opNegative(e.Operand)
	case "++":
		return ip.opStep(e.Operand, "++", 1)
	case "--":
		return ip.opStep(e.Operand, "--", -1)
	}
	return None, unsupportedf("unary operator `%s` is not supported", e.Op)
}

// opNegate implements "!" on a literal operand: logical inversion for Bool,
// bitwise complement for Int, emptiness test for lists, True for None.
func (ip *Interp) opNegate(operand Node) (Value, error) {
	switch n := operand.(type) {
	case *NoneLit:
		return BoolV(true), nil
	case *BoolLit:
		return BoolV(!n.Value), nil
	case *IntLit:
		return IntV(^n.Value), nil
	case *ListExpr:
		return BoolV(len(n.Elems) == 0), nil
	case *FloatLit:
		return None, typeErrorf("cannot apply `!` to a Float")
	case *StrLit:
		return None, typeErrorf("cannot apply `!` to a Str")
	}
	return None, unsupportedf("cannot apply `!` to %s", nodeName(operand))
}

// opNegative implements prefix "-", accepted on integer literals only.
func (ip *Interp) opNegative(operand Node) (Value, error) {
	switch n := operand.(type) {
	case *IntLit:
		return IntV(-n.Value), nil
	case *FloatLit:
		return None, typeErrorf("cannot negate a Float")
	case *StrLit:
		return None, typeErrorf("cannot negate a Str")
	case *BoolLit:
		return None, typeErrorf("cannot negate a Bool")
	case *NoneLit:
		return None, typeErrorf("cannot negate None")
	}
	return None, unsupportedf("cannot apply `-` to %s", nodeName(operand))
}

// opStep implements "++"/"--". The operand must be an identifier bound to
// an eager Int or Float; the stepped value is written into the current
// scope only, shadowing any outer binding of the same name.
func (ip *Interp) opStep(operand Node, op string, delta int32) (Value, error) {
	id, ok := operand.(*Ident)
	if !ok {
		return None, typeErrorf("wrong use of `%s`", op)
	}
	b, found := ip.lookupBinding(id.Name)
	if !found {
		return None, nameErrorf("variable `%s` not defined", id.Name)
	}
	if b.kind != bindValue {
		return None, typeErrorf("wrong use of `%s`", op)
	}
	var next Value
	switch b.val.Tag {
	case VTInt:
		next = IntV(b.val.Data.(int32) + delta)
	case VTFloat:
		next = FloatV(b.val.Data.(float64) + float64(delta))
	default:
		return None, typeErrorf("wrong use of `%s`", op)
	}
	ip.current[id.Name] = binding{kind: bindValue, val: next}
	return next, nil
}
