package vstype

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupportedType is wrapped by every lifting failure; callers use
// errors.Is to recognise it and translate it into the generator's
// UnsupportedConstruct error kind.
var ErrUnsupportedType = errors.New("vstype: unsupported type")

// SymbolicOf renders the symbolic (value-summary) target type for t.
// inVarPosition distinguishes a type used to declare a storage location
// (where Null is rejected, per the type table in spec.md §4.B) from one
// used only to shape an expression's static type.
func SymbolicOf(t Type, inVarPosition bool) (string, error) {
	switch t.Kind {
	case KindBool:
		return "PrimVS<Bdd, Boolean>", nil
	case KindInt:
		return "PrimVS<Bdd, Integer>", nil
	case KindFloat:
		return "PrimVS<Bdd, Float>", nil
	case KindNull:
		if inVarPosition {
			return "", fmt.Errorf("%w: Null type is not allowed in variable position", ErrUnsupportedType)
		}
		return "void", nil
	case KindSequence:
		elem, err := SymbolicOf(*t.Elem, true)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("ListVS<Bdd, %s>", elem), nil
	case KindMap:
		key, err := ConcreteBoxedOf(*t.Key)
		if err != nil {
			return "", err
		}
		value, err := SymbolicOf(*t.Value, true)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("MapVS<Bdd, %s, %s>", key, value), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, t.String())
	}
}

// ConcreteBoxedOf renders the boxed concrete (non-symbolic) target type
// for t, used for map keys which are never themselves value summaries.
func ConcreteBoxedOf(t Type) (string, error) {
	switch t.Kind {
	case KindBool:
		return "Boolean", nil
	case KindInt:
		return "Integer", nil
	case KindFloat:
		return "Float", nil
	default:
		return "", fmt.Errorf("%w: %s has no boxed concrete form", ErrUnsupportedType, t.String())
	}
}

// OpsTypeOf renders the operator-table type for t: the same shape as
// SymbolicOf but with the ".Ops" companion suffix, e.g.
// "PrimVS.Ops<Bdd, Integer>" or "ListVS.Ops<Bdd, PrimVS<Bdd, Integer>>".
func OpsTypeOf(t Type) (string, error) {
	switch t.Kind {
	case KindBool:
		return "PrimVS.Ops<Bdd, Boolean>", nil
	case KindInt:
		return "PrimVS.Ops<Bdd, Integer>", nil
	case KindFloat:
		return "PrimVS.Ops<Bdd, Float>", nil
	case KindSequence:
		elem, err := SymbolicOf(*t.Elem, true)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("ListVS.Ops<Bdd, %s>", elem), nil
	case KindMap:
		key, err := ConcreteBoxedOf(*t.Key)
		if err != nil {
			return "", err
		}
		value, err := SymbolicOf(*t.Value, true)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("MapVS.Ops<Bdd, %s, %s>", key, value), nil
	default:
		return "", fmt.Errorf("%w: %s has no operator table", ErrUnsupportedType, t.String())
	}
}

// ZeroLiteral renders the default-value literal for t, per spec.md §4.G
// (Default(T) expression): false / 0 / 0.0f for primitives. Sequences
// and maps have no scalar zero literal and return an error here; their
// default is the ops table's empty() value.
func ZeroLiteral(t Type) (string, error) {
	switch t.Kind {
	case KindBool:
		return "false", nil
	case KindInt:
		return "0", nil
	case KindFloat:
		return FloatLiteral(0), nil
	default:
		return "", fmt.Errorf("%w: %s has no scalar zero literal", ErrUnsupportedType, t.String())
	}
}

// FloatLiteral renders v as a Java float literal. strconv.FormatFloat's
// shortest form drops the decimal point for whole numbers (0 instead of
// 0.0); FloatLiteral restores it so every float literal reads as a float
// rather than an int with an "f" suffix tacked on.
func FloatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s + "f"
}

// OpsCtorOf renders the constructor expression used to build the
// operator-table constant registered for t (the OperatorTableRequest's
// opsCtorText, spec.md §3). depOpsName supplies the already-registered
// name of the dependent ops (sequence element, map value), which the caller
// must have registered first so emission order is definition-before-use.
func OpsCtorOf(t Type, bddHandleName string, depOpsName string) (string, error) {
	switch t.Kind {
	case KindBool, KindInt, KindFloat:
		return fmt.Sprintf("new PrimVS.Ops<>(%s)", bddHandleName), nil
	case KindSequence:
		return fmt.Sprintf("new ListVS.Ops<>(%s, %s)", bddHandleName, depOpsName), nil
	case KindMap:
		return fmt.Sprintf("new MapVS.Ops<>(%s, %s)", bddHandleName, depOpsName), nil
	default:
		return "", fmt.Errorf("%w: %s has no operator constructor", ErrUnsupportedType, t.String())
	}
}
