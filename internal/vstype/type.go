// Package vstype maps canonical input-language types to the symbolic
// target-language type expressions the generator emits.
package vstype

import "fmt"

// Kind enumerates the closed variant of canonical types the core
// generator understands. Named tuple, positional tuple and any other
// non-canonicalised form are represented by KindUnsupported and always
// fail type lifting.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindNull
	KindSequence
	KindMap
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindNull:
		return "Null"
	case KindSequence:
		return "Sequence"
	case KindMap:
		return "Map"
	default:
		return "Unsupported"
	}
}

// Type is a canonical input-language type. Elem is populated for
// Sequence, Key/Value for Map; both are nil otherwise.
type Type struct {
	Kind  Kind
	Elem  *Type
	Key   *Type
	Value *Type

	// Unsupported carries a human-readable name for diagnostics when
	// Kind == KindUnsupported (e.g. "NamedTuple", "PositionalTuple").
	Unsupported string
}

// Bool, Int, Float and Null are the canonical primitive/empty types.
var (
	Bool  = Type{Kind: KindBool}
	Int   = Type{Kind: KindInt}
	Float = Type{Kind: KindFloat}
	Null  = Type{Kind: KindNull}
)

// Sequence constructs a canonical Sequence<element> type.
func Sequence(elem Type) Type {
	e := elem
	return Type{Kind: KindSequence, Elem: &e}
}

// Map constructs a canonical Map<key, value> type.
func Map(key, value Type) Type {
	k, v := key, value
	return Type{Kind: KindMap, Key: &k, Value: &v}
}

// Unsupported constructs a type the emitter always rejects, carrying a
// name for diagnostics (named tuple, positional tuple, ...).
func Unsupported(name string) Type {
	return Type{Kind: KindUnsupported, Unsupported: name}
}

// IsCanonical reports whether t satisfies invariant 1 of the data model:
// every type reaching the emitter must be fully canonicalised, i.e. no
// nil Elem/Key/Value where the Kind requires one.
func (t Type) IsCanonical() bool {
	switch t.Kind {
	case KindBool, KindInt, KindFloat, KindNull:
		return true
	case KindSequence:
		return t.Elem != nil && t.Elem.IsCanonical()
	case KindMap:
		return t.Key != nil && t.Value != nil && t.Key.IsCanonical() && t.Value.IsCanonical()
	case KindUnsupported:
		return true
	default:
		return false
	}
}

// Equal reports structural equality between two canonical types. Strict
// equality is what §4.H's Assign/MoveAssign type check relies on — the
// core never coerces between distinct types.
func Equal(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindSequence:
		return Equal(*a.Elem, *b.Elem)
	case KindMap:
		return Equal(*a.Key, *b.Key) && Equal(*a.Value, *b.Value)
	case KindUnsupported:
		return a.Unsupported == b.Unsupported
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.Kind {
	case KindSequence:
		return fmt.Sprintf("Sequence<%s>", t.Elem.String())
	case KindMap:
		return fmt.Sprintf("Map<%s,%s>", t.Key.String(), t.Value.String())
	case KindUnsupported:
		return "Unsupported(" + t.Unsupported + ")"
	default:
		return t.Kind.String()
	}
}
