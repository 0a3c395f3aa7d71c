package vsir

import "vsforge/internal/vstype"

// ExprKind enumerates the expression variants the core generator lifts
// (spec.md §3/§4.G). Anything else is represented by ExprUnknown and
// emits a skip comment.
type ExprKind uint8

const (
	ExprClone ExprKind = iota
	ExprBinaryOp
	ExprBoolLit
	ExprIntLit
	ExprFloatLit
	ExprDefault
	ExprMapAccess
	ExprSeqAccess
	ExprVariableAccess
	ExprLinearAccessRef
	ExprNamedTupleAccess
	ExprTupleAccess
	ExprUnknown
)

func (k ExprKind) String() string {
	switch k {
	case ExprClone:
		return "Clone"
	case ExprBinaryOp:
		return "BinaryOp"
	case ExprBoolLit:
		return "BoolLit"
	case ExprIntLit:
		return "IntLit"
	case ExprFloatLit:
		return "FloatLit"
	case ExprDefault:
		return "Default"
	case ExprMapAccess:
		return "MapAccess"
	case ExprSeqAccess:
		return "SeqAccess"
	case ExprVariableAccess:
		return "VariableAccess"
	case ExprLinearAccessRef:
		return "LinearAccessRef"
	case ExprNamedTupleAccess:
		return "NamedTupleAccess"
	case ExprTupleAccess:
		return "TupleAccess"
	default:
		return "Unknown"
	}
}

// BinaryOp enumerates the operator symbol table of spec.md §4.G. Eq and
// Neq are deliberately absent: they are listed as unsupported in §1/§7.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

// Symbol renders the fixed target-level operator symbol for op, used by
// the two-argument lift `(lhs).map2(rhs, bdd, (a, b) -> a <symbol> b)`.
func (op BinaryOp) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	default:
		return "?"
	}
}

// Expr is one IR expression, typed with its canonical static type.
type Expr struct {
	Kind ExprKind
	Type vstype.Type
	Data ExprData
}

// ExprData is the interface implemented by every kind-specific payload.
type ExprData interface{ exprData() }

// CloneData wraps an inner expression with pass-through semantics
// (spec.md §3: "The first [Clone] has pass-through semantics").
type CloneData struct{ Inner *Expr }

func (CloneData) exprData() {}

// BinaryOpData is the payload for BinaryOp. Both operands must be
// primitives (§4.G); Lhs/Rhs carry their own static Type for that check.
type BinaryOpData struct {
	Op  BinaryOp
	Lhs *Expr
	Rhs *Expr
}

func (BinaryOpData) exprData() {}

// BoolLitData, IntLitData and FloatLitData carry literal payloads.
type BoolLitData struct{ Value bool }

func (BoolLitData) exprData() {}

type IntLitData struct{ Value int64 }

func (IntLitData) exprData() {}

type FloatLitData struct{ Value float64 }

func (FloatLitData) exprData() {}

// DefaultData is the payload for Default(type); Type on the owning Expr
// already carries the type, so this payload is otherwise empty.
type DefaultData struct{}

func (DefaultData) exprData() {}

// MapAccessData is the payload for `m[i]` over a Map type.
type MapAccessData struct {
	Map   *Expr
	Index *Expr
}

func (MapAccessData) exprData() {}

// SeqAccessData is the payload for `s[i]` over a Sequence type.
type SeqAccessData struct {
	Seq   *Expr
	Index *Expr
}

func (SeqAccessData) exprData() {}

// VariableAccessData and LinearAccessRefData both read a named local by
// its IR declaration name; the generator resolves the emittable
// identifier via vsnames.GetVar.
type VariableAccessData struct{ Name string }

func (VariableAccessData) exprData() {}

type LinearAccessRefData struct{ Name string }

func (LinearAccessRefData) exprData() {}

// NamedTupleAccessData and TupleAccessData are only ever reached as
// lvalue shapes (spec.md §4.F); the lvalue emitter rejects both with
// UnsupportedConstruct rather than InvalidLvalue.
type NamedTupleAccessData struct {
	Tuple *Expr
	Field string
}

func (NamedTupleAccessData) exprData() {}

type TupleAccessData struct {
	Tuple *Expr
	Index int
}

func (TupleAccessData) exprData() {}

// UnknownExprData marks an expression variant the core does not handle; it
// is emitted as a skip comment (spec.md §7).
type UnknownExprData struct{ Reason string }

func (UnknownExprData) exprData() {}
