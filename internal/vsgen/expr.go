package vsgen

import (
	"fmt"
	"strconv"

	"vsforge/internal/vsir"
	"vsforge/internal/vsnames"
	"vsforge/internal/vstype"
)

// emitExpr is the expression emitter (spec.md §4.G): it produces a
// target expression whose runtime type is the symbolic type of expr's
// static type, guarded by ctx's path constraint.
func (fe *funcEmitter) emitExpr(ctx flowContext, expr *vsir.Expr) (string, error) {
	switch expr.Kind {
	case vsir.ExprClone:
		data, ok := expr.Data.(vsir.CloneData)
		if !ok || data.Inner == nil {
			return "", unsupported("Clone expression missing inner operand")
		}
		return fe.emitExpr(ctx, data.Inner)

	case vsir.ExprBoolLit:
		data := expr.Data.(vsir.BoolLitData)
		return fe.emitLiteral(ctx, expr.Type, strconv.FormatBool(data.Value))

	case vsir.ExprIntLit:
		data := expr.Data.(vsir.IntLitData)
		return fe.emitLiteral(ctx, expr.Type, strconv.FormatInt(data.Value, 10))

	case vsir.ExprFloatLit:
		data := expr.Data.(vsir.FloatLitData)
		return fe.emitLiteral(ctx, expr.Type, vstype.FloatLiteral(data.Value))

	case vsir.ExprDefault:
		return fe.emitDefault(ctx, expr.Type)

	case vsir.ExprVariableAccess:
		data := expr.Data.(vsir.VariableAccessData)
		return fe.emitGuardedVar(ctx, expr.Type, fe.mint.GetVar(data.Name))

	case vsir.ExprLinearAccessRef:
		data := expr.Data.(vsir.LinearAccessRefData)
		return fe.emitGuardedVar(ctx, expr.Type, fe.mint.GetVar(data.Name))

	case vsir.ExprMapAccess:
		return fe.emitMapAccessExpr(ctx, expr)

	case vsir.ExprSeqAccess:
		return fe.emitSeqAccessExpr(ctx, expr)

	case vsir.ExprBinaryOp:
		return fe.emitBinaryOp(ctx, expr)

	default:
		return fmt.Sprintf("/* skipped expr: %s */", expr.Kind), nil
	}
}

func (fe *funcEmitter) emitLiteral(ctx flowContext, t vstype.Type, literalText string) (string, error) {
	symType, err := liftType(func() (string, error) { return vstype.SymbolicOf(t, true) })
	if err != nil {
		return "", err
	}
	opsName, err := fe.opsName(t)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.guard(new %s(%s, %s), %s)", opsName, symType, vsnames.BddHandleName, literalText, ctx.pc.Var), nil
}

func (fe *funcEmitter) emitDefault(ctx flowContext, t vstype.Type) (string, error) {
	opsName, err := fe.opsName(t)
	if err != nil {
		return "", err
	}
	switch t.Kind {
	case vstype.KindBool, vstype.KindInt, vstype.KindFloat:
		zero, err := liftType(func() (string, error) { return vstype.ZeroLiteral(t) })
		if err != nil {
			return "", err
		}
		return fe.emitLiteral(ctx, t, zero)
	case vstype.KindSequence, vstype.KindMap:
		return fmt.Sprintf("%s.guard(%s.empty(), %s)", opsName, opsName, ctx.pc.Var), nil
	default:
		return "", unsupportedType(vstype.ErrUnsupportedType)
	}
}

func (fe *funcEmitter) emitGuardedVar(ctx flowContext, t vstype.Type, varName string) (string, error) {
	opsName, err := fe.opsName(t)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.guard(%s, %s)", opsName, varName, ctx.pc.Var), nil
}

// emitMapAccessExpr and emitSeqAccessExpr are not re-guarded here: the
// container expression has already been guarded at its own emission
// (spec.md §4.G).
func (fe *funcEmitter) emitMapAccessExpr(ctx flowContext, expr *vsir.Expr) (string, error) {
	data, ok := expr.Data.(vsir.MapAccessData)
	if !ok {
		return "", unsupported("MapAccess expression missing payload")
	}
	containerExpr, err := fe.emitExpr(ctx, data.Map)
	if err != nil {
		return "", err
	}
	indexExpr, err := fe.emitExpr(ctx, data.Index)
	if err != nil {
		return "", err
	}
	opsName, err := fe.opsName(data.Map.Type)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("unwrapOrThrow(%s.get(%s, %s))", opsName, containerExpr, indexExpr), nil
}

func (fe *funcEmitter) emitSeqAccessExpr(ctx flowContext, expr *vsir.Expr) (string, error) {
	data, ok := expr.Data.(vsir.SeqAccessData)
	if !ok {
		return "", unsupported("SeqAccess expression missing payload")
	}
	containerExpr, err := fe.emitExpr(ctx, data.Seq)
	if err != nil {
		return "", err
	}
	indexExpr, err := fe.emitExpr(ctx, data.Index)
	if err != nil {
		return "", err
	}
	opsName, err := fe.opsName(data.Seq.Type)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("unwrapOrThrow(%s.get(%s, %s))", opsName, containerExpr, indexExpr), nil
}

// emitBinaryOp lifts a binary operator into a two-argument map2 call
// (spec.md §4.G). Both operands must be primitives; equality/inequality
// are not part of the generator's BinaryOp vocabulary at all (spec.md
// §1 non-goals), so reaching this function with any other op is always
// one of the fixed, supported symbols.
func (fe *funcEmitter) emitBinaryOp(ctx flowContext, expr *vsir.Expr) (string, error) {
	data, ok := expr.Data.(vsir.BinaryOpData)
	if !ok || data.Lhs == nil || data.Rhs == nil {
		return "", unsupported("BinaryOp expression missing operands")
	}
	if !isPrimitive(data.Lhs.Type) || !isPrimitive(data.Rhs.Type) {
		return "", unsupported("binary operator %s requires primitive operands, got %s and %s", data.Op.Symbol(), data.Lhs.Type, data.Rhs.Type)
	}
	lhsExpr, err := fe.emitExpr(ctx, data.Lhs)
	if err != nil {
		return "", err
	}
	rhsExpr, err := fe.emitExpr(ctx, data.Rhs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s).map2(%s, %s, (a, b) -> a %s b)", lhsExpr, rhsExpr, vsnames.BddHandleName, data.Op.Symbol()), nil
}

func isPrimitive(t vstype.Type) bool {
	switch t.Kind {
	case vstype.KindBool, vstype.KindInt, vstype.KindFloat:
		return true
	default:
		return false
	}
}
