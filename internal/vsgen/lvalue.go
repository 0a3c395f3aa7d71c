package vsgen

import (
	"fmt"

	"vsforge/internal/vsir"
	"vsforge/internal/vstype"
)

// mutator writes a new value into the temporary identifier holding the
// lvalue's guarded current value (spec.md §4.F).
type mutator func(tempVar string) error

// emitMutation is the lvalue mutation emitter (spec.md §4.F). For each
// lvalue shape it materialises a guarded snapshot, invokes the
// caller-supplied mutator, and writes the result back via a merge with
// the complement predicate — so a write under pc only ever affects the
// path set currently live, and the rest of the destination is
// preserved.
func (fe *funcEmitter) emitMutation(ctx flowContext, lv *vsir.Expr, needOriginalValue bool, write mutator) error {
	switch lv.Kind {
	case vsir.ExprVariableAccess, vsir.ExprLinearAccessRef:
		return fe.emitVariableMutation(ctx, lv, write)
	case vsir.ExprMapAccess:
		return fe.emitMapMutation(ctx, lv, needOriginalValue, write)
	case vsir.ExprSeqAccess:
		return fe.emitSeqMutation(ctx, lv, needOriginalValue, write)
	case vsir.ExprNamedTupleAccess, vsir.ExprTupleAccess:
		return unsupported("%s is not yet supported as an lvalue", lv.Kind)
	default:
		return invalidLvalue("expression kind %s cannot be an lvalue", lv.Kind)
	}
}

func (fe *funcEmitter) lvalueVarName(lv *vsir.Expr) (string, error) {
	switch d := lv.Data.(type) {
	case vsir.VariableAccessData:
		return fe.mint.GetVar(d.Name), nil
	case vsir.LinearAccessRefData:
		return fe.mint.GetVar(d.Name), nil
	default:
		return "", invalidLvalue("variable-shaped lvalue has unexpected payload %T", lv.Data)
	}
}

func (fe *funcEmitter) emitVariableMutation(ctx flowContext, lv *vsir.Expr, write mutator) error {
	x, err := fe.lvalueVarName(lv)
	if err != nil {
		return err
	}
	symType, err := liftType(func() (string, error) { return vstype.SymbolicOf(lv.Type, true) })
	if err != nil {
		return err
	}
	opsName, err := fe.opsName(lv.Type)
	if err != nil {
		return err
	}

	g := fe.mint.FreshTempVar()
	fmt.Fprintf(&fe.buf, "    %s %s = %s.guard(%s, %s);\n", symType, g, opsName, x, ctx.pc.Var)

	if err := write(g); err != nil {
		return err
	}

	fmt.Fprintf(&fe.buf, "    %s = %s.merge2(%s.guard(%s, bdd.not(%s)), %s);\n", x, opsName, opsName, x, ctx.pc.Var, g)
	return nil
}

// emitMapMutation implements the MapAccess shape of spec.md §4.F: a
// mutation context is opened for the map itself, and the element write
// (via ops.put, which is total) becomes the new value the map's own
// mutation context writes back.
func (fe *funcEmitter) emitMapMutation(ctx flowContext, lv *vsir.Expr, needOriginalValue bool, write mutator) error {
	data, ok := lv.Data.(vsir.MapAccessData)
	if !ok {
		return invalidLvalue("map-shaped lvalue has unexpected payload %T", lv.Data)
	}
	mapOpsName, err := fe.opsName(data.Map.Type)
	if err != nil {
		return err
	}
	valSymType, err := liftType(func() (string, error) { return vstype.SymbolicOf(lv.Type, true) })
	if err != nil {
		return err
	}
	idxSymType, err := liftType(func() (string, error) { return vstype.SymbolicOf(data.Index.Type, true) })
	if err != nil {
		return err
	}

	return fe.emitMutation(ctx, data.Map, true, func(mTemp string) error {
		idxExpr, err := fe.emitExpr(ctx, data.Index)
		if err != nil {
			return err
		}
		idx := fe.mint.FreshTempVar()
		fmt.Fprintf(&fe.buf, "    %s %s = %s;\n", idxSymType, idx, idxExpr)

		val := fe.mint.FreshTempVar()
		if needOriginalValue {
			fmt.Fprintf(&fe.buf, "    %s %s = unwrapOrThrow(%s.get(%s, %s));\n", valSymType, val, mapOpsName, mTemp, idx)
		} else {
			fmt.Fprintf(&fe.buf, "    %s %s;\n", valSymType, val)
		}

		if err := write(val); err != nil {
			return err
		}

		fmt.Fprintf(&fe.buf, "    %s = %s.put(%s, %s, %s);\n", mTemp, mapOpsName, mTemp, idx, val)
		return nil
	})
}

// emitSeqMutation is emitMapMutation's sibling for SeqAccess: ops.set is
// partial, unlike ops.put, so the writeback is wrapped in unwrapOrThrow
// (spec.md §4.F).
func (fe *funcEmitter) emitSeqMutation(ctx flowContext, lv *vsir.Expr, needOriginalValue bool, write mutator) error {
	data, ok := lv.Data.(vsir.SeqAccessData)
	if !ok {
		return invalidLvalue("sequence-shaped lvalue has unexpected payload %T", lv.Data)
	}
	seqOpsName, err := fe.opsName(data.Seq.Type)
	if err != nil {
		return err
	}
	valSymType, err := liftType(func() (string, error) { return vstype.SymbolicOf(lv.Type, true) })
	if err != nil {
		return err
	}
	idxSymType, err := liftType(func() (string, error) { return vstype.SymbolicOf(data.Index.Type, true) })
	if err != nil {
		return err
	}

	return fe.emitMutation(ctx, data.Seq, true, func(sTemp string) error {
		idxExpr, err := fe.emitExpr(ctx, data.Index)
		if err != nil {
			return err
		}
		idx := fe.mint.FreshTempVar()
		fmt.Fprintf(&fe.buf, "    %s %s = %s;\n", idxSymType, idx, idxExpr)

		val := fe.mint.FreshTempVar()
		if needOriginalValue {
			fmt.Fprintf(&fe.buf, "    %s %s = unwrapOrThrow(%s.get(%s, %s));\n", valSymType, val, seqOpsName, sTemp, idx)
		} else {
			fmt.Fprintf(&fe.buf, "    %s %s;\n", valSymType, val)
		}

		if err := write(val); err != nil {
			return err
		}

		fmt.Fprintf(&fe.buf, "    %s = unwrapOrThrow(%s.set(%s, %s, %s));\n", sTemp, seqOpsName, sTemp, idx, val)
		return nil
	})
}
