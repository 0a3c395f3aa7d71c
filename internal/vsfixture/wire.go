// Package vsfixture is the wire format for vsir.Program fixtures
// (spec.md §6 ambient stack: IR fixtures are loaded as msgpack). The
// domain model's Stmt/Expr use a Kind+Data tagged union, which
// msgpack/v5 cannot decode directly into an interface field, so this
// package mirrors the source's own disk-cache pattern
// (moduleToDiskPayload/diskPayloadToModule in the original dcache.go):
// a flat, fully-exported DTO tree plus explicit ToWire/FromWire
// conversions.
package vsfixture

import (
	"vsforge/internal/vsir"
	"vsforge/internal/vstype"
)

type WireType struct {
	Kind        uint8
	Elem        *WireType
	Key         *WireType
	Value       *WireType
	Unsupported string
}

type WireParam struct {
	Name string
	Type WireType
}

type WireLocal struct {
	Name string
	Type WireType
}

type WireDecl struct {
	Kind       uint8
	Name       string
	Owner      string
	IsReceive  bool
	IsForeign  bool
	Params     []WireParam
	ReturnType WireType
	Locals     []WireLocal
	Body       WireStmt
	SkipReason string
}

type WireProgram struct {
	Decls []WireDecl
}

// WireStmt carries every statement kind's payload as optional fields;
// only the fields relevant to Kind are populated.
type WireStmt struct {
	Kind uint8

	Lvalue *WireExpr // Assign, MoveAssign
	Rhs    *WireExpr // Assign, MoveAssign

	Value *WireExpr // Return

	Label string // Goto

	Message string // Raise

	Stmts []WireStmt // Compound

	Cond *WireExpr // While, If
	Body *WireStmt // While

	Then *WireStmt // If
	Else *WireStmt // If (nil means no else)

	Callee    string     // FunctionCall
	IsStatic  bool       // FunctionCall
	IsRecv    bool       // FunctionCall
	Args      []WireExpr // FunctionCall

	Reason string // Unknown
}

// WireExpr mirrors WireStmt's "every kind's fields, optionally
// populated" shape.
type WireExpr struct {
	Kind uint8
	Type WireType

	Inner *WireExpr // Clone

	Op  uint8     // BinaryOp
	Lhs *WireExpr // BinaryOp
	Rhs *WireExpr // BinaryOp

	BoolValue  bool    // BoolLit
	IntValue   int64   // IntLit
	FloatValue float64 // FloatLit

	Container *WireExpr // MapAccess (map), SeqAccess (seq)
	Index     *WireExpr // MapAccess, SeqAccess

	Name string // VariableAccess, LinearAccessRef

	Tuple      *WireExpr // NamedTupleAccess, TupleAccess
	Field      string    // NamedTupleAccess
	TupleIndex int       // TupleAccess

	Reason string // Unknown
}

func ToWireType(t vstype.Type) WireType {
	w := WireType{Kind: uint8(t.Kind), Unsupported: t.Unsupported}
	if t.Elem != nil {
		e := ToWireType(*t.Elem)
		w.Elem = &e
	}
	if t.Key != nil {
		k := ToWireType(*t.Key)
		w.Key = &k
	}
	if t.Value != nil {
		v := ToWireType(*t.Value)
		w.Value = &v
	}
	return w
}

func FromWireType(w WireType) vstype.Type {
	t := vstype.Type{Kind: vstype.Kind(w.Kind), Unsupported: w.Unsupported}
	if w.Elem != nil {
		e := FromWireType(*w.Elem)
		t.Elem = &e
	}
	if w.Key != nil {
		k := FromWireType(*w.Key)
		t.Key = &k
	}
	if w.Value != nil {
		v := FromWireType(*w.Value)
		t.Value = &v
	}
	return t
}

func ToWireProgram(p *vsir.Program) WireProgram {
	if p == nil {
		return WireProgram{}
	}
	w := WireProgram{Decls: make([]WireDecl, len(p.Decls))}
	for i, d := range p.Decls {
		w.Decls[i] = toWireDecl(d)
	}
	return w
}

func FromWireProgram(w WireProgram) *vsir.Program {
	p := &vsir.Program{Decls: make([]vsir.Decl, len(w.Decls))}
	for i, d := range w.Decls {
		p.Decls[i] = fromWireDecl(d)
	}
	return p
}

func toWireDecl(d vsir.Decl) WireDecl {
	w := WireDecl{
		Kind:       uint8(d.Kind),
		Name:       d.Name,
		Owner:      d.Owner,
		IsReceive:  d.IsReceive,
		IsForeign:  d.IsForeign,
		ReturnType: ToWireType(d.Sig.ReturnType),
		Body:       toWireStmt(d.Body),
		SkipReason: d.SkipReason,
	}
	for _, p := range d.Sig.Params {
		w.Params = append(w.Params, WireParam{Name: p.Name, Type: ToWireType(p.Type)})
	}
	for _, l := range d.Locals {
		w.Locals = append(w.Locals, WireLocal{Name: l.Name, Type: ToWireType(l.Type)})
	}
	return w
}

func fromWireDecl(w WireDecl) vsir.Decl {
	d := vsir.Decl{
		Kind:       vsir.DeclKind(w.Kind),
		Name:       w.Name,
		Owner:      w.Owner,
		IsReceive:  w.IsReceive,
		IsForeign:  w.IsForeign,
		Body:       fromWireStmt(w.Body),
		SkipReason: w.SkipReason,
	}
	d.Sig.ReturnType = FromWireType(w.ReturnType)
	for _, p := range w.Params {
		d.Sig.Params = append(d.Sig.Params, vsir.Param{Name: p.Name, Type: FromWireType(p.Type)})
	}
	for _, l := range w.Locals {
		d.Locals = append(d.Locals, vsir.Local{Name: l.Name, Type: FromWireType(l.Type)})
	}
	return d
}

func toWireStmt(s vsir.Stmt) WireStmt {
	w := WireStmt{Kind: uint8(s.Kind)}
	switch data := s.Data.(type) {
	case vsir.AssignData:
		lv := toWireExpr(data.Lvalue)
		rhs := toWireExpr(data.Rhs)
		w.Lvalue, w.Rhs = &lv, &rhs
	case vsir.ReturnData:
		if data.Value != nil {
			v := toWireExpr(*data.Value)
			w.Value = &v
		}
	case vsir.BreakData, vsir.ContinueData, vsir.PopData:
		// no payload
	case vsir.GotoData:
		w.Label = data.Label
	case vsir.RaiseData:
		w.Message = data.Message
	case vsir.CompoundData:
		w.Stmts = make([]WireStmt, len(data.Stmts))
		for i, c := range data.Stmts {
			w.Stmts[i] = toWireStmt(c)
		}
	case vsir.WhileData:
		cond := toWireExpr(data.Cond)
		body := toWireStmt(data.Body)
		w.Cond, w.Body = &cond, &body
	case vsir.IfData:
		cond := toWireExpr(data.Cond)
		then := toWireStmt(data.Then)
		w.Cond, w.Then = &cond, &then
		if data.Else != nil {
			els := toWireStmt(*data.Else)
			w.Else = &els
		}
	case vsir.FunctionCallData:
		w.Callee, w.IsStatic, w.IsRecv = data.Callee, data.IsStatic, data.IsReceive
		w.Args = make([]WireExpr, len(data.Args))
		for i, a := range data.Args {
			w.Args[i] = toWireExpr(a)
		}
	case vsir.UnknownData:
		w.Reason = data.Reason
	}
	return w
}

func fromWireStmt(w WireStmt) vsir.Stmt {
	kind := vsir.StmtKind(w.Kind)
	s := vsir.Stmt{Kind: kind}
	switch kind {
	case vsir.StmtAssign, vsir.StmtMoveAssign:
		s.Data = vsir.AssignData{Lvalue: fromWireExprOrZero(w.Lvalue), Rhs: fromWireExprOrZero(w.Rhs)}
	case vsir.StmtReturn:
		var v *vsir.Expr
		if w.Value != nil {
			e := fromWireExpr(*w.Value)
			v = &e
		}
		s.Data = vsir.ReturnData{Value: v}
	case vsir.StmtBreak:
		s.Data = vsir.BreakData{}
	case vsir.StmtContinue:
		s.Data = vsir.ContinueData{}
	case vsir.StmtGoto:
		s.Data = vsir.GotoData{Label: w.Label}
	case vsir.StmtPop:
		s.Data = vsir.PopData{}
	case vsir.StmtRaise:
		s.Data = vsir.RaiseData{Message: w.Message}
	case vsir.StmtCompound:
		stmts := make([]vsir.Stmt, len(w.Stmts))
		for i, c := range w.Stmts {
			stmts[i] = fromWireStmt(c)
		}
		s.Data = vsir.CompoundData{Stmts: stmts}
	case vsir.StmtWhile:
		s.Data = vsir.WhileData{Cond: fromWireExprOrZero(w.Cond), Body: fromWireStmtOrZero(w.Body)}
	case vsir.StmtIf:
		var els *vsir.Stmt
		if w.Else != nil {
			e := fromWireStmt(*w.Else)
			els = &e
		}
		s.Data = vsir.IfData{Cond: fromWireExprOrZero(w.Cond), Then: fromWireStmtOrZero(w.Then), Else: els}
	case vsir.StmtFunctionCall:
		args := make([]vsir.Expr, len(w.Args))
		for i, a := range w.Args {
			args[i] = fromWireExpr(a)
		}
		s.Data = vsir.FunctionCallData{Callee: w.Callee, IsStatic: w.IsStatic, IsReceive: w.IsRecv, Args: args}
	default:
		s.Data = vsir.UnknownData{Reason: w.Reason}
	}
	return s
}

func fromWireExprOrZero(w *WireExpr) vsir.Expr {
	if w == nil {
		return vsir.Expr{}
	}
	return fromWireExpr(*w)
}

func fromWireStmtOrZero(w *WireStmt) vsir.Stmt {
	if w == nil {
		return vsir.Stmt{}
	}
	return fromWireStmt(*w)
}

func toWireExpr(e vsir.Expr) WireExpr {
	w := WireExpr{Kind: uint8(e.Kind), Type: ToWireType(e.Type)}
	switch data := e.Data.(type) {
	case vsir.CloneData:
		if data.Inner != nil {
			inner := toWireExpr(*data.Inner)
			w.Inner = &inner
		}
	case vsir.BinaryOpData:
		w.Op = uint8(data.Op)
		if data.Lhs != nil {
			lhs := toWireExpr(*data.Lhs)
			w.Lhs = &lhs
		}
		if data.Rhs != nil {
			rhs := toWireExpr(*data.Rhs)
			w.Rhs = &rhs
		}
	case vsir.BoolLitData:
		w.BoolValue = data.Value
	case vsir.IntLitData:
		w.IntValue = data.Value
	case vsir.FloatLitData:
		w.FloatValue = data.Value
	case vsir.DefaultData:
		// no payload
	case vsir.MapAccessData:
		m, idx := toWireExpr(*data.Map), toWireExpr(*data.Index)
		w.Container, w.Index = &m, &idx
	case vsir.SeqAccessData:
		s, idx := toWireExpr(*data.Seq), toWireExpr(*data.Index)
		w.Container, w.Index = &s, &idx
	case vsir.VariableAccessData:
		w.Name = data.Name
	case vsir.LinearAccessRefData:
		w.Name = data.Name
	case vsir.NamedTupleAccessData:
		t := toWireExpr(*data.Tuple)
		w.Tuple, w.Field = &t, data.Field
	case vsir.TupleAccessData:
		t := toWireExpr(*data.Tuple)
		w.Tuple, w.TupleIndex = &t, data.Index
	case vsir.UnknownExprData:
		w.Reason = data.Reason
	}
	return w
}

func fromWireExpr(w WireExpr) vsir.Expr {
	kind := vsir.ExprKind(w.Kind)
	e := vsir.Expr{Kind: kind, Type: FromWireType(w.Type)}
	switch kind {
	case vsir.ExprClone:
		var inner *vsir.Expr
		if w.Inner != nil {
			v := fromWireExpr(*w.Inner)
			inner = &v
		}
		e.Data = vsir.CloneData{Inner: inner}
	case vsir.ExprBinaryOp:
		var lhs, rhs *vsir.Expr
		if w.Lhs != nil {
			v := fromWireExpr(*w.Lhs)
			lhs = &v
		}
		if w.Rhs != nil {
			v := fromWireExpr(*w.Rhs)
			rhs = &v
		}
		e.Data = vsir.BinaryOpData{Op: vsir.BinaryOp(w.Op), Lhs: lhs, Rhs: rhs}
	case vsir.ExprBoolLit:
		e.Data = vsir.BoolLitData{Value: w.BoolValue}
	case vsir.ExprIntLit:
		e.Data = vsir.IntLitData{Value: w.IntValue}
	case vsir.ExprFloatLit:
		e.Data = vsir.FloatLitData{Value: w.FloatValue}
	case vsir.ExprDefault:
		e.Data = vsir.DefaultData{}
	case vsir.ExprMapAccess:
		e.Data = vsir.MapAccessData{Map: exprPtrOrNil(w.Container), Index: exprPtrOrNil(w.Index)}
	case vsir.ExprSeqAccess:
		e.Data = vsir.SeqAccessData{Seq: exprPtrOrNil(w.Container), Index: exprPtrOrNil(w.Index)}
	case vsir.ExprVariableAccess:
		e.Data = vsir.VariableAccessData{Name: w.Name}
	case vsir.ExprLinearAccessRef:
		e.Data = vsir.LinearAccessRefData{Name: w.Name}
	case vsir.ExprNamedTupleAccess:
		e.Data = vsir.NamedTupleAccessData{Tuple: exprPtrOrNil(w.Tuple), Field: w.Field}
	case vsir.ExprTupleAccess:
		e.Data = vsir.TupleAccessData{Tuple: exprPtrOrNil(w.Tuple), Index: w.TupleIndex}
	default:
		e.Data = vsir.UnknownExprData{Reason: w.Reason}
	}
	return e
}

func exprPtrOrNil(w *WireExpr) *vsir.Expr {
	if w == nil {
		return nil
	}
	e := fromWireExpr(*w)
	return &e
}
