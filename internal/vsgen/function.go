package vsgen

import (
	"fmt"
	"strings"

	"vsforge/internal/vsir"
	"vsforge/internal/vsnames"
	"vsforge/internal/vstype"
)

// funcEmitter carries the per-function state threaded through statement
// and expression emission: the shared Emitter, the function's return
// type, and whether a return accumulator exists for it.
type funcEmitter struct {
	*Emitter
	returnType  vstype.Type
	hasAccum    bool
}

// emitFunction implements component I's function-emission
// responsibilities (spec.md §4.I):
//
//  1. static signature with return type symbolicOf(returnType), params
//     prefixed by the path-constraint parameter;
//  2. each local declared, initialised to its symbolic-guarded default;
//  3. if the return type is non-Null, a returnAccumulator initialised
//     from ops(returnType).empty();
//  4. the body statement under a fresh function control-flow context;
//  5. if the return type is non-Null, `return returnAccumulator;`.
func (e *Emitter) emitFunction(d *vsir.Decl) error {
	if d.Owner != "" {
		return unsupported("function %q has an owner %q: non-static member functions are not supported", d.Name, d.Owner)
	}
	if d.IsReceive {
		return unsupported("function %q is receive-capable, which is not supported", d.Name)
	}

	fe := &funcEmitter{Emitter: e, returnType: d.Sig.ReturnType}
	fe.hasAccum = d.Sig.ReturnType.Kind != vstype.KindNull

	retType, err := liftType(func() (string, error) { return vstype.SymbolicOf(d.Sig.ReturnType, false) })
	if err != nil {
		return err
	}

	params := make([]string, 0, len(d.Sig.Params)+1)
	params = append(params, fmt.Sprintf("Bdd %s", vsnames.PathConstraintParamName))
	for _, p := range d.Sig.Params {
		pType, err := liftType(func() (string, error) { return vstype.SymbolicOf(p.Type, true) })
		if err != nil {
			return err
		}
		params = append(params, fmt.Sprintf("%s %s", pType, e.mint.GetVar(p.Name)))
	}

	name := e.mint.GetNameForDecl(d.Name)
	fmt.Fprintf(&e.buf, "  static %s %s(%s) {\n", retType, name, strings.Join(params, ", "))

	for _, local := range d.Locals {
		if err := fe.emitLocalDecl(local); err != nil {
			return err
		}
	}

	if fe.hasAccum {
		opsName, err := fe.opsName(d.Sig.ReturnType)
		if err != nil {
			return err
		}
		fmt.Fprintf(&e.buf, "    %s %s = %s.empty();\n", retType, vsnames.ReturnAccumulatorName, opsName)
	}

	ctx := freshFuncContext()
	if err := fe.emitStmt(ctx, &d.Body); err != nil {
		return err
	}

	if fe.hasAccum {
		fmt.Fprintf(&e.buf, "    return %s;\n", vsnames.ReturnAccumulatorName)
	}

	fmt.Fprint(&e.buf, "  }\n")
	return nil
}

// emitLocalDecl declares one local, initialised to its symbolic-guarded
// default value (spec.md §4.I step 1): Default(T) lifted under the
// function's own pc parameter, exactly as a Default expression would be.
func (fe *funcEmitter) emitLocalDecl(local vsir.Local) error {
	symType, err := liftType(func() (string, error) { return vstype.SymbolicOf(local.Type, true) })
	if err != nil {
		return err
	}
	initExpr, err := fe.emitDefault(freshFuncContext(), local.Type)
	if err != nil {
		return err
	}
	fmt.Fprintf(&fe.buf, "    %s %s = %s;\n", symType, fe.mint.GetVar(local.Name), initExpr)
	return nil
}
