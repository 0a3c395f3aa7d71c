package vsgen

import (
	"bytes"
	"strings"
	"testing"

	"vsforge/internal/vsir"
	"vsforge/internal/vstype"
)

func generate(t *testing.T, program *vsir.Program) string {
	t.Helper()
	var buf bytes.Buffer
	cfg := vsir.JobConfig{FileName: "fixture.mp", MainClassName: "Fixture"}
	if err := Generate(program, cfg, &buf); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	return buf.String()
}

func generateErr(t *testing.T, program *vsir.Program) error {
	t.Helper()
	var buf bytes.Buffer
	cfg := vsir.JobConfig{FileName: "fixture.mp", MainClassName: "Fixture"}
	return Generate(program, cfg, &buf)
}

func intLit(v int64) vsir.Expr {
	return vsir.Expr{Kind: vsir.ExprIntLit, Type: vstype.Int, Data: vsir.IntLitData{Value: v}}
}

func boolLit(v bool) vsir.Expr {
	return vsir.Expr{Kind: vsir.ExprBoolLit, Type: vstype.Bool, Data: vsir.BoolLitData{Value: v}}
}

func varAccess(name string, t vstype.Type) vsir.Expr {
	return vsir.Expr{Kind: vsir.ExprVariableAccess, Type: t, Data: vsir.VariableAccessData{Name: name}}
}

func returnStmt(e vsir.Expr) vsir.Stmt {
	ce := e
	return vsir.Stmt{Kind: vsir.StmtReturn, Data: vsir.ReturnData{Value: &ce}}
}

func compound(stmts ...vsir.Stmt) vsir.Stmt {
	return vsir.Stmt{Kind: vsir.StmtCompound, Data: vsir.CompoundData{Stmts: stmts}}
}

// S1 (identity): f(): int { return 3; } emits one pc parameter, a
// returnAccumulator initialised from ops(Int).empty(), a single merge2
// call guarding the literal 3 by pc, and a final pc kill.
func TestScenarioIdentityFunction(t *testing.T) {
	program := &vsir.Program{Decls: []vsir.Decl{
		{
			Kind: vsir.DeclFunction,
			Name: "f",
			Sig:  vsir.Signature{ReturnType: vstype.Int},
			Body: returnStmt(intLit(3)),
		},
	}}

	out := generate(t, program)

	wantParam := "static PrimVS<Bdd, Integer> f(Bdd pc) {"
	if !strings.Contains(out, wantParam) {
		t.Fatalf("expected signature %q, got:\n%s", wantParam, out)
	}
	wantAccum := "PrimVS<Bdd, Integer> returnAccumulator = ops_0.empty();"
	if !strings.Contains(out, wantAccum) {
		t.Fatalf("expected accumulator init %q, got:\n%s", wantAccum, out)
	}
	wantMerge := "returnAccumulator = ops_0.merge2(returnAccumulator, ops_0.guard(new PrimVS<Bdd, Integer>(bdd, 3), pc));"
	if !strings.Contains(out, wantMerge) {
		t.Fatalf("expected merge2 call %q, got:\n%s", wantMerge, out)
	}
	if !strings.Contains(out, "pc = bdd.constFalse();") {
		t.Fatalf("expected final pc kill, got:\n%s", out)
	}
	if !strings.Contains(out, "return returnAccumulator;") {
		t.Fatalf("expected final return of accumulator, got:\n%s", out)
	}
	if strings.Count(out, "ops_0.merge2") != 1 {
		t.Fatalf("expected exactly one merge2 call, got:\n%s", out)
	}
}

// S2 (if-return): g(b: bool): int { if (b) { return 1; } return 2; }
// both branches must get sub-contexts, and the recombination after the
// if must always run regardless of which side escaped.
func TestScenarioIfReturn(t *testing.T) {
	program := &vsir.Program{Decls: []vsir.Decl{
		{
			Kind: vsir.DeclFunction,
			Name: "g",
			Sig: vsir.Signature{
				Params:     []vsir.Param{{Name: "b", Type: vstype.Bool}},
				ReturnType: vstype.Int,
			},
			Body: compound(
				vsir.Stmt{Kind: vsir.StmtIf, Data: vsir.IfData{
					Cond: varAccess("b", vstype.Bool),
					Then: returnStmt(intLit(1)),
				}},
				returnStmt(intLit(2)),
			),
		},
	}}

	out := generate(t, program)

	if !strings.Contains(out, "static PrimVS<Bdd, Integer> g(Bdd pc, PrimVS<Bdd, Boolean> b) {") {
		t.Fatalf("expected g's signature, got:\n%s", out)
	}
	if !strings.Contains(out, "bdd.trueCond(t0)") {
		t.Fatalf("expected then-branch guard via trueCond, got:\n%s", out)
	}
	if !strings.Contains(out, "bdd.falseCond(t0)") {
		t.Fatalf("expected else-branch guard via falseCond, got:\n%s", out)
	}
	if strings.Count(out, "ops_0.merge2") != 2 {
		t.Fatalf("expected two merge2 calls (one per return), got:\n%s", out)
	}
	// the else arm has no statements but must still recombine pc.
	if !strings.Contains(out, "pc = bdd.or(") {
		t.Fatalf("expected if's pc recombination, got:\n%s", out)
	}
	// the trailing `return 2;` must still be reachable since the if's
	// Must* is false (only one branch, the then, escapes unconditionally).
	if strings.Count(out, "new PrimVS<Bdd, Integer>(bdd, 2)") != 1 {
		t.Fatalf("expected the trailing return 2 to be emitted, got:\n%s", out)
	}
}

// S3 (while-break): h(): int { while (true) { if (cond) break; } return 0; }
func TestScenarioWhileBreak(t *testing.T) {
	program := &vsir.Program{Decls: []vsir.Decl{
		{
			Kind: vsir.DeclFunction,
			Name: "h",
			Sig:  vsir.Signature{ReturnType: vstype.Int},
			Body: compound(
				vsir.Stmt{Kind: vsir.StmtWhile, Data: vsir.WhileData{
					Cond: boolLit(true),
					Body: vsir.Stmt{Kind: vsir.StmtIf, Data: vsir.IfData{
						Cond: varAccess("cond", vstype.Bool),
						Then: vsir.Stmt{Kind: vsir.StmtBreak, Data: vsir.BreakData{}},
					}},
				}},
				returnStmt(intLit(0)),
			),
		},
	}}

	out := generate(t, program)

	if !strings.Contains(out, "java.util.List<Bdd> loopExits0 = new java.util.ArrayList<>();") {
		t.Fatalf("expected loop-exits list declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "boolean loopEarlyReturn0 = false;") {
		t.Fatalf("expected loop early-return flag declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "while (!bdd.isConstFalse(pc0)) {") {
		t.Fatalf("expected while loop over the fresh loop pc, got:\n%s", out)
	}
	if !strings.Contains(out, "loopExits0.add(") {
		t.Fatalf("expected break to add to the loop-exits list, got:\n%s", out)
	}
	if !strings.Contains(out, "pc = bdd.orMany(loopExits0);") {
		t.Fatalf("expected pc restored from orMany(loopExits0) after the loop, got:\n%s", out)
	}
	// the function's own return must still follow the loop since a
	// while(true) with only a break inside never reaches MustEarlyReturn.
	if !strings.Contains(out, "new PrimVS<Bdd, Integer>(bdd, 0)") {
		t.Fatalf("expected the trailing return 0 to be emitted after the loop, got:\n%s", out)
	}
}

// S4 (map write): a function assigning m[i] = v must route through the
// map's total put mutation path (put, not the sequence's unwrapOrThrow).
func TestScenarioMapWrite(t *testing.T) {
	mapType := vstype.Map(vstype.Int, vstype.Int)
	program := &vsir.Program{Decls: []vsir.Decl{
		{
			Kind: vsir.DeclFunction,
			Name: "setM",
			Sig: vsir.Signature{
				Params: []vsir.Param{
					{Name: "m", Type: mapType},
					{Name: "i", Type: vstype.Int},
					{Name: "v", Type: vstype.Int},
				},
				ReturnType: vstype.Null,
			},
			Body: vsir.Stmt{Kind: vsir.StmtAssign, Data: vsir.AssignData{
				Lvalue: vsir.Expr{Kind: vsir.ExprMapAccess, Type: vstype.Int, Data: vsir.MapAccessData{
					Map:   ref(varAccess("m", mapType)),
					Index: ref(varAccess("i", vstype.Int)),
				}},
				Rhs: varAccess("v", vstype.Int),
			}},
		},
	}}

	out := generate(t, program)

	if !strings.Contains(out, ".put(") {
		t.Fatalf("expected a map write to use the total put operation, got:\n%s", out)
	}
	if strings.Contains(out, "unwrapOrThrow") {
		t.Fatalf("map mutation must not use the partial unwrapOrThrow path, got:\n%s", out)
	}
}

// S5 (operator sharing): two functions each using int+int binary
// addition must register exactly one shared PrimVS.Ops<Bdd, Integer>
// constant between them.
func TestScenarioOperatorTableSharing(t *testing.T) {
	addBody := func(name string) vsir.Decl {
		return vsir.Decl{
			Kind: vsir.DeclFunction,
			Name: name,
			Sig: vsir.Signature{
				Params: []vsir.Param{
					{Name: "x", Type: vstype.Int},
					{Name: "y", Type: vstype.Int},
				},
				ReturnType: vstype.Int,
			},
			Body: returnStmt(vsir.Expr{
				Kind: vsir.ExprBinaryOp,
				Type: vstype.Int,
				Data: vsir.BinaryOpData{
					Op:  vsir.OpAdd,
					Lhs: ref(varAccess("x", vstype.Int)),
					Rhs: ref(varAccess("y", vstype.Int)),
				},
			}),
		}
	}
	program := &vsir.Program{Decls: []vsir.Decl{addBody("p"), addBody("q")}}

	out := generate(t, program)

	if strings.Count(out, "private static final PrimVS.Ops<Bdd, Integer> ops_0 =") != 1 {
		t.Fatalf("expected exactly one shared ops_0 definition, got:\n%s", out)
	}
	if strings.Contains(out, "ops_1") {
		t.Fatalf("expected no second operator table for the same shape, got:\n%s", out)
	}
	if strings.Count(out, "a + b") != 2 {
		t.Fatalf("expected both functions to lift their addition, got:\n%s", out)
	}
}

// S6 (unsupported): a receive-capable function aborts generation with
// UnsupportedConstruct and no output is considered meaningful.
func TestScenarioUnsupportedReceiveFunction(t *testing.T) {
	program := &vsir.Program{Decls: []vsir.Decl{
		{
			Kind:      vsir.DeclFunction,
			Name:      "onEvent",
			IsReceive: true,
			Sig:       vsir.Signature{ReturnType: vstype.Null},
			Body:      vsir.Stmt{Kind: vsir.StmtCompound, Data: vsir.CompoundData{}},
		},
	}}

	err := generateErr(t, program)
	if err == nil {
		t.Fatalf("expected generation to fail for a receive-capable function")
	}
	genErr, ok := err.(*GenError)
	if !ok {
		t.Fatalf("expected a *GenError, got %T: %v", err, err)
	}
	if genErr.Kind != UnsupportedConstruct {
		t.Fatalf("expected UnsupportedConstruct, got %s", genErr.Kind)
	}
}

func ref(e vsir.Expr) *vsir.Expr { return &e }

// Property 1: an assignment to a plain variable is emitted as a guarded
// snapshot merged back with its complement rather than a bare write
// (spec.md §8 property 1).
func TestPropertyAssignAlwaysGuardsAndMerges(t *testing.T) {
	program := &vsir.Program{Decls: []vsir.Decl{
		{
			Kind: vsir.DeclFunction,
			Name: "setX",
			Sig:  vsir.Signature{ReturnType: vstype.Null},
			Locals: []vsir.Local{
				{Name: "x", Type: vstype.Int},
			},
			Body: vsir.Stmt{Kind: vsir.StmtAssign, Data: vsir.AssignData{
				Lvalue: varAccess("x", vstype.Int),
				Rhs:    intLit(7),
			}},
		},
	}}

	out := generate(t, program)

	if !strings.Contains(out, ".guard(x, ") {
		t.Fatalf("expected the lvalue to be guarded before mutation, got:\n%s", out)
	}
	if !strings.Contains(out, ".merge2(") {
		t.Fatalf("expected the mutated value to be merged back with its complement, got:\n%s", out)
	}
	if !strings.Contains(out, "bdd.not(") {
		t.Fatalf("expected the merge-back to use the guard's complement, got:\n%s", out)
	}
}

// Property 2: Assign/MoveAssign between mismatched static types is
// always rejected, never coerced (spec.md §4.H, §8 property 2).
func TestPropertyAssignRejectsTypeMismatch(t *testing.T) {
	program := &vsir.Program{Decls: []vsir.Decl{
		{
			Kind: vsir.DeclFunction,
			Name: "bad",
			Sig:  vsir.Signature{ReturnType: vstype.Null},
			Locals: []vsir.Local{
				{Name: "x", Type: vstype.Int},
			},
			Body: vsir.Stmt{Kind: vsir.StmtAssign, Data: vsir.AssignData{
				Lvalue: varAccess("x", vstype.Int),
				Rhs:    boolLit(true),
			}},
		},
	}}

	err := generateErr(t, program)
	if err == nil {
		t.Fatalf("expected a type-mismatched assignment to be rejected")
	}
	genErr, ok := err.(*GenError)
	if !ok || genErr.Kind != UnsupportedConstruct {
		t.Fatalf("expected UnsupportedConstruct, got %v", err)
	}
}

// Property 3: once a compound statement emits a child whose effect is a
// guaranteed jump-out, no sibling statement following it is emitted
// (spec.md §8 property 3).
func TestPropertyCompoundStopsAfterMustJumpOut(t *testing.T) {
	program := &vsir.Program{Decls: []vsir.Decl{
		{
			Kind: vsir.DeclFunction,
			Name: "dead",
			Sig:  vsir.Signature{ReturnType: vstype.Int},
			Body: compound(
				returnStmt(intLit(1)),
				returnStmt(intLit(99)),
			),
		},
	}}

	out := generate(t, program)

	if strings.Contains(out, "99") {
		t.Fatalf("expected the unreachable return after an unconditional return to be dropped, got:\n%s", out)
	}
	if strings.Count(out, "ops_0.merge2") != 1 {
		t.Fatalf("expected exactly one merge2 from the single reachable return, got:\n%s", out)
	}
}

// Property 4: a bodyless else still introduces a branch sub-context and
// still participates in the unconditional pc/JumpedOutFlag
// recombination (spec.md §8 property 4, §9's If simplification).
func TestPropertyBodylessElseStillRecombines(t *testing.T) {
	program := &vsir.Program{Decls: []vsir.Decl{
		{
			Kind: vsir.DeclFunction,
			Name: "maybe",
			Sig: vsir.Signature{
				Params:     []vsir.Param{{Name: "b", Type: vstype.Bool}},
				ReturnType: vstype.Null,
			},
			Body: vsir.Stmt{Kind: vsir.StmtIf, Data: vsir.IfData{
				Cond: varAccess("b", vstype.Bool),
				Then: compound(),
			}},
		},
	}}

	out := generate(t, program)

	if strings.Count(out, "bdd.falseCond(") != 1 {
		t.Fatalf("expected the implicit empty else to still get its own pc scope, got:\n%s", out)
	}
	if !strings.Contains(out, "pc = bdd.or(") {
		t.Fatalf("expected pc recombination even with a bodyless else, got:\n%s", out)
	}
}

// Property 5: Continue kills only its own pc; it must not touch the
// enclosing loop's exits list or early-return flag (spec.md §8
// property 5, stmt.go's documented Continue semantics).
func TestPropertyContinueDoesNotTouchLoopExits(t *testing.T) {
	program := &vsir.Program{Decls: []vsir.Decl{
		{
			Kind: vsir.DeclFunction,
			Name: "skip",
			Sig:  vsir.Signature{ReturnType: vstype.Null},
			Body: vsir.Stmt{Kind: vsir.StmtWhile, Data: vsir.WhileData{
				Cond: boolLit(true),
				Body: compound(
					vsir.Stmt{Kind: vsir.StmtIf, Data: vsir.IfData{
						Cond: varAccess("cond", vstype.Bool),
						Then: vsir.Stmt{Kind: vsir.StmtContinue, Data: vsir.ContinueData{}},
					}},
					vsir.Stmt{Kind: vsir.StmtBreak, Data: vsir.BreakData{}},
				),
			}},
		},
	}}

	out := generate(t, program)

	if strings.Count(out, "loopExits0.add(") != 1 {
		t.Fatalf("expected exactly one loop-exits addition, from the break alone, got:\n%s", out)
	}
	if strings.Count(out, "loopEarlyReturn0 = true") != 0 {
		t.Fatalf("continue must not set the loop's early-return flag, got:\n%s", out)
	}
	// the break must still be reachable: the if around the continue is
	// only a CanJumpOut (no else), never a MustJumpOut, so the compound
	// keeps emitting under a guard rather than stopping.
	if !strings.Contains(out, "if (!bdd.isConstFalse(pc0)) {") {
		t.Fatalf("expected the break to be nested under a liveness guard after the if, got:\n%s", out)
	}
}

// Property 6: every type shape requested through opsName is registered
// at most once, with dependent (element/value) shapes registered
// before the container shape that uses them (spec.md §8 property 6,
// §4.C's definition-before-use ordering).
func TestPropertyOpsRegisteredOnceDependencyFirst(t *testing.T) {
	seqType := vstype.Sequence(vstype.Int)
	program := &vsir.Program{Decls: []vsir.Decl{
		{
			Kind: vsir.DeclFunction,
			Name: "useSeq",
			Sig: vsir.Signature{
				Params:     []vsir.Param{{Name: "s", Type: seqType}, {Name: "i", Type: vstype.Int}},
				ReturnType: vstype.Int,
			},
			Body: returnStmt(vsir.Expr{Kind: vsir.ExprSeqAccess, Type: vstype.Int, Data: vsir.SeqAccessData{
				Seq:   ref(varAccess("s", seqType)),
				Index: ref(varAccess("i", vstype.Int)),
			}}),
		},
	}}

	out := generate(t, program)

	intIdx := strings.Index(out, "private static final PrimVS.Ops<Bdd, Integer> ops_0 =")
	seqIdx := strings.Index(out, "private static final ListVS.Ops<Bdd, PrimVS<Bdd, Integer>> ops_1 =")
	if intIdx < 0 || seqIdx < 0 {
		t.Fatalf("expected both the element and the sequence operator tables to be registered, got:\n%s", out)
	}
	if intIdx > seqIdx {
		t.Fatalf("expected the element's ops table (ops_0) to be defined before the sequence's (ops_1), got:\n%s", out)
	}
	if strings.Count(out, "ops_2") != 0 {
		t.Fatalf("expected exactly two registered op shapes, got:\n%s", out)
	}
}
