package vsgen

import "vsforge/internal/vsnames"

// flowContext is an immutable bundle of (path-constraint scope,
// optional loop scope, optional branch scope) threaded through
// statement emission (spec.md §3, §4.D).
type flowContext struct {
	pc     vsnames.PathConstraintScope
	loop   *vsnames.LoopScope
	branch *vsnames.BranchScope
}

// freshFuncContext starts a fresh function body: the pcScope is bound to
// the function's own leading pc parameter (not a freshly minted name —
// the body's outermost path constraint is exactly what the caller
// passed in), no loop, no branch (spec.md §4.D).
func freshFuncContext() flowContext {
	return flowContext{pc: vsnames.PathConstraintScope{Var: vsnames.PathConstraintParamName}}
}

// freshLoopContext starts a loop body: fresh pcScope and fresh
// loopScope; no branch (spec.md §4.D). The parent's loop/branch are not
// inherited — a loop's body is a wholly new scope for break/continue
// absorption (spec.md §4.E, "While").
func freshLoopContext(mint *vsnames.Mint) flowContext {
	loop := mint.FreshLoopScope()
	return flowContext{pc: mint.FreshPathConstraintScope(), loop: &loop}
}

// freshBranchSubContext starts one arm of an if: fresh pcScope and
// fresh branchScope; loopScope inherited from parent so that a break
// inside a branch still reaches the enclosing loop (spec.md §4.D).
func freshBranchSubContext(mint *vsnames.Mint, parent flowContext) flowContext {
	branch := mint.FreshBranchScope()
	return flowContext{pc: mint.FreshPathConstraintScope(), loop: parent.loop, branch: &branch}
}
