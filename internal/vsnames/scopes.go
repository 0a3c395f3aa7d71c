package vsnames

// PathConstraintScope holds the name of a target-level BDD-valued
// variable representing the current path constraint (spec.md §3).
// Its lifetime equals the emission of one block whose predicate is
// fixed; child scopes shadow parents with fresh names (invariant 3).
type PathConstraintScope struct {
	Var string
}

// LoopScope holds the two target-level identifiers a while-loop's
// emission protocol needs (spec.md §3, §4.H "While(true)"):
// LoopExitsList accumulates the pc at every break, LoopEarlyReturnFlag
// records whether any Return escaped the loop body.
type LoopScope struct {
	LoopExitsList      string
	LoopEarlyReturnFlag string
}

// BranchScope holds the single Boolean JumpedOutFlag an if-branch sets
// when any escaping construct was taken within it (spec.md §3).
type BranchScope struct {
	JumpedOutFlag string
}
