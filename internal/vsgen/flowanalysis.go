package vsgen

import "vsforge/internal/vsir"

// The four flow-analysis predicates of spec.md §4.E, used to drive
// conservative insertion of path-constraint liveness checks. Leaf
// statements that always escape (Goto, Pop, Raise, Return) satisfy all
// four; Break/Continue satisfy only the jump-out pair.
//
// Compound distributes "any" over its children for all four predicates,
// including the Must variants. spec.md §9 flags this as a known
// inherited behaviour — a compound is marked MustEarlyReturn even if
// only one child returns, which is an under-approximation of the
// correct "exists i such that child_i Musts and every later sibling is
// unreachable" rule. Per spec.md §9 this is preserved deliberately.

func canEarlyReturn(s *vsir.Stmt) bool {
	if s == nil {
		return false
	}
	switch s.Kind {
	case vsir.StmtGoto, vsir.StmtPop, vsir.StmtRaise, vsir.StmtReturn:
		return true
	case vsir.StmtCompound:
		for i := range s.Data.(vsir.CompoundData).Stmts {
			if canEarlyReturn(&s.Data.(vsir.CompoundData).Stmts[i]) {
				return true
			}
		}
		return false
	case vsir.StmtIf:
		data := s.Data.(vsir.IfData)
		if canEarlyReturn(&data.Then) {
			return true
		}
		return data.Else != nil && canEarlyReturn(data.Else)
	case vsir.StmtWhile:
		wd := s.Data.(vsir.WhileData)
		return canEarlyReturn(&wd.Body)
	default:
		return false
	}
}

// mustEarlyReturn preserves the source's "any child" composition for
// Compound (see package doc comment above); it is not the stricter,
// logically-correct rule.
func mustEarlyReturn(s *vsir.Stmt) bool {
	if s == nil {
		return false
	}
	switch s.Kind {
	case vsir.StmtGoto, vsir.StmtPop, vsir.StmtRaise, vsir.StmtReturn:
		return true
	case vsir.StmtCompound:
		for i := range s.Data.(vsir.CompoundData).Stmts {
			if mustEarlyReturn(&s.Data.(vsir.CompoundData).Stmts[i]) {
				return true
			}
		}
		return false
	case vsir.StmtIf:
		data := s.Data.(vsir.IfData)
		if data.Else == nil {
			return false
		}
		return mustEarlyReturn(&data.Then) && mustEarlyReturn(data.Else)
	case vsir.StmtWhile:
		// Breaks/continues within the loop are absorbed by the loop;
		// only an unconditional return inside the body escapes it.
		wd := s.Data.(vsir.WhileData)
		return mustEarlyReturn(&wd.Body)
	default:
		return false
	}
}

func canJumpOut(s *vsir.Stmt) bool {
	if s == nil {
		return false
	}
	switch s.Kind {
	case vsir.StmtGoto, vsir.StmtPop, vsir.StmtRaise, vsir.StmtReturn, vsir.StmtBreak, vsir.StmtContinue:
		return true
	case vsir.StmtCompound:
		for i := range s.Data.(vsir.CompoundData).Stmts {
			if canJumpOut(&s.Data.(vsir.CompoundData).Stmts[i]) {
				return true
			}
		}
		return false
	case vsir.StmtIf:
		data := s.Data.(vsir.IfData)
		if canJumpOut(&data.Then) {
			return true
		}
		return data.Else != nil && canJumpOut(data.Else)
	case vsir.StmtWhile:
		// breaks/continues are absorbed by the loop itself; only an
		// escaping return propagates out of it.
		wd := s.Data.(vsir.WhileData)
		return canEarlyReturn(&wd.Body)
	default:
		return false
	}
}

func mustJumpOut(s *vsir.Stmt) bool {
	if s == nil {
		return false
	}
	switch s.Kind {
	case vsir.StmtGoto, vsir.StmtPop, vsir.StmtRaise, vsir.StmtReturn, vsir.StmtBreak, vsir.StmtContinue:
		return true
	case vsir.StmtCompound:
		for i := range s.Data.(vsir.CompoundData).Stmts {
			if mustJumpOut(&s.Data.(vsir.CompoundData).Stmts[i]) {
				return true
			}
		}
		return false
	case vsir.StmtIf:
		data := s.Data.(vsir.IfData)
		if data.Else == nil {
			return false
		}
		return mustJumpOut(&data.Then) && mustJumpOut(data.Else)
	case vsir.StmtWhile:
		wd := s.Data.(vsir.WhileData)
		return mustEarlyReturn(&wd.Body)
	default:
		return false
	}
}
