// Package vsnames is the generator's name mint: fresh unique
// identifiers for temporaries,
// path-constraint variables, loop/branch scopes, and stable per-declaration
// names (spec.md §4.A).
package vsnames

import (
	"fmt"
	"strings"
	"unicode"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// Fixed symbols exposed by the mint (spec.md §4.A).
const (
	// BddHandleName is the target-level identifier for the BDD library
	// handle threaded through every emitted function.
	BddHandleName = "bdd"
	// ReturnAccumulatorName is the function's return accumulator.
	ReturnAccumulatorName = "returnAccumulator"
	// PathConstraintParamName is the function's leading pc parameter.
	PathConstraintParamName = "pc"
)

// Mint produces fresh, pairwise-distinct target-level identifiers across
// one compilation unit, plus the stable GetNameForDecl/GetVar mappings.
// A Mint must not be reused across independent jobs (spec.md §5).
type Mint struct {
	tempCounter   int
	pcCounter     int
	loopCounter   int
	branchCounter int

	declNames map[string]string
	declSeen  map[string]int

	varCache map[string]string
}

// New returns an empty Mint ready for one compilation job.
func New() *Mint {
	return &Mint{
		declNames: make(map[string]string),
		declSeen:  make(map[string]int),
		varCache:  make(map[string]string),
	}
}

// FreshTempVar returns a unique identifier valid as a target-level
// local, e.g. "t0", "t1", ...
func (m *Mint) FreshTempVar() string {
	name := fmt.Sprintf("t%d", m.tempCounter)
	m.tempCounter++
	return name
}

// FreshPathConstraintScope returns a PathConstraintScope with a fresh
// BDD-valued name.
func (m *Mint) FreshPathConstraintScope() PathConstraintScope {
	name := fmt.Sprintf("pc%d", m.pcCounter)
	m.pcCounter++
	return PathConstraintScope{Var: name}
}

// FreshLoopScope returns a LoopScope with fresh list/flag identifiers.
func (m *Mint) FreshLoopScope() LoopScope {
	idx := m.loopCounter
	m.loopCounter++
	return LoopScope{
		LoopExitsList:       fmt.Sprintf("loopExits%d", idx),
		LoopEarlyReturnFlag: fmt.Sprintf("loopEarlyReturn%d", idx),
	}
}

// FreshBranchScope returns a BranchScope with a fresh flag identifier.
func (m *Mint) FreshBranchScope() BranchScope {
	idx := m.branchCounter
	m.branchCounter++
	return BranchScope{JumpedOutFlag: fmt.Sprintf("jumpedOut%d", idx)}
}

// GetNameForDecl returns a stable, collision-free identifier for the
// declaration named declName. Repeated calls with the same declName
// return the same mangled identifier; distinct declarations that would
// otherwise mangle to the same text get a numeric suffix so the overall
// mapping stays injective.
func (m *Mint) GetNameForDecl(declName string) string {
	if cached, ok := m.declNames[declName]; ok {
		return cached
	}
	base := mangle(declName)
	name := base
	if n, used := m.declSeen[base]; used {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	m.declSeen[base]++
	m.declNames[declName] = name
	return name
}

// GetVar is a pure, memoized function of a source variable name: a
// fixed, deterministic mangling into an emittable target identifier
// (spec.md §4.A). Unlike GetNameForDecl it never needs disambiguation —
// within one function body the IR guarantees distinct source names.
func (m *Mint) GetVar(sourceName string) string {
	if cached, ok := m.varCache[sourceName]; ok {
		return cached
	}
	name := mangle(sourceName)
	m.varCache[sourceName] = name
	return name
}

// mangle normalises sourceName to NFC and rewrites every rune that is
// not a valid Java identifier character into '_', prefixing with '_' if
// the first rune would otherwise be a digit.
func mangle(sourceName string) string {
	normalized := norm.NFC.String(sourceName)
	if normalized == "" {
		return "_"
	}
	var b strings.Builder
	b.Grow(len(normalized))
	for i, r := range normalized {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// RegistryIndexName renders the canonical operator-table constant name
// for a registry index (spec.md §4.C: "e.g. ops_<i>").
func RegistryIndexName(index int) (string, error) {
	idx, err := safecast.Conv[uint32](index)
	if err != nil {
		return "", fmt.Errorf("vsnames: registry index out of range: %w", err)
	}
	return fmt.Sprintf("ops_%d", idx), nil
}
