package vsgen

import "vsforge/internal/vsnames"

// opRequest is the registry's deduplication key (spec.md §3:
// "OperatorTableRequest ... A request is (opsTypeText, opsCtorText)").
type opRequest struct {
	opsType string
	opsCtor string
}

// opTableRegistry deduplicates and assigns dense indices to
// (type-shape -> ops instance) requests, preserving first-insertion
// order, so one target-level constant serves all call sites of the same
// shape (spec.md §4.C).
type opTableRegistry struct {
	order []opRequest
	index map[opRequest]int
}

func newOpTableRegistry() *opTableRegistry {
	return &opTableRegistry{index: make(map[opRequest]int)}
}

// register is idempotent: repeated requests with an equal key return
// the same index (invariant 5, spec.md §3: "assigned densely from 0
// upward in first-request order").
func (r *opTableRegistry) register(opsType, opsCtor string) (int, error) {
	if opsType == "" || opsCtor == "" {
		return 0, registryShape("empty operator-table request (type=%q ctor=%q)", opsType, opsCtor)
	}
	key := opRequest{opsType: opsType, opsCtor: opsCtor}
	if idx, ok := r.index[key]; ok {
		return idx, nil
	}
	idx := len(r.order)
	r.order = append(r.order, key)
	r.index[key] = idx
	return idx, nil
}

// name renders the canonical constant name for a registered index.
func (r *opTableRegistry) name(index int) (string, error) {
	return vsnames.RegistryIndexName(index)
}

// definitions renders every registered request, in index order, as a
// target-level constant definition of the form:
//
//	private static final <opsType> ops_<i> = <opsCtor>;
//
// (spec.md §6, output item 3).
func (r *opTableRegistry) definitions() ([]string, error) {
	defs := make([]string, 0, len(r.order))
	for i, req := range r.order {
		name, err := r.name(i)
		if err != nil {
			return nil, err
		}
		defs = append(defs, "private static final "+req.opsType+" "+name+" = "+req.opsCtor+";")
	}
	return defs, nil
}
