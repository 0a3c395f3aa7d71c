package vsgen

import (
	"vsforge/internal/vsnames"
	"vsforge/internal/vstype"
)

// opsName returns the target-level constant name for t's operator
// table, registering it (and, recursively, any dependent ops a
// container type needs) if this is the first request for that shape
// (spec.md §4.C). Dependent requests are registered before the
// containing shape's definition uses them, so emission order is
// definition-before-use purely as a side effect of recursion order.
func (e *Emitter) opsName(t vstype.Type) (string, error) {
	opsType, err := liftType(func() (string, error) { return vstype.OpsTypeOf(t) })
	if err != nil {
		return "", err
	}

	var depName string
	switch t.Kind {
	case vstype.KindSequence:
		depName, err = e.opsName(*t.Elem)
		if err != nil {
			return "", err
		}
	case vstype.KindMap:
		depName, err = e.opsName(*t.Value)
		if err != nil {
			return "", err
		}
	}

	opsCtor, err := liftType(func() (string, error) {
		return vstype.OpsCtorOf(t, vsnames.BddHandleName, depName)
	})
	if err != nil {
		return "", err
	}

	idx, err := e.registry.register(opsType, opsCtor)
	if err != nil {
		return "", err
	}
	return e.registry.name(idx)
}
