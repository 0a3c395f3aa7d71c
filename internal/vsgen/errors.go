package vsgen

import (
	"errors"
	"fmt"

	"vsforge/internal/vstype"
)

// ErrorKind enumerates the generator's three abort-triggering error
// families (spec.md §7). All three surface synchronously from the
// generator's entry point; none are recovered locally.
type ErrorKind uint8

const (
	// UnsupportedConstruct is a construct the core does not yet
	// handle: foreign/receive-capable/non-static functions,
	// equality/inequality operators, non-primitive binary operands,
	// named/positional tuples, coercing assignments, non-boolean if
	// conditions, non-true while conditions, variables of Null type,
	// symbolic types outside the enumerated set.
	UnsupportedConstruct ErrorKind = iota
	// InvalidLvalue is an expression that reached the lvalue emitter
	// but cannot be an lvalue.
	InvalidLvalue
	// RegistryShape is an attempt to register ops for a type whose
	// shape has no defined constructor.
	RegistryShape
)

func (k ErrorKind) String() string {
	switch k {
	case UnsupportedConstruct:
		return "UnsupportedConstruct"
	case InvalidLvalue:
		return "InvalidLvalue"
	case RegistryShape:
		return "RegistryShape"
	default:
		return "Unknown"
	}
}

// GenError is the error type every vsgen entry point returns on
// failure. Use errors.As to recover Kind.
type GenError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *GenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *GenError) Unwrap() error { return e.Err }

func unsupported(format string, args ...any) error {
	return &GenError{Kind: UnsupportedConstruct, Msg: fmt.Sprintf(format, args...)}
}

func unsupportedType(err error) error {
	return &GenError{Kind: UnsupportedConstruct, Msg: "type lifting failed", Err: err}
}

func invalidLvalue(format string, args ...any) error {
	return &GenError{Kind: InvalidLvalue, Msg: fmt.Sprintf(format, args...)}
}

func registryShape(format string, args ...any) error {
	return &GenError{Kind: RegistryShape, Msg: fmt.Sprintf(format, args...)}
}

// liftType wraps vstype lifting errors (which use a plain sentinel) into
// the generator's typed UnsupportedConstruct error.
func liftType[T any](f func() (T, error)) (T, error) {
	v, err := f()
	if err != nil {
		var zero T
		if errors.Is(err, vstype.ErrUnsupportedType) {
			return zero, unsupportedType(err)
		}
		return zero, err
	}
	return v, nil
}
