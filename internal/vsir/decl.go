// Package vsir defines the typed intermediate representation the
// generator consumes: declarations, statements and expressions, plus the
// global scope (Program) and per-job configuration it is paired with.
//
// This is the "pre-built typed IR and scope graph" spec.md §1 describes
// as an external collaborator's output; parsing and scope resolution
// that would populate it are out of this repo's scope.
package vsir

import "vsforge/internal/vstype"

// DeclKind enumerates declaration variants. Only DeclFunction is fully
// handled by the core generator; every other variant is emitted as a
// skip comment (spec.md §4.I).
type DeclKind uint8

const (
	DeclFunction DeclKind = iota
	DeclOther
)

// Param is one parameter of a function signature.
type Param struct {
	Name string
	Type vstype.Type
}

// Signature is a function's parameter list and return type.
type Signature struct {
	Params     []Param
	ReturnType vstype.Type
}

// Local is one local variable of a function body.
type Local struct {
	Name string
	Type vstype.Type
}

// Decl is one top-level declaration.
type Decl struct {
	Kind DeclKind

	// Function-only fields (Kind == DeclFunction). Invariant 2 of the
	// data model (spec.md §3) requires Owner == "" and IsReceive ==
	// false for any Function reaching the emitter; violations raise
	// UnsupportedConstruct.
	Name      string
	Owner     string
	IsReceive bool
	IsForeign bool
	Sig       Signature
	Locals    []Local
	Body      Stmt

	// SkipReason is used for DeclOther to render the skip comment
	// (spec.md §6, output item 2).
	SkipReason string
}
