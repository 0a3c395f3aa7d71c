// Package vsgen is the symbolic-execution code generator core: it lowers
// a typed vsir.Program into target source text whose runtime values are
// value summaries guarded by BDD path constraints (spec.md §1).
package vsgen

import (
	"bytes"
	"fmt"
	"io"

	"vsforge/internal/vsir"
	"vsforge/internal/vsnames"
)

// Emitter is the generator's CompilationContext: the name mint, the
// operator-table registry and the single character sink accumulating
// the whole compilation unit's output (spec.md §4.A, §4.C). It is
// process-wide to one Generate call and must not be reused across
// independent jobs (spec.md §5).
type Emitter struct {
	mint     *vsnames.Mint
	registry *opTableRegistry
	buf      bytes.Buffer
}

func newEmitter() *Emitter {
	return &Emitter{mint: vsnames.New(), registry: newOpTableRegistry()}
}

// Generate is the generator's single entry point (spec.md §6). It
// consumes a pre-built typed IR program and job config, and produces a
// single textual artifact written to sink. Any error aborts the whole
// generation; nothing partial is guaranteed to be meaningful once an
// error is returned (spec.md §7).
func Generate(program *vsir.Program, cfg vsir.JobConfig, sink io.Writer) error {
	if program == nil {
		return unsupported("nil program")
	}
	e := newEmitter()
	if err := e.emitModule(program, cfg); err != nil {
		return err
	}
	_, err := sink.Write(e.buf.Bytes())
	return err
}

// emitModule implements component I's module-level responsibilities:
// prologue comment, class header, per-declaration dispatch, operator
// registry epilogue, class footer (spec.md §6).
func (e *Emitter) emitModule(program *vsir.Program, cfg vsir.JobConfig) error {
	fmt.Fprintf(&e.buf, "// generated for %s; room reserved for future runtime imports\n", cfg.FileName)
	fmt.Fprintf(&e.buf, "public class %s {\n", cfg.MainClassName)

	for i := range program.Decls {
		if err := e.emitDecl(&program.Decls[i]); err != nil {
			return err
		}
	}

	defs, err := e.registry.definitions()
	if err != nil {
		return err
	}
	for _, def := range defs {
		fmt.Fprintf(&e.buf, "  %s\n", def)
	}

	fmt.Fprint(&e.buf, "}\n")
	return nil
}

func (e *Emitter) emitDecl(d *vsir.Decl) error {
	if d.Kind != vsir.DeclFunction {
		reason := d.SkipReason
		if reason == "" {
			reason = "unsupported declaration kind"
		}
		fmt.Fprintf(&e.buf, "  // skipped: %s\n", reason)
		return nil
	}
	if d.IsForeign {
		return unsupported("function %q is foreign, which the core does not support", d.Name)
	}
	return e.emitFunction(d)
}
