// Package diag is the generator's CLI-facing diagnostic reporting
// layer. Generation itself aborts on its first error and returns a
// plain *vsgen.GenError (spec.md §7); this package exists only to
// render that single error, or a batch of per-fixture errors when the
// CLI drives many fixtures concurrently, in the teacher's diagnostic
// style.
package diag

// Note is a secondary remark attached to a Diagnostic, e.g. "ops table
// registered here".
type Note struct {
	Location string
	Msg      string
}

// Diagnostic is one reportable event. Unlike a lexer/parser diagnostic
// there is no source.Span: the generator's failures are located by the
// declaration or fixture they occurred in, not by a byte range in
// source text the generator never parses.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Location string
	Notes    []Note
}

func New(sev Severity, code Code, location, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Location: location, Message: msg}
}

func NewError(code Code, location, msg string) Diagnostic {
	return New(SevError, code, location, msg)
}

func (d Diagnostic) WithNote(location, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Location: location, Msg: msg})
	return d
}
