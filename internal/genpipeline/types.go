// Package genpipeline drives vsgen.Generate over one or many fixtures
// and reports progress through the same Event/Stage/Status shape the
// teacher's build pipeline uses for its own multi-file progress UI.
package genpipeline

import "time"

// Stage describes a high-level phase of driving one fixture.
type Stage string

const (
	// StageLoad is decoding the fixture's wire format into a vsir.Program.
	StageLoad Stage = "load"
	// StageGenerate is running vsgen.Generate over the decoded program.
	StageGenerate Stage = "generate"
	// StageWrite is writing the generated artifact to its destination.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one fixture (or for the run overall when
// Fixture is empty).
type Event struct {
	Fixture string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// nopSink discards every event; used when no progress UI is attached.
type nopSink struct{}

func (nopSink) OnEvent(Event) {}
