package genpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"vsforge/internal/diag"
	"vsforge/internal/observ"
	"vsforge/internal/trace"
	"vsforge/internal/vsfixture"
	"vsforge/internal/vsgen"
)

// Job names one fixture to drive through Load/Generate/Write.
type Job struct {
	FixturePath string
	OutDir      string
}

// Result is the outcome of driving one Job.
type Result struct {
	Job     Job
	Out     string
	Stage   Stage
	Err     error
	Timer   *observ.Timer
	Elapsed time.Duration
}

// Diagnostic renders a failed Result as a reportable diagnostic. It
// returns the zero Diagnostic and false when Err is nil.
func (r Result) Diagnostic() (diag.Diagnostic, bool) {
	if r.Err == nil {
		return diag.Diagnostic{}, false
	}
	code := stageCode(r.Stage)
	var genErr *vsgen.GenError
	if errors.As(r.Err, &genErr) {
		code = genCode(genErr.Kind)
	}
	return diag.NewError(code, r.Job.FixturePath, r.Err.Error()), true
}

func stageCode(stage Stage) diag.Code {
	switch stage {
	case StageLoad:
		return diag.CLIFixture
	case StageWrite:
		return diag.CLIWrite
	default:
		return diag.CLIConfig
	}
}

func genCode(kind vsgen.ErrorKind) diag.Code {
	switch kind {
	case vsgen.InvalidLvalue:
		return diag.GenInvalidLvalue
	case vsgen.RegistryShape:
		return diag.GenRegistryShape
	default:
		return diag.GenUnsupportedConstruct
	}
}

// Run drives a single fixture through the three stages, reporting each
// transition on sink. A nil sink is replaced with one that discards
// every event, mirroring the source's own single-file driver. A tracer
// attached to ctx (trace.WithTracer) gets a ScopeModule span for the
// fixture and a nested ScopePass span per stage; an unattached ctx
// traces through trace.Nop at zero cost.
func Run(ctx context.Context, job Job, sink ProgressSink) Result {
	if sink == nil {
		sink = nopSink{}
	}
	timer := observ.NewTimer()
	start := time.Now()
	res := Result{Job: job, Timer: timer}

	name := filepath.Base(job.FixturePath)
	tracer := trace.FromContext(ctx)
	moduleSpan := trace.Begin(tracer, trace.ScopeModule, "fixture:"+name, 0)
	defer func() { moduleSpan.End(string(res.Stage)) }()

	sink.OnEvent(Event{Fixture: name, Stage: StageLoad, Status: StatusWorking})
	loadSpan := trace.Begin(tracer, trace.ScopePass, "load", moduleSpan.ID())
	loadIdx := timer.Begin("load")
	program, cfg, err := vsfixture.Load(job.FixturePath)
	timer.End(loadIdx, "")
	loadSpan.End("")
	if err != nil {
		sink.OnEvent(Event{Fixture: name, Stage: StageLoad, Status: StatusError, Err: err})
		res.Stage = StageLoad
		res.Err = fmt.Errorf("genpipeline: loading %s: %w", job.FixturePath, err)
		return res
	}
	sink.OnEvent(Event{Fixture: name, Stage: StageLoad, Status: StatusDone})

	sink.OnEvent(Event{Fixture: name, Stage: StageGenerate, Status: StatusWorking})
	genSpan := trace.Begin(tracer, trace.ScopePass, "generate", moduleSpan.ID())
	genIdx := timer.Begin("generate")
	var buf fileBuffer
	err = vsgen.Generate(program, cfg, &buf)
	timer.End(genIdx, "")
	genSpan.End("")
	if err != nil {
		sink.OnEvent(Event{Fixture: name, Stage: StageGenerate, Status: StatusError, Err: err})
		res.Stage = StageGenerate
		res.Err = fmt.Errorf("genpipeline: generating %s: %w", job.FixturePath, err)
		return res
	}
	sink.OnEvent(Event{Fixture: name, Stage: StageGenerate, Status: StatusDone})

	outPath := filepath.Join(job.OutDir, cfg.FileName)
	sink.OnEvent(Event{Fixture: name, Stage: StageWrite, Status: StatusWorking})
	writeSpan := trace.Begin(tracer, trace.ScopePass, "write", moduleSpan.ID())
	writeIdx := timer.Begin("write")
	err = writeFile(outPath, buf.Bytes())
	timer.End(writeIdx, "")
	writeSpan.End(outPath)
	if err != nil {
		sink.OnEvent(Event{Fixture: name, Stage: StageWrite, Status: StatusError, Err: err})
		res.Stage = StageWrite
		res.Err = fmt.Errorf("genpipeline: writing %s: %w", outPath, err)
		return res
	}
	res.Elapsed = time.Since(start)
	sink.OnEvent(Event{Fixture: name, Stage: StageWrite, Status: StatusDone, Elapsed: res.Elapsed})
	res.Out = outPath
	return res
}

// RunMany drives jobs concurrently, bounded to jobLimit in-flight
// fixtures at a time (grounded on the source's own bounded-parallel
// diagnosis driver: errgroup.WithContext plus SetLimit). Results are
// returned in job order regardless of completion order; ctx
// cancellation stops launching new jobs but lets started ones finish.
func RunMany(ctx context.Context, jobs []Job, jobLimit int, sink ProgressSink) ([]Result, error) {
	if jobLimit <= 0 || jobLimit > len(jobs) {
		jobLimit = len(jobs)
	}
	if jobLimit == 0 {
		return nil, nil
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = Run(gctx, job, sink)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("genpipeline: run many: %w", err)
	}
	return results, nil
}

// fileBuffer is the minimal io.Writer vsgen.Generate needs; it exists
// so Run can hand the generated bytes to writeFile without importing
// bytes.Buffer's full surface into this file's signature.
type fileBuffer struct{ data []byte }

func (b *fileBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *fileBuffer) Bytes() []byte { return b.data }

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "gen-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
