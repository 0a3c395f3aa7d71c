package trace

import (
	"context"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"off":    LevelOff,
		"error":  LevelError,
		"phase":  LevelPhase,
		"detail": LevelDetail,
		"debug":  LevelDebug,
	}
	for s, want := range cases {
		got, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := ParseLevel("bogus"); err == nil {
		t.Error("ParseLevel(\"bogus\") should have failed")
	}
}

func TestLevelShouldEmit(t *testing.T) {
	if LevelOff.ShouldEmit(ScopeDriver) {
		t.Error("LevelOff must never emit")
	}
	if !LevelPhase.ShouldEmit(ScopePass) {
		t.Error("LevelPhase should emit at ScopePass")
	}
	if LevelPhase.ShouldEmit(ScopeModule) {
		t.Error("LevelPhase should not emit at ScopeModule")
	}
	if !LevelDebug.ShouldEmit(ScopeNode) {
		t.Error("LevelDebug should emit at every scope")
	}
}

func TestParseMode(t *testing.T) {
	for s, want := range map[string]StorageMode{"stream": ModeStream, "ring": ModeRing, "both": ModeBoth} {
		got, err := ParseMode(s)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v, nil", s, got, err, want)
		}
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Error("ParseMode(\"bogus\") should have failed")
	}
}

func TestRingTracerSnapshot(t *testing.T) {
	rt := NewRingTracer(2, LevelDebug)
	rt.Emit(&Event{Kind: KindSpanBegin, Scope: ScopePass, Name: "load"})
	rt.Emit(&Event{Kind: KindSpanEnd, Scope: ScopePass, Name: "load"})
	rt.Emit(&Event{Kind: KindSpanBegin, Scope: ScopePass, Name: "generate"})

	got := rt.Snapshot()
	if len(got) != 2 {
		t.Fatalf("Snapshot() returned %d events, want 2 (capacity wraps)", len(got))
	}
	if got[0].Name != "load" || got[1].Name != "generate" {
		t.Errorf("Snapshot() = %+v, want [load(end) generate] in wrap order", got)
	}
}

func TestNopTracerIsDisabled(t *testing.T) {
	if Nop.Enabled() {
		t.Error("Nop tracer must report disabled")
	}
	Nop.Emit(&Event{Kind: KindPoint}) // must not panic
}

func TestWithTracerRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := FromContext(ctx); got != Nop {
		t.Errorf("FromContext on bare context = %v, want Nop", got)
	}
	rt := NewRingTracer(4, LevelDebug)
	ctx = WithTracer(ctx, rt)
	if got := FromContext(ctx); got != Tracer(rt) {
		t.Errorf("FromContext after WithTracer = %v, want the attached tracer", got)
	}
}

func TestSpanBeginEndRecordsOnTracer(t *testing.T) {
	rt := NewRingTracer(8, LevelDebug)
	span := Begin(rt, ScopePass, "generate", 0)
	span.WithExtra("fixture", "f.mp")
	span.End("ok")

	events := rt.Snapshot()
	if len(events) != 2 {
		t.Fatalf("got %d events, want begin+end", len(events))
	}
	if events[0].Kind != KindSpanBegin || events[1].Kind != KindSpanEnd {
		t.Errorf("events = %+v, want [begin end]", events)
	}
	if events[1].Extra["fixture"] != "f.mp" {
		t.Errorf("end event extra = %v, want fixture=f.mp", events[1].Extra)
	}
}

func TestBeginReturnsNopSpanWhenDisabled(t *testing.T) {
	span := Begin(Nop, ScopePass, "generate", 0)
	if span.ID() != 0 {
		t.Errorf("disabled Begin should mint no span id, got %d", span.ID())
	}
	span.End("") // must not panic
}

func TestHeartbeatEmitsAndStops(t *testing.T) {
	rt := NewRingTracer(16, LevelDebug)
	hb := StartHeartbeat(rt, 5*time.Millisecond)
	if hb == nil {
		t.Fatal("StartHeartbeat returned nil for an enabled tracer with a positive interval")
	}
	time.Sleep(20 * time.Millisecond)
	hb.Stop()

	found := false
	for _, ev := range rt.Snapshot() {
		if ev.Kind == KindHeartbeat {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected at least one heartbeat event before Stop")
	}
}

func TestStartHeartbeatDisabledNoop(t *testing.T) {
	if hb := StartHeartbeat(Nop, time.Second); hb != nil {
		t.Error("StartHeartbeat on a disabled tracer should return nil")
	}
	if hb := StartHeartbeat(NewRingTracer(4, LevelDebug), 0); hb != nil {
		t.Error("StartHeartbeat with a non-positive interval should return nil")
	}
}

func TestFormatEventVariants(t *testing.T) {
	ev := &Event{Kind: KindSpanBegin, Scope: ScopePass, Name: "load", Seq: 1}
	for _, f := range []Format{FormatText, FormatNDJSON, FormatChrome} {
		if out := FormatEvent(ev, f); len(out) == 0 {
			t.Errorf("FormatEvent with format %v produced no output", f)
		}
	}
}
