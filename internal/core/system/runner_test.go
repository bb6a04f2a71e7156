package system

import (
	"testing"
	"time"
)

type recordingSystem struct {
	name  string
	phase Phase
	log   *[]string
}

func (s *recordingSystem) Phase() Phase { return s.phase }

func (s *recordingSystem) Update(_ time.Duration) {
	*s.log = append(*s.log, s.name)
}

func TestRunnerPhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{name: "cleanup", phase: PhaseCleanup, log: &log})
	r.Register(&recordingSystem{name: "tick-a", phase: PhaseUpdate, log: &log})
	r.Register(&recordingSystem{name: "input", phase: PhaseInput, log: &log})
	r.Register(&recordingSystem{name: "tick-b", phase: PhaseUpdate, log: &log})

	r.Tick(time.Second / 60)

	want := []string{"input", "tick-a", "tick-b", "cleanup"}
	if len(log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("step %d: expected %s, got %s", i, want[i], log[i])
		}
	}
	if r.Ticks() != 1 {
		t.Errorf("Expected 1 tick, got %d", r.Ticks())
	}
}

func TestRunnerTickPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{name: "input", phase: PhaseInput, log: &log})
	r.Register(&recordingSystem{name: "tick", phase: PhaseUpdate, log: &log})

	r.TickPhase(PhaseInput, 0)
	if len(log) != 1 || log[0] != "input" {
		t.Errorf("Expected only input to run, got %v", log)
	}
	if r.Ticks() != 0 {
		t.Errorf("TickPhase must not advance the tick counter, got %d", r.Ticks())
	}
}

func TestRunnerRejectsUnknownPhase(t *testing.T) {
	r := NewRunner()
	defer func() {
		if recover() == nil {
			t.Error("Expected a panic for an out-of-range phase")
		}
		if r.Len() != 0 {
			t.Errorf("Expected nothing registered, got %d", r.Len())
		}
	}()
	var log []string
	r.Register(&recordingSystem{name: "bogus", phase: Phase(42), log: &log})
}
