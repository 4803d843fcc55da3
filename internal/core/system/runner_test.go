package system

import (
	"testing"
	"time"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r *recorder) Phase() Phase { return r.phase }
func (r *recorder) Update(time.Duration) {
	*r.log = append(*r.log, r.name)
}

func TestRunner_PhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recorder{"persist", PhasePersist, &log})
	r.Register(&recorder{"update-a", PhaseUpdate, &log})
	r.Register(&recorder{"input", PhaseInput, &log})
	r.Register(&recorder{"update-b", PhaseUpdate, &log})
	r.Register(&recorder{"cleanup", PhaseCleanup, &log})

	r.Tick(16 * time.Millisecond)

	want := []string{"input", "update-a", "update-b", "cleanup", "persist"}
	if len(log) != len(want) {
		t.Fatalf("ran %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("ran %v, want %v", log, want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseCleanup.String() != "cleanup" {
		t.Errorf("got %q", PhaseCleanup.String())
	}
	if Phase(99).String() != "unknown" {
		t.Errorf("got %q", Phase(99).String())
	}
}
