package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput      Phase = iota // 0: poll input, fire/quit, actor input
	PhasePreUpdate               // 1: deliver last frame's events
	PhaseUpdate                  // 2: actor + component update pass
	PhasePostUpdate              // 3: splice pending actors into the live set
	PhaseCleanup                 // 4: destroy actors marked dead
	PhaseOutput                  // 5: draw
	PhasePersist                 // 6: flush stats to storage
)

var phaseNames = [...]string{"input", "pre_update", "update", "post_update", "cleanup", "output", "persist"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every frame system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
