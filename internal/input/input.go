package input

import "strings"

// Key identifies a key or button in a Snapshot.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyLShift
	KeyEscape
	keyCount
)

var keyNames = [keyCount]string{"w", "a", "s", "d", "space", "lshift", "escape"}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// ParseKey maps a key name ("w", "space", ...) to a Key.
func ParseKey(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range keyNames {
		if n == name {
			return Key(i), true
		}
	}
	return 0, false
}

// Snapshot is one frame of input state: held keys, relative mouse motion
// since the last poll, and edge-triggered events.
type Snapshot struct {
	keys    [keyCount]bool
	MouseDX int
	MouseDY int
	Fire    bool // primary button went down this frame
	Quit    bool // window close or equivalent
}

func (s Snapshot) Pressed(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	return s.keys[k]
}

func (s *Snapshot) Press(k Key) {
	if k >= 0 && k < keyCount {
		s.keys[k] = true
	}
}

func (s *Snapshot) Release(k Key) {
	if k >= 0 && k < keyCount {
		s.keys[k] = false
	}
}

// Source supplies one Snapshot per frame.
type Source interface {
	Poll() Snapshot
}

// Idle never presses anything.
type Idle struct{}

func (Idle) Poll() Snapshot { return Snapshot{} }

// Queue replays a fixed list of snapshots, then stays idle. Quit is raised
// once the list runs out when QuitWhenDone is set.
type Queue struct {
	frames       []Snapshot
	pos          int
	QuitWhenDone bool
}

func NewQueue(frames ...Snapshot) *Queue {
	return &Queue{frames: frames}
}

func (q *Queue) Poll() Snapshot {
	if q.pos >= len(q.frames) {
		return Snapshot{Quit: q.QuitWhenDone}
	}
	s := q.frames[q.pos]
	q.pos++
	return s
}
