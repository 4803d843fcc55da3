package world

import (
	"slices"

	"github.com/dobrilasunde/Shooting-Gallery/internal/core/event"
	"github.com/dobrilasunde/Shooting-Gallery/internal/core/handle"
	"github.com/dobrilasunde/Shooting-Gallery/internal/input"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Renderer is what components need from the render backend.
type Renderer interface {
	AddMesh(m *MeshComponent)
	RemoveMesh(m *MeshComponent)
	AddSprite(s *SpriteComponent)
	RemoveSprite(s *SpriteComponent)
	SetViewMatrix(view mgl32.Mat4)
	// Unproject maps a screen point (x in [-w/2, w/2], y in [-h/2, h/2],
	// z in [0, 1) with 0 at the near plane) to world space.
	Unproject(screen mgl32.Vec3) mgl32.Vec3
}

type nopRenderer struct{}

func (nopRenderer) AddMesh(*MeshComponent)            {}
func (nopRenderer) RemoveMesh(*MeshComponent)         {}
func (nopRenderer) AddSprite(*SpriteComponent)        {}
func (nopRenderer) RemoveSprite(*SpriteComponent)     {}
func (nopRenderer) SetViewMatrix(mgl32.Mat4)          {}
func (nopRenderer) Unproject(s mgl32.Vec3) mgl32.Vec3 { return s }

// World owns every actor in the session. Actors created while an update or
// input pass is running are parked in pending and spliced in afterwards;
// actors destroyed during a pass are marked Dead and torn down by
// DestroyDead. Accessed only from the game loop goroutine.
type World struct {
	log *zap.Logger

	ids      *handle.Pool
	actors   []*Actor
	pending  []*Actor
	byID     map[handle.ID]*Actor
	updating bool

	phys     *PhysWorld
	planes   []*BoxComponent
	renderer Renderer
	bus      *event.Bus
	frame    uint64
}

// New creates an empty world. renderer and bus may be nil.
func New(log *zap.Logger, renderer Renderer, bus *event.Bus) *World {
	if log == nil {
		log = zap.NewNop()
	}
	if renderer == nil {
		renderer = nopRenderer{}
	}
	return &World{
		log:      log,
		ids:      handle.NewPool(),
		actors:   make([]*Actor, 0, 512),
		byID:     make(map[handle.ID]*Actor),
		phys:     NewPhysWorld(),
		renderer: renderer,
		bus:      bus,
	}
}

func (w *World) Log() *zap.Logger        { return w.log }
func (w *World) Phys() *PhysWorld        { return w.phys }
func (w *World) Renderer() Renderer      { return w.renderer }
func (w *World) Bus() *event.Bus         { return w.bus }
func (w *World) Frame() uint64           { return w.frame }
func (w *World) SetFrame(f uint64)       { w.frame = f }
func (w *World) Actors() []*Actor        { return w.actors }
func (w *World) Pending() []*Actor       { return w.pending }
func (w *World) Planes() []*BoxComponent { return w.planes }

// Count is the number of live plus pending actors.
func (w *World) Count() int { return len(w.actors) + len(w.pending) }

// NewActor creates an actor of the given kind and registers it.
func (w *World) NewActor(kind Kind) *Actor {
	a := newActor(w, w.ids.Create(), kind)
	w.byID[a.id] = a
	if w.updating {
		w.pending = append(w.pending, a)
	} else {
		w.actors = append(w.actors, a)
	}
	return a
}

// Actor looks up a live or pending actor by handle.
func (w *World) Actor(id handle.ID) (*Actor, bool) {
	if !w.ids.Alive(id) {
		return nil, false
	}
	a, ok := w.byID[id]
	return a, ok
}

// ProcessInput hands the snapshot to every live actor. Actors spawned from
// input handlers wait in pending.
func (w *World) ProcessInput(in input.Snapshot) {
	w.updating = true
	for _, a := range w.actors {
		a.ProcessInput(in)
	}
	w.updating = false
}

// UpdateActors runs one update pass over the live actors.
func (w *World) UpdateActors(dt float32) {
	w.updating = true
	for _, a := range w.actors {
		a.Update(dt)
	}
	w.updating = false
}

// FlushPending moves pending actors into the live set, computing each one's
// world transform first. Returns how many were spliced.
func (w *World) FlushPending() int {
	n := len(w.pending)
	for _, a := range w.pending {
		a.ComputeWorldTransform()
		w.actors = append(w.actors, a)
	}
	clear(w.pending)
	w.pending = w.pending[:0]
	return n
}

// DestroyDead tears down every live actor in the Dead state. Returns how
// many were destroyed.
func (w *World) DestroyDead() int {
	var dead []*Actor
	for _, a := range w.actors {
		if a.state == Dead {
			dead = append(dead, a)
		}
	}
	for _, a := range dead {
		a.destroy()
	}
	if len(dead) > 0 {
		w.log.Debug("actors destroyed", zap.Int("count", len(dead)), zap.Uint64("frame", w.frame))
	}
	return len(dead)
}

// Shutdown destroys every actor, live ones last-created first, then
// anything still pending.
func (w *World) Shutdown() {
	w.updating = false
	for len(w.actors) > 0 {
		w.actors[len(w.actors)-1].destroy()
	}
	for len(w.pending) > 0 {
		w.pending[len(w.pending)-1].destroy()
	}
}

// AddPlane registers a box the player collides with.
func (w *World) AddPlane(box *BoxComponent) {
	if !slices.Contains(w.planes, box) {
		w.planes = append(w.planes, box)
	}
}

func (w *World) RemovePlane(box *BoxComponent) {
	if i := slices.Index(w.planes, box); i >= 0 {
		w.planes = slices.Delete(w.planes, i, i+1)
	}
}

func (w *World) removeActor(a *Actor) {
	if i := slices.Index(w.actors, a); i >= 0 {
		w.actors = slices.Delete(w.actors, i, i+1)
	} else if i := slices.Index(w.pending, a); i >= 0 {
		w.pending = slices.Delete(w.pending, i, i+1)
	}
	delete(w.byID, a.id)
	w.ids.Release(a.id)
	if w.bus != nil {
		event.Emit(w.bus, event.ActorDestroyed{Frame: w.frame, Actor: a.id, Kind: a.kind.String()})
	}
}
