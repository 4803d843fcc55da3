package world

import (
	"testing"

	"github.com/dobrilasunde/Shooting-Gallery/internal/core/event"
	"github.com/dobrilasunde/Shooting-Gallery/internal/geom"
	"github.com/dobrilasunde/Shooting-Gallery/internal/input"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const eps = 1e-3

type recorder struct {
	Base
	name  string
	trace *[]string
	onUpd func()
}

func newRecorder(owner *Actor, order int, name string, trace *[]string) *recorder {
	r := &recorder{Base: NewBase(owner, order), name: name, trace: trace}
	owner.AddComponent(r)
	return r
}

func (r *recorder) Update(dt float32) {
	*r.trace = append(*r.trace, r.name)
	if r.onUpd != nil {
		r.onUpd()
	}
}

func (r *recorder) ProcessInput(in input.Snapshot) {
	*r.trace = append(*r.trace, "input:"+r.name)
}

type fakeRenderer struct {
	meshes  int
	sprites int
	views   int
	view    mgl32.Mat4
}

func (f *fakeRenderer) AddMesh(*MeshComponent)            { f.meshes++ }
func (f *fakeRenderer) RemoveMesh(*MeshComponent)         { f.meshes-- }
func (f *fakeRenderer) AddSprite(*SpriteComponent)        { f.sprites++ }
func (f *fakeRenderer) RemoveSprite(*SpriteComponent)     { f.sprites-- }
func (f *fakeRenderer) SetViewMatrix(v mgl32.Mat4)        { f.view = v; f.views++ }
func (f *fakeRenderer) Unproject(s mgl32.Vec3) mgl32.Vec3 { return s }

func newTestWorld() *World {
	return New(zap.NewNop(), nil, event.NewBus())
}

func TestActor_ComponentsRunInUpdateOrder(t *testing.T) {
	w := newTestWorld()
	a := w.NewActor(KindPlain)
	var trace []string
	newRecorder(a, DefaultUpdateOrder, "default-1", &trace)
	newRecorder(a, CameraUpdateOrder, "camera", &trace)
	newRecorder(a, MoveUpdateOrder, "move", &trace)
	newRecorder(a, DefaultUpdateOrder, "default-2", &trace)

	a.Update(0.016)

	want := []string{"move", "default-1", "default-2", "camera"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Errorf("trace[%d] = %q, want %q", i, trace[i], want[i])
		}
	}
}

func TestActor_RemoveComponent(t *testing.T) {
	w := newTestWorld()
	a := w.NewActor(KindPlain)
	var trace []string
	r1 := newRecorder(a, 100, "a", &trace)
	newRecorder(a, 100, "b", &trace)

	a.RemoveComponent(r1)
	a.RemoveComponent(r1)
	if n := len(a.Components()); n != 1 {
		t.Fatalf("components = %d, want 1", n)
	}
	a.Update(0.016)
	if len(trace) != 1 || trace[0] != "b" {
		t.Errorf("trace = %v, want [b]", trace)
	}
}

func TestActor_InactiveSkipsUpdateAndInput(t *testing.T) {
	w := newTestWorld()
	a := w.NewActor(KindPlain)
	var trace []string
	newRecorder(a, 100, "r", &trace)

	a.SetState(Paused)
	a.Update(0.016)
	a.ProcessInput(input.Snapshot{})
	if len(trace) != 0 {
		t.Errorf("paused actor ran: %v", trace)
	}

	a.SetState(Active)
	a.ProcessInput(input.Snapshot{})
	if len(trace) != 1 || trace[0] != "input:r" {
		t.Errorf("trace = %v, want [input:r]", trace)
	}
}

func TestActor_WorldTransformIsLazy(t *testing.T) {
	w := newTestWorld()
	a := w.NewActor(KindPlain)
	a.ComputeWorldTransform()
	if a.TransformDirty() {
		t.Fatal("transform dirty right after compute")
	}

	a.SetPosition(mgl32.Vec3{10, 20, 30})
	a.SetScale(2)
	if !a.TransformDirty() {
		t.Fatal("SetPosition did not mark the transform dirty")
	}
	a.ComputeWorldTransform()
	if a.TransformDirty() {
		t.Error("flag not cleared after compute")
	}

	m := a.WorldTransform()
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !p.ApproxEqualThreshold(mgl32.Vec3{12, 20, 30}, eps) {
		t.Errorf("transformed point = %v, want (12, 20, 30)", p)
	}
}

func TestActor_WorldTransformScalesThenRotates(t *testing.T) {
	w := newTestWorld()
	a := w.NewActor(KindPlain)
	a.SetScale(3)
	a.SetRotation(geom.AxisAngle(geom.UnitZ, geom.PiOver2))
	a.SetPosition(mgl32.Vec3{1, 1, 1})
	a.ComputeWorldTransform()

	p := a.WorldTransform().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !p.ApproxEqualThreshold(mgl32.Vec3{1, 4, 1}, eps) {
		t.Errorf("transformed point = %v, want (1, 4, 1)", p)
	}
}

func TestRotateToNewForward(t *testing.T) {
	tests := []struct {
		name    string
		forward mgl32.Vec3
	}{
		{"already forward", geom.UnitX},
		{"backwards", geom.NegUnitX},
		{"right", geom.UnitY},
		{"up", geom.UnitZ},
		{"diagonal", mgl32.Vec3{1, 1, 1}.Normalize()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			a := w.NewActor(KindPlain)
			a.RotateToNewForward(tt.forward)
			if got := a.Forward(); !got.ApproxEqualThreshold(tt.forward, eps) {
				t.Errorf("Forward = %v, want %v", got, tt.forward)
			}
		})
	}
}

func TestRotationToForward_ParallelIsIdentity(t *testing.T) {
	q := RotationToForward(mgl32.Vec3{1, 0.00001, 0}.Normalize())
	if !q.ApproxEqualThreshold(mgl32.QuatIdent(), eps) {
		t.Errorf("rotation = %v, want identity", q)
	}
}

func TestWorld_SpawnDuringUpdateIsPending(t *testing.T) {
	w := newTestWorld()
	spawner := w.NewActor(KindPlain)
	var trace []string
	var spawned *Actor

	r := newRecorder(spawner, 100, "spawner", &trace)
	r.onUpd = func() {
		if spawned != nil {
			return
		}
		spawned = w.NewActor(KindBall)
		spawned.SetPosition(mgl32.Vec3{5, 0, 0})
		newRecorder(spawned, 100, "spawned", &trace)
	}

	w.UpdateActors(0.016)
	if len(trace) != 1 {
		t.Fatalf("spawned actor updated in its spawn frame: %v", trace)
	}
	if len(w.Pending()) != 1 || len(w.Actors()) != 1 {
		t.Fatalf("pending = %d, actors = %d, want 1 and 1", len(w.Pending()), len(w.Actors()))
	}

	if n := w.FlushPending(); n != 1 {
		t.Errorf("FlushPending = %d, want 1", n)
	}
	if spawned.TransformDirty() {
		t.Error("spliced actor has no world transform")
	}
	if len(w.Pending()) != 0 || len(w.Actors()) != 2 {
		t.Errorf("pending = %d, actors = %d, want 0 and 2", len(w.Pending()), len(w.Actors()))
	}

	trace = trace[:0]
	w.UpdateActors(0.016)
	if len(trace) != 2 || trace[1] != "spawned" {
		t.Errorf("second frame trace = %v", trace)
	}
}

func TestWorld_DestroyDuringUpdateIsDeferred(t *testing.T) {
	w := newTestWorld()
	victim := w.NewActor(KindPlain)
	NewBoxComponent(victim)
	after := w.NewActor(KindPlain)
	var trace []string
	r := newRecorder(victim, 100, "victim", &trace)
	r.onUpd = victim.Destroy
	newRecorder(after, 100, "after", &trace)

	w.UpdateActors(0.016)
	if victim.Destroyed() || victim.State() != Dead {
		t.Fatalf("victim destroyed=%v state=%v, want marked dead only", victim.Destroyed(), victim.State())
	}
	if len(trace) != 2 {
		t.Errorf("pass interrupted: %v", trace)
	}
	if w.Phys().Len() != 1 {
		t.Error("box removed before the pass ended")
	}

	if n := w.DestroyDead(); n != 1 {
		t.Fatalf("DestroyDead = %d, want 1", n)
	}
	if !victim.Destroyed() {
		t.Error("victim not destroyed")
	}
	if len(w.Actors()) != 1 || w.Actors()[0] != after {
		t.Errorf("actors = %v, want only the survivor", w.Actors())
	}
	if w.Phys().Len() != 0 {
		t.Errorf("phys boxes = %d, want 0", w.Phys().Len())
	}
	if _, ok := w.Actor(victim.ID()); ok {
		t.Error("destroyed actor still resolvable by ID")
	}
}

func TestActor_DestroyCascades(t *testing.T) {
	r := &fakeRenderer{}
	bus := event.NewBus()
	w := New(zap.NewNop(), r, bus)
	a := w.NewActor(KindTarget)
	NewBoxComponent(a)
	NewMeshComponent(a)
	NewSpriteComponent(a, DefaultDrawOrder)
	id := a.ID()

	var got []event.ActorDestroyed
	event.Subscribe(bus, func(e event.ActorDestroyed) { got = append(got, e) })

	a.Destroy()
	a.Destroy()

	if len(a.Components()) != 0 {
		t.Errorf("components left = %d", len(a.Components()))
	}
	if w.Phys().Len() != 0 || r.meshes != 0 || r.sprites != 0 {
		t.Errorf("boxes=%d meshes=%d sprites=%d, want all 0", w.Phys().Len(), r.meshes, r.sprites)
	}
	if w.Count() != 0 {
		t.Errorf("world count = %d, want 0", w.Count())
	}

	bus.SwapBuffers()
	bus.DispatchAll()
	if len(got) != 1 || got[0].Actor != id || got[0].Kind != "target" {
		t.Errorf("destroyed events = %+v", got)
	}
}

func TestWorld_Shutdown(t *testing.T) {
	w := newTestWorld()
	for i := 0; i < 5; i++ {
		NewBoxComponent(w.NewActor(KindPlane))
	}
	w.updating = true
	w.NewActor(KindBall)
	w.updating = false

	w.Shutdown()
	if w.Count() != 0 || w.Phys().Len() != 0 {
		t.Errorf("count=%d boxes=%d after shutdown", w.Count(), w.Phys().Len())
	}
}

func TestBoxComponent_WorldBox(t *testing.T) {
	w := newTestWorld()
	a := w.NewActor(KindPlane)
	b := NewBoxComponent(a)
	b.SetObjectBox(geom.NewAABB(mgl32.Vec3{-1, -2, -3}, mgl32.Vec3{1, 2, 3}))

	a.SetScale(2)
	a.SetRotation(geom.AxisAngle(geom.UnitZ, geom.PiOver2))
	a.SetPosition(mgl32.Vec3{10, 0, 0})
	a.ComputeWorldTransform()

	wb := b.WorldBox()
	if !wb.Min.ApproxEqualThreshold(mgl32.Vec3{6, -2, -6}, eps) || !wb.Max.ApproxEqualThreshold(mgl32.Vec3{14, 2, 6}, eps) {
		t.Errorf("rotated world box = %v..%v", wb.Min, wb.Max)
	}

	b.SetShouldRotate(false)
	b.OnUpdateWorldTransform()
	wb = b.WorldBox()
	if !wb.Min.ApproxEqualThreshold(mgl32.Vec3{8, -4, -6}, eps) || !wb.Max.ApproxEqualThreshold(mgl32.Vec3{12, 4, 6}, eps) {
		t.Errorf("unrotated world box = %v..%v", wb.Min, wb.Max)
	}
}

func boxActor(w *World, kind Kind, pos mgl32.Vec3, half float32) *Actor {
	a := w.NewActor(kind)
	b := NewBoxComponent(a)
	b.SetObjectBox(geom.NewAABB(mgl32.Vec3{-half, -half, -half}, mgl32.Vec3{half, half, half}))
	a.SetPosition(pos)
	a.ComputeWorldTransform()
	return a
}

func TestPhysWorld_SegmentCastClosest(t *testing.T) {
	w := newTestWorld()
	far := boxActor(w, KindPlane, mgl32.Vec3{50, 0, 0}, 1)
	near := boxActor(w, KindTarget, mgl32.Vec3{20, 0, 0}, 1)
	boxActor(w, KindPlane, mgl32.Vec3{20, 50, 0}, 1)

	info, ok := w.Phys().SegmentCast(geom.NewLineSegment(mgl32.Vec3{}, mgl32.Vec3{100, 0, 0}))
	if !ok {
		t.Fatal("no hit")
	}
	if info.Actor != near {
		t.Errorf("hit actor %v, want the near box", info.Actor.ID())
	}
	if !info.Point.ApproxEqualThreshold(mgl32.Vec3{19, 0, 0}, eps) {
		t.Errorf("point = %v, want (19, 0, 0)", info.Point)
	}
	if !info.Normal.ApproxEqualThreshold(geom.NegUnitX, eps) {
		t.Errorf("normal = %v, want -X", info.Normal)
	}

	near.Destroy()
	info, ok = w.Phys().SegmentCast(geom.NewLineSegment(mgl32.Vec3{}, mgl32.Vec3{100, 0, 0}))
	if !ok || info.Actor != far {
		t.Errorf("after removing near box: ok=%v", ok)
	}

	if _, ok := w.Phys().SegmentCast(geom.NewLineSegment(mgl32.Vec3{0, -10, 0}, mgl32.Vec3{0, -100, 0})); ok {
		t.Error("segment pointing away hit something")
	}
}

func TestPhysWorld_RemoveBoxIdempotent(t *testing.T) {
	w := newTestWorld()
	a := w.NewActor(KindPlane)
	b := NewBoxComponent(a)
	w.Phys().AddBox(b)
	if w.Phys().Len() != 1 {
		t.Fatalf("duplicate add: len = %d", w.Phys().Len())
	}
	w.Phys().RemoveBox(b)
	w.Phys().RemoveBox(b)
	if w.Phys().Len() != 0 {
		t.Errorf("len = %d, want 0", w.Phys().Len())
	}
}

func TestMoveComponent(t *testing.T) {
	w := newTestWorld()
	a := w.NewActor(KindPlain)
	m := NewMoveComponent(a)
	m.SetForwardSpeed(100)
	m.SetStrafeSpeed(-40)

	a.Update(0.5)
	if p := a.Position(); !p.ApproxEqualThreshold(mgl32.Vec3{50, -20, 0}, eps) {
		t.Errorf("position = %v, want (50, -20, 0)", p)
	}

	m.SetForwardSpeed(0)
	m.SetStrafeSpeed(0)
	m.SetAngularSpeed(geom.PiOver2)
	a.Update(1)
	if f := a.Forward(); !f.ApproxEqualThreshold(geom.UnitY, eps) {
		t.Errorf("forward after quarter turn = %v, want +Y", f)
	}
	if p := a.Position(); !p.ApproxEqualThreshold(mgl32.Vec3{50, -20, 0}, eps) {
		t.Errorf("turning moved the actor to %v", p)
	}
}

func TestBallMove_ReflectsAndReportsTargets(t *testing.T) {
	w := newTestWorld()
	boxActor(w, KindTarget, mgl32.Vec3{20, 0, 0}, 1)

	ball := w.NewActor(KindBall)
	bm := NewBallMove(ball)
	var hits []CollisionInfo
	bm.SetHitHandler(func(info CollisionInfo) { hits = append(hits, info) })

	ball.Update(0.016)
	if len(hits) != 1 || hits[0].Actor.Kind() != KindTarget {
		t.Fatalf("hits = %+v, want one target hit", hits)
	}
	if f := ball.Forward(); !f.ApproxEqualThreshold(geom.NegUnitX, eps) {
		t.Errorf("forward after bounce = %v, want -X", f)
	}
}

func TestBallMove_IgnoresPlayerAndPlanes(t *testing.T) {
	w := newTestWorld()
	player := boxActor(w, KindPlayer, mgl32.Vec3{}, 25)

	ball := w.NewActor(KindBall)
	bm := NewBallMove(ball)
	bm.SetPlayer(player)
	bm.SetForwardSpeed(1500)
	called := false
	bm.SetHitHandler(func(CollisionInfo) { called = true })

	ball.Update(0.01)
	if f := ball.Forward(); !f.ApproxEqualThreshold(geom.UnitX, eps) {
		t.Errorf("ball bounced off its shooter: forward = %v", f)
	}
	if p := ball.Position(); !p.ApproxEqualThreshold(mgl32.Vec3{15, 0, 0}, eps) {
		t.Errorf("position = %v, want (15, 0, 0)", p)
	}

	boxActor(w, KindPlane, mgl32.Vec3{50, 0, 0}, 10)
	ball.SetPosition(mgl32.Vec3{30, 0, 0})
	ball.Update(0.01)
	if called {
		t.Error("plane hit reported as a target hit")
	}
	if f := ball.Forward(); !f.ApproxEqualThreshold(geom.NegUnitX, eps) {
		t.Errorf("forward after wall bounce = %v, want -X", f)
	}
}

func TestFPSCamera_PitchClampsAndPushesView(t *testing.T) {
	r := &fakeRenderer{}
	w := New(zap.NewNop(), r, nil)
	a := w.NewActor(KindPlayer)
	cam := NewFPSCamera(a)

	cam.SetPitchSpeed(10)
	a.Update(1)
	if !mgl32.FloatEqualThreshold(cam.Pitch(), DefaultMaxPitch, eps) {
		t.Errorf("pitch = %v, want clamp %v", cam.Pitch(), DefaultMaxPitch)
	}
	cam.SetPitchSpeed(-100)
	a.Update(1)
	if !mgl32.FloatEqualThreshold(cam.Pitch(), -DefaultMaxPitch, eps) {
		t.Errorf("pitch = %v, want clamp %v", cam.Pitch(), -DefaultMaxPitch)
	}
	if r.views != 2 || r.view != cam.View() {
		t.Errorf("views pushed = %d", r.views)
	}
}

func TestFPSCamera_LevelViewLooksForward(t *testing.T) {
	w := newTestWorld()
	a := w.NewActor(KindPlayer)
	cam := NewFPSCamera(a)
	a.SetPosition(mgl32.Vec3{0, 0, 50})
	a.Update(0.016)

	// A point straight ahead lands on the view axis (-Z in eye space).
	eye := cam.View().Mul4x1(mgl32.Vec4{100, 0, 50, 1})
	if !mgl32.FloatEqualThreshold(eye[0], 0, eps) || !mgl32.FloatEqualThreshold(eye[1], 0, eps) || eye[2] >= 0 {
		t.Errorf("point ahead maps to %v in eye space", eye)
	}
}

func TestPhysWorld_SegmentCastExcept(t *testing.T) {
	w := newTestWorld()
	player := boxActor(w, KindPlayer, mgl32.Vec3{}, 25)
	target := boxActor(w, KindTarget, mgl32.Vec3{100, 0, 0}, 10)
	l := geom.NewLineSegment(mgl32.Vec3{}, mgl32.Vec3{500, 0, 0})

	if info, ok := w.Phys().SegmentCast(l); !ok || info.Actor != player {
		t.Fatalf("plain cast should stop at the enclosing box, ok=%v", ok)
	}
	info, ok := w.Phys().SegmentCastExcept(l, player)
	if !ok || info.Actor != target {
		t.Fatalf("cast skipping player: ok=%v", ok)
	}
	if !info.Point.ApproxEqualThreshold(mgl32.Vec3{90, 0, 0}, eps) {
		t.Errorf("point = %v, want (90, 0, 0)", info.Point)
	}
}
