package world

import (
	"github.com/dobrilasunde/Shooting-Gallery/internal/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraComponent pushes a view matrix to the renderer. It runs after
// movement so the view reflects this frame's transform.
type CameraComponent struct {
	Base
	renderer Renderer
}

func newCamera(owner *Actor) CameraComponent {
	return CameraComponent{
		Base:     NewBase(owner, CameraUpdateOrder),
		renderer: owner.World().Renderer(),
	}
}

func (c *CameraComponent) SetViewMatrix(view mgl32.Mat4) {
	c.renderer.SetViewMatrix(view)
}

// DefaultMaxPitch bounds how far an FPSCamera looks up or down.
const DefaultMaxPitch = geom.Pi / 3

// FPSCamera looks along the owner's forward, pitched about the owner's
// right axis.
type FPSCamera struct {
	CameraComponent
	pitch      float32
	pitchSpeed float32
	maxPitch   float32
	view       mgl32.Mat4
}

func NewFPSCamera(owner *Actor) *FPSCamera {
	c := &FPSCamera{
		CameraComponent: newCamera(owner),
		maxPitch:        DefaultMaxPitch,
		view:            mgl32.Ident4(),
	}
	owner.AddComponent(c)
	return c
}

func (c *FPSCamera) Pitch() float32      { return c.pitch }
func (c *FPSCamera) PitchSpeed() float32 { return c.pitchSpeed }
func (c *FPSCamera) MaxPitch() float32   { return c.maxPitch }

func (c *FPSCamera) SetPitchSpeed(s float32) { c.pitchSpeed = s }
func (c *FPSCamera) SetMaxPitch(p float32)   { c.maxPitch = p }

// View is the last view matrix sent to the renderer.
func (c *FPSCamera) View() mgl32.Mat4 { return c.view }

// PitchRotation is the camera's rotation relative to the owner.
func (c *FPSCamera) PitchRotation() mgl32.Quat {
	return geom.AxisAngle(c.Owner().Right(), c.pitch)
}

func (c *FPSCamera) Update(dt float32) {
	owner := c.Owner()
	eye := owner.Position()

	c.pitch = mgl32.Clamp(c.pitch+c.pitchSpeed*dt, -c.maxPitch, c.maxPitch)
	q := c.PitchRotation()

	forward := q.Rotate(owner.Forward())
	target := eye.Add(forward.Mul(100))
	up := q.Rotate(geom.UnitZ)

	c.view = mgl32.LookAtV(eye, target, up)
	c.SetViewMatrix(c.view)
}
