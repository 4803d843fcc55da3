// Package render is a headless stand-in for the GL backend. It keeps the
// camera matrices, the mesh and sprite draw lists and the scene lights, and
// answers unprojection queries, so the simulation runs without a window.
package render

import (
	"fmt"
	"slices"

	"github.com/dobrilasunde/Shooting-Gallery/internal/data"
	"github.com/dobrilasunde/Shooting-Gallery/internal/geom"
	"github.com/dobrilasunde/Shooting-Gallery/internal/world"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	fieldOfView = 70 // degrees, vertical
	nearPlane   = 10
	farPlane    = 10000
)

// Stats describes one Draw call.
type Stats struct {
	Frame   uint64
	Meshes  int // visible meshes with geometry
	Sprites int // visible sprites with a texture
	Culled  int // registered but skipped
}

type Renderer struct {
	log     *zap.Logger
	catalog *data.MeshCatalog

	width  float32
	height float32

	view       mgl32.Mat4
	projection mgl32.Mat4
	unproject  mgl32.Mat4

	meshes  []*world.MeshComponent
	sprites []*world.SpriteComponent
	lights  data.Lights

	frame uint64
}

// New creates a renderer that resolves assets through catalog. Call
// Initialize before use.
func New(log *zap.Logger, catalog *data.MeshCatalog) *Renderer {
	return &Renderer{
		log:     log,
		catalog: catalog,
	}
}

// Initialize sets the screen size and resets the camera to look down +X.
func (r *Renderer) Initialize(width, height float32) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: invalid screen size %vx%v", width, height)
	}
	r.width = width
	r.height = height
	r.projection = mgl32.Perspective(mgl32.DegToRad(fieldOfView), width/height, nearPlane, farPlane)
	r.SetViewMatrix(mgl32.LookAtV(mgl32.Vec3{}, geom.UnitX, geom.UnitZ))
	r.log.Info("renderer ready",
		zap.Float32("width", width),
		zap.Float32("height", height),
	)
	return nil
}

// Shutdown drops every registered draw item.
func (r *Renderer) Shutdown() {
	clear(r.meshes)
	r.meshes = r.meshes[:0]
	clear(r.sprites)
	r.sprites = r.sprites[:0]
}

func (r *Renderer) Mesh(name string) (*data.Mesh, bool) {
	if r.catalog == nil {
		return nil, false
	}
	return r.catalog.Mesh(name)
}

func (r *Renderer) Texture(name string) (*data.Texture, bool) {
	if r.catalog == nil {
		return nil, false
	}
	return r.catalog.Texture(name)
}

func (r *Renderer) AddMesh(m *world.MeshComponent) {
	r.meshes = append(r.meshes, m)
}

func (r *Renderer) RemoveMesh(m *world.MeshComponent) {
	if i := slices.Index(r.meshes, m); i >= 0 {
		r.meshes = slices.Delete(r.meshes, i, i+1)
	}
}

// AddSprite keeps sprites sorted by draw order; equal orders draw in the
// order they were added.
func (r *Renderer) AddSprite(s *world.SpriteComponent) {
	i := 0
	for ; i < len(r.sprites); i++ {
		if s.DrawOrder() < r.sprites[i].DrawOrder() {
			break
		}
	}
	r.sprites = slices.Insert(r.sprites, i, s)
}

func (r *Renderer) RemoveSprite(s *world.SpriteComponent) {
	if i := slices.Index(r.sprites, s); i >= 0 {
		r.sprites = slices.Delete(r.sprites, i, i+1)
	}
}

func (r *Renderer) SetViewMatrix(view mgl32.Mat4) {
	r.view = view
	r.unproject = r.projection.Mul4(view).Inv()
}

func (r *Renderer) View() mgl32.Mat4       { return r.view }
func (r *Renderer) Projection() mgl32.Mat4 { return r.projection }

func (r *Renderer) SetLights(l data.Lights) {
	r.lights = l
	r.log.Debug("lights set", zap.Int("point_lights", len(l.Points)))
}

func (r *Renderer) Lights() data.Lights { return r.lights }

// Unproject maps a screen point back into world space. x and y are pixels
// from the screen center; z runs from 0 at the near plane toward 1 at the
// far plane.
func (r *Renderer) Unproject(screen mgl32.Vec3) mgl32.Vec3 {
	ndc := mgl32.Vec4{
		screen[0] / (r.width * 0.5),
		screen[1] / (r.height * 0.5),
		screen[2]*2 - 1,
		1,
	}
	p := r.unproject.Mul4x1(ndc)
	if geom.NearZero(p[3]) {
		return p.Vec3()
	}
	return p.Vec3().Mul(1 / p[3])
}

// Draw walks the draw lists the way a real backend would submit them and
// returns what would have been drawn.
func (r *Renderer) Draw() Stats {
	r.frame++
	st := Stats{Frame: r.frame}
	for _, m := range r.meshes {
		if !m.Visible() || m.Mesh() == nil {
			st.Culled++
			continue
		}
		st.Meshes++
	}
	for _, s := range r.sprites {
		if !s.Visible() || s.Texture() == nil {
			st.Culled++
			continue
		}
		st.Sprites++
	}
	return st
}

func (r *Renderer) MeshCount() int   { return len(r.meshes) }
func (r *Renderer) SpriteCount() int { return len(r.sprites) }

// Sprites returns the sprite draw list. The slice must not be modified.
func (r *Renderer) Sprites() []*world.SpriteComponent { return r.sprites }
