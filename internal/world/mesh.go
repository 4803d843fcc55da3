package world

import "github.com/dobrilasunde/Shooting-Gallery/internal/data"

// MeshComponent draws a mesh with the owner's world transform. It is
// registered with the renderer for as long as it is attached.
type MeshComponent struct {
	Base
	mesh         *data.Mesh
	textureIndex int
	visible      bool
	renderer     Renderer
}

func NewMeshComponent(owner *Actor) *MeshComponent {
	m := &MeshComponent{
		Base:     NewBase(owner, DefaultUpdateOrder),
		visible:  true,
		renderer: owner.World().Renderer(),
	}
	owner.AddComponent(m)
	m.renderer.AddMesh(m)
	return m
}

// Mesh may be nil when the asset was missing; a nil mesh draws nothing.
func (m *MeshComponent) Mesh() *data.Mesh        { return m.mesh }
func (m *MeshComponent) SetMesh(mesh *data.Mesh) { m.mesh = mesh }

func (m *MeshComponent) TextureIndex() int     { return m.textureIndex }
func (m *MeshComponent) SetTextureIndex(i int) { m.textureIndex = i }

func (m *MeshComponent) Visible() bool     { return m.visible }
func (m *MeshComponent) SetVisible(v bool) { m.visible = v }

// Texture is the texture key the mesh would be drawn with.
func (m *MeshComponent) Texture() (string, bool) {
	if m.mesh == nil {
		return "", false
	}
	return m.mesh.Texture(m.textureIndex)
}

func (m *MeshComponent) OnDetach() {
	m.renderer.RemoveMesh(m)
}

// DefaultDrawOrder is the sprite draw order when none is given.
const DefaultDrawOrder = 100

// SpriteComponent draws a 2D texture in screen space, lower draw orders
// first.
type SpriteComponent struct {
	Base
	texture   *data.Texture
	drawOrder int
	visible   bool
	renderer  Renderer
}

func NewSpriteComponent(owner *Actor, drawOrder int) *SpriteComponent {
	s := &SpriteComponent{
		Base:      NewBase(owner, DefaultUpdateOrder),
		drawOrder: drawOrder,
		visible:   true,
		renderer:  owner.World().Renderer(),
	}
	owner.AddComponent(s)
	s.renderer.AddSprite(s)
	return s
}

func (s *SpriteComponent) Texture() *data.Texture       { return s.texture }
func (s *SpriteComponent) SetTexture(tex *data.Texture) { s.texture = tex }
func (s *SpriteComponent) DrawOrder() int               { return s.drawOrder }
func (s *SpriteComponent) Visible() bool                { return s.visible }
func (s *SpriteComponent) SetVisible(v bool)            { s.visible = v }

func (s *SpriteComponent) OnDetach() {
	s.renderer.RemoveSprite(s)
}
