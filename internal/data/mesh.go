package data

import (
	"fmt"
	"os"

	"github.com/dobrilasunde/Shooting-Gallery/internal/geom"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// MeshEntry describes one render mesh. Only the bounds matter to the
// simulation; the rest is carried for a render backend.
type MeshEntry struct {
	Name      string     `yaml:"name"` // asset key, e.g. "Assets/Plane.gpmesh"
	Min       mgl32.Vec3 `yaml:"min"`
	Max       mgl32.Vec3 `yaml:"max"`
	Radius    float32    `yaml:"radius"`
	SpecPower float32    `yaml:"spec_power"`
	Shader    string     `yaml:"shader"`
	Textures  []string   `yaml:"textures"`
}

// TextureEntry describes one texture by asset key.
type TextureEntry struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type meshCatalogFile struct {
	Meshes   []MeshEntry    `yaml:"meshes"`
	Textures []TextureEntry `yaml:"textures"`
}

// Mesh is a loaded mesh as the simulation sees it.
type Mesh struct {
	entry MeshEntry
	box   geom.AABB
}

func (m *Mesh) Name() string       { return m.entry.Name }
func (m *Mesh) Box() geom.AABB     { return m.box }
func (m *Mesh) Radius() float32    { return m.entry.Radius }
func (m *Mesh) SpecPower() float32 { return m.entry.SpecPower }
func (m *Mesh) ShaderName() string { return m.entry.Shader }

// Texture returns the texture key at index, if the mesh has one.
func (m *Mesh) Texture(index int) (string, bool) {
	if index < 0 || index >= len(m.entry.Textures) {
		return "", false
	}
	return m.entry.Textures[index], true
}

// Texture is a loaded texture as the simulation sees it.
type Texture struct {
	Name   string
	Width  int
	Height int
}

// MeshCatalog provides mesh and texture lookup by asset key.
type MeshCatalog struct {
	meshes   map[string]*Mesh
	textures map[string]*Texture
}

// LoadMeshCatalog loads meshes.yaml.
func LoadMeshCatalog(path string) (*MeshCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mesh catalog %s: %w", path, err)
	}
	return ParseMeshCatalog(raw)
}

// ParseMeshCatalog decodes a catalog document. Boxes with min > max on any
// axis are rejected.
func ParseMeshCatalog(raw []byte) (*MeshCatalog, error) {
	var file meshCatalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse mesh catalog: %w", err)
	}
	c := &MeshCatalog{
		meshes:   make(map[string]*Mesh, len(file.Meshes)),
		textures: make(map[string]*Texture, len(file.Textures)),
	}
	for _, e := range file.Meshes {
		if e.Name == "" {
			return nil, fmt.Errorf("mesh catalog: entry without name")
		}
		for i := 0; i < 3; i++ {
			if e.Min[i] > e.Max[i] {
				return nil, fmt.Errorf("mesh %s: min %v exceeds max %v", e.Name, e.Min, e.Max)
			}
		}
		if e.SpecPower == 0 {
			e.SpecPower = 100
		}
		c.meshes[e.Name] = &Mesh{entry: e, box: geom.NewAABB(e.Min, e.Max)}
	}
	for _, e := range file.Textures {
		if e.Name == "" {
			return nil, fmt.Errorf("mesh catalog: texture without name")
		}
		c.textures[e.Name] = &Texture{Name: e.Name, Width: e.Width, Height: e.Height}
	}
	return c, nil
}

// Mesh returns the mesh registered under name.
func (c *MeshCatalog) Mesh(name string) (*Mesh, bool) {
	m, ok := c.meshes[name]
	return m, ok
}

// Texture returns the texture registered under name.
func (c *MeshCatalog) Texture(name string) (*Texture, bool) {
	t, ok := c.textures[name]
	return t, ok
}

// Count returns the number of meshes loaded.
func (c *MeshCatalog) Count() int {
	return len(c.meshes)
}

// TextureCount returns the number of textures loaded.
func (c *MeshCatalog) TextureCount() int {
	return len(c.textures)
}
