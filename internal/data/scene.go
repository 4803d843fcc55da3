package data

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Orientation presets understood by the scene builder.
const (
	OrientFloor  = "floor"  // identity: lies in the XY plane
	OrientWallX  = "wall_x" // stood up about +X, faces ±Y
	OrientWallY  = "wall_y" // wall_x turned a quarter about +Z, faces ±X
	OrientTarget = "target" // target default: half turn about +Z
	OrientFacing = "facing" // wall_x turned a full turn about +Z
)

// Strip places Count planes starting at Origin, Step apart. When Count2 is
// set every plane of the strip is repeated Count2 times, Step2 apart, which
// turns a row into a grid.
type Strip struct {
	Name   string     `yaml:"name"`
	Origin mgl32.Vec3 `yaml:"origin"`
	Step   mgl32.Vec3 `yaml:"step"`
	Count  int        `yaml:"count"`
	Step2  mgl32.Vec3 `yaml:"step2"`
	Count2 int        `yaml:"count2"`
	Scale  float32    `yaml:"scale"`
	Orient string     `yaml:"orient"`
}

// Positions expands the strip into plane positions, row-major.
func (s Strip) Positions() []mgl32.Vec3 {
	inner := s.Count2
	if inner < 1 {
		inner = 1
	}
	if s.Count < 1 {
		return nil
	}
	out := make([]mgl32.Vec3, 0, s.Count*inner)
	for i := 0; i < s.Count; i++ {
		row := s.Origin.Add(s.Step.Mul(float32(i)))
		for j := 0; j < inner; j++ {
			out = append(out, row.Add(s.Step2.Mul(float32(j))))
		}
	}
	return out
}

// Placement puts a single actor in the scene.
type Placement struct {
	Position mgl32.Vec3 `yaml:"position"`
	Scale    float32    `yaml:"scale"`
	Orient   string     `yaml:"orient"`
}

type DirectionalLight struct {
	Direction mgl32.Vec3 `yaml:"direction"`
	Diffuse   mgl32.Vec3 `yaml:"diffuse"`
	Specular  mgl32.Vec3 `yaml:"specular"`
}

type PointLight struct {
	Name     string     `yaml:"name"`
	Position mgl32.Vec3 `yaml:"position"`
	Diffuse  mgl32.Vec3 `yaml:"diffuse"`
	Specular mgl32.Vec3 `yaml:"specular"`
}

type Lights struct {
	Ambient     mgl32.Vec3       `yaml:"ambient"`
	Directional DirectionalLight `yaml:"directional"`
	Points      []PointLight     `yaml:"points"`
}

type PlayerStart struct {
	Position mgl32.Vec3 `yaml:"position"`
}

// Assets names the meshes and textures the scene builder attaches.
type Assets struct {
	Plane     string `yaml:"plane"`
	Target    string `yaml:"target"`
	Ball      string `yaml:"ball"`
	Weapon    string `yaml:"weapon"`
	Crosshair string `yaml:"crosshair"`
}

// Layout is a whole arena description.
type Layout struct {
	Name    string      `yaml:"name"`
	Assets  Assets      `yaml:"assets"`
	Player  PlayerStart `yaml:"player"`
	Planes  []Strip     `yaml:"planes"`
	Targets []Placement `yaml:"targets"`
	Lights  Lights      `yaml:"lights"`
	Scripts []string    `yaml:"scripts"` // level scripts, relative to the scripts dir
}

// PlaneCount is the number of planes the strips expand to.
func (l *Layout) PlaneCount() int {
	n := 0
	for _, s := range l.Planes {
		n += len(s.Positions())
	}
	return n
}

// LoadLayout loads a scene layout file.
func LoadLayout(path string) (*Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene layout %s: %w", path, err)
	}
	return ParseLayout(raw)
}

// ParseLayout decodes a layout document and fills asset defaults.
func ParseLayout(raw []byte) (*Layout, error) {
	l := &Layout{}
	if err := yaml.Unmarshal(raw, l); err != nil {
		return nil, fmt.Errorf("parse scene layout: %w", err)
	}
	l.Assets.fillDefaults()
	for i, s := range l.Planes {
		if err := ValidOrient(s.Orient); err != nil {
			return nil, fmt.Errorf("plane strip %d (%s): %w", i, s.Name, err)
		}
	}
	for i, p := range l.Targets {
		if err := ValidOrient(p.Orient); err != nil {
			return nil, fmt.Errorf("target %d: %w", i, err)
		}
	}
	return l, nil
}

func (a *Assets) fillDefaults() {
	if a.Plane == "" {
		a.Plane = "Assets/Plane.gpmesh"
	}
	if a.Target == "" {
		a.Target = "Assets/Target.gpmesh"
	}
	if a.Ball == "" {
		a.Ball = "Assets/Sphere.gpmesh"
	}
	if a.Weapon == "" {
		a.Weapon = "Assets/Rifle.gpmesh"
	}
	if a.Crosshair == "" {
		a.Crosshair = "Assets/Crosshair.png"
	}
}

// ValidOrient rejects orientation names the scene builder does not know.
func ValidOrient(o string) error {
	switch o {
	case "", OrientFloor, OrientWallX, OrientWallY, OrientTarget, OrientFacing:
		return nil
	}
	return fmt.Errorf("unknown orientation %q", o)
}
