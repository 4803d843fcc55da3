package gameplay

import (
	"github.com/dobrilasunde/Shooting-Gallery/internal/config"
	"github.com/dobrilasunde/Shooting-Gallery/internal/data"
	"github.com/dobrilasunde/Shooting-Gallery/internal/geom"
	"github.com/dobrilasunde/Shooting-Gallery/internal/world"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Orientation presets. Walls are floor tiles stood up a quarter turn about
// +X; the second wall pair is additionally turned about +Z.
var (
	orientWallX  = geom.AxisAngle(geom.UnitX, geom.PiOver2)
	orientWallY  = geom.Concatenate(orientWallX, geom.AxisAngle(geom.UnitZ, geom.PiOver2))
	orientFacing = geom.Concatenate(orientWallX, geom.AxisAngle(geom.UnitZ, geom.TwoPi))
)

// Orientation maps a layout orientation name to a rotation. Unknown and
// empty names map to identity.
func Orientation(name string) mgl32.Quat {
	switch name {
	case data.OrientWallX:
		return orientWallX
	case data.OrientWallY:
		return orientWallY
	case data.OrientFacing:
		return orientFacing
	case data.OrientTarget:
		return TargetRotation
	}
	return mgl32.QuatIdent()
}

const crosshairScale = 2

// LightSink receives the layout's lights. Renderers that shade implement it.
type LightSink interface {
	SetLights(l data.Lights)
}

// Settings tunes the actors the scene spawns.
type Settings struct {
	Player config.PlayerConfig
	Ball   config.BallConfig
}

// Scene is what Build spawned.
type Scene struct {
	Player    *Player
	Planes    []*Plane
	Targets   []*Target
	Crosshair *world.SpriteComponent
}

// Build spawns the layout into w: planes, lights, the crosshair, the player
// and the targets, in that order.
func Build(w *world.World, cat Catalog, layout *data.Layout, s Settings) *Scene {
	sc := &Scene{Planes: make([]*Plane, 0, layout.PlaneCount())}

	for _, strip := range layout.Planes {
		scale := strip.Scale
		if scale == 0 {
			scale = PlaneScale
		}
		rot := Orientation(strip.Orient)
		for _, pos := range strip.Positions() {
			p := NewPlane(w, cat, layout.Assets.Plane)
			p.Actor().SetScale(scale)
			p.Actor().SetPosition(pos)
			p.Actor().SetRotation(rot)
			sc.Planes = append(sc.Planes, p)
		}
	}

	if sink, ok := w.Renderer().(LightSink); ok {
		sink.SetLights(layout.Lights)
	}

	ch := w.NewActor(world.KindPlain)
	ch.SetScale(crosshairScale)
	sc.Crosshair = world.NewSpriteComponent(ch, world.DefaultDrawOrder)
	sc.Crosshair.SetTexture(texture(w, cat, layout.Assets.Crosshair))

	sc.Player = NewPlayer(w, cat, layout.Assets, s.Player, s.Ball)
	sc.Player.Actor().SetPosition(layout.Player.Position)

	for _, pl := range layout.Targets {
		t := NewTarget(w, cat, layout.Assets.Target)
		if pl.Orient != "" {
			t.Actor().SetRotation(Orientation(pl.Orient))
		}
		if pl.Scale != 0 {
			t.Actor().SetScale(pl.Scale)
		}
		t.Actor().SetPosition(pl.Position)
		sc.Targets = append(sc.Targets, t)
	}

	w.Log().Info("scene built",
		zap.String("layout", layout.Name),
		zap.Int("planes", len(sc.Planes)),
		zap.Int("targets", len(sc.Targets)),
		zap.Int("actors", w.Count()),
	)
	return sc
}
