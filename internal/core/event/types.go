package event

import (
	"github.com/dobrilasunde/Shooting-Gallery/internal/core/handle"
	"github.com/go-gl/mathgl/mgl32"
)

// ShotFired is emitted when the player fires. Aimed is set when the
// hit-scan segment along the shot ray crossed a box; AimedTarget then tells
// whether that box belonged to a target.
type ShotFired struct {
	Frame       uint64
	Shooter     handle.ID
	Ball        handle.ID
	Origin      mgl32.Vec3
	Direction   mgl32.Vec3
	Aimed       bool
	AimedActor  handle.ID
	AimedTarget bool
	AimedPoint  mgl32.Vec3
}

// TargetHit is emitted when a projectile's segment cast strikes a target.
type TargetHit struct {
	Frame  uint64
	Ball   handle.ID
	Target handle.ID
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// ActorDestroyed is emitted after an actor and its components are torn down.
type ActorDestroyed struct {
	Frame uint64
	Actor handle.ID
	Kind  string
}
