package world

import "github.com/dobrilasunde/Shooting-Gallery/internal/input"

// Update orders for the built-in components. Lower runs first.
const (
	DefaultUpdateOrder = 100
	MoveUpdateOrder    = 10
	CameraUpdateOrder  = 200
)

// Component is a behavior unit owned by exactly one actor. Capabilities are
// opted into by also implementing Updater, InputHandler, TransformObserver
// or Detacher.
type Component interface {
	Owner() *Actor
	UpdateOrder() int
}

// Updater runs once per actor update, in update order.
type Updater interface {
	Update(dt float32)
}

// InputHandler receives the frame's input snapshot.
type InputHandler interface {
	ProcessInput(in input.Snapshot)
}

// TransformObserver is told whenever the owner's world transform is rebuilt.
type TransformObserver interface {
	OnUpdateWorldTransform()
}

// Detacher releases whatever the component registered outside its owner.
type Detacher interface {
	OnDetach()
}

// Base carries the owner reference and update order. Embed it to build a
// component.
type Base struct {
	owner       *Actor
	updateOrder int
}

func NewBase(owner *Actor, updateOrder int) Base {
	return Base{owner: owner, updateOrder: updateOrder}
}

func (b *Base) Owner() *Actor    { return b.owner }
func (b *Base) UpdateOrder() int { return b.updateOrder }
