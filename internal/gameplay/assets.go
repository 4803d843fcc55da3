// Package gameplay holds the shooting gallery's actor kinds and the scene
// builder that places them.
package gameplay

import (
	"github.com/dobrilasunde/Shooting-Gallery/internal/data"
	"github.com/dobrilasunde/Shooting-Gallery/internal/world"
	"go.uber.org/zap"
)

// Catalog resolves asset keys. *data.MeshCatalog implements it.
type Catalog interface {
	Mesh(name string) (*data.Mesh, bool)
	Texture(name string) (*data.Texture, bool)
}

// mesh looks name up, logging a warning when it is missing. A nil catalog
// resolves nothing.
func mesh(w *world.World, cat Catalog, name string) *data.Mesh {
	if cat != nil {
		if m, ok := cat.Mesh(name); ok {
			return m
		}
	}
	w.Log().Warn("mesh not found", zap.String("mesh", name))
	return nil
}

func texture(w *world.World, cat Catalog, name string) *data.Texture {
	if cat != nil {
		if t, ok := cat.Texture(name); ok {
			return t
		}
	}
	w.Log().Warn("texture not found", zap.String("texture", name))
	return nil
}

// attachMesh gives a a mesh component showing the named mesh. The mesh is
// nil when the catalog lacks it.
func attachMesh(a *world.Actor, cat Catalog, name string) *world.MeshComponent {
	mc := world.NewMeshComponent(a)
	mc.SetMesh(mesh(a.World(), cat, name))
	return mc
}
