package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dobrilasunde/Shooting-Gallery/internal/data"
	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for level building and scripted
// input. Single-goroutine access only (game loop).
type Engine struct {
	vm         *lua.LState
	log        *zap.Logger
	scriptsDir string

	// collected by the plane/target builtins while a level script runs
	level *Level
}

// Level is what a level script placed.
type Level struct {
	Planes  []data.Strip
	Targets []data.Placement
}

// NewEngine creates a Lua engine and loads the shared helpers under
// scriptsDir/lib.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log, scriptsDir: scriptsDir}
	vm.SetGlobal("plane", vm.NewFunction(e.luaPlane))
	vm.SetGlobal("target", vm.NewFunction(e.luaTarget))

	if err := e.loadDir(filepath.Join(scriptsDir, "lib")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load lib scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// RunLevel executes a level script (relative to the scripts dir) and
// returns the placements it made through plane() and target().
func (e *Engine) RunLevel(name string) (*Level, error) {
	path := filepath.Join(e.scriptsDir, name)
	e.level = &Level{}
	defer func() { e.level = nil }()

	if err := e.vm.DoFile(path); err != nil {
		return nil, fmt.Errorf("run level script %s: %w", path, err)
	}
	lv := e.level
	e.log.Debug("level script done",
		zap.String("file", path),
		zap.Int("planes", len(lv.Planes)),
		zap.Int("targets", len(lv.Targets)),
	)
	return lv, nil
}

// Load executes a script for its definitions, e.g. an autopilot function.
func (e *Engine) Load(name string) error {
	path := filepath.Join(e.scriptsDir, name)
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

// plane(x, y, z [, orient [, scale]])
func (e *Engine) luaPlane(L *lua.LState) int {
	pos := checkVec3(L, 1)
	orient := L.OptString(4, "")
	scale := float32(L.OptNumber(5, 0))
	if err := data.ValidOrient(orient); err != nil {
		L.ArgError(4, err.Error())
		return 0
	}
	if e.level == nil {
		L.RaiseError("plane() called outside a level script")
		return 0
	}
	e.level.Planes = append(e.level.Planes, data.Strip{
		Name:   "script",
		Origin: pos,
		Count:  1,
		Scale:  scale,
		Orient: orient,
	})
	return 0
}

// target(x, y, z [, orient])
func (e *Engine) luaTarget(L *lua.LState) int {
	pos := checkVec3(L, 1)
	orient := L.OptString(4, "")
	if err := data.ValidOrient(orient); err != nil {
		L.ArgError(4, err.Error())
		return 0
	}
	if e.level == nil {
		L.RaiseError("target() called outside a level script")
		return 0
	}
	e.level.Targets = append(e.level.Targets, data.Placement{Position: pos, Orient: orient})
	return 0
}

func checkVec3(L *lua.LState, first int) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(L.CheckNumber(first)),
		float32(L.CheckNumber(first + 1)),
		float32(L.CheckNumber(first + 2)),
	}
}

// --- Lua helpers ---

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// lBool reads a boolean field from a Lua table.
func lBool(t *lua.LTable, key string) bool {
	return lua.LVAsBool(t.RawGetString(key))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
