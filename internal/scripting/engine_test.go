package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dobrilasunde/Shooting-Gallery/internal/data"
	"github.com/dobrilasunde/Shooting-Gallery/internal/input"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

func writeScript(t *testing.T, dir, name, src string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestNewEngine_MissingLibDirIsFine(t *testing.T) {
	newEngine(t, t.TempDir())
}

func TestNewEngine_BadLibScript(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "lib/broken.lua", "this is not lua")
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatal("broken lib script accepted")
	}
}

func TestRunLevel_CollectsPlacements(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "lib/shapes.lua", `
function pillar(x, y, levels)
  for i = 0, levels - 1 do
    plane(x, y, i * 50, "wall_y", 2)
  end
end
`)
	writeScript(t, dir, "level/test.lua", `
pillar(500, 500, 3)
plane(0, 0, -100)
target(1450, 0, 200)
target(-100, -450, 200, "wall_y")
`)
	e := newEngine(t, dir)

	lv, err := e.RunLevel("level/test.lua")
	if err != nil {
		t.Fatal(err)
	}
	if len(lv.Planes) != 4 {
		t.Fatalf("planes = %d, want 4", len(lv.Planes))
	}
	top := lv.Planes[2]
	if top.Origin != (mgl32.Vec3{500, 500, 100}) || top.Scale != 2 || top.Orient != data.OrientWallY || top.Count != 1 {
		t.Errorf("pillar top = %+v", top)
	}
	if floor := lv.Planes[3]; floor.Scale != 0 || floor.Orient != "" {
		t.Errorf("floor plane = %+v", floor)
	}
	if len(lv.Targets) != 2 || lv.Targets[1].Orient != data.OrientWallY {
		t.Errorf("targets = %+v", lv.Targets)
	}
}

func TestRunLevel_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad orientation", `plane(0, 0, 0, "sideways")`},
		{"missing coordinate", `target(1, 2)`},
		{"runtime error", `error("boom")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeScript(t, dir, "level.lua", tt.src)
			e := newEngine(t, dir)
			if _, err := e.RunLevel("level.lua"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunLevel_MissingFile(t *testing.T) {
	e := newEngine(t, t.TempDir())
	if _, err := e.RunLevel("level/nope.lua"); err == nil {
		t.Error("missing level script accepted")
	}
}

func TestPlaneOutsideLevelScript(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "input.lua", `plane(0, 0, 0)`)
	e := newEngine(t, dir)
	if err := e.Load("input.lua"); err == nil {
		t.Error("plane() outside a level script accepted")
	}
}

func TestAutopilot(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "input/autopilot.lua", `
function autopilot(frame)
  if frame == 0 then
    return { keys = { "w", "space", "f13" }, mouse_x = 12, mouse_y = -3 }
  end
  if frame == 1 then
    return { fire = true }
  end
  if frame == 2 then
    return "not a table"
  end
  if frame == 3 then
    error("boom")
  end
  return { quit = true }
end
`)
	e := newEngine(t, dir)
	if err := e.Load("input/autopilot.lua"); err != nil {
		t.Fatal(err)
	}
	src := NewScriptedInput(e)

	s := src.Poll()
	if !s.Pressed(input.KeyW) || !s.Pressed(input.KeySpace) || s.Pressed(input.KeyA) {
		t.Errorf("frame 0 keys wrong: %+v", s)
	}
	if s.MouseDX != 12 || s.MouseDY != -3 || s.Fire {
		t.Errorf("frame 0 = %+v", s)
	}
	if s := src.Poll(); !s.Fire || s.Quit {
		t.Errorf("frame 1 = %+v", s)
	}
	if s := src.Poll(); s != (input.Snapshot{}) {
		t.Errorf("non-table result = %+v, want idle", s)
	}
	if s := src.Poll(); s != (input.Snapshot{}) {
		t.Errorf("script error = %+v, want idle", s)
	}
	if s := src.Poll(); !s.Quit {
		t.Error("frame 4 did not quit")
	}
}

func TestAutopilot_Undefined(t *testing.T) {
	e := newEngine(t, t.TempDir())
	if s := e.Autopilot(0); s != (input.Snapshot{}) {
		t.Errorf("undefined autopilot = %+v, want idle", s)
	}
}
