package scripting

import (
	"github.com/dobrilasunde/Shooting-Gallery/internal/input"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Autopilot calls Lua autopilot(frame) and converts the returned table
// into an input snapshot. The table may carry
//
//	keys    = { "w", "space", ... }
//	mouse_x = <int>, mouse_y = <int>
//	fire    = <bool>, quit = <bool>
//
// A missing function or a script error yields an idle snapshot.
func (e *Engine) Autopilot(frame uint64) input.Snapshot {
	var s input.Snapshot
	fn := e.vm.GetGlobal("autopilot")
	if fn == lua.LNil {
		return s
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(frame)); err != nil {
		e.log.Error("lua autopilot error", zap.Error(err), zap.Uint64("frame", frame))
		return s
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return s
	}

	if keys, ok := rt.RawGetString("keys").(*lua.LTable); ok {
		keys.ForEach(func(_, v lua.LValue) {
			name := lua.LVAsString(v)
			k, ok := input.ParseKey(name)
			if !ok {
				e.log.Warn("autopilot pressed unknown key", zap.String("key", name))
				return
			}
			s.Press(k)
		})
	}
	s.MouseDX = lInt(rt, "mouse_x")
	s.MouseDY = lInt(rt, "mouse_y")
	s.Fire = lBool(rt, "fire")
	s.Quit = lBool(rt, "quit")
	return s
}

// ScriptedInput is an input.Source driven by the autopilot function.
type ScriptedInput struct {
	engine *Engine
	frame  uint64
}

func NewScriptedInput(e *Engine) *ScriptedInput {
	return &ScriptedInput{engine: e}
}

func (s *ScriptedInput) Poll() input.Snapshot {
	snap := s.engine.Autopilot(s.frame)
	s.frame++
	return snap
}
