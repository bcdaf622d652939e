package scripting

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"render3d/internal/engine"
)

// LuaScript is a component driven by Lua hooks: on_start, on_update(dt),
// on_late_update and on_destroy. Each hook sees an `entity` table bound to
// the owning entity.
type LuaScript struct {
	engine.BaseComponent
	Path string

	vm     *VM
	key    string
	env    *lua.LTable
	bound  *engine.Entity
	errors int
}

// Errors counts failed hook calls.
func (s *LuaScript) Errors() int { return s.errors }

// Get reads a variable from the script's environment.
func (s *LuaScript) Get(name string) lua.LValue {
	return s.env.RawGetString(name)
}

func (s *LuaScript) bind() {
	g := s.GetEntity()
	if g == nil || g == s.bound {
		return
	}
	s.bound = g
	s.env.RawSetString("entity", s.vm.entityTable(g))
}

func (s *LuaScript) OnStart() {
	s.bind()
	s.vm.call(s, "on_start")
}

func (s *LuaScript) OnUpdate(deltaTime float32) {
	s.bind()
	s.vm.call(s, "on_update", lua.LNumber(deltaTime))
}

func (s *LuaScript) OnLateUpdate() {
	s.vm.call(s, "on_late_update")
}

func (s *LuaScript) OnDestroy() {
	s.vm.call(s, "on_destroy")
	s.vm.forget(s)
}

func (v *VM) entityTable(e *engine.Entity) *lua.LTable {
	L := v.L
	t := L.NewTable()
	t.RawSetString("name", lua.LString(e.Name))
	t.RawSetString("uid", lua.LNumber(e.UID))

	t.RawSetString("get_position", L.NewFunction(func(L *lua.LState) int {
		p := e.Transform.Position
		L.Push(lua.LNumber(p.X))
		L.Push(lua.LNumber(p.Y))
		L.Push(lua.LNumber(p.Z))
		return 3
	}))
	t.RawSetString("set_position", L.NewFunction(func(L *lua.LState) int {
		e.Transform.Position = rl.Vector3{
			X: float32(L.CheckNumber(1)),
			Y: float32(L.CheckNumber(2)),
			Z: float32(L.CheckNumber(3)),
		}
		return 0
	}))
	t.RawSetString("rotate", L.NewFunction(func(L *lua.LState) int {
		r := &e.Transform.Rotation
		r.X += float32(L.OptNumber(1, 0))
		r.Y += float32(L.OptNumber(2, 0))
		r.Z += float32(L.OptNumber(3, 0))
		return 0
	}))
	t.RawSetString("set_active", L.NewFunction(func(L *lua.LState) int {
		e.SetActive(L.ToBool(1))
		return 0
	}))
	t.RawSetString("has_tag", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(e.HasTag(L.CheckString(1))))
		return 1
	}))
	// set_prop(name, value) edits a property on every Go script of the
	// entity that knows it and reports whether any did.
	t.RawSetString("set_prop", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		value := fromLua(L.CheckAny(2))
		applied := false
		if v.registry != nil {
			for _, c := range e.Components() {
				if v.registry.ApplyProperty(c, name, value) {
					applied = true
				}
			}
		}
		L.Push(lua.LBool(applied))
		return 1
	}))
	return t
}

func fromLua(lv lua.LValue) any {
	switch x := lv.(type) {
	case lua.LNumber:
		return float64(x)
	case lua.LString:
		return string(x)
	case lua.LBool:
		return bool(x)
	}
	return nil
}

// Register makes Lua scripts available to scene files as
// {"script": "LuaScript", "props": {"path": "..."}}.
func (v *VM) Register(reg *engine.ScriptRegistry) {
	v.registry = reg
	reg.Register("LuaScript", v.factory, serialize)
}

func (v *VM) factory(props map[string]any) engine.Component {
	path, _ := props["path"].(string)
	if path == "" {
		v.log.Error("lua script without path")
		return nil
	}
	s, err := v.LoadFile(path)
	if err != nil {
		v.log.Error("lua script load failed", zap.String("file", path), zap.Error(err))
		return nil
	}
	return s
}

func serialize(c engine.Component) map[string]any {
	s, ok := c.(*LuaScript)
	if !ok {
		return nil
	}
	return map[string]any{"path": s.Path}
}
