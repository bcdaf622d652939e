package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"render3d/internal/engine"
)

// VM wraps a single gopher-lua state shared by every Lua script of an
// engine. Each script runs in its own environment table that falls back to
// the globals. Single-goroutine access only (frame loop).
type VM struct {
	L   *lua.LState
	log *zap.Logger

	byPath   map[string][]*LuaScript
	registry *engine.ScriptRegistry
}

func NewVM(log *zap.Logger) *VM {
	if log == nil {
		log = zap.NewNop()
	}
	L := lua.NewState(lua.Options{SkipOpenLibs: false})
	v := &VM{L: L, log: log, byPath: make(map[string][]*LuaScript)}

	L.SetGlobal("API_VERSION", lua.LNumber(1))
	L.SetGlobal("log", L.NewFunction(v.luaLog))
	return v
}

func (v *VM) Close() {
	v.L.Close()
}

// DoString runs src in the global environment.
func (v *VM) DoString(src string) error {
	return v.L.DoString(src)
}

// LoadFile compiles the script at path into a new LuaScript component.
func (v *VM) LoadFile(path string) (*LuaScript, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	s, err := v.LoadSource(path, string(src))
	if err != nil {
		return nil, err
	}
	s.key = scriptKey(path)
	v.byPath[s.key] = append(v.byPath[s.key], s)
	return s, nil
}

// LoadSource compiles src as a script called name.
func (v *VM) LoadSource(name, src string) (*LuaScript, error) {
	s := &LuaScript{vm: v, Path: name, env: v.newEnv()}
	if err := v.run(s.env, name, src); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadDir loads every .lua file in dir, sorted by name. A missing dir yields
// no scripts.
func (v *VM) LoadDir(dir string) ([]*LuaScript, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []*LuaScript
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		s, err := v.LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Reload re-runs the file at path inside the environment of every script
// loaded from it. Hooks are replaced; other environment state survives.
func (v *VM) Reload(path string) error {
	scripts := v.byPath[scriptKey(path)]
	if len(scripts) == 0 {
		return nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reload %s: %w", path, err)
	}
	for _, s := range scripts {
		if err := v.run(s.env, path, string(src)); err != nil {
			return fmt.Errorf("reload %s: %w", path, err)
		}
	}
	v.log.Info("lua script reloaded", zap.String("file", path), zap.Int("instances", len(scripts)))
	return nil
}

// Drain reloads every path waiting on changes without blocking and returns
// how many were reloaded. Failed reloads are logged and skipped.
func (v *VM) Drain(changes <-chan string) int {
	n := 0
	for {
		select {
		case path, ok := <-changes:
			if !ok {
				return n
			}
			if err := v.Reload(path); err != nil {
				v.log.Error("lua reload failed", zap.Error(err))
				continue
			}
			n++
		default:
			return n
		}
	}
}

func (v *VM) forget(s *LuaScript) {
	if s.key == "" {
		return
	}
	list := v.byPath[s.key]
	for i, x := range list {
		if x == s {
			v.byPath[s.key] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(v.byPath[s.key]) == 0 {
		delete(v.byPath, s.key)
	}
}

// scriptKey names a file the same way however it was spelled, so paths from
// scene files and from the watcher meet.
func scriptKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (v *VM) newEnv() *lua.LTable {
	env := v.L.NewTable()
	mt := v.L.NewTable()
	mt.RawSetString("__index", v.L.G.Global)
	v.L.SetMetatable(env, mt)
	return env
}

func (v *VM) run(env *lua.LTable, name, src string) error {
	fn, err := v.L.Load(strings.NewReader(src), name)
	if err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}
	fn.Env = env
	v.L.Push(fn)
	if err := v.L.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

// call invokes env[hook] if it is a function. Errors are logged, never
// propagated, so one broken script cannot stop the frame.
func (v *VM) call(s *LuaScript, hook string, args ...lua.LValue) bool {
	fn := s.env.RawGetString(hook)
	if fn.Type() != lua.LTFunction {
		return false
	}
	if err := v.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...); err != nil {
		s.errors++
		v.log.Error("lua hook failed",
			zap.String("script", s.Path),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (v *VM) luaLog(L *lua.LState) int {
	v.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}
