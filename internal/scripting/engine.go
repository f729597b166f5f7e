// Package scripting wraps a single gopher-lua VM for dialogue content.
// Scripts register per-script handlers with register_dialogue(name, fn),
// where fn(npc, visit) returns the line an NPC speaks on the visit-th
// approach. A plain global dialogue(npc, visit) function acts as the
// fallback for NPCs whose definition names no script.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps the Lua state. Single-goroutine access only (game loop).
type Engine struct {
	vm       *lua.LState
	log      *zap.Logger
	handlers map[string]*lua.LFunction
}

// NewEngine creates a Lua engine and loads every *.lua file in the given
// directory. A missing directory is not an error; the interaction system
// falls back to static lines.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log, handlers: make(map[string]*lua.LFunction, 8)}
	vm.SetGlobal("register_dialogue", vm.NewFunction(e.luaRegisterDialogue))

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load dialogue scripts: %w", err)
	}
	return e, nil
}

// luaRegisterDialogue backs the register_dialogue(name, fn) global. Handlers
// live in a Go-side map keyed by script name, so scripts loaded from the
// same directory never overwrite each other.
func (e *Engine) luaRegisterDialogue(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if _, exists := e.handlers[name]; exists {
		e.log.Warn("dialogue handler re-registered", zap.String("script", name))
	}
	e.handlers[name] = fn
	return 0
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
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

// DoString executes raw Lua source. Used by tests and the console.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// DialogueLine resolves the line an NPC speaks: the handler registered under
// the given script name when there is one, otherwise the global
// dialogue(npc, visit) fallback. The boolean is false when neither provides
// a line, in which case the caller should use the NPC's static lines.
func (e *Engine) DialogueLine(script, npc string, visit int) (string, bool) {
	var fn lua.LValue
	if script != "" {
		if h, ok := e.handlers[script]; ok {
			fn = h
		}
	}
	if fn == nil {
		if g := e.vm.GetGlobal("dialogue"); g != lua.LNil {
			fn = g
		}
	}
	if fn == nil {
		return "", false
	}
	err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(npc), lua.LNumber(visit))
	if err != nil {
		e.log.Error("lua dialogue call failed",
			zap.String("script", script),
			zap.String("npc", npc),
			zap.Error(err))
		return "", false
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	if s, ok := ret.(lua.LString); ok && s != "" {
		return string(s), true
	}
	return "", false
}

// Close shuts the Lua state down.
func (e *Engine) Close() {
	e.vm.Close()
}
