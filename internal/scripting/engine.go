package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for tunable game formulas.
// Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Core helpers first, then formula scripts that may use them.
	for _, sub := range []string{"core", "combat"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
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

// InteractionContext holds pre-packed data for one interaction tick.
type InteractionContext struct {
	Role        string  // combat, miner, gatherer
	Order       string  // Attack, LazyAttack, Mine, Collect
	BaseRate    float64 // template rate per second
	TargetKind  string
	TargetHP    float64
	TargetMaxHP float64
	Cargo       float64
	Capacity    float64
}

// CalcInteraction calls the Lua calc_interaction function and returns the
// effect per second. Without the function, or on any script error, the base
// rate is used. Negative results clamp to 0.
func (e *Engine) CalcInteraction(ctx InteractionContext) float64 {
	fn := e.vm.GetGlobal("calc_interaction")
	if fn == lua.LNil {
		return ctx.BaseRate
	}

	t := e.vm.NewTable()
	t.RawSetString("role", lua.LString(ctx.Role))
	t.RawSetString("order", lua.LString(ctx.Order))
	t.RawSetString("base_rate", lua.LNumber(ctx.BaseRate))
	t.RawSetString("cargo", lua.LNumber(ctx.Cargo))
	t.RawSetString("capacity", lua.LNumber(ctx.Capacity))

	tgt := e.vm.NewTable()
	tgt.RawSetString("kind", lua.LString(ctx.TargetKind))
	tgt.RawSetString("hp", lua.LNumber(ctx.TargetHP))
	tgt.RawSetString("max_hp", lua.LNumber(ctx.TargetMaxHP))
	t.RawSetString("target", tgt)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_interaction error", zap.Error(err))
		return ctx.BaseRate
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_interaction returned non-number", zap.String("type", result.Type().String()))
		return ctx.BaseRate
	}
	if n < 0 {
		return 0
	}
	return float64(n)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
