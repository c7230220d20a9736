package ai

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/sneak/component"
	"github.com/milk9111/sneak/logger"
)

// Hook phases passed to a guard script.
const (
	PhaseEnter   = "enter"
	PhaseExit    = "exit"
	PhaseCapture = "capture"
)

const hookDispatchScript = `
if __phase == "enter" {
	on_enter(__engine, __state, __current_state)
} else if __phase == "exit" {
	on_exit(__engine, __state, __current_state)
} else if __phase == "capture" {
	on_capture(__engine, __state, __current_state)
}
`

// ScriptHooks runs a guard's tengo lifecycle script. The script must define
// on_enter, on_exit and on_capture, each taking (engine, state, current).
// state is a map that persists between calls.
type ScriptHooks struct {
	path      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
}

func CompileHooks(path string, src []byte) (*ScriptHooks, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + hookDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__current_state", "")
	script.SetImports(stdlib.GetModuleMap("fmt", "math", "text"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile hooks %s: %w", path, err)
	}
	return &ScriptHooks{
		path:      path,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Clone returns an independent copy with its own state map.
func (h *ScriptHooks) Clone() *ScriptHooks {
	if h == nil {
		return nil
	}
	return &ScriptHooks{
		path:      h.path,
		compiled:  h.compiled.Clone(),
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}
}

// Run invokes the script function for phase.
func (h *ScriptHooks) Run(phase string, a *Agent, state component.AIState) error {
	if h == nil || h.compiled == nil {
		return nil
	}
	if err := h.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := h.compiled.Set("__engine", buildHookEngine(a)); err != nil {
		return err
	}
	if err := h.compiled.Set("__state", h.stateData); err != nil {
		return err
	}
	if err := h.compiled.Set("__current_state", state.String()); err != nil {
		return err
	}
	return h.compiled.Run()
}

// Value reads a key the script stored in its state map.
func (h *ScriptHooks) Value(key string) any {
	if h == nil || h.stateData == nil {
		return nil
	}
	obj, ok := h.stateData.Value[key]
	if !ok {
		return nil
	}
	return tengo.ToInterface(obj)
}

func buildHookEngine(a *Agent) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if a == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		logger.For("ai_script").WithField("guard", a.Name).Info(strings.Join(parts, " "))
		return tengo.TrueValue, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if a == nil {
			return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: 0}, &tengo.Float{Value: 0}}}, nil
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: a.Body.Position.X}, &tengo.Float{Value: a.Body.Position.Y}}}, nil
	}}

	values["detecting"] = &tengo.UserFunction{Name: "detecting", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if a != nil && a.IsDetecting() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["captures"] = &tengo.UserFunction{Name: "captures", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if a == nil {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(a.Pursuit.Captures())}, nil
	}}

	values["view_radius"] = &tengo.UserFunction{Name: "view_radius", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if a == nil {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: a.Sensor.Cone.Radius()}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
