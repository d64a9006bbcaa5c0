package ai

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/rcai/clock"
	"github.com/milk9111/rcai/common"
)

// A transition script defines invoke(engine, state) and returns one of
// "succeeded", "in_progress" or "failed". state is a map that survives
// between polls of one transition and is cleared on completion or cancel.
const scriptDispatch = `
__result = invoke(__engine, __state)
`

// ScriptTransition runs a tengo script each time it is invoked.
type ScriptTransition struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	clock    clock.Clock
	polls    int
	log      *logrus.Entry
}

func NewScriptTransition(name string, src []byte, c clock.Clock) (*ScriptTransition, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__result", "")

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile script %s: %w", name, err)
	}

	return &ScriptTransition{
		name:     name,
		compiled: compiled,
		state:    newScriptState(),
		clock:    c,
		log:      common.Logger(common.CategoryAI).WithField("script", name),
	}, nil
}

func newScriptState() *tengo.Map {
	return &tengo.Map{Value: map[string]tengo.Object{}}
}

func (t *ScriptTransition) Name() string {
	return t.name
}

func (t *ScriptTransition) Invoke() Result {
	t.polls++
	if err := t.run(); err != nil {
		t.log.WithError(err).Warn("script transition failed to run")
		t.reset()
		return Failed
	}

	raw := strings.Trim(t.compiled.Get("__result").String(), "\"")
	res, ok := ParseResult(raw)
	if !ok {
		t.log.WithField("result", raw).Warn("script returned an unknown result")
		t.reset()
		return Failed
	}
	if res != InProgress {
		t.reset()
	}
	return res
}

// Cancel forgets any progress the script kept in its state map.
func (t *ScriptTransition) Cancel() {
	t.reset()
}

func (t *ScriptTransition) reset() {
	t.state = newScriptState()
	t.polls = 0
}

func (t *ScriptTransition) run() error {
	if err := t.compiled.Set("__engine", t.engine()); err != nil {
		return err
	}
	if err := t.compiled.Set("__state", t.state); err != nil {
		return err
	}
	if err := t.compiled.Set("__result", ""); err != nil {
		return err
	}
	return t.compiled.Run()
}

func (t *ScriptTransition) engine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["now"] = &tengo.UserFunction{Name: "now", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if t.clock == nil {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: t.clock.Now()}, nil
	}}

	values["polls"] = &tengo.UserFunction{Name: "polls", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(t.polls)}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		t.log.Debug(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
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
