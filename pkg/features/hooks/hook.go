package hooks

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/vimg/pkg/render"
	"github.com/vango-dev/vimg/pkg/vdom"
)

// Hook creates a hook attribute for an element.
// The config is serialized to JSON by the renderer and read by the client hook.
func Hook(name string, config any) vdom.Attr {
	return vdom.Attr{
		Key: render.HookProp,
		Value: render.HookConfig{
			Name:   name,
			Config: config,
		},
	}
}

// OnEvent creates an event handler attribute for a hook event.
func OnEvent(name string, handler func(HookEvent)) vdom.EventHandler {
	return vdom.EventHandler{
		Event:   "on" + name,
		Handler: handler,
	}
}

// Dispatch delivers a hook event to the handler registered on node.
// It returns false when the node has no handler for the event.
func Dispatch(node *vdom.VNode, name string, data map[string]any) bool {
	handler, ok := node.Handler(name).(func(HookEvent))
	if !ok {
		return false
	}
	handler(HookEvent{Name: name, Data: data})
	return true
}

// HookEvent represents an event triggered by a client hook.
type HookEvent struct {
	Name string
	Data map[string]any
}

// Accessors

func (e HookEvent) String(key string) string {
	if v, ok := e.Data[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func (e HookEvent) Int(key string) int {
	if v, ok := e.Data[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case float64:
			return int(val)
		case string:
			i, _ := strconv.Atoi(val)
			return i
		}
	}
	return 0
}

func (e HookEvent) Float(key string) float64 {
	if v, ok := e.Data[key]; ok {
		switch val := v.(type) {
		case float64:
			return val
		case int:
			return float64(val)
		case string:
			f, _ := strconv.ParseFloat(val, 64)
			return f
		}
	}
	return 0.0
}

func (e HookEvent) Bool(key string) bool {
	if v, ok := e.Data[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
		b, _ := strconv.ParseBool(fmt.Sprintf("%v", v))
		return b
	}
	return false
}

// Has reports whether the event carries the key at all.
func (e HookEvent) Has(key string) bool {
	_, ok := e.Data[key]
	return ok
}

func (e HookEvent) Raw(key string) any {
	return e.Data[key]
}
