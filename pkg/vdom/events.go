package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "load" becomes "onload").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// Resource events

// OnLoad handles load events on media elements.
func OnLoad(handler any) EventHandler { return event("load", handler) }

// OnError handles error events on media elements.
func OnError(handler any) EventHandler { return event("error", handler) }

// Handler returns the handler registered for an event ("load", "error", ...).
func (v *VNode) Handler(name string) any {
	if v == nil || v.Props == nil {
		return nil
	}
	return v.Props["on"+name]
}
