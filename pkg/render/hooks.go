package render

import (
	"encoding/json"
	"fmt"
	"io"
)

// HookProp is the internal prop key holding a HookConfig. An element
// carries at most one hook.
const HookProp = "_hook"

// HookConfig names a client hook and its JSON-encodable configuration.
type HookConfig struct {
	Name   string
	Config any
}

// renderHookConfig writes data-hook and, for a non-empty config,
// data-hook-config.
func renderHookConfig(w io.Writer, hc HookConfig) error {
	attrs := ` data-hook="` + EscapeAttr(hc.Name) + `"`
	if hc.Config != nil {
		data, err := json.Marshal(hc.Config)
		if err != nil {
			return fmt.Errorf("render: hook %s config: %w", hc.Name, err)
		}
		if s := string(data); s != "{}" && s != "null" {
			attrs += ` data-hook-config="` + EscapeAttr(s) + `"`
		}
	}
	_, err := io.WriteString(w, attrs)
	return err
}
