package img

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMachineProvisionalState(t *testing.T) {
	tests := []struct {
		name       string
		critical   bool
		seenBefore bool
		want       LoadState
		visible    bool
	}{
		{"deferred", false, false, Idle, false},
		{"critical", true, false, Load, true},
		{"seen before", false, true, Load, true},
		{"critical and seen", true, true, Load, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(tt.critical, tt.seenBefore)
			assert.Equal(t, tt.want, m.State())
			assert.Equal(t, tt.visible, m.Visible())
			assert.False(t, m.Committed())
		})
	}
}

func TestMachineCommit(t *testing.T) {
	tests := []struct {
		name        string
		critical    bool
		seenBefore  bool
		features    FeatureFlags
		wantObserve bool
		wantState   LoadState
	}{
		{"observer", false, false, FeatureFlags{Intersection: true}, true, Idle},
		{"native lazy", false, false, FeatureFlags{NativeLazy: true, Intersection: true}, false, Load},
		{"native lazy only", false, false, FeatureFlags{NativeLazy: true}, false, Load},
		{"no support", false, false, FeatureFlags{}, false, Load},
		{"critical", true, false, FeatureFlags{Intersection: true}, false, Load},
		{"seen before", false, true, FeatureFlags{Intersection: true}, false, Load},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(tt.critical, tt.seenBefore)
			assert.Equal(t, tt.wantObserve, m.Commit(tt.features))
			assert.Equal(t, tt.wantState, m.State())
			assert.Equal(t, tt.features, m.Conditions().Features)

			// Only the first commit counts.
			assert.False(t, m.Commit(FeatureFlags{}))
			assert.Equal(t, tt.wantState, m.State())
		})
	}
}

func TestMachineRevealRequiresCommit(t *testing.T) {
	m := NewMachine(false, false)
	assert.False(t, m.Reveal(), "reveal before commit")
	assert.Equal(t, Idle, m.State())

	assert.True(t, m.Commit(FeatureFlags{Intersection: true}))
	assert.True(t, m.Reveal())
	assert.Equal(t, Load, m.State())
	assert.False(t, m.Reveal(), "second reveal")
}

func TestMachineComplete(t *testing.T) {
	tests := []struct {
		name     string
		complete bool
		width    int
		want     LoadState
	}{
		{"decoded", true, 640, Loaded},
		{"zero width", true, 0, Error},
		{"incomplete", false, 640, Error},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(true, false)
			state, changed := m.Complete(tt.complete, tt.width)
			assert.True(t, changed)
			assert.Equal(t, tt.want, state)
			assert.True(t, state.Terminal())
		})
	}
}

func TestMachineTerminalStatesIgnoreSignals(t *testing.T) {
	m := NewMachine(true, false)
	_, changed := m.Complete(true, 10)
	assert.True(t, changed)

	_, changed = m.Complete(true, 10)
	assert.False(t, changed)
	assert.False(t, m.Fail())
	assert.Equal(t, Loaded, m.State())

	m = NewMachine(true, false)
	assert.True(t, m.Fail())
	assert.False(t, m.Fail())
	state, changed := m.Complete(true, 10)
	assert.False(t, changed)
	assert.Equal(t, Error, state)
}

func TestMachineIgnoresLoadWhileIdle(t *testing.T) {
	m := NewMachine(false, false)
	_, changed := m.Complete(true, 100)
	assert.False(t, changed)
	assert.False(t, m.Fail())
	assert.Equal(t, Idle, m.State())
}

func TestLoadStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "load", Load.String())
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "unknown", LoadState(9).String())
}
