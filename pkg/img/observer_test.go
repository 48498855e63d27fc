package img

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserverFiresAtMostOnce(t *testing.T) {
	o := NewObserver(true, -1)
	assert.Equal(t, DefaultRootMargin, o.RootMargin())

	calls := 0
	require.True(t, o.Observe("vimg-1", func() { calls++ }))

	n := o.Dispatch(
		IntersectionEntry{Target: "vimg-1", IsIntersecting: true},
		IntersectionEntry{Target: "vimg-1", IsIntersecting: true},
	)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, o.Dispatch(IntersectionEntry{Target: "vimg-1", IntersectionRatio: 1}))
	assert.Equal(t, 1, calls)
	assert.False(t, o.Observing("vimg-1"))
}

func TestObserverRatioCountsWithoutFlag(t *testing.T) {
	o := NewObserver(true, 0)
	fired := false
	o.Observe("a", func() { fired = true })

	o.Dispatch(IntersectionEntry{Target: "a"})
	assert.False(t, fired, "entry outside the viewport")

	o.Dispatch(IntersectionEntry{Target: "a", IntersectionRatio: 0.01})
	assert.True(t, fired)
}

func TestObserverUnobserveIdempotent(t *testing.T) {
	o := NewObserver(true, 200)
	o.Observe("a", func() {})
	o.Dispatch(IntersectionEntry{Target: "a", IsIntersecting: true})

	assert.NotPanics(t, func() {
		o.Unobserve("a")
		o.Unobserve("a")
		o.Unobserve("never-registered")
	})
	assert.Equal(t, 0, o.Len())
}

func TestObserverUnobserveCancels(t *testing.T) {
	o := NewObserver(true, 200)
	fired := false
	o.Observe("a", func() { fired = true })
	o.Unobserve("a")

	assert.Equal(t, 0, o.Dispatch(IntersectionEntry{Target: "a", IsIntersecting: true}))
	assert.False(t, fired)
}

func TestObserverDisabled(t *testing.T) {
	o := NewObserver(false, 200)
	assert.False(t, o.Enabled())
	assert.False(t, o.Observe("a", func() {}))
	assert.Equal(t, 0, o.Len())
}

func TestObserverRejectsDuplicateAndNil(t *testing.T) {
	o := NewObserver(true, 200)
	first := 0
	assert.False(t, o.Observe("a", nil))
	assert.True(t, o.Observe("a", func() { first++ }))
	assert.False(t, o.Observe("a", func() { t.Error("replaced callback ran") }))

	o.Dispatch(IntersectionEntry{Target: "a", IsIntersecting: true})
	assert.Equal(t, 1, first)
}

func TestObserverCallbackMayReenter(t *testing.T) {
	o := NewObserver(true, 200)
	o.Observe("a", func() {
		// Runs outside the registry lock.
		o.Observe("b", func() {})
		o.Unobserve("a")
	})
	o.Dispatch(IntersectionEntry{Target: "a", IsIntersecting: true})
	assert.True(t, o.Observing("b"))
}

func TestObserverConcurrentDispatch(t *testing.T) {
	o := NewObserver(true, 200)
	var mu sync.Mutex
	calls := 0
	o.Observe("a", func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.Dispatch(IntersectionEntry{Target: "a", IsIntersecting: true})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls)
}
