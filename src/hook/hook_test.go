package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFilter_ApplyOrder verifies callbacks run in registration order and
// each receives the previous callback's return value.
func TestFilter_ApplyOrder(t *testing.T) {
	f := NewFilter[[]string]("test.order")
	f.Add(func(v []string) []string { return append(v, "first") })
	f.Add(func(v []string) []string { return append(v, "second") })
	f.Add(func(v []string) []string { return append(v, "third") })

	got := f.Apply(nil)
	assert.Equal(t, []string{"first", "second", "third"}, got)
}

// TestFilter_NoCallbacks verifies Apply is the identity with nothing
// registered.
func TestFilter_NoCallbacks(t *testing.T) {
	f := NewFilter[int]("test.empty")
	assert.Equal(t, 42, f.Apply(42))
	assert.Equal(t, 0, f.Len())
}

// TestFilter_NilCallbackIgnored verifies Add tolerates nil.
func TestFilter_NilCallbackIgnored(t *testing.T) {
	f := NewFilter[int]("test.nil")
	f.Add(nil)
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, 7, f.Apply(7))
}

// TestFilter_Replacement verifies a callback can replace the value
// wholesale, not just mutate it.
func TestFilter_Replacement(t *testing.T) {
	f := NewFilter[map[string]any]("test.replace")
	f.Add(func(map[string]any) map[string]any {
		return map[string]any{"replaced": true}
	})

	got := f.Apply(map[string]any{"original": true})
	assert.Equal(t, map[string]any{"replaced": true}, got)
}

// TestEvent_EmitOrder verifies every callback observes the payload in
// registration order.
func TestEvent_EmitOrder(t *testing.T) {
	e := NewEvent[string]("test.event")

	var seen []string
	e.Add(func(s string) { seen = append(seen, "a:"+s) })
	e.Add(func(s string) { seen = append(seen, "b:"+s) })

	e.Emit("ping")
	assert.Equal(t, []string{"a:ping", "b:ping"}, seen)
	assert.Equal(t, 2, e.Len())
}

// TestEvent_EmitWithoutCallbacks verifies Emit is a no-op when nothing is
// registered.
func TestEvent_EmitWithoutCallbacks(t *testing.T) {
	e := NewEvent[int]("test.event.empty")
	assert.NotPanics(t, func() { e.Emit(1) })
}
