package attrs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"callsync/pkg/attrs"
)

func TestExtractString(t *testing.T) {
	kv := []any{"recording_id", "rec-1", "outcome", "committed", "score", 0.93}

	assert.Equal(t, "rec-1", attrs.ExtractString(kv, "recording_id"))
	assert.Equal(t, "committed", attrs.ExtractString(kv, "outcome"))

	t.Run("missing key", func(t *testing.T) {
		assert.Equal(t, "", attrs.ExtractString(kv, "absent"))
	})

	t.Run("value is not a string", func(t *testing.T) {
		assert.Equal(t, "", attrs.ExtractString(kv, "score"))
	})

	t.Run("odd length slice does not panic", func(t *testing.T) {
		assert.Equal(t, "", attrs.ExtractString([]any{"dangling"}, "dangling"))
	})
}

func TestExtractFloat64(t *testing.T) {
	kv := []any{"score", 0.93, "label", "high"}

	v, ok := attrs.ExtractFloat64(kv, "score")
	assert.True(t, ok)
	assert.InDelta(t, 0.93, v, 1e-9)

	t.Run("missing key", func(t *testing.T) {
		_, ok := attrs.ExtractFloat64(kv, "absent")
		assert.False(t, ok)
	})

	t.Run("value is not a float", func(t *testing.T) {
		_, ok := attrs.ExtractFloat64(kv, "label")
		assert.False(t, ok)
	})
}

func TestCollect(t *testing.T) {
	kv := []any{"recording_id", "rec-1", "score", 0.93}

	m := attrs.Collect(kv)
	assert.Equal(t, map[string]any{"recording_id": "rec-1", "score": 0.93}, m)

	t.Run("empty input yields nil", func(t *testing.T) {
		assert.Nil(t, attrs.Collect(nil))
	})

	t.Run("non-string key skipped", func(t *testing.T) {
		m := attrs.Collect([]any{42, "ignored", "kind", "match.confirmed"})
		assert.Equal(t, map[string]any{"kind": "match.confirmed"}, m)
	})

	t.Run("later duplicate wins", func(t *testing.T) {
		m := attrs.Collect([]any{"k", "first", "k", "second"})
		assert.Equal(t, map[string]any{"k": "second"}, m)
	})

	t.Run("trailing key without value dropped", func(t *testing.T) {
		m := attrs.Collect([]any{"k", "v", "dangling"})
		assert.Equal(t, map[string]any{"k": "v"}, m)
	})
}
