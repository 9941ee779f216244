package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrom_UniqueAndIncreasing(t *testing.T) {
	require.NoError(t, InitNode("test", 7))

	prev := NewFrom("test")
	seen := map[uint64]bool{prev: true}
	for i := 0; i < 1000; i++ {
		id := NewFrom("test")
		assert.False(t, seen[id])
		assert.Greater(t, id, prev)
		seen[id] = true
		prev = id
	}
}

func TestInitNode_RejectsOutOfRange(t *testing.T) {
	assert.Error(t, InitNode("bad", 5000))
}

func TestNewFrom_UnknownNodePanics(t *testing.T) {
	assert.Panics(t, func() { NewFrom("missing") })
}
