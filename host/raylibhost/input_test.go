package raylibhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/lumen/host"
)

func TestKeyTable(t *testing.T) {
	seen := make(map[int32]bool)
	for k := host.KeyUnknown + 1; k < host.KeyCount; k++ {
		require.NotZero(t, keys[k], "key %d unmapped", k)
		assert.False(t, seen[keys[k]], "key %d mapped twice", k)
		seen[keys[k]] = true
	}
}

func TestOutOfRangeInputIsIgnored(t *testing.T) {
	var in Input
	assert.False(t, in.KeyDown(host.KeyCount))
	assert.False(t, in.KeyPressed(host.KeyUnknown))
	assert.False(t, in.MouseDown(host.MouseButton(-1)))
	assert.False(t, in.MouseReleased(host.MouseButtonCount))
}
