package ebitenhost

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/plus3/lumen/host"
)

func TestEveryKeyIsMapped(t *testing.T) {
	seen := make(map[ebiten.Key]host.Key)
	for k := host.KeyUnknown + 1; k < host.KeyCount; k++ {
		ek := keys[k]
		prev, dup := seen[ek]
		assert.False(t, dup, "key %d shares ebiten key %v with %d", k, ek, prev)
		seen[ek] = k
	}
}

func TestOutOfRangeInputIsIgnored(t *testing.T) {
	var in Input
	assert.False(t, in.KeyDown(host.KeyUnknown))
	assert.False(t, in.KeyPressed(host.KeyCount))
	assert.False(t, in.KeyReleased(host.Key(-1)))
	assert.False(t, in.MouseDown(host.MouseButtonCount))
	assert.False(t, in.MousePressed(host.MouseButton(-1)))
	assert.False(t, in.MouseReleased(host.MouseButtonCount))
}
