package splom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaletteFirstSeenOrder(t *testing.T) {
	p := NewPalette(Category20)

	assert.Equal(t, Category20[0], p.Color(6))
	assert.Equal(t, Category20[1], p.Color(2))
	assert.Equal(t, Category20[0], p.Color(6))
	assert.Equal(t, Category20[2], p.Color(3))
}

func TestPaletteCycles(t *testing.T) {
	p := NewPalette(Category20[:2])

	p.Color(1)
	p.Color(2)
	assert.Equal(t, Category20[0], p.Color(3))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#1f77b4", Hex(Category20[0]))
	assert.Equal(t, "#aaaaaa", Hex(FrameGrey))
	assert.Equal(t, "#ffffff", Hex(White))
}
