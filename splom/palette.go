package splom

import (
	"fmt"
	"image/color"
)

// Category20 is the twenty-colour categorical scheme used for off-diagonal
// points.
var Category20 = []color.RGBA{
	rgb(0x1f77b4), rgb(0xaec7e8), rgb(0xff7f0e), rgb(0xffbb78),
	rgb(0x2ca02c), rgb(0x98df8a), rgb(0xd62728), rgb(0xff9896),
	rgb(0x9467bd), rgb(0xc5b0d5), rgb(0x8c564b), rgb(0xc49c94),
	rgb(0xe377c2), rgb(0xf7b6d2), rgb(0x7f7f7f), rgb(0xc7c7c7),
	rgb(0xbcbd22), rgb(0xdbdb8d), rgb(0x17becf), rgb(0x9edae5),
}

// Colours used by the matrix elements.
var (
	White     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black     = color.RGBA{A: 0xff}
	FrameGrey = rgb(0xaaaaaa)
)

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// Hex returns the colour as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette is an ordinal colour scale: every new key takes the next colour
// of the scheme, cycling when the scheme runs out.
type Palette struct {
	scheme []color.RGBA
	index  map[int]int
}

// NewPalette returns an empty ordinal scale over scheme.
func NewPalette(scheme []color.RGBA) *Palette {
	return &Palette{scheme: scheme, index: make(map[int]int)}
}

// Color returns the colour bound to key, binding a new one on first use.
func (p *Palette) Color(key int) color.RGBA {
	i, ok := p.index[key]
	if !ok {
		i = len(p.index)
		p.index[key] = i
	}
	return p.scheme[i%len(p.scheme)]
}
