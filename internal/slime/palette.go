package slime

import (
	"image/color"
	"math"
	"time"

	"github.com/PerformLine/go-stockutil/colorutil"
)

// AllSpecies is the mask that shows every channel.
const AllSpecies uint = 1<<NumSpecies - 1

// saturation is the strength at which a channel reaches full colour.
const saturation = 255.0

// Palette maps species to display colours and turns the field into a colour
// buffer.
type Palette struct {
	colors [NumSpecies]color.RGBA
}

// NewPalette returns the default species colours.
func NewPalette() *Palette {
	p := &Palette{}
	for s := range p.colors {
		p.colors[s] = speciesTable[s].Color
	}
	return p
}

func (p *Palette) Color(s Species) color.RGBA { return p.colors[s] }

// Cycle sets the first species' colour to a fully saturated hue that rotates
// at degreesPerSecond.
func (p *Palette) Cycle(elapsed time.Duration, degreesPerSecond float64) {
	hue := math.Mod(elapsed.Seconds()*degreesPerSecond, 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b := colorutil.HsvToRgb(hue, 1, 1)
	p.colors[0] = color.RGBA{r, g, b, 255}
}

// cellRGB blends the channels of one cell, each species weighted by
// min(1, strength/255), clamped to [0, 1].
func (p *Palette) cellRGB(f *Field, cell int, mask uint) (r, g, b float64) {
	base := cell * f.species
	for s := 0; s < f.species && s < NumSpecies; s++ {
		if mask&(1<<uint(s)) == 0 {
			continue
		}
		w := math.Min(f.cells[base+s]/saturation, 1)
		if !(w > 0) {
			continue
		}
		c := p.colors[s]
		r += float64(c.R) / 255 * w
		g += float64(c.G) / 255 * w
		b += float64(c.B) / 255 * w
	}
	return math.Min(r, 1), math.Min(g, 1), math.Min(b, 1)
}

// Blend writes one RGB triple in [0, 1] per cell into dst, row-major.
// dst must hold at least width*height*3 values.
func (p *Palette) Blend(f *Field, dst []float32) {
	parallelChunks(f.height, f.workers, f.workers, func(_, lo, hi int) {
		for cell := lo * f.width; cell < hi*f.width; cell++ {
			r, g, b := p.cellRGB(f, cell, AllSpecies)
			dst[cell*3] = float32(r)
			dst[cell*3+1] = float32(g)
			dst[cell*3+2] = float32(b)
		}
	})
}

// BlendRGBA writes opaque RGBA bytes per cell into pix for the species
// selected by mask. pix must hold at least width*height*4 bytes.
func (p *Palette) BlendRGBA(f *Field, pix []byte, mask uint) {
	parallelChunks(f.height, f.workers, f.workers, func(_, lo, hi int) {
		for cell := lo * f.width; cell < hi*f.width; cell++ {
			r, g, b := p.cellRGB(f, cell, mask)
			pix[cell*4] = uint8(r * 255)
			pix[cell*4+1] = uint8(g * 255)
			pix[cell*4+2] = uint8(b * 255)
			pix[cell*4+3] = 255
		}
	})
}
