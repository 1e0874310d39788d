package slime

// Field is the pheromone grid: one strength per (x, y, species), stored
// row-major with the species channels of a cell adjacent.
type Field struct {
	width, height, species int
	cells                  []float64
	scratch                []float64 // diffusion target, swapped with cells after each pass
	workers                int
}

// NewField allocates a zeroed width×height grid with `species` channels.
func NewField(width, height, species int) *Field {
	n := width * height * species
	return &Field{
		width:   width,
		height:  height,
		species: species,
		cells:   make([]float64, n),
		scratch: make([]float64, n),
		workers: defaultWorkers(),
	}
}

func (f *Field) Width() int   { return f.width }
func (f *Field) Height() int  { return f.height }
func (f *Field) Species() int { return f.species }

// SetWorkers bounds the goroutines used by DiffuseAndDecay.
func (f *Field) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	f.workers = n
}

func (f *Field) index(x, y, s int) int {
	return (y*f.width+x)*f.species + s
}

func (f *Field) clampXY(x, y int) (int, int) {
	return clampInt(x, 0, f.width-1), clampInt(y, 0, f.height-1)
}

// Sample returns the strength at (x, y) for species s. Coordinates outside
// the grid are clamped to the nearest edge cell.
func (f *Field) Sample(x, y, s int) float64 {
	x, y = f.clampXY(x, y)
	return f.cells[f.index(x, y, s)]
}

// Deposit adds amount to a cell. The value is not clamped; coordinates are.
func (f *Field) Deposit(x, y, s int, amount float64) {
	x, y = f.clampXY(x, y)
	f.cells[f.index(x, y, s)] += amount
}

// Set overwrites a cell's strength.
func (f *Field) Set(x, y, s int, v float64) {
	x, y = f.clampXY(x, y)
	f.cells[f.index(x, y, s)] = v
}

// Total sums the strength of species s over the whole grid.
func (f *Field) Total(s int) float64 {
	sum := 0.0
	for i := s; i < len(f.cells); i += f.species {
		sum += f.cells[i]
	}
	return sum
}

// Reset zeroes the grid.
func (f *Field) Reset() {
	clear(f.cells)
	clear(f.scratch)
}

// DiffuseAndDecay runs one synchronous pass over the interior:
//
//	next = (cur + (north+south+east+west)*diffusionRate) * decayRate
//
// Every neighbour read sees the pre-pass value. Border cells are copied
// through unchanged.
func (f *Field) DiffuseAndDecay(diffusionRate, decayRate float64) {
	if len(f.cells) == 0 {
		return
	}
	parallelChunks(f.height, f.workers*2, f.workers, func(_, lo, hi int) {
		for y := lo; y < hi; y++ {
			f.diffuseRow(y, diffusionRate, decayRate)
		}
	})
	f.cells, f.scratch = f.scratch, f.cells
}

func (f *Field) diffuseRow(y int, diffusionRate, decayRate float64) {
	ns := f.species
	rowStart := f.index(0, y, 0)
	rowEnd := rowStart + f.width*ns
	src, dst := f.cells, f.scratch

	if y == 0 || y == f.height-1 || f.width < 3 {
		copy(dst[rowStart:rowEnd], src[rowStart:rowEnd])
		return
	}

	// Left and right border cells.
	copy(dst[rowStart:rowStart+ns], src[rowStart:rowStart+ns])
	copy(dst[rowEnd-ns:rowEnd], src[rowEnd-ns:rowEnd])

	stride := f.width * ns
	for x := 1; x < f.width-1; x++ {
		base := rowStart + x*ns
		for s := 0; s < ns; s++ {
			i := base + s
			neighbours := src[i-stride] + src[i+stride] + src[i-ns] + src[i+ns]
			dst[i] = (src[i] + neighbours*diffusionRate) * decayRate
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
