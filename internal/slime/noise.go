package slime

import "github.com/aquilax/go-perlin"

const (
	noiseAlpha   = 1.8
	noiseBeta    = 2
	noiseOctaves = 3
	noiseScale   = 40.0 // cells per noise unit
)

// seedNoise fills every channel with amplitude*clamp(perlin, 0, 1) so the first
// ticks have trails to follow. Each species gets its own noise offset.
func seedNoise(f *Field, amplitude float64, seed int64) {
	if amplitude <= 0 {
		return
	}
	gen := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)
	for s := 0; s < f.species; s++ {
		offset := float64(s) * 1000
		for y := 0; y < f.height; y++ {
			for x := 0; x < f.width; x++ {
				n := gen.Noise2D(float64(x)/noiseScale+offset, float64(y)/noiseScale)
				f.cells[f.index(x, y, s)] = amplitude * clampFloat(n, 0, 1)
			}
		}
	}
}
