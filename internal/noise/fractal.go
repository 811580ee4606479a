package noise

import (
	"math"
	"math/bits"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Fractal layers independently seeded simplex octaves into one bounded
// scalar field. Octave k has amplitude 0.5^k and spatial scale
// scale*0.5^k, and is translated by half its own scale so the octave
// lattices do not line up. The octave sum is divided by the total
// amplitude, keeping output in roughly [-1, 1] regardless of the layer
// count.
type Fractal struct {
	invAmpSum float64
	octaves   []octave
}

type octave struct {
	amp   float64
	scale float64
	noise opensimplex.Noise
}

// NewFractal builds a fractal field from the given seed, layer count and
// base spatial scale. layers must be at least 1.
func NewFractal(seed uint32, layers int, scale float64) *Fractal {
	if layers < 1 {
		layers = 1
	}
	octaves := make([]octave, layers)
	ampSum := 0.0
	for k := range octaves {
		amp := math.Pow(0.5, float64(k))
		ampSum += amp
		octaves[k] = octave{
			amp:   amp,
			scale: scale * amp,
			noise: opensimplex.New(int64(bits.RotateLeft32(seed, k))),
		}
	}
	return &Fractal{
		invAmpSum: 1 / ampSum,
		octaves:   octaves,
	}
}

// Sample2 evaluates the field at a horizontal world position.
// Pure: same input always yields the same output.
func (f *Fractal) Sample2(x, z float64) float64 {
	sum := 0.0
	for _, o := range f.octaves {
		t := 0.5 * o.scale
		sum += o.noise.Eval2((x+t)*o.scale, (z+t)*o.scale) * o.amp
	}
	return sum * f.invAmpSum
}

// Sample3 evaluates the field at a full world position.
func (f *Fractal) Sample3(x, y, z float64) float64 {
	sum := 0.0
	for _, o := range f.octaves {
		t := 0.5 * o.scale
		sum += o.noise.Eval3((x+t)*o.scale, (y+t)*o.scale, (z+t)*o.scale) * o.amp
	}
	return sum * f.invAmpSum
}
