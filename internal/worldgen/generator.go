package worldgen

import (
	"voxelmesh/internal/block"
	"voxelmesh/internal/noise"
	"voxelmesh/internal/spatial"
)

// HeightField holds one terrain-height sample per (x,z) column of a
// chunk, in noise units. Implements spatial.Grid2.
type HeightField struct {
	samples []float64
}

// At2 returns the column sample at local coordinates.
func (h HeightField) At2(x, z int) float64 {
	return h.samples[spatial.Index2(x, z)]
}

// Generator derives per-chunk terrain data from the world noise field.
type Generator struct {
	noise     *noise.Fractal
	amplitude float64
}

// NewGenerator builds the generator for a world seed. amplitude scales
// noise samples into world-space block heights.
func NewGenerator(seed uint32, layers int, scale, amplitude float64) *Generator {
	return &Generator{
		noise:     noise.NewFractal(seed, layers, scale),
		amplitude: amplitude,
	}
}

// HeightField samples the noise field at the world-space position of
// every column in the chunk.
func (g *Generator) HeightField(pos spatial.ChunkCoord) HeightField {
	baseX, _, baseZ := pos.WorldOrigin()
	samples := make([]float64, spatial.ChunkArea)
	for z := 0; z < spatial.ChunkSize; z++ {
		for x := 0; x < spatial.ChunkSize; x++ {
			samples[spatial.Index2(x, z)] = g.noise.Sample2(float64(baseX+x), float64(baseZ+z))
		}
	}
	return HeightField{samples: samples}
}

// BlockVolume classifies every voxel of the chunk against the column
// surface height: more than one block below the surface is stone, the
// topmost block is grass, everything else is air.
func (g *Generator) BlockVolume(pos spatial.ChunkCoord, h HeightField) block.Volume {
	_, baseY, _ := pos.WorldOrigin()
	v := block.NewVolume()
	for z := 0; z < spatial.ChunkSize; z++ {
		for x := 0; x < spatial.ChunkSize; x++ {
			surface := h.At2(x, z) * g.amplitude
			for y := 0; y < spatial.ChunkSize; y++ {
				d := float64(baseY+y) - surface
				switch {
				case d < -1:
					v.Set(x, y, z, block.Stone)
				case d < 0:
					v.Set(x, y, z, block.Grass)
				}
			}
		}
	}
	return v
}
