package block

import "voxelmesh/internal/spatial"

// Block identifies a voxel kind.
type Block uint16

const (
	Air Block = iota
	Stone
	Grass
)

// Transparent reports whether the block lets faces behind it show,
// i.e. whether a solid neighbor facing it must emit a quad.
func (b Block) Transparent() bool {
	return b == Air
}

func (b Block) String() string {
	switch b {
	case Air:
		return "air"
	case Stone:
		return "stone"
	case Grass:
		return "grass"
	default:
		return "unknown"
	}
}

// Volume is a dense 32^3 block array for one chunk, X fastest.
// A published Volume is immutable; producers build a fresh one and
// replace it wholesale.
type Volume struct {
	blocks []Block
}

// NewVolume returns an all-air volume.
func NewVolume() Volume {
	return Volume{blocks: make([]Block, spatial.ChunkVolume)}
}

// At returns the block at local coordinates. Implements spatial.Grid3.
func (v Volume) At(x, y, z int) Block {
	return v.blocks[spatial.Index3(x, y, z)]
}

// Set writes the block at local coordinates. Only valid before publish.
func (v Volume) Set(x, y, z int, b Block) {
	v.blocks[spatial.Index3(x, y, z)] = b
}

// Clone returns an independent copy of the volume.
func (v Volume) Clone() Volume {
	out := make([]Block, len(v.blocks))
	copy(out, v.blocks)
	return Volume{blocks: out}
}

// Empty reports whether the volume contains no solid blocks.
func (v Volume) Empty() bool {
	for _, b := range v.blocks {
		if b != Air {
			return false
		}
	}
	return true
}
