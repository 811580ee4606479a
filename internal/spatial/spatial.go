package spatial

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ChunkSize is the edge length of a cubic chunk in voxels.
	ChunkSize = 32

	// ChunkArea and ChunkVolume are derived sizes for flat storage.
	ChunkArea   = ChunkSize * ChunkSize
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// ChunkCoord addresses one chunk in the infinite chunk lattice.
type ChunkCoord struct {
	X, Y, Z int
}

// Add returns the coordinate offset by another coordinate.
func (c ChunkCoord) Add(o ChunkCoord) ChunkCoord {
	return ChunkCoord{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Neg returns the inverse offset.
func (c ChunkCoord) Neg() ChunkCoord {
	return ChunkCoord{X: -c.X, Y: -c.Y, Z: -c.Z}
}

// WorldOrigin returns the world-space position of the chunk's (0,0,0) voxel.
func (c ChunkCoord) WorldOrigin() (int, int, int) {
	return c.X * ChunkSize, c.Y * ChunkSize, c.Z * ChunkSize
}

// Vec3 converts the chunk origin to a render-space vector.
func (c ChunkCoord) Vec3() mgl32.Vec3 {
	x, y, z := c.WorldOrigin()
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// Index3 converts local voxel coordinates to a flat index (X fastest).
func Index3(x, y, z int) int {
	return x + y*ChunkSize + z*ChunkArea
}

// Index2 converts local column coordinates to a flat index (X fastest).
func Index2(x, z int) int {
	return x + z*ChunkSize
}

// Grid3 is the capability of a container addressable by 3D local coordinates.
type Grid3[E any] interface {
	At(x, y, z int) E
}

// Grid2 is the capability of a container addressable by 2D local coordinates.
type Grid2[E any] interface {
	At2(x, z int) E
}

// CubeOffsets lists the 27 relative offsets of {-1,0,1}^3 in slot order,
// i.e. the offset (ox,oy,oz) lives at slot (ox+1) + 3*(oy+1) + 9*(oz+1).
var CubeOffsets = makeCubeOffsets()

func makeCubeOffsets() [27]ChunkCoord {
	var offsets [27]ChunkCoord
	i := 0
	for z := -1; z <= 1; z++ {
		for y := -1; y <= 1; y++ {
			for x := -1; x <= 1; x++ {
				offsets[i] = ChunkCoord{X: x, Y: y, Z: z}
				i++
			}
		}
	}
	return offsets
}

// SlotIndex maps a relative offset in {-1,0,1}^3 to its neighborhood slot.
func SlotIndex(ox, oy, oz int) int {
	return (ox + 1) + 3*(oy+1) + 9*(oz+1)
}

// SplitAxis resolves one axis of a local coordinate that may step outside
// [0, ChunkSize). It returns the neighborhood slot along that axis
// (0 for the -1 neighbor, 1 for the chunk itself, 2 for the +1 neighbor)
// and the coordinate wrapped into that neighbor's local space.
func SplitAxis(c int) (slot, local int) {
	switch {
	case c < 0:
		slot = 0
	case c < ChunkSize:
		slot = 1
	default:
		slot = 2
	}
	return slot, ((c % ChunkSize) + ChunkSize) % ChunkSize
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// CoordForWorld returns the chunk containing a world-space voxel position.
func CoordForWorld(x, y, z int) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(x, ChunkSize),
		Y: floorDiv(y, ChunkSize),
		Z: floorDiv(z, ChunkSize),
	}
}
