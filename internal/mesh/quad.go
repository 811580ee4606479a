package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelmesh/internal/block"
)

// Quad is one emitted visible voxel face: a unit square on the face of
// the block at Pos (chunk-local coordinates) pointing along Normal, with
// an ambient-occlusion level 0-4 per corner.
type Quad struct {
	Block  block.Block
	Normal Normal
	Pos    [3]int
	AO     [4]uint8
}

// Quads is the renderable face list derived for one chunk. It replaces
// any previous list wholesale on re-mesh.
type Quads []Quad

// Corners returns the quad's 4 corner positions relative to the chunk
// origin, indexed like AO: corner i sits at the (a0,a1) signs
// (-,-), (-,+), (+,-), (+,+) of the face's in-plane axes.
func (q Quad) Corners() [4]mgl32.Vec3 {
	center := mgl32.Vec3{
		float32(q.Pos[0]) + 0.5,
		float32(q.Pos[1]) + 0.5,
		float32(q.Pos[2]) + 0.5,
	}
	a0, a1 := q.Normal.perpAxes()
	face := center.Add(q.Normal.Vec3().Mul(0.5))
	v0 := a0.Vec3().Mul(0.5)
	v1 := a1.Vec3().Mul(0.5)
	var out [4]mgl32.Vec3
	for i := 0; i < 4; i++ {
		s0, s1 := cornerSigns(i)
		out[i] = face.Add(v0.Mul(float32(s0))).Add(v1.Mul(float32(s1)))
	}
	return out
}

// cornerSigns maps a corner index to its signs along the two in-plane axes.
func cornerSigns(i int) (s0, s1 int) {
	s0, s1 = 1, 1
	if i == 0 || i == 1 {
		s0 = -1
	}
	if i == 0 || i == 2 {
		s1 = -1
	}
	return s0, s1
}
