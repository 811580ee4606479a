package mesh

import (
	"voxelmesh/internal/block"
	"voxelmesh/internal/chunk"
	"voxelmesh/internal/spatial"
)

// Volumes is the block-volume neighborhood a mesh is derived from.
type Volumes = chunk.Neighborhood[block.Volume]

// sampleBlock reads the voxel at chunk-local coordinates that may step up
// to one chunk outside the subject volume. Out-of-range axes resolve
// against the matching neighbor slot, wrapping the coordinate into that
// neighbor's local space; an absent slot reads as air.
func sampleBlock(n *Volumes, x, y, z int) block.Block {
	sx, lx := spatial.SplitAxis(x)
	sy, ly := spatial.SplitAxis(y)
	sz, lz := spatial.SplitAxis(z)
	v := n.Slot(sx-1, sy-1, sz-1)
	if v == nil {
		return block.Air
	}
	return v.At(lx, ly, lz)
}

func sampleSolid(n *Volumes, x, y, z int) bool {
	return !sampleBlock(n, x, y, z).Transparent()
}

// BuildQuads derives the visible face list for the subject chunk (the
// neighborhood's middle volume). It runs on whatever neighborhood it is
// handed: absent neighbor slots read as air, so meshing an incomplete
// neighborhood over-exposes seam faces until the neighbor publishes and
// triggers a re-mesh.
func BuildQuads(n *Volumes) Quads {
	if n.Middle() == nil {
		return nil
	}
	var quads Quads
	for z := 0; z < spatial.ChunkSize; z++ {
		for y := 0; y < spatial.ChunkSize; y++ {
			for x := 0; x < spatial.ChunkSize; x++ {
				b := n.Middle().At(x, y, z)
				if b.Transparent() {
					continue
				}
				for _, nm := range Normals {
					if q, ok := quadOnFace(n, b, x, y, z, nm); ok {
						quads = append(quads, q)
					}
				}
			}
		}
	}
	return quads
}

// quadOnFace emits the face quad when the adjacent voxel is transparent.
func quadOnFace(n *Volumes, b block.Block, x, y, z int, nm Normal) (Quad, bool) {
	dx, dy, dz := nm.Dir()
	if !sampleBlock(n, x+dx, y+dy, z+dz).Transparent() {
		return Quad{}, false
	}
	q := Quad{Block: b, Normal: nm, Pos: [3]int{x, y, z}}
	for i := 0; i < 4; i++ {
		q.AO[i] = ambientOcclusion(n, x, y, z, nm, i)
	}
	return q, true
}

// ambientOcclusion samples the three voxels one layer beyond the face
// around a corner: the corner's two side neighbors along the face's
// in-plane axes and the diagonal between them. Both sides solid scores 4;
// one side solid scores 3 with the diagonal else 2; no side solid scores
// 1 with the diagonal else 0.
func ambientOcclusion(n *Volumes, x, y, z int, nm Normal, corner int) uint8 {
	dx, dy, dz := nm.Dir()
	bx, by, bz := x+dx, y+dy, z+dz

	a0, a1 := nm.perpAxes()
	s0, s1 := cornerSigns(corner)
	o0x, o0y, o0z := a0.Dir()
	o1x, o1y, o1z := a1.Dir()
	o0x, o0y, o0z = o0x*s0, o0y*s0, o0z*s0
	o1x, o1y, o1z = o1x*s1, o1y*s1, o1z*s1

	side0 := sampleSolid(n, bx+o0x, by+o0y, bz+o0z)
	side1 := sampleSolid(n, bx+o1x, by+o1y, bz+o1z)
	diag := sampleSolid(n, bx+o0x+o1x, by+o0y+o1y, bz+o0z+o1z)

	switch {
	case side0 && side1:
		return 4
	case side0 || side1:
		if diag {
			return 3
		}
		return 2
	case diag:
		return 1
	default:
		return 0
	}
}
