package mesh

import "github.com/go-gl/mathgl/mgl32"

// Normal identifies one of the 6 axis-aligned face directions.
type Normal uint8

const (
	PosX Normal = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// Normals lists all face directions in emission order.
var Normals = [6]Normal{PosX, NegX, PosY, NegY, PosZ, NegZ}

func (n Normal) String() string {
	switch n {
	case PosX:
		return "+x"
	case NegX:
		return "-x"
	case PosY:
		return "+y"
	case NegY:
		return "-y"
	case PosZ:
		return "+z"
	case NegZ:
		return "-z"
	default:
		return "?"
	}
}

// Dir returns the unit voxel offset of the face direction.
func (n Normal) Dir() (x, y, z int) {
	switch n {
	case PosX:
		return 1, 0, 0
	case NegX:
		return -1, 0, 0
	case PosY:
		return 0, 1, 0
	case NegY:
		return 0, -1, 0
	case PosZ:
		return 0, 0, 1
	default:
		return 0, 0, -1
	}
}

// Vec3 returns the direction as a render-space vector.
func (n Normal) Vec3() mgl32.Vec3 {
	x, y, z := n.Dir()
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// perpAxes returns the two in-plane axes used to address quad corners and
// their ambient-occlusion samples.
func (n Normal) perpAxes() (Normal, Normal) {
	switch n {
	case PosX:
		return NegZ, NegY
	case PosY:
		return NegZ, PosX
	case PosZ:
		return PosX, NegY
	case NegX:
		return PosZ, NegY
	case NegY:
		return NegZ, NegX
	default: // NegZ
		return NegX, NegY
	}
}
