package glcore

import "fmt"

// AttribFormat is the component layout of one vertex attribute.
type AttribFormat uint8

// Attribute formats.
const (
	// AttribFloat32 is one 32-bit float.
	AttribFloat32 AttribFormat = iota

	// AttribFloat32x2 is two 32-bit floats.
	AttribFloat32x2

	// AttribFloat32x3 is three 32-bit floats.
	AttribFloat32x3

	// AttribFloat32x4 is four 32-bit floats.
	AttribFloat32x4

	// AttribUnorm8x4 is four normalized 8-bit channels (typically color).
	AttribUnorm8x4

	// AttribUint16x2 is two 16-bit unsigned integers.
	AttribUint16x2
)

// String returns the compact signature token for the format.
func (f AttribFormat) String() string {
	switch f {
	case AttribFloat32:
		return "f32"
	case AttribFloat32x2:
		return "f32x2"
	case AttribFloat32x3:
		return "f32x3"
	case AttribFloat32x4:
		return "f32x4"
	case AttribUnorm8x4:
		return "un8x4"
	case AttribUint16x2:
		return "u16x2"
	default:
		return fmt.Sprintf("attr(%d)", uint8(f))
	}
}

// Size returns the byte size of one attribute value.
func (f AttribFormat) Size() int {
	switch f {
	case AttribFloat32:
		return 4
	case AttribFloat32x2:
		return 8
	case AttribFloat32x3:
		return 12
	case AttribFloat32x4:
		return 16
	case AttribUnorm8x4:
		return 4
	case AttribUint16x2:
		return 4
	default:
		return 0
	}
}

// VertexAttribute is one attribute of a vertex layout.
type VertexAttribute struct {
	// Location is the shader attribute location.
	Location int

	// Format is the component layout.
	Format AttribFormat

	// Offset is the byte offset within one vertex.
	Offset int
}

// VertexLayout is an ordered attribute list plus the vertex stride.
type VertexLayout struct {
	Stride     int
	Attributes []VertexAttribute
}
