package mesh

import "strings"

// AttributeFlags is a bit mask of bundle attributes.
type AttributeFlags uint32

// Attribute bits. Triangle attributes occupy the low byte, vertex attributes
// the bits above it.
const (
	FlagTriangleVertices       AttributeFlags = 1 << 0
	FlagTriangleSubdivLevels   AttributeFlags = 1 << 1
	FlagTrianglePrimitiveFlags AttributeFlags = 1 << 2

	FlagVertexPosition        AttributeFlags = 1 << 8
	FlagVertexNormal          AttributeFlags = 1 << 9
	FlagVertexTangent         AttributeFlags = 1 << 10
	FlagVertexDirection       AttributeFlags = 1 << 12
	FlagVertexDirectionBounds AttributeFlags = 1 << 13
	FlagVertexImportance      AttributeFlags = 1 << 14
	FlagVertexTexcoord        AttributeFlags = 1 << 16

	TriangleFlags = FlagTriangleVertices | FlagTriangleSubdivLevels | FlagTrianglePrimitiveFlags
	VertexFlags   = FlagVertexPosition | FlagVertexNormal | FlagVertexTangent | FlagVertexDirection |
		FlagVertexDirectionBounds | FlagVertexImportance | FlagVertexTexcoord
	AllFlags = TriangleFlags | VertexFlags
)

// flagOrder lists every attribute bit in bundle order.
var flagOrder = []AttributeFlags{
	FlagTriangleVertices,
	FlagTriangleSubdivLevels,
	FlagTrianglePrimitiveFlags,
	FlagVertexPosition,
	FlagVertexNormal,
	FlagVertexTangent,
	FlagVertexDirection,
	FlagVertexDirectionBounds,
	FlagVertexImportance,
	FlagVertexTexcoord,
}

var flagNames = map[AttributeFlags]string{
	FlagTriangleVertices:       "TriangleVertices",
	FlagTriangleSubdivLevels:   "TriangleSubdivLevels",
	FlagTrianglePrimitiveFlags: "TrianglePrimitiveFlags",
	FlagVertexPosition:         "VertexPositions",
	FlagVertexNormal:           "VertexNormals",
	FlagVertexTangent:          "VertexTangents",
	FlagVertexDirection:        "VertexDirections",
	FlagVertexDirectionBounds:  "VertexDirectionBounds",
	FlagVertexImportance:       "VertexImportance",
	FlagVertexTexcoord:         "VertexTexcoords0",
}

// FlagName returns the name of a single attribute bit, or "" if f is not
// exactly one known bit.
func FlagName(f AttributeFlags) string {
	return flagNames[f]
}

// FlagFromName parses a name returned by FlagName.
func FlagFromName(name string) (AttributeFlags, bool) {
	for f, n := range flagNames {
		if strings.EqualFold(n, name) {
			return f, true
		}
	}
	return 0, false
}

// Has reports whether all bits of mask are set.
func (f AttributeFlags) Has(mask AttributeFlags) bool {
	return f&mask == mask
}

// Each calls fn for every known bit set in f, in bundle order.
func (f AttributeFlags) Each(fn func(AttributeFlags)) {
	for _, bit := range flagOrder {
		if f&bit != 0 {
			fn(bit)
		}
	}
}

// String joins the names of the set bits with "|", or returns "none".
func (f AttributeFlags) String() string {
	var names []string
	f.Each(func(bit AttributeFlags) {
		names = append(names, flagNames[bit])
	})
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// MeshSlice selects a contiguous range of triangles and vertices.
type MeshSlice struct {
	TriangleOffset int
	TriangleCount  int
	VertexOffset   int
	VertexCount    int
}
