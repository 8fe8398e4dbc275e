package math

// Vec4 is a 4-component vector. Vertex tangents store the tangent direction
// in XYZ and the bitangent handedness (+1 or -1) in W.
type Vec4 struct {
	X, Y, Z, W float32
}

// XYZ returns the first three components.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec4) IsFinite() bool {
	return v.XYZ().IsFinite() && isFinite(v.W)
}

// UVec2 is a pair of unsigned indices, e.g. the two vertices of an edge.
type UVec2 [2]uint32

// UVec3 is a triple of unsigned indices, e.g. the three corners of a triangle.
type UVec3 [3]uint32

// IsDegenerate reports whether two corners share the same index.
func (t UVec3) IsDegenerate() bool {
	return t[0] == t[1] || t[1] == t[2] || t[2] == t[0]
}

// Add returns t with offset added to every corner.
func (t UVec3) Add(offset uint32) UVec3 {
	return UVec3{t[0] + offset, t[1] + offset, t[2] + offset}
}
