package math

// Vec2 is a 2D vector. Meshes use it for texture coordinates and for the
// (bias, scale) pair of direction bounds.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Cross returns the z component of the 3D cross product of v and other,
// i.e. the signed area of the parallelogram they span.
func (v Vec2) Cross(other Vec2) float32 {
	return v.X*other.Y - other.X*v.Y
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}
