// Package mesh models a mesh as a bundle of optional per-triangle and
// per-vertex attribute views.
//
// An attribute is present when its view holds at least one element. All
// present triangle attributes must agree on the triangle count and all
// present vertex attributes on the vertex count; Consistent checks this.
// Bundles never own memory: Data owns growable storage and hands out
// Attributes over it, and Resizable pairs a bundle with a callback that
// can grow it.
package mesh

import (
	"github.com/Faultbox/meshops/pkg/errs"
	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/view"
)

// Attributes is a bundle of attribute views describing one mesh.
type Attributes struct {
	TriangleVertices          view.View[math.UVec3]
	TriangleSubdivisionLevels view.View[uint16]
	TrianglePrimitiveFlags    view.View[uint8]

	VertexPositions       view.View[math.Vec3]
	VertexNormals         view.View[math.Vec3]
	VertexTangents        view.View[math.Vec4]
	VertexDirections      view.View[math.Vec3]
	VertexDirectionBounds view.View[math.Vec2]
	VertexImportance      view.View[float32]
	VertexTexcoords0      view.View[math.Vec2]
}

// Len returns the element count of the attribute selected by a single flag
// bit, or 0 for unknown bits.
func (a Attributes) Len(flag AttributeFlags) int {
	switch flag {
	case FlagTriangleVertices:
		return a.TriangleVertices.Len()
	case FlagTriangleSubdivLevels:
		return a.TriangleSubdivisionLevels.Len()
	case FlagTrianglePrimitiveFlags:
		return a.TrianglePrimitiveFlags.Len()
	case FlagVertexPosition:
		return a.VertexPositions.Len()
	case FlagVertexNormal:
		return a.VertexNormals.Len()
	case FlagVertexTangent:
		return a.VertexTangents.Len()
	case FlagVertexDirection:
		return a.VertexDirections.Len()
	case FlagVertexDirectionBounds:
		return a.VertexDirectionBounds.Len()
	case FlagVertexImportance:
		return a.VertexImportance.Len()
	case FlagVertexTexcoord:
		return a.VertexTexcoords0.Len()
	}
	return 0
}

// Flags returns the mask of present attributes.
func (a Attributes) Flags() AttributeFlags {
	var f AttributeFlags
	AllFlags.Each(func(bit AttributeFlags) {
		if a.Len(bit) > 0 {
			f |= bit
		}
	})
	return f
}

// HasFlags reports whether every attribute in mask is present.
func (a Attributes) HasFlags(mask AttributeFlags) bool {
	return a.Flags().Has(mask)
}

// TriangleCount returns the size of the first present triangle attribute.
func (a Attributes) TriangleCount() int {
	return a.firstLen(TriangleFlags)
}

// VertexCount returns the size of the first present vertex attribute.
func (a Attributes) VertexCount() int {
	return a.firstLen(VertexFlags)
}

func (a Attributes) firstLen(class AttributeFlags) int {
	for _, bit := range flagOrder {
		if class&bit == 0 {
			continue
		}
		if n := a.Len(bit); n > 0 {
			return n
		}
	}
	return 0
}

// InvalidTriangleCounts returns the first present triangle attribute whose
// size differs from TriangleCount, or 0.
func (a Attributes) InvalidTriangleCounts() AttributeFlags {
	return a.firstMismatch(TriangleFlags, a.TriangleCount())
}

// InvalidVertexCounts returns the first present vertex attribute whose size
// differs from VertexCount, or 0.
func (a Attributes) InvalidVertexCounts() AttributeFlags {
	return a.firstMismatch(VertexFlags, a.VertexCount())
}

func (a Attributes) firstMismatch(class AttributeFlags, want int) AttributeFlags {
	for _, bit := range flagOrder {
		if class&bit == 0 {
			continue
		}
		if n := a.Len(bit); n > 0 && n != want {
			return bit
		}
	}
	return 0
}

// Consistent reports whether all present attributes of each class agree on
// their element count.
func (a Attributes) Consistent() bool {
	return a.InvalidTriangleCounts() == 0 && a.InvalidVertexCounts() == 0
}

// IsEmpty reports whether no attribute is present.
func (a Attributes) IsEmpty() bool {
	return a.Flags() == 0
}

// checkConsistent returns an InvalidValue error naming the first attribute
// whose size disagrees with its class.
func (a Attributes) checkConsistent(op string) error {
	if bad := a.InvalidTriangleCounts(); bad != 0 {
		return errs.Invalid(op, "%s has %d elements, expected %d triangles", bad, a.Len(bad), a.TriangleCount())
	}
	if bad := a.InvalidVertexCounts(); bad != 0 {
		return errs.Invalid(op, "%s has %d elements, expected %d vertices", bad, a.Len(bad), a.VertexCount())
	}
	return nil
}

// Slice returns the sub-bundle selected by s. Absent attributes stay absent.
// A non-empty range must start inside its class; an empty range may also
// start at the end. Triangle vertex indices are not rebased; see
// RebaseIndices.
func (a Attributes) Slice(s MeshSlice) (Attributes, error) {
	const op = "mesh.Slice"
	if err := a.checkConsistent(op); err != nil {
		return Attributes{}, err
	}
	if err := checkRange(op, "triangle", s.TriangleOffset, s.TriangleCount, a.TriangleCount()); err != nil {
		return Attributes{}, err
	}
	if err := checkRange(op, "vertex", s.VertexOffset, s.VertexCount, a.VertexCount()); err != nil {
		return Attributes{}, err
	}

	t0, tn := s.TriangleOffset, s.TriangleCount
	v0, vn := s.VertexOffset, s.VertexCount
	return Attributes{
		TriangleVertices:          sliceAttr(a.TriangleVertices, t0, tn),
		TriangleSubdivisionLevels: sliceAttr(a.TriangleSubdivisionLevels, t0, tn),
		TrianglePrimitiveFlags:    sliceAttr(a.TrianglePrimitiveFlags, t0, tn),
		VertexPositions:           sliceAttr(a.VertexPositions, v0, vn),
		VertexNormals:             sliceAttr(a.VertexNormals, v0, vn),
		VertexTangents:            sliceAttr(a.VertexTangents, v0, vn),
		VertexDirections:          sliceAttr(a.VertexDirections, v0, vn),
		VertexDirectionBounds:     sliceAttr(a.VertexDirectionBounds, v0, vn),
		VertexImportance:          sliceAttr(a.VertexImportance, v0, vn),
		VertexTexcoords0:          sliceAttr(a.VertexTexcoords0, v0, vn),
	}, nil
}

// sliceAttr slices a present attribute. A zero-length range yields an
// absent attribute, which may sit at the very end of the bundle.
func sliceAttr[T any](v view.View[T], offset, length int) view.View[T] {
	if length == 0 {
		return view.View[T]{}
	}
	return v.SliceNonEmpty(offset, length)
}

func checkRange(op, class string, offset, length, count int) error {
	if offset < 0 || length < 0 {
		return errs.Invalid(op, "negative %s range (%d, %d)", class, offset, length)
	}
	if length == 0 && offset <= count {
		return nil
	}
	if offset >= count || length > count-offset {
		return errs.Invalid(op, "%s range (%d, %d) exceeds %d elements", class, offset, length, count)
	}
	return nil
}

// Underlay returns a bundle that uses the attributes of base and fills the
// ones base lacks from aux. Nothing is copied.
func Underlay(base, aux Attributes) Attributes {
	return Attributes{
		TriangleVertices:          prefer(base.TriangleVertices, aux.TriangleVertices),
		TriangleSubdivisionLevels: prefer(base.TriangleSubdivisionLevels, aux.TriangleSubdivisionLevels),
		TrianglePrimitiveFlags:    prefer(base.TrianglePrimitiveFlags, aux.TrianglePrimitiveFlags),
		VertexPositions:           prefer(base.VertexPositions, aux.VertexPositions),
		VertexNormals:             prefer(base.VertexNormals, aux.VertexNormals),
		VertexTangents:            prefer(base.VertexTangents, aux.VertexTangents),
		VertexDirections:          prefer(base.VertexDirections, aux.VertexDirections),
		VertexDirectionBounds:     prefer(base.VertexDirectionBounds, aux.VertexDirectionBounds),
		VertexImportance:          prefer(base.VertexImportance, aux.VertexImportance),
		VertexTexcoords0:          prefer(base.VertexTexcoords0, aux.VertexTexcoords0),
	}
}

// Overlay returns a bundle that prefers the attributes of aux and falls back
// to base. Nothing is copied.
func Overlay(base, aux Attributes) Attributes {
	return Underlay(aux, base)
}

func prefer[T any](first, fallback view.View[T]) view.View[T] {
	if first.Len() > 0 {
		return first
	}
	return fallback
}

// Replace takes the attributes selected by mask from other, present or not.
func (a *Attributes) Replace(other Attributes, mask AttributeFlags) {
	if mask&FlagTriangleVertices != 0 {
		a.TriangleVertices = other.TriangleVertices
	}
	if mask&FlagTriangleSubdivLevels != 0 {
		a.TriangleSubdivisionLevels = other.TriangleSubdivisionLevels
	}
	if mask&FlagTrianglePrimitiveFlags != 0 {
		a.TrianglePrimitiveFlags = other.TrianglePrimitiveFlags
	}
	if mask&FlagVertexPosition != 0 {
		a.VertexPositions = other.VertexPositions
	}
	if mask&FlagVertexNormal != 0 {
		a.VertexNormals = other.VertexNormals
	}
	if mask&FlagVertexTangent != 0 {
		a.VertexTangents = other.VertexTangents
	}
	if mask&FlagVertexDirection != 0 {
		a.VertexDirections = other.VertexDirections
	}
	if mask&FlagVertexDirectionBounds != 0 {
		a.VertexDirectionBounds = other.VertexDirectionBounds
	}
	if mask&FlagVertexImportance != 0 {
		a.VertexImportance = other.VertexImportance
	}
	if mask&FlagVertexTexcoord != 0 {
		a.VertexTexcoords0 = other.VertexTexcoords0
	}
}

// CopyFrom copies every attribute present in src into a. Each of them must
// also be present in a with the same size.
func (a Attributes) CopyFrom(src Attributes) error {
	const op = "mesh.CopyFrom"
	var bad AttributeFlags
	src.Flags().Each(func(bit AttributeFlags) {
		if bad == 0 && a.Len(bit) != src.Len(bit) {
			bad = bit
		}
	})
	if bad != 0 {
		return errs.Invalid(op, "%s: source has %d elements, destination %d", bad, src.Len(bad), a.Len(bad))
	}

	copyPresent(a.TriangleVertices, src.TriangleVertices)
	copyPresent(a.TriangleSubdivisionLevels, src.TriangleSubdivisionLevels)
	copyPresent(a.TrianglePrimitiveFlags, src.TrianglePrimitiveFlags)
	copyPresent(a.VertexPositions, src.VertexPositions)
	copyPresent(a.VertexNormals, src.VertexNormals)
	copyPresent(a.VertexTangents, src.VertexTangents)
	copyPresent(a.VertexDirections, src.VertexDirections)
	copyPresent(a.VertexDirectionBounds, src.VertexDirectionBounds)
	copyPresent(a.VertexImportance, src.VertexImportance)
	copyPresent(a.VertexTexcoords0, src.VertexTexcoords0)
	return nil
}

func copyPresent[T any](dst, src view.View[T]) {
	if src.Len() > 0 {
		view.Copy(dst, src)
	}
}

// RebaseIndices subtracts base from every triangle vertex index in place,
// turning indices into a shared vertex array into indices local to a slice.
// The bundle is left untouched if any index is below base.
func (a Attributes) RebaseIndices(base uint32) error {
	for i, tri := range a.TriangleVertices.All() {
		if tri[0] < base || tri[1] < base || tri[2] < base {
			return errs.Invalid("mesh.RebaseIndices", "triangle %d index %v below base %d", i, tri, base)
		}
	}
	for i, tri := range a.TriangleVertices.All() {
		a.TriangleVertices.Set(i, math.UVec3{tri[0] - base, tri[1] - base, tri[2] - base})
	}
	return nil
}

// ValidateIndices returns an InvalidValue error if any triangle references
// a vertex at or beyond VertexCount.
func (a Attributes) ValidateIndices() error {
	n := uint32(a.VertexCount())
	for i, tri := range a.TriangleVertices.All() {
		if tri[0] >= n || tri[1] >= n || tri[2] >= n {
			return errs.Invalid("mesh.ValidateIndices", "triangle %d index %v out of range for %d vertices", i, tri, n)
		}
	}
	return nil
}
