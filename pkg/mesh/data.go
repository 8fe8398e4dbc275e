package mesh

import (
	"github.com/Faultbox/meshops/pkg/errs"
	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/view"
)

// Data owns growable storage for every attribute. The zero value is an
// empty mesh. Data must not be copied after first use: views handed out by
// View record the address of each store.
type Data struct {
	TriangleVertices          view.Store[math.UVec3]
	TriangleSubdivisionLevels view.Store[uint16]
	TrianglePrimitiveFlags    view.Store[uint8]

	VertexPositions       view.Store[math.Vec3]
	VertexNormals         view.Store[math.Vec3]
	VertexTangents        view.Store[math.Vec4]
	VertexDirections      view.Store[math.Vec3]
	VertexDirectionBounds view.Store[math.Vec2]
	VertexImportance      view.Store[float32]
	VertexTexcoords0      view.Store[math.Vec2]
}

// NewDataFrom returns a deep copy of src in freshly allocated storage.
func NewDataFrom(src Attributes) *Data {
	d := &Data{}
	src.Flags().Each(func(bit AttributeFlags) {
		d.resizeOne(bit, src.Len(bit))
	})
	if err := d.View().CopyFrom(src); err != nil {
		panic(err)
	}
	return d
}

// View returns a bundle of views over the current storage. It becomes stale
// for every attribute later passed to Resize.
func (d *Data) View() Attributes {
	return Attributes{
		TriangleVertices:          d.TriangleVertices.View(),
		TriangleSubdivisionLevels: d.TriangleSubdivisionLevels.View(),
		TrianglePrimitiveFlags:    d.TrianglePrimitiveFlags.View(),
		VertexPositions:           d.VertexPositions.View(),
		VertexNormals:             d.VertexNormals.View(),
		VertexTangents:            d.VertexTangents.View(),
		VertexDirections:          d.VertexDirections.View(),
		VertexDirectionBounds:     d.VertexDirectionBounds.View(),
		VertexImportance:          d.VertexImportance.View(),
		VertexTexcoords0:          d.VertexTexcoords0.View(),
	}
}

// Flags returns the mask of present attributes.
func (d *Data) Flags() AttributeFlags {
	return d.View().Flags()
}

// Resize resizes exactly the attributes selected by mask, triangle
// attributes to triangles elements and vertex attributes to vertices. New
// elements are zero. Attributes outside mask keep their size, so the call
// is rejected without side effects if a present attribute outside mask
// would disagree with the new count of its class.
func (d *Data) Resize(mask AttributeFlags, triangles, vertices int) error {
	const op = "mesh.Resize"
	if triangles < 0 || vertices < 0 {
		return errs.Invalid(op, "negative counts (%d, %d)", triangles, vertices)
	}
	if mask&^AllFlags != 0 {
		return errs.Invalid(op, "unknown attribute bits %#x", uint32(mask&^AllFlags))
	}

	cur := d.View()
	var bad AttributeFlags
	cur.Flags().Each(func(bit AttributeFlags) {
		if bad != 0 || mask&bit != 0 {
			return
		}
		if want, check := classCount(bit, mask, triangles, vertices); check && cur.Len(bit) != want {
			bad = bit
		}
	})
	if bad != 0 {
		return errs.Invalid(op, "resizing %s would leave %s with %d elements", mask, bad, cur.Len(bad))
	}

	mask.Each(func(bit AttributeFlags) {
		if bit&TriangleFlags != 0 {
			d.resizeOne(bit, triangles)
		} else {
			d.resizeOne(bit, vertices)
		}
	})
	return nil
}

// classCount returns the count an unmasked attribute must have after a
// resize, and whether the resize touches its class at all.
func classCount(bit, mask AttributeFlags, triangles, vertices int) (int, bool) {
	if bit&TriangleFlags != 0 {
		return triangles, mask&TriangleFlags != 0
	}
	return vertices, mask&VertexFlags != 0
}

func (d *Data) resizeOne(bit AttributeFlags, n int) {
	switch bit {
	case FlagTriangleVertices:
		d.TriangleVertices.Resize(n, math.UVec3{})
	case FlagTriangleSubdivLevels:
		d.TriangleSubdivisionLevels.Resize(n, 0)
	case FlagTrianglePrimitiveFlags:
		d.TrianglePrimitiveFlags.Resize(n, 0)
	case FlagVertexPosition:
		d.VertexPositions.Resize(n, math.Vec3{})
	case FlagVertexNormal:
		d.VertexNormals.Resize(n, math.Vec3{})
	case FlagVertexTangent:
		d.VertexTangents.Resize(n, math.Vec4{})
	case FlagVertexDirection:
		d.VertexDirections.Resize(n, math.Vec3{})
	case FlagVertexDirectionBounds:
		d.VertexDirectionBounds.Resize(n, math.Vec2{})
	case FlagVertexImportance:
		d.VertexImportance.Resize(n, 0)
	case FlagVertexTexcoord:
		d.VertexTexcoords0.Resize(n, math.Vec2{})
	}
}

// Resizable returns a resizable bundle backed by d.
func (d *Data) Resizable() *Resizable {
	return NewResizableFromData(d)
}

// Append appends src to the end of d. See Resizable.Append.
func (d *Data) Append(src Attributes) (MeshSlice, error) {
	return d.Resizable().Append(src)
}
