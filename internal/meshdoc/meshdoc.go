// Package meshdoc reads and writes meshes as YAML documents.
//
// A document lists each present attribute as a sequence, one row per
// triangle or vertex:
//
//	name: quad
//	triangles:
//	  vertices:
//	    - [0, 1, 2]
//	    - [0, 2, 3]
//	vertices:
//	  positions:
//	    - [0, 0, 0]
//	    ...
//
// Absent attributes are omitted. Documents written by merge also carry the
// slice of every input mesh.
package meshdoc

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/mesh"
	"github.com/Faultbox/meshops/pkg/view"
)

// Document is the YAML form of one mesh.
type Document struct {
	Name      string    `yaml:"name,omitempty"`
	Triangles Triangles `yaml:"triangles"`
	Vertices  Vertices  `yaml:"vertices"`
	Slices    []Slice   `yaml:"slices,omitempty"`
}

// Triangles holds the per-triangle attributes.
type Triangles struct {
	Vertices       Rows[uint32] `yaml:"vertices,omitempty"`
	SubdivLevels   []uint16     `yaml:"subdiv_levels,flow,omitempty"`
	PrimitiveFlags []uint16     `yaml:"primitive_flags,flow,omitempty"`
}

// Vertices holds the per-vertex attributes.
type Vertices struct {
	Positions       Rows[float32] `yaml:"positions,omitempty"`
	Normals         Rows[float32] `yaml:"normals,omitempty"`
	Tangents        Rows[float32] `yaml:"tangents,omitempty"`
	Directions      Rows[float32] `yaml:"directions,omitempty"`
	DirectionBounds Rows[float32] `yaml:"direction_bounds,omitempty"`
	Importance      []float32     `yaml:"importance,flow,omitempty"`
	Texcoords0      Rows[float32] `yaml:"texcoords0,omitempty"`
}

// Slice is the YAML form of mesh.MeshSlice.
type Slice struct {
	Name           string `yaml:"name,omitempty"`
	TriangleOffset int    `yaml:"triangle_offset"`
	TriangleCount  int    `yaml:"triangle_count"`
	VertexOffset   int    `yaml:"vertex_offset"`
	VertexCount    int    `yaml:"vertex_count"`
}

// MeshSlice converts s to a mesh.MeshSlice.
func (s Slice) MeshSlice() mesh.MeshSlice {
	return mesh.MeshSlice{
		TriangleOffset: s.TriangleOffset,
		TriangleCount:  s.TriangleCount,
		VertexOffset:   s.VertexOffset,
		VertexCount:    s.VertexCount,
	}
}

// Rows is a sequence of fixed-width rows written one per line.
type Rows[T float32 | uint32] [][]T

// MarshalYAML writes every row as a flow sequence.
func (r Rows[T]) MarshalYAML() (any, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range r {
		n := &yaml.Node{}
		if err := n.Encode(row); err != nil {
			return nil, err
		}
		n.Style = yaml.FlowStyle
		seq.Content = append(seq.Content, n)
	}
	return seq, nil
}

// FromAttributes converts a bundle into a document.
func FromAttributes(name string, a mesh.Attributes) *Document {
	d := &Document{Name: name}
	d.Triangles.Vertices = toRows(a.TriangleVertices, func(t math.UVec3) []uint32 { return t[:] })
	d.Triangles.SubdivLevels = a.TriangleSubdivisionLevels.AppendTo(nil)
	for _, f := range a.TrianglePrimitiveFlags.All() {
		d.Triangles.PrimitiveFlags = append(d.Triangles.PrimitiveFlags, uint16(f))
	}

	d.Vertices.Positions = toRows(a.VertexPositions, vec3Row)
	d.Vertices.Normals = toRows(a.VertexNormals, vec3Row)
	d.Vertices.Tangents = toRows(a.VertexTangents, func(v math.Vec4) []float32 { return []float32{v.X, v.Y, v.Z, v.W} })
	d.Vertices.Directions = toRows(a.VertexDirections, vec3Row)
	d.Vertices.DirectionBounds = toRows(a.VertexDirectionBounds, vec2Row)
	d.Vertices.Importance = a.VertexImportance.AppendTo(nil)
	d.Vertices.Texcoords0 = toRows(a.VertexTexcoords0, vec2Row)
	return d
}

// Attributes converts the document into a bundle over newly allocated
// slices. It fails on rows of the wrong width, inconsistent counts or
// out-of-range indices.
func (d *Document) Attributes() (mesh.Attributes, error) {
	var a mesh.Attributes
	var err error
	if a.TriangleVertices, err = fromRows(d.Triangles.Vertices, "triangles.vertices", 3, func(r []uint32) math.UVec3 {
		return math.UVec3{r[0], r[1], r[2]}
	}); err != nil {
		return a, err
	}
	a.TriangleSubdivisionLevels = view.Of(d.Triangles.SubdivLevels)
	if n := len(d.Triangles.PrimitiveFlags); n > 0 {
		flags := make([]uint8, n)
		for i, f := range d.Triangles.PrimitiveFlags {
			if f > 0xff {
				return a, fmt.Errorf("triangles.primitive_flags[%d]: %d does not fit in 8 bits", i, f)
			}
			flags[i] = uint8(f)
		}
		a.TrianglePrimitiveFlags = view.Of(flags)
	}

	vec3 := func(r []float32) math.Vec3 { return math.Vec3{X: r[0], Y: r[1], Z: r[2]} }
	vec2 := func(r []float32) math.Vec2 { return math.Vec2{X: r[0], Y: r[1]} }
	vec4 := func(r []float32) math.Vec4 { return math.Vec4{X: r[0], Y: r[1], Z: r[2], W: r[3]} }

	if a.VertexPositions, err = fromRows(d.Vertices.Positions, "vertices.positions", 3, vec3); err != nil {
		return a, err
	}
	if a.VertexNormals, err = fromRows(d.Vertices.Normals, "vertices.normals", 3, vec3); err != nil {
		return a, err
	}
	if a.VertexTangents, err = fromRows(d.Vertices.Tangents, "vertices.tangents", 4, vec4); err != nil {
		return a, err
	}
	if a.VertexDirections, err = fromRows(d.Vertices.Directions, "vertices.directions", 3, vec3); err != nil {
		return a, err
	}
	if a.VertexDirectionBounds, err = fromRows(d.Vertices.DirectionBounds, "vertices.direction_bounds", 2, vec2); err != nil {
		return a, err
	}
	a.VertexImportance = view.Of(d.Vertices.Importance)
	if a.VertexTexcoords0, err = fromRows(d.Vertices.Texcoords0, "vertices.texcoords0", 2, vec2); err != nil {
		return a, err
	}

	if !a.Consistent() {
		return a, fmt.Errorf("inconsistent attribute counts: %s", a.InvalidTriangleCounts()|a.InvalidVertexCounts())
	}
	if err := a.ValidateIndices(); err != nil {
		return a, err
	}
	return a, nil
}

// Data converts the document into an owning bundle.
func (d *Document) Data() (*mesh.Data, error) {
	a, err := d.Attributes()
	if err != nil {
		return nil, err
	}
	return mesh.NewDataFrom(a), nil
}

func vec3Row(v math.Vec3) []float32 { return []float32{v.X, v.Y, v.Z} }
func vec2Row(v math.Vec2) []float32 { return []float32{v.X, v.Y} }

func toRows[T any, E float32 | uint32](v view.View[T], row func(T) []E) Rows[E] {
	if v.Len() == 0 {
		return nil
	}
	rows := make(Rows[E], 0, v.Len())
	for _, e := range v.All() {
		rows = append(rows, row(e))
	}
	return rows
}

func fromRows[T any, E float32 | uint32](rows Rows[E], name string, width int, conv func([]E) T) (view.View[T], error) {
	if len(rows) == 0 {
		return view.View[T]{}, nil
	}
	out := make([]T, len(rows))
	for i, r := range rows {
		if len(r) != width {
			return view.View[T]{}, fmt.Errorf("%s[%d]: expected %d components, got %d", name, i, width, len(r))
		}
		out[i] = conv(r)
	}
	return view.Of(out), nil
}
