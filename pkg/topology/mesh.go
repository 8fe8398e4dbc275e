package topology

import (
	"github.com/Faultbox/meshops/pkg/errs"
	"github.com/Faultbox/meshops/pkg/mesh"
	"github.com/Faultbox/meshops/pkg/view"
)

// FromMesh builds the topology of a bundle. With findWatertight set,
// vertices with identical positions are merged first, which requires
// VertexPositions.
func FromMesh(a mesh.Attributes, findWatertight bool) (*Topology, error) {
	const op = "topology.FromMesh"
	if a.TriangleVertices.Len() == 0 {
		return nil, errs.Invalid(op, "mesh has no triangles")
	}
	raw := flatten(a)

	if !findWatertight {
		return BuildFromIndicesAsIs(raw, a.VertexCount())
	}
	if a.VertexPositions.Len() == 0 {
		return nil, errs.Invalid(op, "finding watertight indices requires %s", mesh.FlagName(mesh.FlagVertexPosition))
	}
	return BuildFindingWatertightIndices(raw, a.VertexPositions)
}

// flatten copies the triangle indices into a flat index buffer. Packed
// triangle views are reinterpreted, interleaved ones are walked.
func flatten(a mesh.Attributes) []uint32 {
	if flat, err := view.Cast[uint32](a.TriangleVertices); err == nil {
		return flat.AppendTo(make([]uint32, 0, flat.Len()))
	}
	out := make([]uint32, 0, 3*a.TriangleVertices.Len())
	for _, tri := range a.TriangleVertices.All() {
		out = append(out, tri[:]...)
	}
	return out
}
