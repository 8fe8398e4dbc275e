// Package meshops implements operations that derive or modify mesh
// attributes: tangent frames, smooth normals, displacement directions,
// subdivision levels and their edge flags, bounds and transforms.
//
// Operations read and write an attribute bundle in place. Output attributes
// must already be present with the right size; GenerateAttributes resizes a
// resizable bundle and runs the right operations for missing attributes.
// Per-vertex and per-triangle passes that write disjoint indices are split
// across Options.Workers goroutines.
package meshops

import (
	"github.com/Faultbox/meshops/pkg/errs"
	"github.com/Faultbox/meshops/pkg/mesh"
	"github.com/Faultbox/meshops/pkg/topology"
	"github.com/Faultbox/meshops/pkg/view"
)

// checkAttrs checks that a is consistent, has every attribute in flags and
// that its triangles reference existing vertices.
func checkAttrs(op string, a mesh.Attributes, flags mesh.AttributeFlags) error {
	if missing := flags &^ a.Flags(); missing != 0 {
		return errs.Invalid(op, "missing attributes %s", missing)
	}
	if !a.Consistent() {
		bad := a.InvalidTriangleCounts() | a.InvalidVertexCounts()
		return errs.Invalid(op, "inconsistent attribute sizes: %s", bad)
	}
	if flags.Has(mesh.FlagTriangleVertices) {
		if err := a.ValidateIndices(); err != nil {
			return errs.Wrap(op, err)
		}
	}
	return nil
}

// checkTopology verifies that topo matches the triangles of a.
func checkTopology(op string, a mesh.Attributes, topo *topology.Topology) error {
	if topo == nil {
		return errs.Invalid(op, "topology is required")
	}
	if topo.TriangleCount() != a.TriangleCount() {
		return errs.Invalid(op, "topology has %d triangles, mesh has %d", topo.TriangleCount(), a.TriangleCount())
	}
	if topo.VertexCount() > a.VertexCount() {
		return errs.Invalid(op, "topology has %d vertices, mesh has %d", topo.VertexCount(), a.VertexCount())
	}
	return nil
}

// checkOutput returns an error unless out has one element per vertex of a.
func checkOutput[T any](op string, a mesh.Attributes, out view.View[T]) error {
	if out.Len() != a.VertexCount() {
		return errs.Invalid(op, "output has %d elements for %d vertices", out.Len(), a.VertexCount())
	}
	return nil
}
