package topology

import (
	"github.com/Faultbox/meshops/pkg/errs"
	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/view"
)

// BuildFromIndicesAsIs builds the graph for triangles whose indices are
// already watertight: corners sharing a physical vertex use the same index.
// indices holds three entries per triangle, each below vertexCount.
func BuildFromIndicesAsIs(indices []uint32, vertexCount int) (*Topology, error) {
	const op = "topology.BuildFromIndicesAsIs"
	if len(indices)%3 != 0 {
		return nil, errs.Invalid(op, "index count %d is not a multiple of 3", len(indices))
	}
	tris := make([]math.UVec3, len(indices)/3)
	for i := range tris {
		tris[i] = math.UVec3{indices[3*i], indices[3*i+1], indices[3*i+2]}
	}
	return build(op, tris, vertexCount)
}

// Build is BuildFromIndicesAsIs over a triangle view.
func Build(triangles view.View[math.UVec3], vertexCount int) (*Topology, error) {
	return build("topology.Build", triangles.AppendTo(make([]math.UVec3, 0, triangles.Len())), vertexCount)
}

// BuildFindingWatertightIndices merges vertices whose positions are
// bitwise identical before building. See WatertightIndices.
func BuildFindingWatertightIndices(indices []uint32, positions view.View[math.Vec3]) (*Topology, error) {
	unique, err := WatertightIndices(indices, positions)
	if err != nil {
		return nil, errs.Wrap("topology.BuildFindingWatertightIndices", err)
	}
	return BuildFromIndicesAsIs(unique, positions.Len())
}

// WatertightIndices rewrites indices so that all indices referencing the
// same position use the first such index seen. Positions compare by their
// exact bit pattern, so -0 and +0 stay distinct and identical NaNs match.
func WatertightIndices(indices []uint32, positions view.View[math.Vec3]) ([]uint32, error) {
	n := uint32(positions.Len())
	canonical := make(map[[3]uint32]uint32, positions.Len())
	out := make([]uint32, len(indices))

	for i, idx := range indices {
		if idx >= n {
			return nil, errs.Invalid("topology.WatertightIndices", "index %d at corner %d out of range for %d positions", idx, i, n)
		}
		key := positions.At(int(idx)).Bits()
		first, seen := canonical[key]
		if !seen {
			canonical[key] = idx
			first = idx
		}
		out[i] = first
	}
	return out, nil
}

func build(op string, tris []math.UVec3, vertexCount int) (*Topology, error) {
	if vertexCount < 0 {
		return nil, errs.Invalid(op, "negative vertex count %d", vertexCount)
	}
	nv := uint32(vertexCount)
	for i, tri := range tris {
		if tri[0] >= nv || tri[1] >= nv || tri[2] >= nv {
			return nil, errs.Invalid(op, "triangle %d %v references a vertex beyond %d", i, tri, vertexCount)
		}
		if tri.IsDegenerate() {
			return nil, errDegenerate(op, i, tri)
		}
	}

	t := &Topology{
		TriangleVertices: tris,
		TriangleEdges:    make([]math.UVec3, len(tris)),
	}

	// First pass: number edges by first appearance and count degrees.
	edgeIDs := make(map[uint64]uint32, len(tris)*3/2)
	vertexTriCounts := make([]uint32, vertexCount)
	vertexEdgeCounts := make([]uint32, vertexCount)
	var edgeTriCounts []uint32

	for i, tri := range tris {
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			key := edgeKey(a, b)
			id, ok := edgeIDs[key]
			if !ok {
				id = uint32(len(t.EdgeVertices))
				edgeIDs[key] = id
				t.EdgeVertices = append(t.EdgeVertices, math.UVec2{min(a, b), max(a, b)})
				edgeTriCounts = append(edgeTriCounts, 0)
				vertexEdgeCounts[a]++
				vertexEdgeCounts[b]++
			}
			t.TriangleEdges[i][k] = id
			edgeTriCounts[id]++
			vertexTriCounts[tri[k]]++
		}
	}

	var total uint32
	t.VertexTriangleRanges, total = prefixSum(vertexTriCounts)
	t.VertexTriangleConnections = make([]uint32, total)
	t.VertexEdgeRanges, total = prefixSum(vertexEdgeCounts)
	t.VertexEdgeConnections = make([]uint32, total)
	t.EdgeTriangleRanges, total = prefixSum(edgeTriCounts)
	t.EdgeTriangleConnections = make([]uint32, total)

	// Second pass: fill the connection arrays in the same order, reusing the
	// count arrays as write cursors.
	clear(vertexTriCounts)
	clear(vertexEdgeCounts)
	clear(edgeTriCounts)

	for e, ev := range t.EdgeVertices {
		for _, v := range ev {
			r := t.VertexEdgeRanges[v]
			t.VertexEdgeConnections[r.First+vertexEdgeCounts[v]] = uint32(e)
			vertexEdgeCounts[v]++
		}
	}
	for i, tri := range tris {
		for k := 0; k < 3; k++ {
			v := tri[k]
			r := t.VertexTriangleRanges[v]
			t.VertexTriangleConnections[r.First+vertexTriCounts[v]] = uint32(i)
			vertexTriCounts[v]++

			e := t.TriangleEdges[i][k]
			er := t.EdgeTriangleRanges[e]
			t.EdgeTriangleConnections[er.First+edgeTriCounts[e]] = uint32(i)
			edgeTriCounts[e]++
		}
	}
	return t, nil
}
