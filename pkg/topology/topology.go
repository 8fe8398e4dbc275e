// Package topology derives triangle, edge and vertex adjacency from index
// buffers.
//
// Adjacency lists are stored in compressed sparse row form: a Range per
// vertex or edge points into a flat connection array. Build visits the
// triangles twice, first to number edges and count degrees and then to fill
// the connection arrays, so identical input always yields identical ids.
package topology

import (
	"github.com/Faultbox/meshops/pkg/errs"
	"github.com/Faultbox/meshops/pkg/math"
)

// Range is a window [First, First+Count) into a connection array.
type Range struct {
	First uint32
	Count uint32
}

// Topology is the adjacency graph of one mesh. It is read-only once built.
type Topology struct {
	// TriangleVertices holds the watertight corner indices of each triangle.
	TriangleVertices []math.UVec3
	// TriangleEdges holds the edge ids of corners (0,1), (1,2) and (2,0).
	TriangleEdges []math.UVec3

	VertexEdgeRanges      []Range
	VertexEdgeConnections []uint32

	VertexTriangleRanges      []Range
	VertexTriangleConnections []uint32

	// EdgeVertices holds each edge's endpoints, lower index first.
	EdgeVertices []math.UVec2

	EdgeTriangleRanges      []Range
	EdgeTriangleConnections []uint32
}

// TriangleCount returns the number of triangles.
func (t *Topology) TriangleCount() int { return len(t.TriangleVertices) }

// VertexCount returns the number of vertices the graph was built for.
func (t *Topology) VertexCount() int { return len(t.VertexTriangleRanges) }

// EdgeCount returns the number of unique edges.
func (t *Topology) EdgeCount() int { return len(t.EdgeVertices) }

// VertexTriangles returns the triangles using vertex v.
func (t *Topology) VertexTriangles(v uint32) []uint32 {
	return window(t.VertexTriangleConnections, t.VertexTriangleRanges[v])
}

// VertexEdges returns the edges touching vertex v.
func (t *Topology) VertexEdges(v uint32) []uint32 {
	return window(t.VertexEdgeConnections, t.VertexEdgeRanges[v])
}

// EdgeTriangles returns the triangles sharing edge e.
func (t *Topology) EdgeTriangles(e uint32) []uint32 {
	return window(t.EdgeTriangleConnections, t.EdgeTriangleRanges[e])
}

// IsBoundaryEdge reports whether edge e belongs to a single triangle.
func (t *Topology) IsBoundaryEdge(e uint32) bool {
	return t.EdgeTriangleRanges[e].Count == 1
}

// BoundaryEdgeCount returns the number of boundary edges.
func (t *Topology) BoundaryEdgeCount() int {
	n := 0
	for _, r := range t.EdgeTriangleRanges {
		if r.Count == 1 {
			n++
		}
	}
	return n
}

// TriangleNeighbor returns the triangle across edge k (0, 1 or 2) of
// triangle tri. ok is false on boundary and non-manifold edges.
func (t *Topology) TriangleNeighbor(tri uint32, k int) (neighbor uint32, ok bool) {
	tris := t.EdgeTriangles(t.TriangleEdges[tri][k])
	if len(tris) != 2 {
		return 0, false
	}
	if tris[0] == tri {
		return tris[1], true
	}
	return tris[0], true
}

// FindEdge returns the id of the edge between vertices a and b.
func (t *Topology) FindEdge(a, b uint32) (uint32, bool) {
	key := math.UVec2{min(a, b), max(a, b)}
	for _, e := range t.VertexEdges(a) {
		if t.EdgeVertices[e] == key {
			return e, true
		}
	}
	return 0, false
}

// IsTriangleDegenerate reports whether triangle tri repeats a vertex.
func (t *Topology) IsTriangleDegenerate(tri uint32) bool {
	return t.TriangleVertices[tri].IsDegenerate()
}

func window(conn []uint32, r Range) []uint32 {
	return conn[r.First : r.First+r.Count : r.First+r.Count]
}

// edgeKey packs an undirected edge into a map key.
func edgeKey(a, b uint32) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}

// prefixSum turns per-element counts into ranges and returns the total.
func prefixSum(counts []uint32) ([]Range, uint32) {
	ranges := make([]Range, len(counts))
	var first uint32
	for i, c := range counts {
		ranges[i] = Range{First: first, Count: c}
		first += c
	}
	return ranges, first
}

func errDegenerate(op string, tri int, v math.UVec3) error {
	return errs.Fail(op, "triangle %d %v is degenerate", tri, v)
}
