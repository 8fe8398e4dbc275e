package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshops/pkg/errs"
	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/mesh"
	"github.com/Faultbox/meshops/pkg/view"
)

func TestSingleTriangle(t *testing.T) {
	topo, err := BuildFromIndicesAsIs([]uint32{0, 1, 2}, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, topo.TriangleCount())
	assert.Equal(t, 3, topo.VertexCount())
	require.Equal(t, 3, topo.EdgeCount())
	assert.Equal(t, []math.UVec2{{0, 1}, {1, 2}, {0, 2}}, topo.EdgeVertices)
	assert.Equal(t, math.UVec3{0, 1, 2}, topo.TriangleEdges[0])

	for v := uint32(0); v < 3; v++ {
		assert.Equal(t, uint32(1), topo.VertexTriangleRanges[v].Count)
		assert.Equal(t, []uint32{0}, topo.VertexTriangles(v))
		assert.Len(t, topo.VertexEdges(v), 2)
	}
	for e := uint32(0); e < 3; e++ {
		assert.Equal(t, uint32(1), topo.EdgeTriangleRanges[e].Count)
		assert.True(t, topo.IsBoundaryEdge(e))
	}
	assert.Equal(t, 3, topo.BoundaryEdgeCount())

	_, ok := topo.TriangleNeighbor(0, 0)
	assert.False(t, ok)
}

func TestQuadSharesDiagonal(t *testing.T) {
	topo, err := BuildFromIndicesAsIs([]uint32{0, 1, 2, 0, 2, 3}, 4)
	require.NoError(t, err)

	assert.Equal(t, 5, topo.EdgeCount())
	assert.Equal(t, 4, topo.BoundaryEdgeCount())

	diag, ok := topo.FindEdge(2, 0)
	require.True(t, ok)
	assert.Equal(t, math.UVec2{0, 2}, topo.EdgeVertices[diag])
	assert.Equal(t, []uint32{0, 1}, topo.EdgeTriangles(diag))
	assert.False(t, topo.IsBoundaryEdge(diag))

	n, ok := topo.TriangleNeighbor(0, 2)
	require.True(t, ok)
	assert.Equal(t, uint32(1), n)
	n, ok = topo.TriangleNeighbor(1, 0)
	require.True(t, ok)
	assert.Equal(t, uint32(0), n)

	assert.Equal(t, []uint32{0, 1}, topo.VertexTriangles(0))
	assert.Equal(t, []uint32{0}, topo.VertexTriangles(1))

	_, ok = topo.FindEdge(1, 3)
	assert.False(t, ok)
}

func TestCSRInvariants(t *testing.T) {
	indices := []uint32{
		0, 1, 2,
		2, 1, 3,
		2, 3, 4,
		4, 3, 5,
		0, 2, 4,
	}
	topo, err := BuildFromIndicesAsIs(indices, 7)
	require.NoError(t, err)

	var corners uint32
	for v, r := range topo.VertexTriangleRanges {
		for _, tri := range topo.VertexTriangles(uint32(v)) {
			tv := topo.TriangleVertices[tri]
			assert.Contains(t, tv[:], uint32(v))
		}
		corners += r.Count
	}
	assert.Equal(t, uint32(len(indices)), corners)
	assert.Zero(t, topo.VertexTriangleRanges[6].Count, "unreferenced vertex")

	for e, ev := range topo.EdgeVertices {
		assert.Less(t, ev[0], ev[1])
		for _, tri := range topo.EdgeTriangles(uint32(e)) {
			te := topo.TriangleEdges[tri]
			assert.Contains(t, te[:], uint32(e))
		}
		for _, v := range ev {
			assert.Contains(t, topo.VertexEdges(v), uint32(e))
		}
	}
}

func TestDeterminism(t *testing.T) {
	indices := []uint32{3, 1, 0, 1, 2, 0, 4, 2, 1, 4, 3, 2}
	a, err := BuildFromIndicesAsIs(indices, 5)
	require.NoError(t, err)
	b, err := BuildFromIndicesAsIs(append([]uint32(nil), indices...), 5)
	require.NoError(t, err)

	assert.Equal(t, a.EdgeVertices, b.EdgeVertices)
	assert.Equal(t, a.VertexEdgeRanges, b.VertexEdgeRanges)
	assert.Equal(t, a.VertexEdgeConnections, b.VertexEdgeConnections)
	assert.Equal(t, a.VertexTriangleConnections, b.VertexTriangleConnections)
	assert.Equal(t, a.EdgeTriangleConnections, b.EdgeTriangleConnections)
	assert.Equal(t, math.UVec2{1, 3}, a.EdgeVertices[0], "edges are numbered by first appearance")
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		count   int
		want    error
	}{
		{"not multiple of 3", []uint32{0, 1}, 3, errs.ErrInvalidValue},
		{"out of range", []uint32{0, 1, 3}, 3, errs.ErrInvalidValue},
		{"degenerate", []uint32{0, 1, 1}, 3, errs.ErrFailure},
		{"negative count", nil, -1, errs.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFromIndicesAsIs(tt.indices, tt.count)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEmptyMesh(t *testing.T) {
	topo, err := BuildFromIndicesAsIs(nil, 2)
	require.NoError(t, err)
	assert.Zero(t, topo.EdgeCount())
	assert.Empty(t, topo.VertexTriangles(1))
}

func TestWatertightMerge(t *testing.T) {
	positions := view.Of([]math.Vec3{
		{X: 0}, {X: 1}, {X: 1, Y: 1},
		{X: 1, Y: 1}, {X: 2}, {X: 2, Y: 1},
	})
	indices := []uint32{0, 1, 2, 3, 4, 5}

	unique, err := WatertightIndices(indices, positions)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 2, 4, 5}, unique)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, indices, "input is not modified")

	topo, err := BuildFindingWatertightIndices(indices, positions)
	require.NoError(t, err)
	assert.Equal(t, 6, topo.VertexCount())
	assert.Equal(t, []uint32{0, 1}, topo.VertexTriangles(2))
	assert.Empty(t, topo.VertexTriangles(3))
}

func TestWatertightExactEquality(t *testing.T) {
	negZero := math.Vec3{X: -1}.Scale(0)
	positions := view.Of([]math.Vec3{{}, negZero, {X: 1e-7}, {}})

	unique, err := WatertightIndices([]uint32{3, 2, 1, 0}, positions)
	require.NoError(t, err)
	assert.Equal(t, []uint32{3, 2, 1, 3}, unique, "-0 and +0 differ, first seen index wins")

	_, err = WatertightIndices([]uint32{4}, positions)
	assert.ErrorIs(t, err, errs.ErrInvalidValue)
}

func TestWatertightInterleavedPositions(t *testing.T) {
	type vertex struct {
		Position math.Vec3
		UV       math.Vec2
	}
	verts := []vertex{
		{Position: math.Vec3{X: 0}, UV: math.Vec2{X: 0}},
		{Position: math.Vec3{X: 1}, UV: math.Vec2{X: 1}},
		{Position: math.Vec3{Y: 1}, UV: math.Vec2{Y: 1}},
		{Position: math.Vec3{X: 1}, UV: math.Vec2{X: 0.5}},
	}
	positions := view.Must[math.Vec3](view.FromField[vertex, math.Vec3](verts, 0))

	unique, err := WatertightIndices([]uint32{0, 1, 2, 3, 2, 1}, positions)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 1, 2, 1}, unique)
}

func TestFromMesh(t *testing.T) {
	a := mesh.Attributes{
		TriangleVertices: view.Of([]math.UVec3{{0, 1, 2}, {3, 4, 5}}),
		VertexPositions: view.Of([]math.Vec3{
			{X: 0}, {X: 1}, {Y: 1},
			{X: 1}, {X: 1, Y: 1}, {Y: 1},
		}),
	}

	split, err := FromMesh(a, false)
	require.NoError(t, err)
	assert.Equal(t, 6, split.EdgeCount())

	welded, err := FromMesh(a, true)
	require.NoError(t, err)
	assert.Equal(t, 5, welded.EdgeCount())
	assert.Equal(t, math.UVec3{1, 4, 2}, welded.TriangleVertices[1])

	_, err = FromMesh(mesh.Attributes{}, false)
	assert.ErrorIs(t, err, errs.ErrInvalidValue)
}
