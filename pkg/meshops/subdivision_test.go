package meshops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshops/pkg/errs"
	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/mesh"
	"github.com/Faultbox/meshops/pkg/topology"
	"github.com/Faultbox/meshops/pkg/view"
)

// strip returns four triangles in a row, each sharing one edge with the
// next, with the given subdivision levels.
func strip(t *testing.T, levels ...uint16) (mesh.Attributes, *topology.Topology) {
	t.Helper()
	a := mesh.Attributes{
		TriangleVertices:          view.Of([]math.UVec3{{0, 1, 2}, {1, 3, 2}, {2, 3, 4}, {3, 5, 4}}),
		TriangleSubdivisionLevels: view.Of(levels),
		TrianglePrimitiveFlags:    view.Of(make([]uint8, 4)),
		VertexPositions: view.Of([]math.Vec3{
			{X: 0}, {X: 1}, {Y: 1}, {X: 1, Y: 1}, {Y: 2}, {X: 1, Y: 2},
		}),
	}
	topo, err := topology.FromMesh(a, false)
	require.NoError(t, err)
	return a, topo
}

func TestSanitizeSubdivisionLevels(t *testing.T) {
	tests := []struct {
		name   string
		in     []uint16
		max    int
		want   []uint16
		lowest int
	}{
		{"already valid", []uint16{1, 2, 2, 1}, 5, []uint16{1, 2, 2, 1}, 1},
		{"single peak", []uint16{5, 0, 0, 0}, 5, []uint16{1, 0, 0, 0}, 0},
		{"cascade", []uint16{4, 4, 0, 4}, 5, []uint16{2, 1, 0, 1}, 0},
		{"clamped", []uint16{5, 5, 5, 5}, 3, []uint16{3, 3, 3, 3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, topo := strip(t, tt.in...)
			lowest, err := SanitizeSubdivisionLevels(a, topo, tt.max)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.TriangleSubdivisionLevels.AppendTo(nil))
			assert.Equal(t, tt.lowest, lowest)
		})
	}
}

func TestBuildPrimitiveFlags(t *testing.T) {
	a, topo := strip(t, 2, 1, 0, 1)
	require.NoError(t, BuildPrimitiveFlags(context.Background(), a, topo, 2))

	want := []uint8{PrimitiveFlagEdge1, PrimitiveFlagEdge1, 0, PrimitiveFlagEdge2}
	assert.Equal(t, want, a.TrianglePrimitiveFlags.AppendTo(nil))
}

func TestGenerateSubdivisionLevels(t *testing.T) {
	a, _ := strip(t, 0, 0, 0, 0)

	highest, err := GenerateSubdivisionLevels(a, SubdivisionSettings{MaxLevel: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, highest)
	assert.Equal(t, []uint16{4, 4, 4, 4}, a.TriangleSubdivisionLevels.AppendTo(nil))

	// Stretch the last triangle so that the others fall one level behind.
	a.VertexPositions.Set(5, math.Vec3{X: 1, Y: 4})
	highest, err = GenerateSubdivisionLevels(a, SubdivisionSettings{MaxLevel: 4, Adaptive: true})
	require.NoError(t, err)
	assert.Equal(t, 4, highest)
	levels := a.TriangleSubdivisionLevels.AppendTo(nil)
	assert.Equal(t, []uint16{3, 3, 3, 4}, levels)

	_, err = GenerateSubdivisionLevels(a, SubdivisionSettings{MaxLevel: MaxSubdivLevel + 1})
	assert.ErrorIs(t, err, errs.ErrInvalidValue)
}
