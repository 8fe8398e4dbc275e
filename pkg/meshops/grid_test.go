package meshops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshops/pkg/errs"
	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/mesh"
)

func TestGenerateGrid(t *testing.T) {
	d, err := GenerateGrid(2, 4)
	require.NoError(t, err)
	a := d.View()

	assert.True(t, a.Consistent())
	assert.Equal(t, 8, a.TriangleCount())
	assert.Equal(t, 9, a.VertexCount())
	assert.Equal(t, mesh.FlagTriangleVertices|mesh.FlagVertexPosition|mesh.FlagVertexNormal|mesh.FlagVertexTexcoord, a.Flags())
	assert.NoError(t, a.ValidateIndices())

	assert.Equal(t, math.Vec3{X: 4, Y: 4}, a.VertexPositions.At(8))
	assert.Equal(t, math.Vec2{X: 0.5, Y: 1}, a.VertexTexcoords0.At(7))
	assert.Equal(t, math.UVec3{0, 1, 4}, a.TriangleVertices.At(0))
	assert.Equal(t, math.UVec3{0, 4, 3}, a.TriangleVertices.At(1))

	topo := buildTopology(t, a)
	assert.Equal(t, 16, topo.EdgeCount())
	assert.Equal(t, 8, topo.BoundaryEdgeCount())

	b, ok := ComputeBounds(a.VertexPositions)
	require.True(t, ok)
	assert.Equal(t, Bounds{Max: math.Vec3{X: 4, Y: 4}}, b)
}

func TestGenerateGridRejectsEmpty(t *testing.T) {
	_, err := GenerateGrid(0, 1)
	assert.ErrorIs(t, err, errs.ErrInvalidValue)
}
