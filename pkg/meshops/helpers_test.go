package meshops

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/mesh"
	"github.com/Faultbox/meshops/pkg/topology"
	"github.com/Faultbox/meshops/pkg/view"
)

const eps = 1e-5

// quad returns a unit quad in the XY plane with UVs equal to XY and a slot
// for tangents.
func quad() mesh.Attributes {
	return mesh.Attributes{
		TriangleVertices: view.Of([]math.UVec3{{0, 1, 2}, {0, 2, 3}}),
		VertexPositions:  view.Of([]math.Vec3{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}),
		VertexNormals:    view.Of([]math.Vec3{{Z: 1}, {Z: 1}, {Z: 1}, {Z: 1}}),
		VertexTexcoords0: view.Of([]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}),
		VertexTangents:   view.Of(make([]math.Vec4, 4)),
	}
}

func buildTopology(t *testing.T, a mesh.Attributes) *topology.Topology {
	t.Helper()
	topo, err := topology.FromMesh(a, true)
	require.NoError(t, err)
	return topo
}

func assertVec3(t *testing.T, want, got math.Vec3, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, eps, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, eps, msgAndArgs...)
}

func assertUnit(t *testing.T, v math.Vec3, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, 1, v.Length(), eps, msgAndArgs...)
}

var sqrtHalf = math32.Sqrt(0.5)
