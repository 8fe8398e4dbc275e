package meshops

import (
	"github.com/Faultbox/meshops/pkg/errs"
	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/mesh"
)

// GenerateGrid returns a flat square grid of n x n quads in the XY plane,
// size units wide, facing +Z. Texture coordinates span [0,1] and every quad
// is split along its (x,y)-(x+1,y+1) diagonal.
func GenerateGrid(n int, size float32) (*mesh.Data, error) {
	if n <= 0 {
		return nil, errs.Invalid("meshops.GenerateGrid", "grid resolution %d must be positive", n)
	}

	side := n + 1
	d := &mesh.Data{}
	flags := mesh.FlagTriangleVertices | mesh.FlagVertexPosition | mesh.FlagVertexNormal | mesh.FlagVertexTexcoord
	if err := d.Resize(flags, 2*n*n, side*side); err != nil {
		return nil, err
	}
	v := d.View()

	step := size / float32(n)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			i := y*side + x
			v.VertexPositions.Set(i, math.Vec3{X: float32(x) * step, Y: float32(y) * step})
			v.VertexNormals.Set(i, math.Vec3{Z: 1})
			v.VertexTexcoords0.Set(i, math.Vec2{X: float32(x) / float32(n), Y: float32(y) / float32(n)})
		}
	}

	t := 0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i0 := uint32(y*side + x)
			i1 := i0 + 1
			i2 := i0 + uint32(side) + 1
			i3 := i0 + uint32(side)
			v.TriangleVertices.Set(t, math.UVec3{i0, i1, i2})
			v.TriangleVertices.Set(t+1, math.UVec3{i0, i2, i3})
			t += 2
		}
	}
	return d, nil
}
