package meshops

import (
	"context"

	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/mesh"
	"github.com/Faultbox/meshops/pkg/parallel"
)

// Transform applies m to every present vertex attribute: positions as
// points, normals and directions by the inverse transpose, tangents by m.
// Directions keep their length, normals and tangents are renormalized, and
// a mirroring m flips the tangent handedness.
func Transform(ctx context.Context, a mesh.Attributes, m math.Mat4, workers int) error {
	const op = "meshops.Transform"
	if err := checkAttrs(op, a, 0); err != nil {
		return err
	}

	normalMatrix := m.NormalMatrix()
	flip := determinant3(m) < 0

	return parallel.For(ctx, a.VertexCount(), workers, func(i int) {
		if a.VertexPositions.Len() > 0 {
			a.VertexPositions.Set(i, m.TransformPoint(a.VertexPositions.At(i)))
		}
		if a.VertexNormals.Len() > 0 {
			a.VertexNormals.Set(i, normalMatrix.TransformDirection(a.VertexNormals.At(i)).Normalize())
		}
		if a.VertexDirections.Len() > 0 {
			d := a.VertexDirections.At(i)
			length := d.Length()
			a.VertexDirections.Set(i, normalMatrix.TransformDirection(d).Normalize().Scale(length))
		}
		if a.VertexTangents.Len() > 0 {
			t := a.VertexTangents.At(i)
			w := t.W
			if flip {
				w = -w
			}
			a.VertexTangents.Set(i, m.TransformDirection(t.XYZ()).Normalize().Vec4(w))
		}
	})
}

// determinant3 returns the determinant of the upper-left 3x3 block of the
// column-major matrix m.
func determinant3(m math.Mat4) float32 {
	c0 := math.Vec3{X: m[0], Y: m[1], Z: m[2]}
	c1 := math.Vec3{X: m[4], Y: m[5], Z: m[6]}
	c2 := math.Vec3{X: m[8], Y: m[9], Z: m[10]}
	return c0.Dot(c1.Cross(c2))
}
