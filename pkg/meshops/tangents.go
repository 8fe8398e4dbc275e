package meshops

import (
	"context"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meshops/pkg/errs"
	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/mesh"
	"github.com/Faultbox/meshops/pkg/parallel"
)

// TangentAlgorithm selects how vertex tangents are computed.
type TangentAlgorithm int

const (
	TangentInvalid TangentAlgorithm = iota
	TangentLengyel
	TangentLiani
	TangentMikkTSpace

	TangentDefault = TangentLengyel
)

var tangentNames = map[TangentAlgorithm]string{
	TangentLengyel:    "lengyel",
	TangentLiani:      "liani",
	TangentMikkTSpace: "mikktspace",
}

// String returns the algorithm name, or "invalid".
func (t TangentAlgorithm) String() string {
	if name, ok := tangentNames[t]; ok {
		return name
	}
	return "invalid"
}

// TangentAlgorithmFromName parses an algorithm name. "default" selects
// TangentDefault; unknown names yield TangentInvalid.
func TangentAlgorithmFromName(name string) TangentAlgorithm {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "default" || name == "" {
		return TangentDefault
	}
	for alg, n := range tangentNames {
		if n == name {
			return alg
		}
	}
	return TangentInvalid
}

// tangentInputs are the attributes tangent generation reads and writes.
const tangentInputs = mesh.FlagTriangleVertices | mesh.FlagVertexPosition | mesh.FlagVertexNormal |
	mesh.FlagVertexTexcoord | mesh.FlagVertexTangent

// GenerateTangents writes a per-vertex tangent frame into VertexTangents:
// XYZ holds the unit tangent, W the bitangent handedness.
func GenerateTangents(ctx context.Context, a mesh.Attributes, alg TangentAlgorithm, workers int) error {
	const op = "meshops.GenerateTangents"
	switch alg {
	case TangentLengyel:
	case TangentLiani, TangentMikkTSpace:
		return errs.Invalid(op, "tangent algorithm %q is not supported", alg)
	default:
		return errs.Invalid(op, "invalid tangent algorithm %d", int(alg))
	}
	if err := checkAttrs(op, a, tangentInputs); err != nil {
		return err
	}
	return lengyelTangents(ctx, a, workers)
}

// lengyelTangents accumulates per-triangle tangents and bitangents derived
// from the UV gradient onto the corner vertices, then orthogonalizes them
// against the vertex normal.
func lengyelTangents(ctx context.Context, a mesh.Attributes, workers int) error {
	n := a.VertexCount()
	tangents := make([]math.Vec3, n)
	bitangents := make([]math.Vec3, n)

	for _, tri := range a.TriangleVertices.All() {
		p0 := a.VertexPositions.At(int(tri[0]))
		p1 := a.VertexPositions.At(int(tri[1]))
		p2 := a.VertexPositions.At(int(tri[2]))
		uv0 := a.VertexTexcoords0.At(int(tri[0]))
		uv1 := a.VertexTexcoords0.At(int(tri[1]))
		uv2 := a.VertexTexcoords0.At(int(tri[2]))

		e1, e2 := p1.Sub(p0), p2.Sub(p0)
		d1, d2 := uv1.Sub(uv0), uv2.Sub(uv0)

		// Degenerate UVs contribute an unscaled direction. A subnormal
		// determinant counts as degenerate once its reciprocal overflows.
		r := float32(1)
		if det := d1.Cross(d2); math32.Abs(det) > 0 {
			if inv := 1 / det; !math32.IsInf(inv, 0) {
				r = inv
			}
		}
		t := e1.Scale(d2.Y).Sub(e2.Scale(d1.Y)).Scale(r)
		b := e2.Scale(d1.X).Sub(e1.Scale(d2.X)).Scale(r)

		for _, v := range tri {
			tangents[v] = tangents[v].Add(t)
			bitangents[v] = bitangents[v].Add(b)
		}
	}

	return parallel.For(ctx, n, workers, func(i int) {
		t, b := tangents[i], bitangents[i]
		nrm := a.VertexNormals.At(i)

		ortho := t.Sub(nrm.Scale(nrm.Dot(t))).Normalize()
		if ortho.IsZero() {
			ortho = perpendicular(nrm)
		}

		handedness := float32(-1)
		if nrm.Cross(t).Dot(b) < 0 {
			handedness = 1
		}
		a.VertexTangents.Set(i, ortho.Vec4(handedness))
	})
}

// perpendicular returns a unit vector orthogonal to n built from the two
// axes other than n's larger in-plane component.
func perpendicular(n math.Vec3) math.Vec3 {
	if math32.Abs(n.X) > math32.Abs(n.Y) {
		return math.Vec3{X: n.Z, Y: 0, Z: -n.X}.Scale(1 / math32.Sqrt(n.X*n.X+n.Z*n.Z))
	}
	return math.Vec3{X: 0, Y: -n.Z, Z: n.Y}.Scale(1 / math32.Sqrt(n.Y*n.Y+n.Z*n.Z))
}
