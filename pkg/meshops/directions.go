package meshops

import (
	"context"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meshops/pkg/errs"
	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/mesh"
	"github.com/Faultbox/meshops/pkg/parallel"
	"github.com/Faultbox/meshops/pkg/topology"
	"github.com/Faultbox/meshops/pkg/view"
)

// DirectionsMode selects how the normals meeting at a watertight vertex
// are reduced to one displacement direction.
type DirectionsMode int

const (
	// DirectionsLinear takes the angle-weighted average of the normals.
	DirectionsLinear DirectionsMode = iota
	// DirectionsNormalizedLinear normalizes the linear average, which
	// expands the corners of welded seams.
	DirectionsNormalizedLinear
	// DirectionsTangent intersects the normals as planes at their length,
	// keeping hard edges sharp.
	DirectionsTangent
)

// minWeight is the smallest normal float32.
const minWeight float32 = 1.17549435e-38

var directionsNames = []string{"linear", "normalized_linear", "tangent"}

func (m DirectionsMode) String() string {
	if m >= 0 && int(m) < len(directionsNames) {
		return directionsNames[m]
	}
	return "invalid"
}

// ParseDirectionsMode parses a mode name as returned by String.
func ParseDirectionsMode(name string) (DirectionsMode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range directionsNames {
		if n == name {
			return DirectionsMode(i), nil
		}
	}
	return 0, errs.Invalid("meshops.ParseDirectionsMode", "unknown directions mode %q", name)
}

// GenerateVertexDirections derives per-vertex displacement directions from
// the vertex normals and writes them to out, which must have one element
// per vertex and may alias VertexDirections.
//
// Normals of the corners meeting at each watertight vertex of topo are
// combined, weighted by the corner angle; degenerate triangles are skipped.
// The result is then copied to every split vertex sharing that position.
// topo must have been built from a's triangles.
func GenerateVertexDirections(ctx context.Context, a mesh.Attributes, topo *topology.Topology, out view.View[math.Vec3], mode DirectionsMode, workers int) error {
	const op = "meshops.GenerateVertexDirections"
	if err := checkAttrs(op, a, mesh.FlagTriangleVertices|mesh.FlagVertexPosition|mesh.FlagVertexNormal); err != nil {
		return err
	}
	if err := checkTopology(op, a, topo); err != nil {
		return err
	}
	if err := checkOutput(op, a, out); err != nil {
		return err
	}
	if mode < DirectionsLinear || mode > DirectionsTangent {
		return errs.Invalid(op, "invalid directions mode %d", int(mode))
	}

	out.Fill(math.Vec3{})
	weights := make([]float32, out.Len())

	for t, tri := range a.TriangleVertices.All() {
		wt := topo.TriangleVertices[t]
		if wt.IsDegenerate() {
			continue
		}
		for k := 0; k < 3; k++ {
			v, vw := tri[k], wt[k]
			weight := cornerAngle(a.VertexPositions, topo, uint32(t), k)
			normal := a.VertexNormals.At(int(v))
			acc := out.At(int(vw))

			switch mode {
			case DirectionsTangent:
				out.Set(int(vw), intersectPlanes(acc, normal))
			default:
				total := weights[vw] + weight
				out.Set(int(vw), acc.Scale(weights[vw]/total).Add(normal.Scale(weight/total)))
				weights[vw] = total
			}
		}
	}

	// Copy watertight results back to split vertices.
	for t, tri := range a.TriangleVertices.All() {
		wt := topo.TriangleVertices[t]
		if wt.IsDegenerate() {
			continue
		}
		for k := 0; k < 3; k++ {
			if tri[k] != wt[k] {
				out.Set(int(tri[k]), out.At(int(wt[k])))
			}
		}
	}

	if mode != DirectionsNormalizedLinear {
		return nil
	}
	return parallel.For(ctx, out.Len(), workers, func(i int) {
		out.Set(i, out.At(i).Normalize())
	})
}

// cornerAngle returns the angle at corner k of triangle t, measured
// between the two topology edges meeting there. It is never zero so that
// weights stay finite.
func cornerAngle(positions view.View[math.Vec3], topo *topology.Topology, t uint32, k int) float32 {
	vw := topo.TriangleVertices[t][k]
	edges := topo.TriangleEdges[t]
	p := positions.At(int(vw))

	var dirs [2]math.Vec3
	for i, e := range [2]uint32{edges[k], edges[(k+2)%3]} {
		ev := topo.EdgeVertices[e]
		other := ev[0]
		if other == vw {
			other = ev[1]
		}
		dirs[i] = p.Sub(positions.At(int(other))).Normalize()
	}

	dot := max(-1, min(1, dirs[0].Dot(dirs[1])))
	return max(minWeight, math32.Acos(dot))
}

// intersectPlanes combines the running direction acc with normal by
// intersecting the planes they define at their lengths.
func intersectPlanes(acc, normal math.Vec3) math.Vec3 {
	length := acc.Length()
	if length < 1e-6 {
		return normal
	}
	n1 := acc.Scale(1 / length)
	n2 := normal
	n3 := n1.Cross(n2).Normalize()
	det := n1.Dot(n2.Cross(n3))
	if det < 1e-6 {
		return normal
	}
	return n2.Cross(n3).Scale(length).Add(n3.Cross(n1)).Scale(1 / det)
}
