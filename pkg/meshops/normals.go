package meshops

import (
	"context"

	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/mesh"
	"github.com/Faultbox/meshops/pkg/parallel"
	"github.com/Faultbox/meshops/pkg/topology"
	"github.com/Faultbox/meshops/pkg/view"
)

// GenerateSmoothNormals writes smooth per-vertex normals into out, which
// must have one element per vertex. Face normals are summed onto the
// watertight vertices of topo, weighted by triangle area when areaWeighted
// is set, normalized and copied to split vertices. Vertices without a
// non-degenerate triangle get (0, 0, 1).
func GenerateSmoothNormals(ctx context.Context, a mesh.Attributes, topo *topology.Topology, out view.View[math.Vec3], areaWeighted bool, workers int) error {
	const op = "meshops.GenerateSmoothNormals"
	if err := checkAttrs(op, a, mesh.FlagTriangleVertices|mesh.FlagVertexPosition); err != nil {
		return err
	}
	if err := checkTopology(op, a, topo); err != nil {
		return err
	}
	if err := checkOutput(op, a, out); err != nil {
		return err
	}

	sums := make([]math.Vec3, a.VertexCount())
	for _, wt := range topo.TriangleVertices {
		if wt.IsDegenerate() {
			continue
		}
		n := FaceNormal(a.VertexPositions, wt)
		if !areaWeighted {
			n = n.Normalize()
		}
		for _, v := range wt {
			sums[v] = sums[v].Add(n)
		}
	}

	err := parallel.For(ctx, len(sums), workers, func(i int) {
		n := sums[i].Normalize()
		if n.IsZero() {
			n = math.Vec3{Z: 1}
		}
		sums[i] = n
	})
	if err != nil {
		return err
	}

	for i := range sums {
		out.Set(i, sums[i])
	}
	for t, tri := range a.TriangleVertices.All() {
		wt := topo.TriangleVertices[t]
		for k := 0; k < 3; k++ {
			if tri[k] != wt[k] {
				out.Set(int(tri[k]), sums[wt[k]])
			}
		}
	}
	return nil
}

// FaceNormal returns the cross product of the triangle's edges, whose
// length is twice the triangle area.
func FaceNormal(positions view.View[math.Vec3], tri math.UVec3) math.Vec3 {
	p0 := positions.At(int(tri[0]))
	p1 := positions.At(int(tri[1]))
	p2 := positions.At(int(tri[2]))
	return p1.Sub(p0).Cross(p2.Sub(p0))
}
