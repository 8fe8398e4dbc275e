package meshops

import (
	"context"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meshops/pkg/errs"
	"github.com/Faultbox/meshops/pkg/mesh"
	"github.com/Faultbox/meshops/pkg/parallel"
	"github.com/Faultbox/meshops/pkg/topology"
)

// MaxSubdivLevel is the highest subdivision level a triangle may carry.
const MaxSubdivLevel = 5

// SubdivisionSettings control GenerateSubdivisionLevels.
type SubdivisionSettings struct {
	// MaxLevel caps the generated levels.
	MaxLevel int
	// Adaptive scales each triangle's level with its longest edge relative
	// to the longest edge of the mesh. Otherwise every triangle gets
	// MaxLevel.
	Adaptive bool
	// Bias is added to adaptive levels before clamping.
	Bias int
}

// GenerateSubdivisionLevels fills TriangleSubdivisionLevels and returns the
// highest level written.
func GenerateSubdivisionLevels(a mesh.Attributes, s SubdivisionSettings) (int, error) {
	const op = "meshops.GenerateSubdivisionLevels"
	if s.MaxLevel < 0 || s.MaxLevel > MaxSubdivLevel {
		return 0, errs.Invalid(op, "max level %d outside [0,%d]", s.MaxLevel, MaxSubdivLevel)
	}
	flags := mesh.FlagTriangleVertices | mesh.FlagTriangleSubdivLevels
	if s.Adaptive {
		flags |= mesh.FlagVertexPosition
	}
	if err := checkAttrs(op, a, flags); err != nil {
		return 0, err
	}

	if !s.Adaptive {
		a.TriangleSubdivisionLevels.Fill(uint16(s.MaxLevel))
		return s.MaxLevel, nil
	}

	longest := make([]float32, a.TriangleCount())
	var meshLongest float32
	for t, tri := range a.TriangleVertices.All() {
		p0 := a.VertexPositions.At(int(tri[0]))
		p1 := a.VertexPositions.At(int(tri[1]))
		p2 := a.VertexPositions.At(int(tri[2]))
		l := max(p0.Distance(p1), p1.Distance(p2), p2.Distance(p0))
		longest[t] = l
		meshLongest = max(meshLongest, l)
	}

	highest := 0
	for t, l := range longest {
		level := 0
		if l > 0 && meshLongest > 0 {
			level = s.MaxLevel + int(math32.Round(math32.Log2(l/meshLongest))) + s.Bias
			level = max(0, min(s.MaxLevel, level))
		}
		a.TriangleSubdivisionLevels.Set(t, uint16(level))
		highest = max(highest, level)
	}
	return highest, nil
}

// SanitizeSubdivisionLevels clamps levels to maxLevel and lowers them until
// triangles sharing an edge differ by at most one level. It returns the
// lowest level in the mesh.
func SanitizeSubdivisionLevels(a mesh.Attributes, topo *topology.Topology, maxLevel int) (int, error) {
	const op = "meshops.SanitizeSubdivisionLevels"
	if err := checkAttrs(op, a, mesh.FlagTriangleSubdivLevels); err != nil {
		return 0, err
	}
	if err := checkTopology(op, a, topo); err != nil {
		return 0, err
	}
	if maxLevel < 0 {
		return 0, errs.Invalid(op, "negative max level %d", maxLevel)
	}

	levels := a.TriangleSubdivisionLevels.AppendTo(nil)
	for i, l := range levels {
		levels[i] = min(l, uint16(maxLevel))
	}

	// Levels only ever decrease, so this terminates.
	for changed := true; changed; {
		changed = false
		for e := range topo.EdgeCount() {
			tris := topo.EdgeTriangles(uint32(e))
			for i := 0; i < len(tris); i++ {
				for j := i + 1; j < len(tris); j++ {
					ta, tb := tris[i], tris[j]
					if levels[ta] > levels[tb]+1 {
						levels[ta] = levels[tb] + 1
						changed = true
					} else if levels[tb] > levels[ta]+1 {
						levels[tb] = levels[ta] + 1
						changed = true
					}
				}
			}
		}
	}

	lowest := maxLevel
	for i, l := range levels {
		a.TriangleSubdivisionLevels.Set(i, l)
		lowest = min(lowest, int(l))
	}
	if len(levels) == 0 {
		lowest = 0
	}
	return lowest, nil
}

// Primitive flag bits. Bit k marks triangle edge k, the edge from corner k
// to corner k+1, as bordering a triangle one subdivision level lower.
const (
	PrimitiveFlagEdge0 uint8 = 1 << iota
	PrimitiveFlagEdge1
	PrimitiveFlagEdge2
)

// BuildPrimitiveFlags writes TrianglePrimitiveFlags from the subdivision
// levels: bit k is set when the neighbour across edge k has a lower level.
func BuildPrimitiveFlags(ctx context.Context, a mesh.Attributes, topo *topology.Topology, workers int) error {
	const op = "meshops.BuildPrimitiveFlags"
	if err := checkAttrs(op, a, mesh.FlagTriangleSubdivLevels|mesh.FlagTrianglePrimitiveFlags); err != nil {
		return err
	}
	if err := checkTopology(op, a, topo); err != nil {
		return err
	}

	levels := a.TriangleSubdivisionLevels
	return parallel.For(ctx, a.TriangleCount(), workers, func(t int) {
		var flags uint8
		level := levels.At(t)
		for k := 0; k < 3; k++ {
			n, ok := topo.TriangleNeighbor(uint32(t), k)
			if ok && levels.At(int(n)) < level {
				flags |= 1 << k
			}
		}
		a.TrianglePrimitiveFlags.Set(t, flags)
	})
}
