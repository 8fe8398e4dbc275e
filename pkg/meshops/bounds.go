package meshops

import (
	"context"

	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/mesh"
	"github.com/Faultbox/meshops/pkg/parallel"
	"github.com/Faultbox/meshops/pkg/view"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// ComputeBounds returns the bounding box of positions. ok is false when
// there are no positions.
func ComputeBounds(positions view.View[math.Vec3]) (b Bounds, ok bool) {
	if positions.Len() == 0 {
		return Bounds{}, false
	}
	b.Min = positions.At(0)
	b.Max = b.Min
	for _, p := range positions.All() {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b, true
}

// DefaultDirectionBounds is the (bias, scale) pair that leaves positions and
// directions unchanged.
var DefaultDirectionBounds = math.Vec2{X: 0, Y: 1}

// ApplyDirectionBounds folds VertexDirectionBounds into the geometry: each
// position moves by direction*bias and each direction is multiplied by
// scale. Afterwards the bounds are the identity for every vertex.
func ApplyDirectionBounds(ctx context.Context, a mesh.Attributes, workers int) error {
	const op = "meshops.ApplyDirectionBounds"
	flags := mesh.FlagVertexPosition | mesh.FlagVertexDirection | mesh.FlagVertexDirectionBounds
	if err := checkAttrs(op, a, flags); err != nil {
		return err
	}
	return parallel.For(ctx, a.VertexCount(), workers, func(i int) {
		b := a.VertexDirectionBounds.At(i)
		d := a.VertexDirections.At(i)
		a.VertexPositions.Set(i, a.VertexPositions.At(i).Add(d.Scale(b.X)))
		a.VertexDirections.Set(i, d.Scale(b.Y))
		a.VertexDirectionBounds.Set(i, DefaultDirectionBounds)
	})
}
