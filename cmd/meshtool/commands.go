package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshops/internal/config"
	"github.com/Faultbox/meshops/internal/logger"
	"github.com/Faultbox/meshops/internal/meshdoc"
	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/mesh"
	"github.com/Faultbox/meshops/pkg/meshops"
	"github.com/Faultbox/meshops/pkg/topology"
)

var errUsage = errors.New("invalid usage")

func usage(format string) error {
	return fmt.Errorf("%w: usage: meshtool %s", errUsage, format)
}

func cmdInfo(_ context.Context, _ *config.Config, args []string) error {
	if len(args) != 1 {
		return usage("info <mesh.yaml>")
	}
	doc, data, err := meshdoc.Load(args[0])
	if err != nil {
		return err
	}
	a := data.View()

	printTitle(doc.Name)
	printField("Triangles", "%d", a.TriangleCount())
	printField("Vertices", "%d", a.VertexCount())
	printField("Consistent", "%s", status(a.Consistent(), fmt.Sprint(a.Consistent())))
	fmt.Println()
	printTitle("Attributes")
	a.Flags().Each(func(bit mesh.AttributeFlags) {
		printField(mesh.FlagName(bit), "%d", a.Len(bit))
	})

	if b, ok := meshops.ComputeBounds(a.VertexPositions); ok {
		fmt.Println()
		printTitle("Bounds")
		printField("Min", "%s", formatVec3(b.Min))
		printField("Max", "%s", formatVec3(b.Max))
		printField("Size", "%s", formatVec3(b.Size()))
	}

	if len(doc.Slices) > 0 {
		fmt.Println()
		printTitle("Slices")
		for _, s := range doc.Slices {
			printField(s.Name, "%s", formatSlice(s.MeshSlice()))
		}
	}
	return nil
}

func cmdTopology(_ context.Context, _ *config.Config, args []string) error {
	fs := flag.NewFlagSet("topology", flag.ContinueOnError)
	watertight := fs.Bool("watertight", false, "Merge vertices with identical positions")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return usage("topology <mesh.yaml> [-watertight]")
	}

	_, data, err := meshdoc.Load(pos[0])
	if err != nil {
		return err
	}
	done := logger.Timed("topology built", zap.String("path", pos[0]), zap.Bool("watertight", *watertight))
	topo, err := topology.FromMesh(data.View(), *watertight)
	if err != nil {
		return err
	}
	done(zap.Int("edges", topo.EdgeCount()))

	used, maxValence := 0, 0
	for v := range topo.VertexCount() {
		n := len(topo.VertexTriangles(uint32(v)))
		if n > 0 {
			used++
		}
		maxValence = max(maxValence, len(topo.VertexEdges(uint32(v))))
	}
	nonManifold := 0
	for e := range topo.EdgeCount() {
		if len(topo.EdgeTriangles(uint32(e))) > 2 {
			nonManifold++
		}
	}

	printTitle("Topology")
	printField("Triangles", "%d", topo.TriangleCount())
	printField("Vertices", "%d (%d referenced)", topo.VertexCount(), used)
	printField("Edges", "%d", topo.EdgeCount())
	printField("Boundary edges", "%d", topo.BoundaryEdgeCount())
	printField("Non-manifold edges", "%s", status(nonManifold == 0, fmt.Sprint(nonManifold)))
	printField("Max vertex valence", "%d", maxValence)
	return nil
}

func cmdGenerate(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	attribs := fs.String("attribs", "", "Comma-separated attributes to generate")
	output := fs.String("o", "", "Output mesh file")
	applyBounds := fs.Bool("apply-bounds", false, "Fold direction bounds into positions and directions")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 || *output == "" || *attribs == "" {
		return usage("generate <mesh.yaml> -attribs a,b -o out.yaml")
	}

	required, err := parseAttribs(*attribs)
	if err != nil {
		return err
	}
	if *applyBounds {
		required |= mesh.FlagVertexDirection | mesh.FlagVertexDirectionBounds
	}
	opts, err := cfg.Processing.Options()
	if err != nil {
		return err
	}

	doc, data, err := meshdoc.Load(pos[0])
	if err != nil {
		return err
	}
	done := logger.Timed("attributes generated", zap.String("path", pos[0]))
	res, err := meshops.GenerateAttributes(ctx, data.Resizable(), nil, required, opts)
	if err != nil {
		return err
	}
	done(zap.Stringer("generated", res.Generated), zap.Int("max_subdiv_level", res.MaxSubdivLevel))

	if *applyBounds {
		if err := meshops.ApplyDirectionBounds(ctx, data.View(), opts.Workers); err != nil {
			return err
		}
	}

	out := meshdoc.FromAttributes(doc.Name, data.View())
	out.Slices = doc.Slices
	if err := meshdoc.Save(*output, out); err != nil {
		return err
	}
	logger.Info("mesh written",
		zap.String("path", *output),
		zap.Stringer("generated", res.Generated))
	return nil
}

func cmdTransform(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("transform", flag.ContinueOnError)
	translate := fs.String("translate", "", "Translation x,y,z")
	scale := fs.Float64("scale", 1, "Uniform scale")
	rotate := fs.Float64("rotate", 0, "Rotation about +Z in degrees")
	output := fs.String("o", "", "Output mesh file")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 || *output == "" {
		return usage("transform <mesh.yaml> -o out.yaml [-translate x,y,z] [-scale s] [-rotate deg]")
	}

	s := float32(*scale)
	m := math.Scale(s, s, s)
	if *rotate != 0 {
		m = math.RotateAxis(math.Vec3{Z: 1}, float32(*rotate)*math32.Pi/180).Mul(m)
	}
	if *translate != "" {
		t, err := parseVec3(*translate)
		if err != nil {
			return err
		}
		m = math.Translate(t.X, t.Y, t.Z).Mul(m)
	}

	doc, data, err := meshdoc.Load(pos[0])
	if err != nil {
		return err
	}
	if err := meshops.Transform(ctx, data.View(), m, cfg.Processing.Workers); err != nil {
		return err
	}

	out := meshdoc.FromAttributes(doc.Name, data.View())
	out.Slices = doc.Slices
	if err := meshdoc.Save(*output, out); err != nil {
		return err
	}
	logger.Info("mesh written", zap.String("path", *output))
	return nil
}

func cmdGrid(_ context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("grid", flag.ContinueOnError)
	n := fs.Int("n", cfg.Grid.Resolution, "Quads per side")
	size := fs.Float64("size", float64(cfg.Grid.Size), "Side length")
	output := fs.String("o", "", "Output mesh file")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 0 || *output == "" {
		return usage("grid [-n N] [-size S] -o out.yaml")
	}

	data, err := meshops.GenerateGrid(*n, float32(*size))
	if err != nil {
		return err
	}
	if err := meshdoc.Save(*output, meshdoc.FromAttributes(fmt.Sprintf("grid%d", *n), data.View())); err != nil {
		return err
	}
	a := data.View()
	logger.Info("grid written",
		zap.String("path", *output),
		zap.Int("triangles", a.TriangleCount()),
		zap.Int("vertices", a.VertexCount()))
	return nil
}

func cmdMerge(_ context.Context, _ *config.Config, args []string) error {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	output := fs.String("o", "", "Output mesh file")
	name := fs.String("name", "merged", "Name of the merged mesh")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(pos) < 1 || *output == "" {
		return usage("merge a.yaml b.yaml ... -o out.yaml")
	}

	var set mesh.Set
	var slices []meshdoc.Slice
	for _, path := range pos {
		doc, data, err := meshdoc.Load(path)
		if err != nil {
			return err
		}
		i, err := set.AddOffset(data.View())
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		s := set.Slices[i]
		slices = append(slices, meshdoc.Slice{
			Name:           doc.Name,
			TriangleOffset: s.TriangleOffset,
			TriangleCount:  s.TriangleCount,
			VertexOffset:   s.VertexOffset,
			VertexCount:    s.VertexCount,
		})
		printField(doc.Name, "%s", formatSlice(s))
	}

	flat := meshdoc.FromAttributes(*name, set.Flat.View())
	flat.Slices = slices
	if err := meshdoc.Save(*output, flat); err != nil {
		return err
	}
	logger.Info("meshes merged",
		zap.String("path", *output),
		zap.Int("meshes", set.Len()),
		zap.Stringer("attributes", set.Flat.Flags()))
	return nil
}

func formatVec3(v math.Vec3) string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

func formatSlice(s mesh.MeshSlice) string {
	return fmt.Sprintf("triangles [%d,+%d) vertices [%d,+%d)",
		s.TriangleOffset, s.TriangleCount, s.VertexOffset, s.VertexCount)
}
