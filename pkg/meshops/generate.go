package meshops

import (
	"context"

	"github.com/Faultbox/meshops/pkg/errs"
	"github.com/Faultbox/meshops/pkg/mesh"
	"github.com/Faultbox/meshops/pkg/topology"
)

// Generatable lists the attributes GenerateAttributes can create.
const Generatable = mesh.FlagTriangleSubdivLevels | mesh.FlagTrianglePrimitiveFlags |
	mesh.FlagVertexNormal | mesh.FlagVertexDirection | mesh.FlagVertexDirectionBounds |
	mesh.FlagVertexTangent

// needsTopology lists the generated attributes that read adjacency.
const needsTopology = mesh.FlagTriangleSubdivLevels | mesh.FlagTrianglePrimitiveFlags |
	mesh.FlagVertexNormal | mesh.FlagVertexDirection

// Options configure GenerateAttributes.
type Options struct {
	// Workers bounds the goroutines used per pass; 0 means GOMAXPROCS.
	Workers          int
	TangentAlgorithm TangentAlgorithm
	DirectionsMode   DirectionsMode
	Subdivision      SubdivisionSettings
	// AreaWeightedNormals weights face normals by area when generating
	// vertex normals.
	AreaWeightedNormals bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		TangentAlgorithm: TangentDefault,
		DirectionsMode:   DirectionsLinear,
		Subdivision:      SubdivisionSettings{MaxLevel: 3},
	}
}

// Result describes what GenerateAttributes did.
type Result struct {
	// Generated holds the attributes that were missing and got created.
	Generated mesh.AttributeFlags
	// MaxSubdivLevel is the highest generated subdivision level.
	MaxSubdivLevel int
	// Topology is the adjacency used, built on demand if none was given.
	Topology *topology.Topology
}

// GenerationRequiresTopology returns the attributes in required that are
// missing from existing and whose generation needs a topology.
func GenerationRequiresTopology(existing, required mesh.AttributeFlags) mesh.AttributeFlags {
	return required &^ existing & needsTopology
}

// GenerateAttributes creates every attribute in required that r lacks.
// Requesting directions implies normals. topo may be nil, in which case it
// is built from r's positions with watertight indices when needed. Present
// attributes are never overwritten.
func GenerateAttributes(ctx context.Context, r *mesh.Resizable, topo *topology.Topology, required mesh.AttributeFlags, opts Options) (Result, error) {
	const op = "meshops.GenerateAttributes"
	if required.Has(mesh.FlagVertexDirection) {
		required |= mesh.FlagVertexNormal
	}

	res := Result{Generated: required &^ r.Flags(), Topology: topo}
	if cannot := res.Generated &^ Generatable; cannot != 0 {
		return res, errs.Invalid(op, "generating %s is not supported (requested %s)", cannot, res.Generated)
	}
	if res.Generated == 0 {
		return res, nil
	}
	if err := checkAttrs(op, r.Attributes, mesh.FlagTriangleVertices|mesh.FlagVertexPosition); err != nil {
		return res, err
	}
	if err := checkGeneration(op, r.Flags()|res.Generated, res.Generated, opts); err != nil {
		return res, err
	}

	if res.Topology == nil && GenerationRequiresTopology(r.Flags(), required) != 0 {
		t, err := topology.FromMesh(r.Attributes, true)
		if err != nil {
			return res, errs.Wrap(op, err)
		}
		res.Topology = t
	}

	if err := r.Resize(res.Generated, r.TriangleCount(), r.VertexCount()); err != nil {
		return res, errs.Wrap(op, err)
	}
	a := r.Attributes
	gen := res.Generated

	if gen.Has(mesh.FlagTriangleSubdivLevels) {
		highest, err := GenerateSubdivisionLevels(a, opts.Subdivision)
		if err != nil {
			return res, err
		}
		if _, err := SanitizeSubdivisionLevels(a, res.Topology, highest); err != nil {
			return res, err
		}
		res.MaxSubdivLevel = highest
	}

	if gen.Has(mesh.FlagTrianglePrimitiveFlags) {
		if err := BuildPrimitiveFlags(ctx, a, res.Topology, opts.Workers); err != nil {
			return res, err
		}
	}

	if gen.Has(mesh.FlagVertexNormal) {
		if err := GenerateSmoothNormals(ctx, a, res.Topology, a.VertexNormals, opts.AreaWeightedNormals, opts.Workers); err != nil {
			return res, err
		}
	}

	if gen.Has(mesh.FlagVertexDirection) {
		if err := GenerateVertexDirections(ctx, a, res.Topology, a.VertexDirections, opts.DirectionsMode, opts.Workers); err != nil {
			return res, err
		}
	}

	if gen.Has(mesh.FlagVertexDirectionBounds) {
		a.VertexDirectionBounds.Fill(DefaultDirectionBounds)
	}

	if gen.Has(mesh.FlagVertexTangent) {
		if err := GenerateTangents(ctx, a, opts.TangentAlgorithm, opts.Workers); err != nil {
			return res, err
		}
	}
	return res, nil
}

// checkGeneration rejects requests that would fail halfway, before the
// bundle is resized. final is the attribute set after generation.
func checkGeneration(op string, final, gen mesh.AttributeFlags, opts Options) error {
	if gen.Has(mesh.FlagTrianglePrimitiveFlags) && !final.Has(mesh.FlagTriangleSubdivLevels) {
		return errs.Invalid(op, "%s requires %s", mesh.FlagTrianglePrimitiveFlags, mesh.FlagTriangleSubdivLevels)
	}
	if gen.Has(mesh.FlagTriangleSubdivLevels) {
		if s := opts.Subdivision; s.MaxLevel < 0 || s.MaxLevel > MaxSubdivLevel {
			return errs.Invalid(op, "max subdivision level %d outside [0,%d]", s.MaxLevel, MaxSubdivLevel)
		}
	}
	if gen.Has(mesh.FlagVertexTangent) {
		if !final.Has(mesh.FlagVertexTexcoord) {
			return errs.Invalid(op, "%s requires %s", mesh.FlagVertexTangent, mesh.FlagVertexTexcoord)
		}
		if !final.Has(mesh.FlagVertexNormal) {
			return errs.Invalid(op, "%s requires %s", mesh.FlagVertexTangent, mesh.FlagVertexNormal)
		}
		if opts.TangentAlgorithm != TangentLengyel {
			return errs.Invalid(op, "tangent algorithm %q is not supported", opts.TangentAlgorithm)
		}
	}
	return nil
}
