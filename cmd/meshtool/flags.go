package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/meshops/pkg/math"
	"github.com/Faultbox/meshops/pkg/mesh"
)

// parseArgs parses fs flags that may appear before, between or after
// positional arguments, and returns the positional ones.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

var attribAliases = map[string]mesh.AttributeFlags{
	"levels":     mesh.FlagTriangleSubdivLevels,
	"flags":      mesh.FlagTrianglePrimitiveFlags,
	"normals":    mesh.FlagVertexNormal,
	"tangents":   mesh.FlagVertexTangent,
	"directions": mesh.FlagVertexDirection,
	"bounds":     mesh.FlagVertexDirectionBounds,
}

// parseAttribs parses a comma-separated list of attribute names.
func parseAttribs(s string) (mesh.AttributeFlags, error) {
	var flags mesh.AttributeFlags
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if f, ok := attribAliases[strings.ToLower(name)]; ok {
			flags |= f
			continue
		}
		f, ok := mesh.FlagFromName(name)
		if !ok {
			return 0, fmt.Errorf("unknown attribute %q", name)
		}
		flags |= f
	}
	if flags == 0 {
		return 0, fmt.Errorf("no attributes given")
	}
	return flags, nil
}

// parseVec3 parses "x,y,z".
func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var c [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		c[i] = float32(f)
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}
