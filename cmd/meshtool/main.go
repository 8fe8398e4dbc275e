// meshtool is a CLI utility for inspecting and processing YAML meshes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshops/internal/config"
	"github.com/Faultbox/meshops/internal/logger"
)

func main() {
	config.ParseFlags()
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileConfig(cfg.Logging), os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	if cfg.Processing.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Processing.Timeout))
		defer cancel()
	}

	command, rest := args[0], args[1:]
	var run func(context.Context, *config.Config, []string) error
	switch command {
	case "info":
		run = cmdInfo
	case "topology", "topo":
		run = cmdTopology
	case "generate", "gen":
		run = cmdGenerate
	case "transform":
		run = cmdTransform
	case "grid":
		run = cmdGrid
	case "merge":
		run = cmdMerge
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err := run(ctx, cfg, rest); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func fileConfig(l config.LoggingConfig) logger.FileConfig {
	if l.LogFile == "" {
		return logger.FileConfig{}
	}
	fc := logger.DefaultFileConfig(l.LogFile)
	fc.JSON = l.JSON
	return fc
}

func printUsage() {
	fmt.Println(`meshtool - mesh attribute and topology utility

Usage:
  meshtool [global options] <command> [options]

Commands:
  info <mesh.yaml>                        Show counts, attributes and bounds
  topology <mesh.yaml> [-watertight]      Build topology and print statistics
  generate <mesh.yaml> -attribs a,b -o f  Generate missing attributes
  transform <mesh.yaml> -o f [-translate x,y,z] [-scale s] [-rotate deg]
                                          Transform positions and frames
  grid [-n N] [-size S] -o f              Write a flat tessellated grid
  merge a.yaml b.yaml ... -o f            Concatenate meshes

Global options:
  -config path   -debug   -log-file path   -workers N
  -tangents name -directions mode  -subdiv N  -adaptive

Attribute names: TriangleSubdivLevels, TrianglePrimitiveFlags,
VertexNormals, VertexTangents, VertexDirections, VertexDirectionBounds
(case-insensitive; short forms: levels, flags, normals, tangents,
directions, bounds).

Examples:
  meshtool grid -n 8 -o plane.yaml
  meshtool generate plane.yaml -attribs tangents,directions -o out.yaml
  meshtool -debug topology out.yaml -watertight
  meshtool merge a.yaml b.yaml -o ab.yaml`)
}
