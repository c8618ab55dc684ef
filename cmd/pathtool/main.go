// pathtool is a CLI utility for editing road path assets and building their meshes.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/midgard-path/internal/config"
	"github.com/Faultbox/midgard-path/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	command := args[0]
	rest := args[1:]

	switch command {
	case "new":
		err = cmdNew(rest)
	case "info":
		err = cmdInfo(cfg, rest)
	case "mesh":
		err = cmdMesh(cfg, rest)
	case "locate":
		err = cmdLocate(rest)
	case "split", "insert-control":
		err = cmdEditAt(cfg, command, rest)
	case "append-start", "append-end":
		err = cmdAppend(cfg, command, rest)
	case "click":
		err = cmdClick(cfg, rest)
	case "pick":
		err = cmdPick(cfg, rest)
	case "watch":
		err = cmdWatch(cfg, rest)
	case "config":
		err = cmdConfig(cfg, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pathtool - road path editing and mesh utility

Usage:
  pathtool [global flags] <command> [options]

Global flags:
  -config <file>     Config file (.yaml or .toml)
  -debug             Debug logging
  -log-file <file>   Also log to a rotated file
  -tile-width <w>    World units per texture repeat
  -step <n>          Step for segments created by edits

Commands:
  new <path> lx ly lz rx ry rz               Create a path with only start points
  info <path>                                Show segments, counts and bounds
  mesh [-o out.obj] <path>                   Build the mesh and write OBJ
  locate <path> x y z                        Find the cell containing a point
  split [-w] <path> seg ctrl x y z           Split a segment at a point
  insert-control [-w] <path> seg ctrl x y z  Insert a control point pair
  append-start [-w] <path> x y z             Extend the path before its start
  append-end [-w] <path> x y z               Extend the path past its end
  click [-w] <path> x y z <action>           Locate a point, then apply an action
  pick [-w] [-apply action] <path> sx sy     Same as click, from screen pixels
  watch [-o out.obj] <path>                  Rebuild the OBJ whenever the path changes
  config [-o file]                           Print or save the effective config

Actions: insert-point, insert-control, add-start, add-end
Without -w, edited paths are printed to stdout instead of written back.

Examples:
  pathtool new road.yaml 0 0 0 0 0 2
  pathtool append-end -w road.yaml 10 0 1
  pathtool click -w road.yaml 5 0 1 insert-control
  pathtool -tile-width 4 mesh -o road.obj road.yaml`)
}
