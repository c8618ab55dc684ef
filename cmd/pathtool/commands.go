package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-path/internal/config"
	"github.com/Faultbox/midgard-path/internal/editor"
	"github.com/Faultbox/midgard-path/internal/logger"
	"github.com/Faultbox/midgard-path/internal/picking"
	"github.com/Faultbox/midgard-path/pkg/math"
	"github.com/Faultbox/midgard-path/pkg/roadpath"
)

func cmdNew(args []string) error {
	if len(args) != 7 {
		return fmt.Errorf("usage: pathtool new <path> lx ly lz rx ry rz")
	}
	left, err := parseVec3(args[1:4])
	if err != nil {
		return err
	}
	right, err := parseVec3(args[4:7])
	if err != nil {
		return err
	}
	if err := roadpath.New(left, right).SaveTo(args[0]); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", args[0])
	return nil
}

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: pathtool info <path>")
	}
	p, err := roadpath.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Path: %s\n", args[0])
	fmt.Printf("Start: left %s, right %s\n", formatVec3(p.LeftStart), formatVec3(p.RightStart))
	fmt.Printf("Segments: %d\n", len(p.Segments))
	fmt.Println()

	for i, seg := range p.Segments {
		fmt.Printf("  [%d] step %-3d controls %d/%d  end left %s right %s\n",
			i, seg.Step, len(seg.LeftControls), len(seg.RightControls),
			formatVec3(seg.LeftEnd), formatVec3(seg.RightEnd))
	}

	mesh := roadpath.Build(p, cfg.Mesh.TileWidth)
	fmt.Println()
	fmt.Printf("Mesh: %d vertices, %d triangles\n", mesh.VertexCount(), mesh.TriangleCount())
	if !mesh.IsEmpty() {
		fmt.Printf("Bounds: %s .. %s\n", formatVec3(mesh.Bounds.Min), formatVec3(mesh.Bounds.Max))
	}
	return nil
}

func cmdMesh(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("mesh", flag.ExitOnError)
	output := fs.String("o", "", "Output OBJ file (default: stdout)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: pathtool mesh [-o out.obj] <path>")
	}
	p, err := roadpath.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	mesh := roadpath.Build(p, cfg.Mesh.TileWidth)
	if *output == "" {
		return mesh.WriteOBJ(os.Stdout, "road")
	}
	if err := writeOBJFile(mesh, *output); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d vertices, %d triangles)\n", *output, mesh.VertexCount(), mesh.TriangleCount())
	return nil
}

func cmdLocate(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: pathtool locate <path> x y z")
	}
	p, err := roadpath.Load(args[0])
	if err != nil {
		return err
	}
	point, err := parseVec3(args[1:4])
	if err != nil {
		return err
	}

	res, ok := roadpath.Locate(p, point)
	if !ok {
		fmt.Println("Not found")
		return nil
	}
	fmt.Printf("Segment %d, control %d, hit %s\n", res.SegmentIndex, res.ControlIndex, formatVec3(res.HitPoint))
	return nil
}

func cmdEditAt(cfg *config.Config, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	write := fs.Bool("w", false, "Write the result back to the path file")
	fs.Parse(args)

	if fs.NArg() != 6 {
		return fmt.Errorf("usage: pathtool %s [-w] <path> seg ctrl x y z", command)
	}
	file := fs.Arg(0)
	p, err := roadpath.Load(file)
	if err != nil {
		return err
	}
	seg, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("invalid segment index %q: %w", fs.Arg(1), err)
	}
	ctrl, err := strconv.Atoi(fs.Arg(2))
	if err != nil {
		return fmt.Errorf("invalid control index %q: %w", fs.Arg(2), err)
	}
	point, err := parseVec3(fs.Args()[3:6])
	if err != nil {
		return err
	}

	if command == "split" {
		err = p.SplitAt(seg, ctrl, point)
		if err == nil && cfg.Mesh.DefaultStep > 0 {
			p.Segments[seg].Step = cfg.Mesh.DefaultStep
		}
	} else {
		err = p.InsertControlPoint(seg, ctrl, point)
	}
	if err != nil {
		return err
	}
	return emit(p, file, *write)
}

func cmdAppend(cfg *config.Config, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	write := fs.Bool("w", false, "Write the result back to the path file")
	fs.Parse(args)

	if fs.NArg() != 4 {
		return fmt.Errorf("usage: pathtool %s [-w] <path> x y z", command)
	}
	file := fs.Arg(0)
	p, err := roadpath.Load(file)
	if err != nil {
		return err
	}
	point, err := parseVec3(fs.Args()[1:4])
	if err != nil {
		return err
	}

	created := 0
	if command == "append-start" {
		p.AppendStart(point)
	} else {
		p.AppendEnd(point)
		created = len(p.Segments) - 1
	}
	if cfg.Mesh.DefaultStep > 0 {
		p.Segments[created].Step = cfg.Mesh.DefaultStep
	}
	return emit(p, file, *write)
}

func cmdClick(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("click", flag.ExitOnError)
	write := fs.Bool("w", false, "Write the result back to the path file")
	fs.Parse(args)

	if fs.NArg() != 5 {
		return fmt.Errorf("usage: pathtool click [-w] <path> x y z <action>")
	}
	point, err := parseVec3(fs.Args()[1:4])
	if err != nil {
		return err
	}
	action, err := editor.ParseAction(fs.Arg(4))
	if err != nil {
		return err
	}
	return clickAndApply(cfg, fs.Arg(0), point, action, *write)
}

func cmdPick(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("pick", flag.ExitOnError)
	write := fs.Bool("w", false, "Write the result back to the path file")
	apply := fs.String("apply", "", "Action to apply at the picked point")
	fs.Parse(args)

	if fs.NArg() != 3 {
		return fmt.Errorf("usage: pathtool pick [-w] [-apply action] <path> sx sy")
	}
	sx, err := strconv.ParseFloat(fs.Arg(1), 32)
	if err != nil {
		return fmt.Errorf("invalid screen x %q: %w", fs.Arg(1), err)
	}
	sy, err := strconv.ParseFloat(fs.Arg(2), 32)
	if err != nil {
		return fmt.Errorf("invalid screen y %q: %w", fs.Arg(2), err)
	}

	cam := cameraFromConfig(cfg)
	point, ok := cam.Pick(float32(sx), float32(sy),
		float32(cfg.Camera.ViewportWidth), float32(cfg.Camera.ViewportHeight))
	if !ok {
		return fmt.Errorf("screen point (%g, %g) does not hit the ground", sx, sy)
	}
	fmt.Printf("Ground point: %s\n", formatVec3(point))

	if *apply == "" {
		p, err := roadpath.Load(fs.Arg(0))
		if err != nil {
			return err
		}
		ed := editor.New(p, editorOptions(cfg))
		pick := ed.Click(point)
		if pick.Hit {
			fmt.Printf("Cell: segment %d, control %d\n", pick.Cell.SegmentIndex, pick.Cell.ControlIndex)
		} else {
			fmt.Println("Cell: none")
		}
		fmt.Printf("Actions: %v\n", pick.Actions())
		return nil
	}

	action, err := editor.ParseAction(*apply)
	if err != nil {
		return err
	}
	return clickAndApply(cfg, fs.Arg(0), point, action, *write)
}

func cmdConfig(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	output := fs.String("o", "", "Save the effective config to this file (.yaml or .toml)")
	fs.Parse(args)

	if *output == "" {
		fmt.Printf("%+v\n", *cfg)
		return nil
	}
	if err := cfg.SaveTo(*output); err != nil {
		return err
	}
	fmt.Printf("Saved config to %s\n", *output)
	return nil
}

func clickAndApply(cfg *config.Config, file string, point math.Vec3, action editor.Action, write bool) error {
	p, err := roadpath.Load(file)
	if err != nil {
		return err
	}
	ed := editor.New(p, editorOptions(cfg))
	if err := ed.Apply(ed.Click(point), action); err != nil {
		return err
	}
	return emit(ed.Path(), file, write)
}

func editorOptions(cfg *config.Config) editor.Options {
	return editor.Options{
		TileWidth: cfg.Mesh.TileWidth,
		Step:      cfg.Mesh.DefaultStep,
		Logger:    logger.Named("editor"),
	}
}

func cameraFromConfig(cfg *config.Config) picking.TopDownCamera {
	return picking.TopDownCamera{
		Center: math.Vec3{X: cfg.Camera.CenterX, Y: cfg.Camera.GroundY, Z: cfg.Camera.CenterZ},
		Size:   cfg.Camera.Size,
	}
}

// emit writes the edited path back to file, or prints it in the file's
// format when write is false.
func emit(p *roadpath.Path, file string, write bool) error {
	if write {
		if err := p.SaveTo(file); err != nil {
			return err
		}
		logger.Info("path saved", zap.String("file", file), zap.Int("segments", len(p.Segments)))
		fmt.Printf("Wrote %s (%d segments)\n", file, len(p.Segments))
		return nil
	}

	format, err := roadpath.FormatOf(file)
	if err != nil {
		return err
	}
	data, err := p.Marshal(format)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func writeOBJFile(mesh *roadpath.Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := mesh.WriteOBJ(f, "road"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func parseVec3(args []string) (math.Vec3, error) {
	if len(args) != 3 {
		return math.Vec3{}, fmt.Errorf("expected 3 coordinates, got %d", len(args))
	}
	var v [3]float32
	for i, s := range args {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("invalid coordinate %q: %w", s, err)
		}
		v[i] = float32(f)
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func formatVec3(v math.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
