// Package editor adapts the path core to an interactive front end: a click is
// located on the path, the user picks one of the offered edits, the edit is
// applied and the mesh is rebuilt.
package editor

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-path/pkg/math"
	"github.com/Faultbox/midgard-path/pkg/roadpath"
)

// ErrActionNotOffered is returned when an action does not match the pick,
// such as inserting a control point after clicking outside the path.
var ErrActionNotOffered = errors.New("action not offered for this pick")

// Pick is the result of clicking on the ground plane.
type Pick struct {
	Point math.Vec3
	Hit   bool                  // Point lies inside a path cell
	Cell  roadpath.LocateResult // Valid only when Hit
}

// Actions lists the edits available for this pick.
func (p Pick) Actions() []Action {
	if p.Hit {
		return []Action{ActionInsertPoint, ActionInsertControlPoint}
	}
	return []Action{ActionAddStart, ActionAddEnd}
}

// Options configures an Editor.
type Options struct {
	TileWidth float32     // Texture tiling for rebuilt meshes
	Step      int         // Step given to segments created by edits; 0 keeps the default
	Logger    *zap.Logger // Nil disables logging
}

// Editor owns a path and keeps its mesh current across edits.
// It is not safe for concurrent use.
type Editor struct {
	path      *roadpath.Path
	mesh      *roadpath.Mesh
	tileWidth float32
	step      int
	revision  int
	log       *zap.Logger
}

// New creates an editor for the path and builds its initial mesh.
func New(p *roadpath.Path, opts Options) *Editor {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	e := &Editor{
		path:      p,
		tileWidth: opts.TileWidth,
		step:      opts.Step,
		log:       log,
	}
	e.rebuild()
	return e
}

// Path returns the edited path.
func (e *Editor) Path() *roadpath.Path {
	return e.path
}

// Mesh returns the mesh from the most recent rebuild.
func (e *Editor) Mesh() *roadpath.Mesh {
	return e.mesh
}

// Revision counts successful edits and reloads.
func (e *Editor) Revision() int {
	return e.revision
}

// SetPath replaces the edited path, for example after the asset changed on disk.
func (e *Editor) SetPath(p *roadpath.Path) {
	e.path = p
	e.revision++
	e.rebuild()
}

// Click locates a ground point on the path. It never modifies the path.
func (e *Editor) Click(point math.Vec3) Pick {
	cell, ok := roadpath.Locate(e.path, point)
	pick := Pick{Point: point, Hit: ok, Cell: cell}

	if ok {
		e.log.Debug("click inside path",
			zap.Int("segment", cell.SegmentIndex),
			zap.Int("control", cell.ControlIndex))
	} else {
		e.log.Debug("click outside path", zap.Any("point", point))
	}
	return pick
}

// Apply performs the chosen action for a pick and rebuilds the mesh.
// Index errors mean the path changed since the pick was made; they are
// logged and returned with the path untouched, and the caller should click again.
func (e *Editor) Apply(pick Pick, action Action) error {
	if !slices.Contains(pick.Actions(), action) {
		return fmt.Errorf("%s: %w", action, ErrActionNotOffered)
	}

	created := -1
	switch action {
	case ActionInsertPoint:
		if err := e.path.SplitAt(pick.Cell.SegmentIndex, pick.Cell.ControlIndex, pick.Point); err != nil {
			return e.rejected(action, err)
		}
		created = pick.Cell.SegmentIndex
	case ActionInsertControlPoint:
		if err := e.path.InsertControlPoint(pick.Cell.SegmentIndex, pick.Cell.ControlIndex, pick.Point); err != nil {
			return e.rejected(action, err)
		}
	case ActionAddStart:
		e.path.AppendStart(pick.Point)
		created = 0
	case ActionAddEnd:
		e.path.AppendEnd(pick.Point)
		created = len(e.path.Segments) - 1
	}

	if created >= 0 && e.step > 0 {
		e.path.Segments[created].Step = e.step
	}

	e.revision++
	e.rebuild()

	e.log.Info("path edited",
		zap.Stringer("action", action),
		zap.Int("revision", e.revision),
		zap.Int("segments", len(e.path.Segments)),
		zap.Int("triangles", e.mesh.TriangleCount()))
	return nil
}

func (e *Editor) rejected(action Action, err error) error {
	var idxErr *roadpath.IndexError
	if errors.As(err, &idxErr) {
		e.log.Error("edit rejected, path changed since pick",
			zap.Stringer("action", action),
			zap.Int("segment", idxErr.SegmentIndex),
			zap.Int("control", idxErr.ControlIndex),
			zap.Int("segments", idxErr.SegmentCount),
			zap.Error(err))
	}
	return fmt.Errorf("%s: %w", action, err)
}

func (e *Editor) rebuild() {
	e.mesh = roadpath.Build(e.path, e.tileWidth)
	e.log.Debug("mesh rebuilt",
		zap.Int("vertices", e.mesh.VertexCount()),
		zap.Int("triangles", e.mesh.TriangleCount()))
}
