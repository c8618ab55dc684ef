package roadpath

import (
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-path/pkg/math"
)

// Path is the authoritative road definition: two rail start points followed by
// an ordered chain of segments. An empty chain is a valid, zero-length path.
//
// Path is not safe for concurrent mutation; callers serialize edits.
type Path struct {
	LeftStart  math.Vec3  `yaml:"left_start" toml:"left_start"`
	RightStart math.Vec3  `yaml:"right_start" toml:"right_start"`
	Segments   []*Segment `yaml:"segments" toml:"segments"`
}

// New creates an empty path with the given rail start points.
func New(leftStart, rightStart math.Vec3) *Path {
	return &Path{
		LeftStart:  leftStart,
		RightStart: rightStart,
	}
}

// Anchors returns the predecessor anchors of segment i: the previous
// segment's end points, or the path start points for i == 0.
// i == len(Segments) yields the path's terminal anchors.
func (p *Path) Anchors(i int) (left, right math.Vec3) {
	if i <= 0 || len(p.Segments) == 0 {
		return p.LeftStart, p.RightStart
	}
	prev := p.Segments[min(i, len(p.Segments))-1]
	return prev.LeftEnd, prev.RightEnd
}

// EndAnchors returns the anchors the path currently terminates at.
func (p *Path) EndAnchors() (left, right math.Vec3) {
	return p.Anchors(len(p.Segments))
}

// ControlPoints returns every control point of each rail in path order.
func (p *Path) ControlPoints() (left, right []math.Vec3) {
	for _, s := range p.Segments {
		left = append(left, s.LeftControls...)
		right = append(right, s.RightControls...)
	}
	return left, right
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	c := &Path{
		LeftStart:  p.LeftStart,
		RightStart: p.RightStart,
		Segments:   make([]*Segment, len(p.Segments)),
	}
	for i, s := range p.Segments {
		c.Segments[i] = s.clone()
	}
	return c
}

// Validate reports structural problems that would make the path unusable.
// A zero step is degenerate but allowed.
func (p *Path) Validate() error {
	var err error
	for i, s := range p.Segments {
		if s == nil {
			err = multierr.Append(err, fmt.Errorf("segment %d: missing", i))
			continue
		}
		if s.Step < 0 {
			err = multierr.Append(err, fmt.Errorf("segment %d: negative step %d", i, s.Step))
		}
	}
	return err
}

// InsertSegment inserts a control-free segment at index at (0..len(Segments))
// whose end anchors sit at pick, offset by half the rail separation found at
// the insertion point so the road keeps its local width.
func (p *Path) InsertSegment(at int, pick math.Vec3) error {
	if at < 0 || at > len(p.Segments) {
		return &IndexError{Op: "insert segment", SegmentIndex: at, SegmentCount: len(p.Segments)}
	}
	var offset math.Vec3
	if at < len(p.Segments) {
		offset = p.Segments[at].Offset()
	} else {
		offset = halfSpan(p.EndAnchors())
	}
	p.Segments = slices.Insert(p.Segments, at, NewSegment(pick.Add(offset), pick.Sub(offset)))
	return nil
}

// SplitAt splits segment segmentIndex at pick. A new segment ending at pick is
// inserted before it and takes over the first controlIndex control points of
// each rail; the original keeps the rest. No control point is created or lost.
// A rail with fewer than controlIndex control points hands over all of them.
func (p *Path) SplitAt(segmentIndex, controlIndex int, pick math.Vec3) error {
	s, err := p.target("split", segmentIndex, controlIndex)
	if err != nil {
		return err
	}

	nl := min(controlIndex, len(s.LeftControls))
	nr := min(controlIndex, len(s.RightControls))

	offset := s.Offset()
	ns := NewSegment(pick.Add(offset), pick.Sub(offset))
	ns.LeftControls = slices.Clone(s.LeftControls[:nl])
	ns.RightControls = slices.Clone(s.RightControls[:nr])

	s.LeftControls = slices.Clone(s.LeftControls[nl:])
	s.RightControls = slices.Clone(s.RightControls[nr:])
	p.Segments = slices.Insert(p.Segments, segmentIndex, ns)
	return nil
}

// InsertControlPoint inserts pick+offset into the left rail and pick-offset
// into the right rail of segment segmentIndex at controlIndex. A rail shorter
// than controlIndex gets the point appended instead.
func (p *Path) InsertControlPoint(segmentIndex, controlIndex int, pick math.Vec3) error {
	s, err := p.target("insert control point", segmentIndex, controlIndex)
	if err != nil {
		return err
	}

	offset := s.Offset()
	s.LeftControls = insertOrAppend(s.LeftControls, controlIndex, pick.Add(offset))
	s.RightControls = insertOrAppend(s.RightControls, controlIndex, pick.Sub(offset))
	return nil
}

// AppendStart extends the path backwards to pick. The current start anchors
// become the end of a new first segment and the start moves to pick.
func (p *Path) AppendStart(pick math.Vec3) {
	offset := halfSpan(p.LeftStart, p.RightStart)
	p.Segments = slices.Insert(p.Segments, 0, NewSegment(p.LeftStart, p.RightStart))
	p.LeftStart = pick.Add(offset)
	p.RightStart = pick.Sub(offset)
}

// AppendEnd extends the path forwards with a new terminal segment ending at pick.
func (p *Path) AppendEnd(pick math.Vec3) {
	offset := halfSpan(p.EndAnchors())
	p.Segments = append(p.Segments, NewSegment(pick.Add(offset), pick.Sub(offset)))
}

// target returns the segment an edit applies to, or an IndexError when the
// segment does not exist or controlIndex is past both rails.
func (p *Path) target(op string, segmentIndex, controlIndex int) (*Segment, error) {
	if segmentIndex < 0 || segmentIndex >= len(p.Segments) {
		return nil, &IndexError{
			Op:           op,
			SegmentIndex: segmentIndex,
			ControlIndex: controlIndex,
			SegmentCount: len(p.Segments),
		}
	}
	s := p.Segments[segmentIndex]
	if controlIndex < 0 || (controlIndex > len(s.LeftControls) && controlIndex > len(s.RightControls)) {
		return nil, &IndexError{
			Op:           op,
			SegmentIndex: segmentIndex,
			ControlIndex: controlIndex,
			SegmentCount: len(p.Segments),
			LeftCount:    len(s.LeftControls),
			RightCount:   len(s.RightControls),
		}
	}
	return s, nil
}

func insertOrAppend(points []math.Vec3, i int, v math.Vec3) []math.Vec3 {
	if i >= len(points) {
		return append(points, v)
	}
	return slices.Insert(points, i, v)
}
