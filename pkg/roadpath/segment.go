// Package roadpath models a ribbon-shaped road path as two parallel rails of
// chained Bézier segments, and builds a UV-mapped triangle strip from it.
package roadpath

import (
	"slices"

	"github.com/Faultbox/midgard-path/pkg/math"
)

// Segment is one link of the path chain. Each rail runs from the previous
// segment's end anchor (or the path start) through its own control points to
// its own end anchor. The rails may hold different numbers of control points.
type Segment struct {
	Step          int         `yaml:"step" toml:"step"` // Linear subdivisions used when sampling
	LeftEnd       math.Vec3   `yaml:"left_end" toml:"left_end"`
	RightEnd      math.Vec3   `yaml:"right_end" toml:"right_end"`
	LeftControls  []math.Vec3 `yaml:"left_controls,omitempty" toml:"left_controls,omitempty"`
	RightControls []math.Vec3 `yaml:"right_controls,omitempty" toml:"right_controls,omitempty"`
}

// NewSegment creates a segment with no control points and a single step.
func NewSegment(leftEnd, rightEnd math.Vec3) *Segment {
	return &Segment{
		Step:     1,
		LeftEnd:  leftEnd,
		RightEnd: rightEnd,
	}
}

// LeftPoint evaluates the left rail at t, starting from the given anchor.
func (s *Segment) LeftPoint(t float32, start math.Vec3) math.Vec3 {
	return Evaluate(t, start, s.LeftEnd, s.LeftControls)
}

// RightPoint evaluates the right rail at t, starting from the given anchor.
func (s *Segment) RightPoint(t float32, start math.Vec3) math.Vec3 {
	return Evaluate(t, start, s.RightEnd, s.RightControls)
}

// Offset returns half the left-right separation at the segment's end anchors.
func (s *Segment) Offset() math.Vec3 {
	return halfSpan(s.LeftEnd, s.RightEnd)
}

// ControlCount returns the larger of the two rails' control point counts.
func (s *Segment) ControlCount() int {
	return max(len(s.LeftControls), len(s.RightControls))
}

func (s *Segment) clone() *Segment {
	c := *s
	c.LeftControls = slices.Clone(s.LeftControls)
	c.RightControls = slices.Clone(s.RightControls)
	return &c
}

// Evaluate returns the point at t on the Bézier curve defined by
// [start, controls..., end], using recursive de Casteljau reduction.
// t is clamped to [0, 1]. With no controls this is plain linear interpolation.
func Evaluate(t float32, start, end math.Vec3, controls []math.Vec3) math.Vec3 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	c := curve{t: t, start: start, end: end, controls: controls}
	return c.reduce(-1, len(controls))
}

// curve is a read-only view over [start, controls..., end] where index -1 is
// the start anchor and len(controls) is the end anchor.
type curve struct {
	t        float32
	start    math.Vec3
	end      math.Vec3
	controls []math.Vec3
}

func (c *curve) point(i int) math.Vec3 {
	switch {
	case i < 0:
		return c.start
	case i >= len(c.controls):
		return c.end
	default:
		return c.controls[i]
	}
}

// reduce evaluates the sub-curve over the index window [lo, hi].
// Cost is exponential in the window width; editor paths keep it small.
func (c *curve) reduce(lo, hi int) math.Vec3 {
	if hi-lo <= 1 {
		return c.point(lo).Lerp(c.point(hi), c.t)
	}
	return c.reduce(lo, hi-1).Lerp(c.reduce(lo+1, hi), c.t)
}

func halfSpan(left, right math.Vec3) math.Vec3 {
	return left.Sub(right).Scale(0.5)
}
