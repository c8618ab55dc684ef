package roadpath

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-path/pkg/math"
)

// straightPath creates a path running along +X with the left rail at z=0 and
// the right rail at z=width, one segment per entry of ends.
func straightPath(width float32, ends ...float32) *Path {
	p := New(math.Vec3{}, math.Vec3{Z: width})
	for _, x := range ends {
		p.Segments = append(p.Segments, NewSegment(math.Vec3{X: x}, math.Vec3{X: x, Z: width}))
	}
	return p
}

func TestPath_Anchors(t *testing.T) {
	p := straightPath(1, 2, 4)

	tests := []struct {
		i           int
		left, right math.Vec3
	}{
		{0, math.Vec3{}, math.Vec3{Z: 1}},
		{1, math.Vec3{X: 2}, math.Vec3{X: 2, Z: 1}},
		{2, math.Vec3{X: 4}, math.Vec3{X: 4, Z: 1}},
	}
	for _, tt := range tests {
		l, r := p.Anchors(tt.i)
		if l != tt.left || r != tt.right {
			t.Errorf("Anchors(%d) = (%v, %v), want (%v, %v)", tt.i, l, r, tt.left, tt.right)
		}
	}

	l, r := New(math.Vec3{X: 7}, math.Vec3{X: 8}).EndAnchors()
	if l != (math.Vec3{X: 7}) || r != (math.Vec3{X: 8}) {
		t.Errorf("EndAnchors() of empty path = (%v, %v), want start points", l, r)
	}
}

func TestPath_SplitAtConservesControlPoints(t *testing.T) {
	p := straightPath(2, 10)
	p.Segments[0].LeftControls = []math.Vec3{{X: 1}, {X: 3}, {X: 5}, {X: 7}}
	p.Segments[0].RightControls = []math.Vec3{{X: 2, Z: 2}, {X: 4, Z: 2}, {X: 6, Z: 2}, {X: 8, Z: 2}}
	wantLeft, wantRight := p.ControlPoints()

	if err := p.SplitAt(0, 2, math.Vec3{X: 4, Z: 1}); err != nil {
		t.Fatalf("SplitAt failed: %v", err)
	}

	if len(p.Segments) != 2 {
		t.Fatalf("expected 2 segments after split, got %d", len(p.Segments))
	}
	gotLeft, gotRight := p.ControlPoints()
	if diff := cmp.Diff(wantLeft, gotLeft); diff != "" {
		t.Errorf("left control points changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantRight, gotRight); diff != "" {
		t.Errorf("right control points changed (-want +got):\n%s", diff)
	}

	first := p.Segments[0]
	if len(first.LeftControls) != 2 || len(first.RightControls) != 2 {
		t.Errorf("new segment should take 2 controls per rail, got %d/%d",
			len(first.LeftControls), len(first.RightControls))
	}
	// Width at the original end is 2, so the new anchors sit 1 either side.
	if first.LeftEnd != (math.Vec3{X: 4, Z: 0}) || first.RightEnd != (math.Vec3{X: 4, Z: 2}) {
		t.Errorf("new segment anchors = (%v, %v), want ((4,0,0), (4,0,2))", first.LeftEnd, first.RightEnd)
	}
	if p.Segments[1].LeftEnd != (math.Vec3{X: 10}) {
		t.Errorf("original segment end moved: %v", p.Segments[1].LeftEnd)
	}
}

func TestPath_SplitAtUnequalRails(t *testing.T) {
	p := straightPath(1, 10)
	p.Segments[0].LeftControls = []math.Vec3{{X: 1}, {X: 2}, {X: 3}}
	p.Segments[0].RightControls = []math.Vec3{{X: 5, Z: 1}}
	wantLeft, wantRight := p.ControlPoints()

	if err := p.SplitAt(0, 2, math.Vec3{X: 2.5, Z: 0.5}); err != nil {
		t.Fatalf("SplitAt failed: %v", err)
	}

	first, second := p.Segments[0], p.Segments[1]
	if len(first.LeftControls) != 2 || len(second.LeftControls) != 1 {
		t.Errorf("left split = %d/%d, want 2/1", len(first.LeftControls), len(second.LeftControls))
	}
	if len(first.RightControls) != 1 || len(second.RightControls) != 0 {
		t.Errorf("right split = %d/%d, want 1/0", len(first.RightControls), len(second.RightControls))
	}

	gotLeft, gotRight := p.ControlPoints()
	if diff := cmp.Diff(wantLeft, gotLeft); diff != "" {
		t.Errorf("left control points changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantRight, gotRight); diff != "" {
		t.Errorf("right control points changed (-want +got):\n%s", diff)
	}
}

func TestPath_SplitAtDoesNotAlias(t *testing.T) {
	p := straightPath(1, 10)
	p.Segments[0].LeftControls = []math.Vec3{{X: 1}, {X: 2}}
	p.Segments[0].RightControls = []math.Vec3{{X: 1, Z: 1}, {X: 2, Z: 1}}

	if err := p.SplitAt(0, 1, math.Vec3{X: 1.5, Z: 0.5}); err != nil {
		t.Fatalf("SplitAt failed: %v", err)
	}

	p.Segments[0].LeftControls = append(p.Segments[0].LeftControls, math.Vec3{X: 99})
	if got := p.Segments[1].LeftControls[0]; got != (math.Vec3{X: 2}) {
		t.Errorf("appending to the new segment changed the original: %v", got)
	}
}

func TestPath_EditIndexErrors(t *testing.T) {
	p := straightPath(1, 2, 4)
	p.Segments[1].LeftControls = []math.Vec3{{X: 3}}
	p.Segments[1].RightControls = []math.Vec3{{X: 3, Z: 1}, {X: 3.5, Z: 1}}

	tests := []struct {
		name         string
		segmentIndex int
		controlIndex int
	}{
		{"segment past end", 2, 0},
		{"negative segment", -1, 0},
		{"control past both rails", 1, 3},
		{"control past empty rails", 0, 1},
		{"negative control", 0, -1},
	}

	edits := map[string]func(*Path, int, int) error{
		"split": func(p *Path, s, c int) error { return p.SplitAt(s, c, math.Vec3{X: 1}) },
		"insert control point": func(p *Path, s, c int) error {
			return p.InsertControlPoint(s, c, math.Vec3{X: 1})
		},
	}

	for op, edit := range edits {
		for _, tt := range tests {
			t.Run(op+"/"+tt.name, func(t *testing.T) {
				work := p.Clone()
				err := edit(work, tt.segmentIndex, tt.controlIndex)
				if !errors.Is(err, ErrIndex) {
					t.Fatalf("expected ErrIndex, got %v", err)
				}
				var idxErr *IndexError
				if !errors.As(err, &idxErr) {
					t.Fatalf("expected *IndexError, got %T", err)
				}
				if idxErr.Op != op {
					t.Errorf("IndexError.Op = %q, want %q", idxErr.Op, op)
				}
				if diff := cmp.Diff(p, work); diff != "" {
					t.Errorf("failed edit mutated the path (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestPath_ControlIndexWithinLongerRailIsValid(t *testing.T) {
	p := straightPath(1, 4)
	p.Segments[0].RightControls = []math.Vec3{{X: 1, Z: 1}, {X: 2, Z: 1}}

	// 2 exceeds the empty left rail but not the right one.
	if err := p.SplitAt(0, 2, math.Vec3{X: 3, Z: 0.5}); err != nil {
		t.Fatalf("SplitAt(0, 2) failed: %v", err)
	}
	if len(p.Segments[0].RightControls) != 2 || len(p.Segments[0].LeftControls) != 0 {
		t.Errorf("unexpected split: left %d, right %d",
			len(p.Segments[0].LeftControls), len(p.Segments[0].RightControls))
	}
}

func TestPath_InsertControlPoint(t *testing.T) {
	p := straightPath(2, 10)
	p.Segments[0].LeftControls = []math.Vec3{{X: 2}, {X: 8}}
	p.Segments[0].RightControls = []math.Vec3{{X: 2, Z: 2}}

	if err := p.InsertControlPoint(0, 1, math.Vec3{X: 5, Z: 1}); err != nil {
		t.Fatalf("InsertControlPoint failed: %v", err)
	}

	s := p.Segments[0]
	wantLeft := []math.Vec3{{X: 2}, {X: 5}, {X: 8}}
	wantRight := []math.Vec3{{X: 2, Z: 2}, {X: 5, Z: 2}}
	if diff := cmp.Diff(wantLeft, s.LeftControls); diff != "" {
		t.Errorf("left controls (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantRight, s.RightControls); diff != "" {
		t.Errorf("right controls (-want +got):\n%s", diff)
	}
}

func TestPath_InsertControlPointAppendsToShortRail(t *testing.T) {
	p := straightPath(2, 10)
	p.Segments[0].LeftControls = []math.Vec3{{X: 1}, {X: 2}, {X: 3}}

	if err := p.InsertControlPoint(0, 3, math.Vec3{X: 6, Z: 1}); err != nil {
		t.Fatalf("InsertControlPoint failed: %v", err)
	}

	s := p.Segments[0]
	if len(s.LeftControls) != 4 || s.LeftControls[3] != (math.Vec3{X: 6}) {
		t.Errorf("left controls = %v, want (6,0,0) appended", s.LeftControls)
	}
	if len(s.RightControls) != 1 || s.RightControls[0] != (math.Vec3{X: 6, Z: 2}) {
		t.Errorf("right controls = %v, want [(6,0,2)]", s.RightControls)
	}
}

func TestPath_AppendStart(t *testing.T) {
	p := straightPath(2, 4)

	p.AppendStart(math.Vec3{X: -3, Z: 1})

	if len(p.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(p.Segments))
	}
	first := p.Segments[0]
	if first.LeftEnd != (math.Vec3{}) || first.RightEnd != (math.Vec3{Z: 2}) {
		t.Errorf("new first segment ends = (%v, %v), want old start points", first.LeftEnd, first.RightEnd)
	}
	if p.LeftStart != (math.Vec3{X: -3, Z: 0}) || p.RightStart != (math.Vec3{X: -3, Z: 2}) {
		t.Errorf("start points = (%v, %v), want ((-3,0,0), (-3,0,2))", p.LeftStart, p.RightStart)
	}
}

func TestPath_AppendEnd(t *testing.T) {
	tests := []struct {
		name string
		path *Path
		pick math.Vec3
		want *Segment
	}{
		{
			name: "empty path uses start width",
			path: straightPath(2),
			pick: math.Vec3{X: 5, Z: 1},
			want: &Segment{Step: 1, LeftEnd: math.Vec3{X: 5}, RightEnd: math.Vec3{X: 5, Z: 2}},
		},
		{
			name: "uses last segment width",
			path: func() *Path {
				p := straightPath(2, 4)
				p.Segments[0].RightEnd = math.Vec3{X: 4, Z: 4}
				return p
			}(),
			pick: math.Vec3{X: 8, Z: 2},
			want: &Segment{Step: 1, LeftEnd: math.Vec3{X: 8}, RightEnd: math.Vec3{X: 8, Z: 4}},
		},
		{
			name: "ignores last segment controls",
			path: func() *Path {
				p := straightPath(2, 4)
				p.Segments[0].LeftControls = []math.Vec3{{X: 2, Z: -6}}
				p.Segments[0].RightControls = []math.Vec3{{X: 2, Z: 6}}
				return p
			}(),
			pick: math.Vec3{X: 8, Z: 1},
			want: &Segment{Step: 1, LeftEnd: math.Vec3{X: 8}, RightEnd: math.Vec3{X: 8, Z: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.path.Segments)
			tt.path.AppendEnd(tt.pick)
			if len(tt.path.Segments) != n+1 {
				t.Fatalf("expected %d segments, got %d", n+1, len(tt.path.Segments))
			}
			if diff := cmp.Diff(tt.want, tt.path.Segments[n]); diff != "" {
				t.Errorf("appended segment (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPath_InsertSegment(t *testing.T) {
	p := straightPath(2, 4, 8)

	if err := p.InsertSegment(1, math.Vec3{X: 6, Z: 1}); err != nil {
		t.Fatalf("InsertSegment failed: %v", err)
	}
	if len(p.Segments) != 3 || p.Segments[1].LeftEnd != (math.Vec3{X: 6}) {
		t.Errorf("unexpected segments after insert: %+v", p.Segments)
	}

	err := p.InsertSegment(5, math.Vec3{})
	if !errors.Is(err, ErrIndex) {
		t.Errorf("InsertSegment(5) error = %v, want ErrIndex", err)
	}
}

func TestPath_Clone(t *testing.T) {
	p := straightPath(1, 3)
	p.Segments[0].LeftControls = []math.Vec3{{X: 1}}

	c := p.Clone()
	if diff := cmp.Diff(p, c); diff != "" {
		t.Fatalf("clone differs (-want +got):\n%s", diff)
	}

	c.Segments[0].LeftControls[0] = math.Vec3{X: 42}
	c.Segments[0].Step = 9
	if p.Segments[0].LeftControls[0] != (math.Vec3{X: 1}) || p.Segments[0].Step != 1 {
		t.Error("mutating the clone changed the original")
	}
}

func TestPath_Validate(t *testing.T) {
	p := straightPath(1, 1, 2, 3)
	if err := p.Validate(); err != nil {
		t.Errorf("valid path: unexpected error %v", err)
	}

	p.Segments[0].Step = 0
	if err := p.Validate(); err != nil {
		t.Errorf("zero step should be allowed, got %v", err)
	}

	p.Segments[1].Step = -1
	p.Segments[2] = nil
	err := p.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Errorf("expected 2 combined errors, got %d: %v", got, err)
	}
}
