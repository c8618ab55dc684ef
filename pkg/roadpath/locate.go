package roadpath

import (
	"github.com/Faultbox/midgard-path/pkg/math"
)

// LocateResult identifies the path cell that contains a picked point.
// ControlIndex is the slot within the segment's control lists (shared by both
// rails) at which the cell begins.
type LocateResult struct {
	SegmentIndex int
	ControlIndex int
	HitPoint     math.Vec3
}

// Cell is one quad (or triangle, where a rail has run out of control points)
// of the path's control polygon, projected onto the XZ ground plane.
type Cell struct {
	SegmentIndex int
	ControlIndex int
	Polygon      []math.Vec2 // prevLeft, prevRight, nextRight, nextLeft
}

// Cells lists the control-polygon cells of the path in scan order: path order,
// then increasing control index from 0 to the segment's control count.
func Cells(p *Path) []Cell {
	var cells []Cell

	left := p.LeftStart.XZ()
	right := p.RightStart.XZ()
	for i, s := range p.Segments {
		count := s.ControlCount()
		for j := 0; j <= count; j++ {
			polygon := []math.Vec2{left, right}

			if next, ok := railCursor(s.RightControls, s.RightEnd, j); ok {
				right = next
				polygon = append(polygon, right)
			}
			if next, ok := railCursor(s.LeftControls, s.LeftEnd, j); ok {
				left = next
				polygon = append(polygon, left)
			}

			cells = append(cells, Cell{SegmentIndex: i, ControlIndex: j, Polygon: polygon})
		}
	}
	return cells
}

// railCursor returns the rail point reached at step j, or false once the rail
// has already passed its end anchor.
func railCursor(controls []math.Vec3, end math.Vec3, j int) (math.Vec2, bool) {
	switch {
	case j < len(controls):
		return controls[j].XZ(), true
	case j == len(controls):
		return end.XZ(), true
	default:
		return math.Vec2{}, false
	}
}

// Locate finds the first cell whose polygon contains the XZ projection of
// point. It returns false when the point lies outside the path, which callers
// treat as a request to extend the path at either end.
//
// Cell boundaries follow PointInPolygon: for a path running along +X with the
// right rail at larger Z, left-rail anchors belong to a cell while right-rail
// anchors and the far end of the path do not.
func Locate(p *Path, point math.Vec3) (LocateResult, bool) {
	q := point.XZ()
	for _, c := range Cells(p) {
		if PointInPolygon(q, c.Polygon) {
			return LocateResult{
				SegmentIndex: c.SegmentIndex,
				ControlIndex: c.ControlIndex,
				HitPoint:     point,
			}, true
		}
	}
	return LocateResult{}, false
}

// PointInPolygon reports whether p lies inside the polygon by the even-odd
// rule, casting a ray towards +X. Each edge includes its lower endpoint and
// excludes its upper one so shared vertices are counted once.
//
// Boundary points are inside on edges at the polygon's minimum X and Y and
// outside on edges at its maximum X and Y. A point on an edge shared by two
// cells therefore lands in exactly one of them.
func PointInPolygon(p math.Vec2, polygon []math.Vec2) bool {
	crossings := 0
	n := len(polygon)
	for i := 0; i < n; i++ {
		v1 := polygon[i]
		v2 := polygon[(i+1)%n]

		if (v1.Y <= p.Y && v2.Y > p.Y) || (v1.Y > p.Y && v2.Y <= p.Y) {
			x := v1.X + (p.Y-v1.Y)/(v2.Y-v1.Y)*(v2.X-v1.X)
			if p.X < x {
				crossings++
			}
		}
	}
	return crossings%2 == 1
}
