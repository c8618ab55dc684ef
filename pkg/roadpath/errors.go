package roadpath

import (
	"errors"
	"fmt"
)

// ErrIndex is matched by every IndexError via errors.Is.
var ErrIndex = errors.New("path index out of range")

// IndexError reports an edit aimed at a segment or control slot that does not
// exist. It usually means the path changed between locating a cell and
// editing it; the caller should locate again rather than retry.
type IndexError struct {
	Op           string
	SegmentIndex int
	ControlIndex int
	SegmentCount int
	LeftCount    int // Control points on the left rail of the target segment
	RightCount   int // Control points on the right rail of the target segment
}

// Error implements error.
func (e *IndexError) Error() string {
	if e.SegmentIndex < 0 || e.SegmentIndex >= e.SegmentCount {
		return fmt.Sprintf("%s: segment index %d out of range (segments: %d)",
			e.Op, e.SegmentIndex, e.SegmentCount)
	}
	return fmt.Sprintf("%s: control index %d out of range for segment %d (left: %d, right: %d)",
		e.Op, e.ControlIndex, e.SegmentIndex, e.LeftCount, e.RightCount)
}

// Unwrap lets errors.Is(err, ErrIndex) match.
func (e *IndexError) Unwrap() error {
	return ErrIndex
}
