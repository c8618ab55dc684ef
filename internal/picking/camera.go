package picking

import (
	"github.com/Faultbox/midgard-path/pkg/math"
)

// TopDownCamera is an orthographic camera looking straight down at the
// ground plane, with screen-up pointing towards -Z.
type TopDownCamera struct {
	Center math.Vec3 // Ground point in the middle of the view
	Size   float32   // Half of the visible height in world units
	Height float32   // Eye distance above Center; 0 uses a default
}

const defaultEyeHeight = 100

// ViewProj returns the combined projection * view matrix for a viewport with
// the given width/height ratio.
func (c TopDownCamera) ViewProj(aspect float32) math.Mat4 {
	height := c.Height
	if height <= 0 {
		height = defaultEyeHeight
	}

	eye := c.Center.Add(math.Vec3{Y: height})
	view := math.LookAt(eye, c.Center, math.Vec3{Z: -1})
	proj := math.Ortho(-c.Size*aspect, c.Size*aspect, -c.Size, c.Size, 0.1, 2*height)
	return proj.Mul(view)
}

// Pick returns the ground point under the given screen pixel.
func (c TopDownCamera) Pick(screenX, screenY, viewportW, viewportH float32) (math.Vec3, bool) {
	if viewportW <= 0 || viewportH <= 0 {
		return math.Vec3{}, false
	}
	inv := c.ViewProj(viewportW / viewportH).Inverse()
	return ScreenToRay(screenX, screenY, viewportW, viewportH, inv).IntersectPlaneY(c.Center.Y)
}
