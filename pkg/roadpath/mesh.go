package roadpath

import (
	"github.com/Faultbox/midgard-path/pkg/math"
)

// Mesh holds the triangle strip built from a path, ready for upload.
// Even vertices lie on the left rail, odd vertices on the right rail.
type Mesh struct {
	Vertices []math.Vec3
	UVs      []math.Vec2 // u = left-rail arc length / tile width, v = 0 left, 1 right
	Normals  []math.Vec3
	Indices  []uint32
	Bounds   Bounds
}

// Bounds is the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// Build samples every segment of the path and emits the road strip.
//
// Each segment contributes Step cross-sections at t = i/Step, i = 1..Step.
// Texture u grows with the arc length of the sampled left rail so the texture
// tiles every tileWidth units. Paths without segments, or with zero-step
// segments, produce fewer cross-sections and possibly no triangles.
// A non-positive tileWidth is treated as 1.
func Build(p *Path, tileWidth float32) *Mesh {
	if tileWidth <= 0 {
		tileWidth = 1
	}

	vertices := []math.Vec3{p.LeftStart, p.RightStart}
	uvs := []math.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}}

	leftAnchor := p.LeftStart
	rightAnchor := p.RightStart
	lastPoint := leftAnchor
	var length float32

	for _, s := range p.Segments {
		for i := 1; i <= s.Step; i++ {
			t := float32(i) / float32(s.Step)

			lp := s.LeftPoint(t, leftAnchor)
			length += lp.Distance(lastPoint)
			lastPoint = lp
			u := length / tileWidth

			rp := s.RightPoint(t, rightAnchor)
			vertices = append(vertices, lp, rp)
			uvs = append(uvs, math.Vec2{X: u, Y: 0}, math.Vec2{X: u, Y: 1})
		}
		// The next segment starts from this segment's anchors, not its last sample.
		leftAnchor = s.LeftEnd
		rightAnchor = s.RightEnd
	}

	// Two triangles per quad between consecutive cross-sections.
	var indices []uint32
	for i := 0; i+3 < len(vertices); i += 2 {
		base := uint32(i)
		indices = append(indices,
			base, base+1, base+2,
			base+2, base+1, base+3,
		)
	}

	return &Mesh{
		Vertices: vertices,
		UVs:      uvs,
		Normals:  vertexNormals(vertices, indices),
		Indices:  indices,
		Bounds:   boundsOf(vertices),
	}
}

// vertexNormals averages the area-weighted face normals around each vertex.
// Vertices without a usable face get +Y.
func vertexNormals(vertices []math.Vec3, indices []uint32) []math.Vec3 {
	sums := make([]math.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		face := vertices[b].Sub(vertices[a]).Cross(vertices[c].Sub(vertices[a]))
		sums[a] = sums[a].Add(face)
		sums[b] = sums[b].Add(face)
		sums[c] = sums[c].Add(face)
	}

	normals := make([]math.Vec3, len(vertices))
	for i, sum := range sums {
		if sum.Length() < 1e-6 {
			normals[i] = math.Vec3{Y: 1}
			continue
		}
		normals[i] = sum.Normalize()
	}
	return normals
}

func boundsOf(vertices []math.Vec3) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}
