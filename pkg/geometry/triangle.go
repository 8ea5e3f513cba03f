package geometry

import (
	"math"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

// Vert is one vertex of a triangle mesh: a position and a shading normal.
type Vert struct {
	Position core.Vec3
	Normal   core.Vec3
}

// Triangle references three vertices in a shared vertex list. Keeping
// triangles as index triples keeps them cheap to reorder during BVH build.
type Triangle struct {
	verts      []Vert
	V0, V1, V2 int
}

// NewTriangle creates a triangle over a shared vertex list
func NewTriangle(verts []Vert, v0, v1, v2 int) Triangle {
	return Triangle{verts: verts, V0: v0, V1: v1, V2: v2}
}

// Rejection threshold for the Moller-Trumbore denominator; below it the ray
// is treated as parallel to the triangle plane.
const parallelEpsilon = 1e-6

// BBox returns the axis-aligned bounding box for this triangle. The box may
// be flat along an axis; BBox.Hit copes with zero-extent slabs.
func (t Triangle) BBox() core.BBox {
	return core.NewBBoxFromPoints(
		t.verts[t.V0].Position,
		t.verts[t.V1].Position,
		t.verts[t.V2].Position,
	)
}

// Hit intersects the ray with the triangle using the Moller-Trumbore
// algorithm. The shading normal is the barycentric blend of the vertex
// normals. On a hit, ray.Bounds.TMax is tightened.
func (t Triangle) Hit(ray *core.Ray) core.Trace {
	v0 := t.verts[t.V0]
	v1 := t.verts[t.V1]
	v2 := t.verts[t.V2]

	e1 := v1.Position.Subtract(v0.Position)
	e2 := v2.Position.Subtract(v0.Position)
	s := ray.Origin.Subtract(v0.Position)

	ret := core.Trace{Origin: ray.Origin}

	denom := e1.Cross(ray.Direction).Dot(e2)
	if math.Abs(denom) <= parallelEpsilon {
		return ret
	}

	inv := 1.0 / denom
	u := s.Cross(e2).Negate().Dot(ray.Direction) * inv
	v := e1.Cross(ray.Direction).Dot(s) * inv
	dist := s.Cross(e2).Negate().Dot(e1) * inv

	if u < 0 || v < 0 || u+v > 1 || !ray.Bounds.Contains(dist) {
		return ret
	}

	ret.Hit = true
	ret.Distance = dist
	ret.Position = ray.At(dist)
	normal := v1.Normal.Multiply(u).
		Add(v2.Normal.Multiply(v)).
		Add(v0.Normal.Multiply(1 - u - v))
	ret.Normal = normal.Normalize()
	ray.Bounds.TMax = dist
	return ret
}
