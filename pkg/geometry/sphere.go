package geometry

import (
	"math"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// BBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BBox() core.BBox {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.BBox{
		Min: s.Center.Subtract(r),
		Max: s.Center.Add(r),
	}
}

// Hit intersects the ray with the sphere by solving |o + t*d|^2 = r^2.
// It returns the nearer root inside the ray's distance bounds; if only the
// farther root qualifies (the ray starts inside the sphere), that one is
// returned instead. On a hit, ray.Bounds.TMax is tightened.
func (s *Sphere) Hit(ray *core.Ray) core.Trace {
	ret := core.Trace{Origin: ray.Origin}

	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return ret
	}

	sqrtD := math.Sqrt(discriminant)
	tNear := (-halfB - sqrtD) / a
	tFar := (-halfB + sqrtD) / a

	t := tNear
	if !ray.Bounds.Contains(t) {
		t = tFar
		if !ray.Bounds.Contains(t) {
			return ret
		}
	}

	ret.Hit = true
	ret.Distance = t
	ret.Position = ray.At(t)
	ret.Normal = ret.Position.Subtract(s.Center).Multiply(1.0 / s.Radius)
	ray.Bounds.TMax = t
	return ret
}
