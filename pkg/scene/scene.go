// Package scene assembles renderable objects: geometric shapes paired with
// surface BSDFs, bounded by one BVH for the whole scene.
package scene

import (
	"github.com/liberty293/Cardinal3D/pkg/bsdf"
	"github.com/liberty293/Cardinal3D/pkg/core"
)

// Shape is anything an Object can wrap: a sphere, a triangle mesh, or any
// other primitive honouring the BVH contract.
type Shape interface {
	BBox() core.BBox
	Hit(ray *core.Ray) core.Trace
}

// Object pairs a shape with the index of its BSDF in the scene's material
// table. Hits are stamped with that index so the integrator can resolve
// the surface model.
type Object struct {
	Shape    Shape
	Material int
}

// BBox returns the bounds of the wrapped shape
func (o Object) BBox() core.BBox {
	return o.Shape.BBox()
}

// Hit intersects the wrapped shape and tags the trace with the material
func (o Object) Hit(ray *core.Ray) core.Trace {
	trace := o.Shape.Hit(ray)
	if trace.Hit {
		trace.Material = o.Material
	}
	return trace
}

// Leaf size for the scene-level BVH.
const objectLeafSize = 2

// Scene is an immutable set of objects ready for tracing
type Scene struct {
	objects    *core.BVH[Object]
	materials  []bsdf.BSDF
	Background core.Vec3
}

// New builds a scene over the given objects and material table
func New(objects []Object, materials []bsdf.BSDF, background core.Vec3) *Scene {
	return &Scene{
		objects:    core.BuildBVH(objects, objectLeafSize),
		materials:  materials,
		Background: background,
	}
}

// Hit traces the ray against every object through the scene BVH
func (s *Scene) Hit(ray *core.Ray) core.Trace {
	return s.objects.Hit(ray)
}

// Material resolves a material index stamped on a trace
func (s *Scene) Material(idx int) bsdf.BSDF {
	return s.materials[idx]
}

// Stats exposes the scene BVH shape for diagnostics
func (s *Scene) Stats() core.BVHStats {
	return s.objects.Stats()
}
