package core

import "math"

// BBox represents an axis-aligned bounding box
type BBox struct {
	Min Vec3
	Max Vec3
}

// NewBBox returns an empty box that encloses nothing. Enclosing any point
// into it produces a degenerate box at that point.
func NewBBox() BBox {
	inf := math.Inf(1)
	return BBox{
		Min: NewVec3(inf, inf, inf),
		Max: NewVec3(-inf, -inf, -inf),
	}
}

// NewBBoxFromPoints creates a box that bounds all given points
func NewBBoxFromPoints(points ...Vec3) BBox {
	box := NewBBox()
	for _, p := range points {
		box.Enclose(p)
	}
	return box
}

// Enclose grows the box to contain the point
func (b *BBox) Enclose(p Vec3) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
}

// EncloseBox grows the box to contain another box
func (b *BBox) EncloseBox(other BBox) {
	b.Enclose(other.Min)
	b.Enclose(other.Max)
}

// Union returns a box that bounds both this box and another
func (b BBox) Union(other BBox) BBox {
	out := b
	out.EncloseBox(other)
	return out
}

// Empty reports whether the box encloses nothing
func (b BBox) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Center returns the center point of the box
func (b BBox) Center() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// Size returns the extent of the box along each axis
func (b BBox) Size() Vec3 {
	return b.Max.Subtract(b.Min)
}

// SurfaceArea returns the surface area of the box. An empty box has zero
// area so SAH sweeps can treat it uniformly.
func (b BBox) SurfaceArea() float64 {
	if b.Empty() {
		return 0
	}
	size := b.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// Hit tests the ray against the box with the slab method. times carries the
// interval the caller is interested in; on an intersection it is narrowed to
// the entry/exit distances through the box and true is returned. A zero
// direction component degenerates to a containment test on that axis, which
// leaves the axis unconstrained.
func (b BBox) Hit(ray *Ray, times *Interval) bool {
	for axis := 0; axis < 3; axis++ {
		bmin := b.Min.Axis(axis)
		bmax := b.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		dir := ray.Direction.Axis(axis)

		if dir == 0 {
			if origin < bmin || origin > bmax {
				return false
			}
			continue
		}

		inv := 1.0 / dir
		t1 := (bmin - origin) * inv
		t2 := (bmax - origin) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if times.TMin > t2 || times.TMax < t1 {
			return false
		}
		times.TMin = math.Max(times.TMin, t1)
		times.TMax = math.Min(times.TMax, t2)
	}
	return true
}
