package geometry

import (
	"math"
	"testing"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

func unitTriangle() ([]Vert, Triangle) {
	verts := []Vert{
		{Position: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)},
		{Position: core.NewVec3(1, 0, 0), Normal: core.NewVec3(0, 0, 1)},
		{Position: core.NewVec3(0, 1, 0), Normal: core.NewVec3(0, 0, 1)},
	}
	return verts, NewTriangle(verts, 0, 1, 2)
}

func TestTriangle_Hit_Center(t *testing.T) {
	_, tri := unitTriangle()
	ray := core.NewBoundedRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1), 1e-4, math.Inf(1))

	trace := tri.Hit(&ray)
	if !trace.Hit {
		t.Fatal("expected hit")
	}
	if math.Abs(trace.Distance-1) > 1e-9 {
		t.Errorf("distance = %v, want 1", trace.Distance)
	}
	wantPos := core.NewVec3(0.25, 0.25, 0)
	if trace.Position.Subtract(wantPos).Length() > 1e-9 {
		t.Errorf("position = %v, want %v", trace.Position, wantPos)
	}
	if ray.Bounds.TMax != trace.Distance {
		t.Errorf("hit did not tighten TMax: %v", ray.Bounds.TMax)
	}
}

func TestTriangle_Hit_OutsideAndParallel(t *testing.T) {
	_, tri := unitTriangle()

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
	}{
		{"outside barycentric", core.NewVec3(0.9, 0.9, 1), core.NewVec3(0, 0, -1)},
		{"negative u", core.NewVec3(-0.5, 0.25, 1), core.NewVec3(0, 0, -1)},
		{"parallel to plane", core.NewVec3(0.25, 0.25, 1), core.NewVec3(1, 0, 0)},
		{"behind origin", core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			if trace := tri.Hit(&ray); trace.Hit {
				t.Error("expected miss")
			}
		})
	}
}

func TestTriangle_Hit_BlendedNormal(t *testing.T) {
	verts := []Vert{
		{Position: core.NewVec3(0, 0, 0), Normal: core.NewVec3(1, 0, 0)},
		{Position: core.NewVec3(1, 0, 0), Normal: core.NewVec3(0, 1, 0)},
		{Position: core.NewVec3(0, 1, 0), Normal: core.NewVec3(0, 0, 1)},
	}
	tri := NewTriangle(verts, 0, 1, 2)

	// Hit the exact centroid: the blend weighs the three normals equally.
	ray := core.NewRay(core.NewVec3(1.0/3, 1.0/3, 1), core.NewVec3(0, 0, -1))
	trace := tri.Hit(&ray)
	if !trace.Hit {
		t.Fatal("expected hit")
	}
	want := core.NewVec3(1, 1, 1).Normalize()
	if trace.Normal.Subtract(want).Length() > 1e-6 {
		t.Errorf("normal = %v, want %v", trace.Normal, want)
	}
}

func TestTriangle_BBoxIsFlat(t *testing.T) {
	_, tri := unitTriangle()
	box := tri.BBox()
	if box.Min.Z != 0 || box.Max.Z != 0 {
		t.Errorf("expected flat box, got %+v", box)
	}

	// A ray must still be able to pass the flat slab and hit the triangle.
	ray := core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1))
	times := ray.Bounds
	if !box.Hit(&ray, &times) {
		t.Error("flat bbox rejected a ray that hits the triangle")
	}
}

func TestMesh_HitThroughBVH(t *testing.T) {
	verts := []Vert{
		{Position: core.NewVec3(-1, -1, 0), Normal: core.NewVec3(0, 0, 1)},
		{Position: core.NewVec3(1, -1, 0), Normal: core.NewVec3(0, 0, 1)},
		{Position: core.NewVec3(1, 1, 0), Normal: core.NewVec3(0, 0, 1)},
		{Position: core.NewVec3(-1, 1, 0), Normal: core.NewVec3(0, 0, 1)},
	}
	mesh := NewMesh(verts, []int{0, 1, 2, 0, 2, 3})

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	trace := mesh.Hit(&ray)
	if !trace.Hit {
		t.Fatal("expected hit")
	}
	if math.Abs(trace.Distance-5) > 1e-9 {
		t.Errorf("distance = %v, want 5", trace.Distance)
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("triangle count = %d", mesh.TriangleCount())
	}
}
