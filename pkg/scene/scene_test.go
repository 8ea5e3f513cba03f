package scene

import (
	"testing"

	"github.com/liberty293/Cardinal3D/pkg/bsdf"
	"github.com/liberty293/Cardinal3D/pkg/core"
	"github.com/liberty293/Cardinal3D/pkg/geometry"
)

func TestScene_HitStampsMaterial(t *testing.T) {
	materials := []bsdf.BSDF{
		bsdf.NewLambertian(core.NewVec3(1, 0, 0)),
		bsdf.NewMirror(),
	}
	objects := []Object{
		{Shape: geometry.NewSphere(core.NewVec3(0, 0, -5), 1), Material: 0},
		{Shape: geometry.NewSphere(core.NewVec3(0, 0, -10), 1), Material: 1},
	}
	s := New(objects, materials, core.Vec3{})

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	trace := s.Hit(&ray)
	if !trace.Hit {
		t.Fatal("expected hit")
	}
	if trace.Material != 0 {
		t.Errorf("material = %d, want the nearer sphere's 0", trace.Material)
	}
	if _, ok := s.Material(trace.Material).(*bsdf.Lambertian); !ok {
		t.Error("material table lookup did not return the lambertian")
	}

	// Start between the spheres: only the far one is ahead of the ray.
	ray = core.NewRay(core.NewVec3(0, 0, -7), core.NewVec3(0, 0, -1))
	trace = s.Hit(&ray)
	if !trace.Hit {
		t.Fatal("expected hit on the far sphere")
	}
	if trace.Material != 1 {
		t.Errorf("material = %d, want the mirror sphere's 1", trace.Material)
	}
}

func TestDefaultScene_Builds(t *testing.T) {
	s, camera := NewDefaultScene(4.0 / 3.0)
	if s == nil || camera == nil {
		t.Fatal("default scene did not build")
	}

	// A ray straight down the view axis must hit something (the cube mesh
	// sits at the image centre).
	ray := camera.GenerateRay(0.5, 0.5)
	trace := s.Hit(&ray)
	if !trace.Hit {
		t.Error("centre ray misses the scene")
	}

	stats := s.Stats()
	if stats.Prims != 5 {
		t.Errorf("scene BVH holds %d objects, want 5", stats.Prims)
	}
}
