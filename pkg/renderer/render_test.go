package renderer

import (
	"math/rand"
	"testing"

	"github.com/liberty293/Cardinal3D/pkg/bsdf"
	"github.com/liberty293/Cardinal3D/pkg/core"
)

// flatSurface is a stub scene: one horizontal plane at y = 0 carrying the
// given material, misses everywhere else.
type flatSurface struct {
	material bsdf.BSDF
}

func (s *flatSurface) Hit(ray *core.Ray) core.Trace {
	if ray.Direction.Y >= 0 {
		return core.Trace{}
	}
	t := -ray.Origin.Y / ray.Direction.Y
	if !ray.Bounds.Contains(t) {
		return core.Trace{}
	}
	ray.Bounds.TMax = t
	return core.Trace{
		Hit:      true,
		Distance: t,
		Position: ray.At(t),
		Normal:   core.NewVec3(0, 1, 0),
		Origin:   ray.Origin,
	}
}

func (s *flatSurface) Material(idx int) bsdf.BSDF { return s.material }

func TestTracePath_EmissiveFloor(t *testing.T) {
	surface := &flatSurface{material: bsdf.NewEmissive(core.NewVec3(3, 2, 1))}
	rng := rand.New(rand.NewSource(9))

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	got := tracePath(surface, ray, Config{MaxDepth: 4}, rng)
	want := core.NewVec3(3, 2, 1)
	if got.Subtract(want).Length() > 1e-9 {
		t.Errorf("radiance = %v, want the floor emission %v", got, want)
	}
}

func TestTracePath_MissReturnsBackground(t *testing.T) {
	surface := &flatSurface{material: bsdf.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))}
	rng := rand.New(rand.NewSource(9))

	cfg := Config{MaxDepth: 4, Background: core.NewVec3(0.2, 0.4, 0.8)}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))
	got := tracePath(surface, ray, cfg, rng)
	if got.Subtract(cfg.Background).Length() > 1e-9 {
		t.Errorf("radiance = %v, want background %v", got, cfg.Background)
	}
}

func TestRender_SmokeTest(t *testing.T) {
	surface := &flatSurface{material: bsdf.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))}
	camera := NewCamera(core.NewVec3(0, 1, 3), core.NewVec3(0, 0, 0),
		core.NewVec3(0, 1, 0), 60, 2, 1)

	img := Render(surface, camera, Config{
		Width:           16,
		Height:          8,
		SamplesPerPixel: 2,
		MaxDepth:        3,
		Seed:            1,
		Background:      core.NewVec3(0.5, 0.6, 0.7),
	})

	bounds := img.Bounds()
	if bounds.Dx() != 16 || bounds.Dy() != 8 {
		t.Fatalf("image size %v", bounds)
	}
	// The top rows look at the sky, which is never black.
	c := img.RGBAAt(8, 0)
	if c.R == 0 && c.G == 0 && c.B == 0 {
		t.Error("sky pixel is black")
	}
}
