package renderer

import (
	"math"
	"testing"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

func TestCamera_CenterRay(t *testing.T) {
	camera := NewCamera(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		90, 2, 1,
	)

	ray := camera.GenerateRay(0.5, 0.5)
	if ray.Origin != core.NewVec3(0, 0, 0) {
		t.Errorf("origin = %v", ray.Origin)
	}
	want := core.NewVec3(0, 0, -1)
	if ray.Direction.Subtract(want).Length() > 1e-9 {
		t.Errorf("direction = %v, want %v", ray.Direction, want)
	}
}

func TestCamera_Corners(t *testing.T) {
	// vfov 90 with focal distance 1 gives a half-height of 1; aspect 2
	// doubles the half-width.
	camera := NewCamera(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		90, 2, 1,
	)

	tests := []struct {
		name string
		u, v float64
		want core.Vec3
	}{
		{"right edge", 1, 0.5, core.NewVec3(2, 0, -1)},
		{"left edge", 0, 0.5, core.NewVec3(-2, 0, -1)},
		{"top edge", 0.5, 1, core.NewVec3(0, 1, -1)},
		{"bottom edge", 0.5, 0, core.NewVec3(0, -1, -1)},
		{"lower left corner", 0, 0, core.NewVec3(-2, -1, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GenerateRay(tt.u, tt.v)
			want := tt.want.Normalize()
			if ray.Direction.Subtract(want).Length() > 1e-9 {
				t.Errorf("direction = %v, want %v", ray.Direction, want)
			}
		})
	}
}

func TestCamera_FocalDistanceScalesSensor(t *testing.T) {
	near := NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0), 60, 1, 1)
	far := NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0), 60, 1, 5)

	// The sensor grows with focal distance, so edge ray directions match.
	a := near.GenerateRay(1, 1)
	b := far.GenerateRay(1, 1)
	if a.Direction.Subtract(b.Direction).Length() > 1e-9 {
		t.Errorf("directions diverge: %v vs %v", a.Direction, b.Direction)
	}
	wantHalf := math.Tan(30 * math.Pi / 180)
	edge := near.GenerateRay(0.5, 1)
	ratio := edge.Direction.Y / -edge.Direction.Z
	if math.Abs(ratio-wantHalf) > 1e-9 {
		t.Errorf("half-height ratio = %v, want %v", ratio, wantHalf)
	}
}
