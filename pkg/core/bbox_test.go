package core

import (
	"math"
	"testing"
)

func TestBBox_Hit_Basic(t *testing.T) {
	box := NewBBoxFromPoints(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name      string
		origin    Vec3
		direction Vec3
		wantHit   bool
		wantEnter float64
		wantExit  float64
	}{
		{
			name:      "straight through",
			origin:    NewVec3(-5, 0, 0),
			direction: NewVec3(1, 0, 0),
			wantHit:   true,
			wantEnter: 4,
			wantExit:  6,
		},
		{
			name:      "miss above",
			origin:    NewVec3(-5, 3, 0),
			direction: NewVec3(1, 0, 0),
			wantHit:   false,
		},
		{
			name:      "origin inside",
			origin:    NewVec3(0, 0, 0),
			direction: NewVec3(0, 0, 1),
			wantHit:   true,
			wantEnter: 0,
			wantExit:  1,
		},
		{
			name:      "diagonal",
			origin:    NewVec3(-2, -2, -2),
			direction: NewVec3(1, 1, 1),
			wantHit:   true,
			wantEnter: 1,
			wantExit:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewBoundedRay(tt.origin, tt.direction, 0, math.Inf(1))
			times := ray.Bounds
			got := box.Hit(&ray, &times)

			if got != tt.wantHit {
				t.Fatalf("Hit = %v, want %v", got, tt.wantHit)
			}
			if !tt.wantHit {
				return
			}
			if math.Abs(times.TMin-tt.wantEnter) > 1e-9 {
				t.Errorf("entry = %v, want %v", times.TMin, tt.wantEnter)
			}
			if math.Abs(times.TMax-tt.wantExit) > 1e-9 {
				t.Errorf("exit = %v, want %v", times.TMax, tt.wantExit)
			}
		})
	}
}

func TestBBox_Hit_ParallelAxis(t *testing.T) {
	box := NewBBoxFromPoints(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	// Direction has a zero Y component: the Y slab degenerates into a
	// containment test on the origin.
	inside := NewBoundedRay(NewVec3(-5, 0.5, 0), NewVec3(1, 0, 0), 0, math.Inf(1))
	times := inside.Bounds
	if !box.Hit(&inside, &times) {
		t.Error("expected hit when origin lies inside the parallel slab")
	}

	outside := NewBoundedRay(NewVec3(-5, 2, 0), NewVec3(1, 0, 0), 0, math.Inf(1))
	times = outside.Bounds
	if box.Hit(&outside, &times) {
		t.Error("expected miss when origin lies outside the parallel slab")
	}
}

// Hitting with a bounded interval must agree with hitting unbounded and
// intersecting the result afterwards.
func TestBBox_Hit_BoundsComposition(t *testing.T) {
	box := NewBBoxFromPoints(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	ray := NewBoundedRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0), 0, math.Inf(1))

	free := Interval{TMin: 0, TMax: math.Inf(1)}
	if !box.Hit(&ray, &free) {
		t.Fatal("unbounded hit missed")
	}

	bounds := []Interval{
		{TMin: 0, TMax: 5},
		{TMin: 4.5, TMax: 10},
		{TMin: 0, TMax: 3},   // exit before entry: empty
		{TMin: 6.5, TMax: 9}, // entry after exit: empty
	}
	for _, b := range bounds {
		bounded := b
		gotHit := box.Hit(&ray, &bounded)

		composed := Interval{
			TMin: math.Max(free.TMin, b.TMin),
			TMax: math.Min(free.TMax, b.TMax),
		}
		wantHit := !composed.Empty()

		if gotHit != wantHit {
			t.Errorf("bounds %+v: hit = %v, want %v", b, gotHit, wantHit)
			continue
		}
		if gotHit && (math.Abs(bounded.TMin-composed.TMin) > 1e-9 ||
			math.Abs(bounded.TMax-composed.TMax) > 1e-9) {
			t.Errorf("bounds %+v: interval %+v, want %+v", b, bounded, composed)
		}
	}
}

func TestBBox_Enclose(t *testing.T) {
	box := NewBBox()
	if !box.Empty() {
		t.Fatal("fresh box should be empty")
	}
	box.Enclose(NewVec3(1, 2, 3))
	box.Enclose(NewVec3(-1, 0, 5))
	if box.Min != NewVec3(-1, 0, 3) || box.Max != NewVec3(1, 2, 5) {
		t.Errorf("unexpected bounds %+v", box)
	}
	if got := box.SurfaceArea(); math.Abs(got-2*(2*2+2*2+2*2)) > 1e-9 {
		t.Errorf("surface area = %v", got)
	}
}
