package bsdf

import (
	"math/rand"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

// Refractive transmits every ray through the interface, reflecting only on
// total internal reflection.
type Refractive struct {
	IOR float64
}

// NewRefractive creates a pure refraction BSDF
func NewRefractive(ior float64) *Refractive {
	return &Refractive{IOR: ior}
}

// Sample returns the refracted direction, or the reflected one on total
// internal reflection, with attenuation one either way.
func (r *Refractive) Sample(outDir core.Vec3, rng *rand.Rand) Sample {
	dir, _ := Refract(outDir, r.IOR)
	return Sample{
		Direction:   dir,
		Attenuation: core.NewVec3(1, 1, 1),
		PDF:         1,
	}
}

// Evaluate is zero, as for any delta distribution
func (r *Refractive) Evaluate(outDir, inDir core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Discrete reports that pure refraction is a delta distribution
func (r *Refractive) Discrete() bool { return true }
