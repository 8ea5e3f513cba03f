package bsdf

import (
	"math/rand"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

// Emissive is a diffuse light source: it emits radiance but scatters no
// incoming light.
type Emissive struct {
	Radiance core.Vec3
}

// NewEmissive creates an emissive BSDF with the given radiance
func NewEmissive(radiance core.Vec3) *Emissive {
	return &Emissive{Radiance: radiance}
}

// Sample draws a cosine-weighted direction like a lambertian surface, but
// carries the emitted radiance and a zero attenuation.
func (e *Emissive) Sample(outDir core.Vec3, rng *rand.Rand) Sample {
	dir, pdf := core.SampleCosineHemisphere(rng)
	return Sample{
		Direction: dir,
		Emissive:  e.Radiance,
		PDF:       pdf,
	}
}

// Evaluate is zero: no incoming light is reflected, only emitted
func (e *Emissive) Evaluate(outDir, inDir core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Discrete reports that the emitter's direction sampling is continuous
func (e *Emissive) Discrete() bool { return false }
