package bsdf

import (
	"math"
	"math/rand"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

// Lambertian is a perfectly diffuse reflector
type Lambertian struct {
	Albedo core.Vec3
}

// NewLambertian creates a lambertian BSDF with the given albedo
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Sample draws a cosine-weighted direction from the upper hemisphere.
// Attenuation is albedo/pi when the outgoing direction is above the
// surface, zero otherwise.
func (l *Lambertian) Sample(outDir core.Vec3, rng *rand.Rand) Sample {
	dir, pdf := core.SampleCosineHemisphere(rng)
	attenuation := core.Vec3{}
	if outDir.Y > 0 {
		attenuation = l.Albedo.Multiply(1.0 / math.Pi)
	}
	return Sample{
		Direction:   dir,
		Attenuation: attenuation,
		PDF:         pdf,
	}
}

// Evaluate returns the constant lambertian reflectance albedo/pi
func (l *Lambertian) Evaluate(outDir, inDir core.Vec3) core.Vec3 {
	return l.Albedo.Multiply(1.0 / math.Pi)
}

// Discrete reports that lambertian scattering is continuous
func (l *Lambertian) Discrete() bool { return false }
