package bsdf

import (
	"math/rand"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

// Mirror is a perfect specular reflector
type Mirror struct{}

// NewMirror creates a mirror BSDF
func NewMirror() *Mirror {
	return &Mirror{}
}

// Sample returns the mirrored direction with probability one. Attenuation
// is full on the upper hemisphere and zero below it.
func (m *Mirror) Sample(outDir core.Vec3, rng *rand.Rand) Sample {
	attenuation := core.Vec3{}
	if outDir.Y > 0 {
		attenuation = core.NewVec3(1, 1, 1)
	}
	return Sample{
		Direction:   Reflect(outDir),
		Attenuation: attenuation,
		PDF:         1,
	}
}

// Evaluate is zero: two independently sampled directions never land exactly
// on the mirrored delta direction.
func (m *Mirror) Evaluate(outDir, inDir core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Discrete reports that mirror scattering is a delta distribution
func (m *Mirror) Discrete() bool { return true }
