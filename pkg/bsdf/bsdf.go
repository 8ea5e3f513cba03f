// Package bsdf implements the scattering models used by the renderer. All
// sampling and evaluation happens in a local shading frame whose surface
// normal is (0,1,0); callers convert with core.Frame. outDir points from the
// surface toward the camera, the sampled direction is the incoming one.
package bsdf

import (
	"math"
	"math/rand"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

// Sample is the result of sampling a BSDF at a surface point. Attenuation
// is the spectral reflectance factor under each model's stated convention;
// for discrete (delta) models the importance sampling already absorbs the
// probability weight, so PDF is 1 there.
type Sample struct {
	Direction   core.Vec3
	Attenuation core.Vec3
	Emissive    core.Vec3
	PDF         float64
}

// BSDF samples an incoming direction for a given outgoing one and evaluates
// reflectance for an arbitrary direction pair. Discrete reports whether the
// model scatters along delta directions, in which case Evaluate is zero on
// the assumption that two independently sampled directions never coincide
// exactly.
type BSDF interface {
	Sample(outDir core.Vec3, rng *rand.Rand) Sample
	Evaluate(outDir, inDir core.Vec3) core.Vec3
	Discrete() bool
}

// Reflect mirrors a local-frame direction about the surface normal (0,1,0).
func Reflect(dir core.Vec3) core.Vec3 {
	return core.Vec3{X: -dir.X, Y: dir.Y, Z: -dir.Z}
}

// Refract bends outDir through the surface via Snell's law. The sign of
// outDir.Y decides which side of the interface the direction is on: y > 0
// is treated as exiting into air, and since refraction is symmetric the
// computed direction is the input that would produce that output. On total
// internal reflection the reflected direction is returned and wasInternal
// is true.
func Refract(outDir core.Vec3, ior float64) (dir core.Vec3, wasInternal bool) {
	etaI, etaT := indices(outDir, ior)
	eta := etaI / etaT

	x := -outDir.X * eta
	z := -outDir.Z * eta
	ySq := 1 - x*x - z*z
	if ySq <= 0 {
		return Reflect(outDir), true
	}

	y := -math.Sqrt(ySq)
	if outDir.Y <= 0 {
		y = math.Sqrt(ySq)
	}
	return core.Vec3{X: x, Y: y, Z: z}, false
}

// indices returns the incident/transmitted refraction indices for a
// local-frame outgoing direction.
func indices(outDir core.Vec3, ior float64) (etaI, etaT float64) {
	if outDir.Y > 0 {
		return 1, ior
	}
	return ior, 1
}
