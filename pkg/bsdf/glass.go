package bsdf

import (
	"math"
	"math/rand"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

// Glass is a dielectric that reflects or refracts according to the Fresnel
// reflectance of the interface.
type Glass struct {
	IOR float64
}

// NewGlass creates a glass BSDF with the given index of refraction
func NewGlass(ior float64) *Glass {
	return &Glass{IOR: ior}
}

// Sample refracts or reflects outDir. On total internal reflection the
// reflected direction is returned directly; otherwise the exact dielectric
// Fresnel reflectance picks between the two probabilistically. The
// importance sampling absorbs the Fresnel weight, so attenuation stays one
// and the PDF is one.
func (g *Glass) Sample(outDir core.Vec3, rng *rand.Rand) Sample {
	ret := Sample{
		Attenuation: core.NewVec3(1, 1, 1),
		PDF:         1,
	}

	refracted, wasInternal := Refract(outDir, g.IOR)
	if wasInternal {
		ret.Direction = Reflect(outDir)
		return ret
	}

	if core.CoinFlip(rng, fresnel(outDir, refracted, g.IOR)) {
		ret.Direction = Reflect(outDir)
	} else {
		ret.Direction = refracted
	}
	return ret
}

// fresnel computes the dielectric reflectance as the average of the squared
// parallel and perpendicular amplitude ratios.
func fresnel(outDir, refracted core.Vec3, ior float64) float64 {
	etaI, etaT := indices(outDir, ior)
	cosI := math.Abs(outDir.Y)
	cosT := math.Abs(refracted.Y)

	rPar := (etaT*cosI - etaI*cosT) / (etaT*cosI + etaI*cosT)
	rPerp := (etaI*cosI - etaT*cosT) / (etaI*cosI + etaT*cosT)
	return (rPar*rPar + rPerp*rPerp) / 2
}

// Evaluate is zero, as for any delta distribution
func (g *Glass) Evaluate(outDir, inDir core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Discrete reports that glass scattering is a delta distribution
func (g *Glass) Discrete() bool { return true }
