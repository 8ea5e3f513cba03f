package renderer

import (
	"math"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

// Camera generates world-space rays from normalised screen coordinates.
// The sensor plane sits at the focal distance along the viewing direction;
// its half-height is tan(vfov/2) * focalDist and its half-width is that
// times the aspect ratio.
type Camera struct {
	origin  core.Vec3
	right   core.Vec3
	up      core.Vec3
	forward core.Vec3

	halfWidth  float64
	halfHeight float64
	focalDist  float64
}

// NewCamera creates a camera at lookFrom aimed at lookAt. vfov is the
// vertical field of view in degrees.
func NewCamera(lookFrom, lookAt, vup core.Vec3, vfov, aspect, focalDist float64) *Camera {
	forward := lookAt.Subtract(lookFrom).Normalize()
	right := forward.Cross(vup).Normalize()
	up := right.Cross(forward)

	halfHeight := math.Tan(vfov*math.Pi/360) * focalDist

	return &Camera{
		origin:     lookFrom,
		right:      right,
		up:         up,
		forward:    forward,
		halfWidth:  halfHeight * aspect,
		halfHeight: halfHeight,
		focalDist:  focalDist,
	}
}

// GenerateRay maps a screen coordinate (u,v) in [0,1]^2 to a world-space
// ray through the corresponding sensor point. (0,0) is the lower-left
// corner of the image.
func (c *Camera) GenerateRay(u, v float64) core.Ray {
	x := (2*u - 1) * c.halfWidth
	y := (2*v - 1) * c.halfHeight

	sensor := c.origin.
		Add(c.right.Multiply(x)).
		Add(c.up.Multiply(y)).
		Add(c.forward.Multiply(c.focalDist))

	return core.NewRay(c.origin, sensor.Subtract(c.origin).Normalize())
}
