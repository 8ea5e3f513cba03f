package core

// Trace describes the result of intersecting a ray with a primitive or an
// aggregate. Material is an opaque tag that aggregates like scene.Object
// stamp onto their hits so the renderer can look up the surface BSDF; bare
// primitives leave it zero.
type Trace struct {
	Hit      bool
	Distance float64
	Position Vec3
	Normal   Vec3
	Origin   Vec3
	Material int
}

// MinTrace keeps the hit with the smaller distance, or whichever one hit if
// only one did.
func MinTrace(a, b Trace) Trace {
	if a.Hit && b.Hit {
		if b.Distance < a.Distance {
			return b
		}
		return a
	}
	if b.Hit {
		return b
	}
	return a
}
