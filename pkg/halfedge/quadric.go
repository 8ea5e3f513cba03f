package halfedge

import "github.com/liberty293/Cardinal3D/pkg/core"

// Quadric is a symmetric 4x4 error quadric in homogeneous coordinates. Its
// value at a point measures the summed squared distance to the planes it
// accumulated.
type Quadric [4][4]float64

// OuterProduct builds the rank-one quadric n4 * n4^T from a homogeneous
// plane (nx, ny, nz, d).
func OuterProduct(n core.Vec3, d float64) Quadric {
	v := [4]float64{n.X, n.Y, n.Z, d}
	var q Quadric
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			q[i][j] = v[i] * v[j]
		}
	}
	return q
}

// Add returns the sum of two quadrics
func (q Quadric) Add(other Quadric) Quadric {
	var out Quadric
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = q[i][j] + other[i][j]
		}
	}
	return out
}

// Evaluate returns (p,1)^T * Q * (p,1)
func (q Quadric) Evaluate(p core.Vec3) float64 {
	v := [4]float64{p.X, p.Y, p.Z, 1}
	total := 0.0
	for i := 0; i < 4; i++ {
		row := 0.0
		for j := 0; j < 4; j++ {
			row += q[i][j] * v[j]
		}
		total += v[i] * row
	}
	return total
}

// LinearSystem extracts the minimisation system from the quadric: A is the
// quadric with its last row and column replaced by (0,0,0,1) and b is the
// first three entries of the last row. The minimiser of the quadric, when A
// is invertible, is -A^-1 b.
func (q Quadric) LinearSystem() (a [3][3]float64, b core.Vec3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a[i][j] = q[i][j]
		}
	}
	b = core.NewVec3(q[3][0], q[3][1], q[3][2])
	return a, b
}

// det3 computes the determinant of a 3x3 matrix
func det3(a [3][3]float64) float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// solve3 solves a*x = b with Cramer's rule; callers must have checked the
// determinant first.
func solve3(a [3][3]float64, b core.Vec3, det float64) core.Vec3 {
	bv := [3]float64{b.X, b.Y, b.Z}
	var x [3]float64
	for col := 0; col < 3; col++ {
		sub := a
		for row := 0; row < 3; row++ {
			sub[row][col] = bv[row]
		}
		x[col] = det3(sub) / det
	}
	return core.NewVec3(x[0], x[1], x[2])
}
