package halfedge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

// squareMesh is a unit square split into two triangles by the diagonal BD:
// vertices A(0,0,0)=0, B(1,0,0)=1, C(1,1,0)=2, D(0,1,0)=3 with faces
// (A,B,D) and (B,C,D).
func squareMesh(t *testing.T) *Mesh {
	t.Helper()
	m, err := FromPolygons(
		[]core.Vec3{
			core.NewVec3(0, 0, 0),
			core.NewVec3(1, 0, 0),
			core.NewVec3(1, 1, 0),
			core.NewVec3(0, 1, 0),
		},
		[][]int{{0, 1, 3}, {1, 2, 3}},
	)
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	return m
}

// cubeMesh is a cube with corners at +-1, six quads, outward winding.
func cubeMesh(t *testing.T) *Mesh {
	t.Helper()
	m, err := FromPolygons(cubePositions(), cubeQuads())
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	return m
}

func cubePositions() []core.Vec3 {
	return []core.Vec3{
		core.NewVec3(-1, -1, -1),
		core.NewVec3(1, -1, -1),
		core.NewVec3(1, 1, -1),
		core.NewVec3(-1, 1, -1),
		core.NewVec3(-1, -1, 1),
		core.NewVec3(1, -1, 1),
		core.NewVec3(1, 1, 1),
		core.NewVec3(-1, 1, 1),
	}
}

func cubeQuads() [][]int {
	return [][]int{
		{0, 1, 5, 4}, // bottom
		{3, 7, 6, 2}, // top
		{0, 3, 2, 1}, // back
		{4, 5, 6, 7}, // front
		{0, 4, 7, 3}, // left
		{1, 2, 6, 5}, // right
	}
}

// icosahedronMesh is a regular icosahedron: 12 vertices, 30 edges, 20
// triangles, no boundary.
func icosahedronMesh(t *testing.T) *Mesh {
	t.Helper()
	phi := (1 + math.Sqrt(5)) / 2
	positions := []core.Vec3{
		core.NewVec3(-1, phi, 0),
		core.NewVec3(1, phi, 0),
		core.NewVec3(-1, -phi, 0),
		core.NewVec3(1, -phi, 0),
		core.NewVec3(0, -1, phi),
		core.NewVec3(0, 1, phi),
		core.NewVec3(0, -1, -phi),
		core.NewVec3(0, 1, -phi),
		core.NewVec3(phi, 0, -1),
		core.NewVec3(phi, 0, 1),
		core.NewVec3(-phi, 0, -1),
		core.NewVec3(-phi, 0, 1),
	}
	faces := [][]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	m, err := FromPolygons(positions, faces)
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	return m
}

// findEdge locates the edge whose endpoints are a and b
func findEdge(t *testing.T, m *Mesh, a, b VertexID) EdgeID {
	t.Helper()
	for _, e := range m.EdgeIDs() {
		h := m.E(e).Halfedge
		va := m.H(h).Vertex
		vb := m.head(h)
		if (va == a && vb == b) || (va == b && vb == a) {
			return e
		}
	}
	t.Fatalf("no edge between %d and %d", a, b)
	return InvalidEdge
}

// faceVertexSet returns the vertex handles around a face, unordered
func faceVertexSet(m *Mesh, f FaceID) map[VertexID]bool {
	set := make(map[VertexID]bool)
	for _, h := range m.FaceHalfedges(f) {
		set[m.halfedges[h].Vertex] = true
	}
	return set
}

func TestFromPolygons_Square(t *testing.T) {
	m := squareMesh(t)

	assert.Equal(t, 4, m.NVertices())
	assert.Equal(t, 5, m.NEdges())
	assert.Equal(t, 2, m.NFaces())
	assert.Equal(t, 1, m.NBoundaries(), "the square has one hole ring")
	assert.Equal(t, 10, len(m.HalfedgeIDs()))
}

func TestFromPolygons_ClosedCube(t *testing.T) {
	m := cubeMesh(t)

	assert.Equal(t, 8, m.NVertices())
	assert.Equal(t, 12, m.NEdges())
	assert.Equal(t, 6, m.NFaces())
	assert.Equal(t, 0, m.NBoundaries())

	for _, v := range m.VertexIDs() {
		assert.Equal(t, 3, m.VertexDegree(v))
	}
	for _, e := range m.EdgeIDs() {
		assert.False(t, m.OnBoundary(e))
	}
}

func TestFromPolygons_Refusals(t *testing.T) {
	_, err := FromPolygons(nil, nil)
	assert.ErrorIs(t, err, ErrNonManifold)

	// Two faces traverse the directed edge 0->1 in the same direction.
	_, err = FromPolygons(
		[]core.Vec3{{}, {X: 1}, {Y: 1}, {Z: 1}},
		[][]int{{0, 1, 2}, {0, 1, 3}},
	)
	assert.ErrorIs(t, err, ErrNonManifold)

	// Unreferenced vertex.
	_, err = FromPolygons(
		[]core.Vec3{{}, {X: 1}, {Y: 1}, {Z: 1}},
		[][]int{{0, 1, 2}},
	)
	assert.ErrorIs(t, err, ErrNonManifold)
}

func TestValidate_CatchesCorruption(t *testing.T) {
	m := squareMesh(t)

	// Break the twin involution on some halfedge.
	h := m.HalfedgeIDs()[0]
	saved := m.H(h).Twin
	m.H(h).Twin = h
	assert.Error(t, m.Validate())
	m.H(h).Twin = saved
	require.NoError(t, m.Validate())

	// Point a face at an erased halfedge.
	m.eraseH(m.faces[0].Halfedge)
	assert.Error(t, m.Validate())
}

func TestCollect_ReusesSlots(t *testing.T) {
	m := squareMesh(t)
	before := len(m.verts)

	v := m.newVertex()
	m.eraseV(v)
	assert.True(t, int(v) >= before)

	// Marked entities already count as absent before the sweep.
	assert.False(t, m.VertexAlive(v))
	m.Collect()
	reused := m.newVertex()
	assert.Equal(t, v, reused, "collect should free the slot for reuse")
}

func TestMeshGeometryHelpers(t *testing.T) {
	m := cubeMesh(t)

	// All face centroids sit on the cube surface, at the centre of a side.
	for _, f := range m.FaceIDs() {
		c := m.FaceCenter(f)
		onAxis := 0
		for axis := 0; axis < 3; axis++ {
			if math.Abs(math.Abs(c.Axis(axis))-1) < 1e-9 {
				onAxis++
			}
		}
		assert.Equal(t, 1, onAxis, "face centre %v", c)

		n := m.FaceNormal(f)
		assert.InDelta(t, 1, n.Length(), 1e-9)
		// Outward normal points the same way as the centroid.
		assert.Greater(t, n.Dot(c), 0.5)
	}

	e := findEdge(t, m, 0, 1)
	assert.InDelta(t, 2, m.EdgeLength(e), 1e-9)
	assert.Equal(t, core.NewVec3(0, -1, -1), m.EdgeCenter(e))
}
