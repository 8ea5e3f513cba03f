package halfedge

import "github.com/liberty293/Cardinal3D/pkg/core"

// SubdivisionScheme selects the position rule used by Subdivide
type SubdivisionScheme int

const (
	// Linear keeps vertices in place and inserts edge midpoints and face
	// centroids.
	Linear SubdivisionScheme = iota
	// CatmullClark applies the Catmull-Clark smoothing rules. Only defined
	// for meshes without boundary.
	CatmullClark
)

// LinearSubdividePositions fills the NewPos scratch fields with the linear
// rule: vertices stay, edges get midpoints, faces get centroids. The
// topology is untouched; a later rebuild turns the scratch positions into a
// quad mesh.
func (m *Mesh) LinearSubdividePositions() {
	for _, v := range m.VertexIDs() {
		m.V(v).NewPos = m.verts[v].Position
	}
	for _, e := range m.EdgeIDs() {
		m.E(e).NewPos = m.EdgeCenter(e)
	}
	for _, f := range m.FaceIDs() {
		m.F(f).NewPos = m.FaceCenter(f)
	}
}

// CatmullClarkSubdividePositions fills the NewPos scratch fields with the
// Catmull-Clark rules: face points are centroids, edge points average the
// edge midpoint with the two adjacent face points, and a vertex of valence
// n moves to (Q + 2R + (n-3)p)/n where Q and R are the means of the
// adjacent face points and edge midpoints. Assumes a mesh without boundary.
func (m *Mesh) CatmullClarkSubdividePositions() {
	for _, f := range m.FaceIDs() {
		m.F(f).NewPos = m.FaceCenter(f)
	}

	for _, e := range m.EdgeIDs() {
		h := m.edges[e].Halfedge
		left := m.FaceCenter(m.halfedges[h].Face)
		right := m.FaceCenter(m.halfedges[m.twin(h)].Face)
		m.E(e).NewPos = m.EdgeCenter(e).Multiply(0.5).
			Add(left.Add(right).Multiply(0.25))
	}

	for _, v := range m.VertexIDs() {
		var q, r core.Vec3
		n := 0
		for _, h := range m.VertexHalfedges(v) {
			q = q.Add(m.FaceCenter(m.halfedges[h].Face))
			r = r.Add(m.EdgeCenter(m.halfedges[h].Edge))
			n++
		}
		q = q.Multiply(1.0 / float64(n))
		r = r.Multiply(1.0 / float64(n))

		pos := m.verts[v].Position
		m.V(v).NewPos = q.
			Add(r.Multiply(2)).
			Add(pos.Multiply(float64(n - 3))).
			Multiply(1.0 / float64(n))
	}
}

// Subdivide replaces the mesh contents with one round of quad subdivision
// under the chosen scheme. Every element of the old mesh becomes a vertex
// of the new one: each old face contributes one corner quad per boundary
// halfedge, wound the same way as the old face.
func (m *Mesh) Subdivide(scheme SubdivisionScheme) error {
	switch scheme {
	case CatmullClark:
		m.CatmullClarkSubdividePositions()
	default:
		m.LinearSubdividePositions()
	}

	// Assign contiguous indices over vertices, then edges, then faces.
	vertexIdx := make(map[VertexID]int)
	edgeIdx := make(map[EdgeID]int)
	faceIdx := make(map[FaceID]int)
	var positions []core.Vec3

	for _, v := range m.VertexIDs() {
		vertexIdx[v] = len(positions)
		positions = append(positions, m.verts[v].NewPos)
	}
	for _, e := range m.EdgeIDs() {
		edgeIdx[e] = len(positions)
		positions = append(positions, m.edges[e].NewPos)
	}
	for _, f := range m.FaceIDs() {
		if m.faces[f].Boundary {
			continue
		}
		faceIdx[f] = len(positions)
		positions = append(positions, m.faces[f].NewPos)
	}

	var quads [][]int
	for _, f := range m.FaceIDs() {
		if m.faces[f].Boundary {
			continue
		}
		for _, h := range m.FaceHalfedges(f) {
			quads = append(quads, []int{
				faceIdx[f],
				edgeIdx[m.halfedges[h].Edge],
				vertexIdx[m.head(h)],
				edgeIdx[m.halfedges[m.next(h)].Edge],
			})
		}
	}

	rebuilt, err := FromPolygons(positions, quads)
	if err != nil {
		return err
	}
	*m = *rebuilt
	return nil
}
