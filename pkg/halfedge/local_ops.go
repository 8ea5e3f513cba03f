package halfedge

import (
	"errors"
	"fmt"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

// ErrRefused is the base refusal sentinel. Every operation that would
// violate a connectivity invariant returns an error wrapping it and leaves
// the mesh untouched.
var ErrRefused = errors.New("halfedge: operation refused")

var (
	// ErrBoundary marks refusals caused by boundary adjacency
	ErrBoundary = fmt.Errorf("%w: element on boundary", ErrRefused)
	// ErrNotTriangles marks a split on an edge without two triangular faces
	ErrNotTriangles = fmt.Errorf("%w: adjacent faces are not triangles", ErrRefused)
	// ErrWouldDisconnect marks an erase that would disconnect the surface
	ErrWouldDisconnect = fmt.Errorf("%w: would disconnect mesh", ErrRefused)
	// ErrLastVertex marks an attempt to erase the only vertex
	ErrLastVertex = fmt.Errorf("%w: cannot erase last vertex", ErrRefused)
	// ErrNotCollapsible marks a collapse the manifold gate rejected
	ErrNotCollapsible = fmt.Errorf("%w: collapse would break manifoldness", ErrRefused)
	// ErrNotSupported marks operations this editor does not implement
	ErrNotSupported = errors.New("halfedge: operation not supported")
)

// FlipEdge rotates an interior edge to connect the two vertices opposite it
// in its adjacent faces, returning the flipped edge. Boundary edges refuse.
func (m *Mesh) FlipEdge(e EdgeID) (EdgeID, error) {
	if m.OnBoundary(e) {
		return InvalidEdge, ErrBoundary
	}

	// Collect the two face rings: f0's halfedges first, then f1's, with the
	// distinct vertices in discovery order.
	var h []HalfedgeID
	var v []VertexID
	contains := func(id VertexID) bool {
		for _, x := range v {
			if x == id {
				return true
			}
		}
		return false
	}

	start := m.edges[e].Halfedge
	cur := start
	for {
		h = append(h, cur)
		v = append(v, m.halfedges[cur].Vertex)
		cur = m.next(cur)
		if cur == start {
			break
		}
	}
	l1 := len(h)

	cur = m.twin(start)
	tw := cur
	for {
		h = append(h, cur)
		if vid := m.halfedges[cur].Vertex; !contains(vid) {
			v = append(v, vid)
		}
		cur = m.next(cur)
		if cur == tw {
			break
		}
	}
	last := len(h) - 1

	f0 := m.halfedges[h[0]].Face
	f1 := m.halfedges[h[l1]].Face

	// Rewire: the flipped edge now runs between the vertices two steps past
	// the old endpoints on either side; the two corner halfedges change
	// faces, and the four surrounding next pointers reroute around them.
	he0 := m.H(h[0])
	he0.Next = h[2]
	he0.Vertex = v[l1]
	he0.Twin = h[l1]
	he0.Edge = e
	he0.Face = f0

	heT := m.H(h[l1])
	heT.Next = h[l1+2]
	heT.Vertex = v[2]
	heT.Twin = h[0]
	heT.Edge = e
	heT.Face = f1

	m.H(h[l1-1]).Next = h[l1+1]
	m.H(h[l1-1]).Face = f0

	m.H(h[l1+1]).Next = h[0]
	m.H(h[l1+1]).Face = f0

	m.H(h[last]).Next = h[1]
	m.H(h[last]).Face = f1

	m.H(h[1]).Next = h[l1]
	m.H(h[1]).Face = f1

	m.V(v[0]).Halfedge = h[l1+1]
	m.V(v[1]).Halfedge = h[1]

	m.E(e).Halfedge = h[0]
	m.F(f0).Halfedge = h[0]
	m.F(f1).Halfedge = h[l1]

	return e, nil
}

// SplitEdge inserts a midpoint vertex on an interior edge between two
// triangles, producing a four-triangle fan around the new vertex. The
// returned vertex's outgoing halfedge points along the original edge's
// direction, not along one of the new cross edges.
func (m *Mesh) SplitEdge(e EdgeID) (VertexID, error) {
	if m.OnBoundary(e) {
		return InvalidVertex, ErrBoundary
	}

	h0 := m.edges[e].Halfedge
	if m.next(m.next(m.next(h0))) != h0 {
		return InvalidVertex, ErrNotTriangles
	}
	h3 := m.twin(h0)
	if m.next(m.next(m.next(h3))) != h3 {
		return InvalidVertex, ErrNotTriangles
	}

	h1 := m.next(h0)
	h2 := m.next(h1)
	h4 := m.next(h3)
	h5 := m.next(h4)

	v0 := m.halfedges[h0].Vertex
	v1 := m.halfedges[h1].Vertex
	v2 := m.halfedges[h2].Vertex
	v3 := m.halfedges[h5].Vertex

	f0 := m.halfedges[h0].Face
	f1 := m.halfedges[h3].Face

	vm := m.newVertex()
	h6 := m.newHalfedge()
	h7 := m.newHalfedge()
	h8 := m.newHalfedge()
	h9 := m.newHalfedge()
	h10 := m.newHalfedge()
	h11 := m.newHalfedge()
	e1 := m.newEdge()
	e2 := m.newEdge()
	e3 := m.newEdge()
	f2 := m.newFace(false)
	f3 := m.newFace(false)

	set := func(h, next, twin HalfedgeID, vertex VertexID, edge EdgeID, face FaceID) {
		he := m.H(h)
		he.Next, he.Twin, he.Vertex, he.Edge, he.Face = next, twin, vertex, edge, face
	}

	// f0 keeps (v0, m, v2); f1 keeps (m, v0, v3); f2 = (v1, v2, m);
	// f3 = (v1, m, v3).
	set(h0, h3, h11, v0, e, f0)
	set(h3, h2, h6, vm, e2, f0)
	m.H(h2).Next = h0
	m.H(h2).Face = f0

	m.H(h1).Next = h6
	m.H(h1).Face = f2
	set(h6, h7, h3, v2, e2, f2)
	set(h7, h1, h8, vm, e1, f2)

	set(h8, h9, h7, v1, e1, f3)
	set(h9, h5, h10, vm, e3, f3)
	m.H(h5).Next = h8
	m.H(h5).Face = f3

	m.H(h4).Next = h10
	m.H(h4).Face = f1
	set(h10, h11, h9, v3, e3, f1)
	set(h11, h4, h0, vm, e, f1)

	m.V(v0).Halfedge = h4
	m.V(v1).Halfedge = h1
	m.V(v2).Halfedge = h2
	m.V(v3).Halfedge = h5

	mid := m.V(vm)
	mid.Position = m.verts[v0].Position.Add(m.verts[v1].Position).Multiply(0.5)
	mid.Halfedge = h7
	mid.IsNew = true

	m.E(e).Halfedge = h0
	m.E(e1).Halfedge = h7
	m.E(e2).Halfedge = h3
	m.E(e3).Halfedge = h9
	m.E(e2).IsNew = true
	m.E(e3).IsNew = true

	m.F(f0).Halfedge = h0
	m.F(f1).Halfedge = h4
	m.F(f2).Halfedge = h1
	m.F(f3).Halfedge = h5

	return vm, nil
}

// CollapseEdge merges the edge's endpoints into its first vertex, placed at
// the edge midpoint. A triangular adjacent face disappears entirely, fusing
// its two remaining edges; a larger face just loses one boundary halfedge.
// Any edge left with boundary faces on both sides is erased afterwards.
//
// CollapseEdge assumes the collapse is topologically sound; Simplify guards
// its calls with EdgeCollapsible.
func (m *Mesh) CollapseEdge(e EdgeID) (VertexID, error) {
	he1 := m.edges[e].Halfedge
	he2 := m.twin(he1)
	he1n := m.next(he1)
	he2n := m.next(he2)
	v1 := m.halfedges[he1].Vertex
	v2 := m.halfedges[he2].Vertex
	he1p := m.prev(he1)
	he2p := m.prev(he2)

	// All halfedges leaving v2 now leave v1.
	for _, h := range m.VertexHalfedges(v2) {
		m.H(h).Vertex = v1
	}

	collapseSide := func(hen, hep HalfedgeID) HalfedgeID {
		henTwin := m.twin(hen)
		hepTwin := m.twin(hep)
		// Point the surviving edges away from halfedges that may go away.
		m.E(m.halfedges[hen].Edge).Halfedge = henTwin
		m.E(m.halfedges[hep].Edge).Halfedge = hepTwin
		if m.next(hen) == hep {
			// Triangular face: remove it and fuse its two outer edges.
			m.H(henTwin).Twin = hepTwin
			m.H(hepTwin).Twin = henTwin
			m.eraseH(hen)
			m.eraseH(hep)
			m.eraseE(m.halfedges[hen].Edge)
			m.eraseF(m.halfedges[hen].Face)
			m.H(henTwin).Edge = m.halfedges[hep].Edge
			m.V(m.halfedges[hep].Vertex).Halfedge = henTwin
		} else {
			m.H(hep).Next = hen
			m.F(m.halfedges[hep].Face).Halfedge = hep
		}
		return henTwin
	}

	he1nTwin := collapseSide(he1n, he1p)
	he2nTwin := collapseSide(he2n, he2p)

	m.V(v1).Halfedge = m.twin(he2p)
	m.V(v1).Position = m.verts[v1].Position.Add(m.verts[v2].Position).Multiply(0.5)

	m.eraseH(he1)
	m.eraseH(he2)
	m.eraseV(v2)
	m.eraseE(e)

	// A fused edge with boundary faces on both sides carries no surface;
	// drop it.
	for _, h := range []HalfedgeID{he1nTwin, he2nTwin} {
		if m.faces[m.halfedges[h].Face].Boundary &&
			m.faces[m.halfedges[m.twin(h)].Face].Boundary {
			_, _ = m.EraseEdge(m.halfedges[h].Edge)
		}
	}

	return v1, nil
}

// EraseEdge removes an interior edge, merging its two incident faces into
// the first one. It refuses when the edge's halfedges follow one another
// (removal would disconnect the ring) or when both sides already bound the
// same face.
func (m *Mesh) EraseEdge(e EdgeID) (FaceID, error) {
	he1 := m.edges[e].Halfedge
	he2 := m.twin(he1)
	if he1 == m.next(he2) || he2 == m.next(he1) {
		return InvalidFace, ErrWouldDisconnect
	}
	f1 := m.halfedges[he1].Face
	f2 := m.halfedges[he2].Face
	if f1 == f2 {
		return InvalidFace, ErrWouldDisconnect
	}

	he1n := m.next(he1)
	he2n := m.next(he2)
	v1 := m.halfedges[he1].Vertex
	v2 := m.halfedges[he2].Vertex
	he1p := m.prev(he1)
	he2p := m.prev(he2)

	// Splice the two rings together and relabel everything to f1.
	m.H(he2p).Next = he1n
	m.H(he1p).Next = he2n
	h := he1n
	for {
		m.H(h).Face = f1
		h = m.next(h)
		if h == he1n {
			break
		}
	}
	m.V(v1).Halfedge = he2n
	m.V(v2).Halfedge = he1n
	m.F(f1).Halfedge = he1n
	m.F(f1).Boundary = m.faces[f1].Boundary || m.faces[f2].Boundary

	m.eraseE(e)
	m.eraseH(he1)
	m.eraseH(he2)
	m.eraseF(f2)
	return f1, nil
}

// EraseVertex removes a vertex together with its edges and halfedges,
// merging all incident faces into one.
func (m *Mesh) EraseVertex(v VertexID) (FaceID, error) {
	if m.NVertices() <= 1 {
		return InvalidFace, ErrLastVertex
	}

	hi := m.verts[v].Halfedge
	f := m.halfedges[hi].Face
	vhe := m.VertexHalfedges(v)
	n := len(vhe)

	// For each consecutive pair of spokes, relabel the sector between them
	// to the surviving face and splice the ring past the corner at v.
	for i := 0; i < n; i++ {
		heNxt := vhe[i]
		heCur := vhe[(i+1)%n]
		vCur := m.head(heCur)
		m.V(vCur).Halfedge = m.next(heCur)

		he := heCur
		for m.next(he) != m.twin(heNxt) {
			he = m.next(he)
			m.H(he).Face = f
		}
		m.H(he).Next = m.next(heNxt)
	}
	m.F(f).Halfedge = m.next(hi)

	for _, he := range vhe {
		m.eraseE(m.halfedges[he].Edge)
		m.eraseH(he)
		m.eraseH(m.twin(he))
		if sector := m.halfedges[he].Face; sector != f {
			m.eraseF(sector)
		}
	}
	m.eraseV(v)
	return f, nil
}

// BevelFace replaces an interior face of degree n with an inset face of the
// same degree surrounded by a ring of n quads. New vertex positions start
// at their originals; BevelFacePositions moves them afterwards.
func (m *Mesh) BevelFace(f FaceID) (FaceID, error) {
	if m.faces[f].Boundary {
		return InvalidFace, ErrBoundary
	}

	ring := m.FaceHalfedges(f)
	n := len(ring)

	// Per original halfedge: a rail up (he2), an inset-twin (he3), a rail
	// down (he4), an inset-ring halfedge (heN), two edges, a vertex copy
	// and a quad face.
	hes2 := make([]HalfedgeID, n)
	hes3 := make([]HalfedgeID, n)
	hes4 := make([]HalfedgeID, n)
	hesN := make([]HalfedgeID, n)
	res := make([]EdgeID, n)
	ies := make([]EdgeID, n)
	vs := make([]VertexID, n)
	nfs := make([]FaceID, n)
	for i := 0; i < n; i++ {
		hes2[i] = m.newHalfedge()
		hes3[i] = m.newHalfedge()
		hes4[i] = m.newHalfedge()
		hesN[i] = m.newHalfedge()
		res[i] = m.newEdge()
		ies[i] = m.newEdge()
		vs[i] = m.newVertex()
		nfs[i] = m.newFace(false)
	}

	set := func(h, next, twin HalfedgeID, vertex VertexID, edge EdgeID, face FaceID) {
		he := m.H(h)
		he.Next, he.Twin, he.Vertex, he.Edge, he.Face = next, twin, vertex, edge, face
	}

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		k := (i - 1 + n) % n

		he1 := ring[i]
		he2, he3, he4, heN := hes2[i], hes3[i], hes4[i], hesN[i]
		v1 := m.halfedges[he1].Vertex
		v2 := m.halfedges[ring[j]].Vertex
		v3, v4 := vs[j], vs[i]
		e2, e3, e4 := res[j], ies[i], res[i]
		nf := nfs[i]

		m.H(he1).Next = he2
		m.H(he1).Face = nf
		set(he2, he3, hes4[j], v2, e2, nf)
		set(he3, he4, heN, v3, e3, nf)
		set(he4, he1, hes2[k], v4, e4, nf)
		set(heN, hesN[j], he3, v4, e3, f)

		m.V(v2).Halfedge = he2
		m.V(v3).Position = m.verts[v2].Position
		m.V(v3).Halfedge = he3
		m.V(v4).Position = m.verts[v1].Position

		m.E(e2).Halfedge = he2
		m.E(e3).Halfedge = he3
		m.F(nf).Halfedge = he1
	}

	m.F(f).Halfedge = hesN[0]
	return f, nil
}

// BevelFacePositions recomputes the positions of a beveled face's vertices
// from the original positions: each vertex moves against the original face
// normal by normalOffset and toward (or away from) the original centroid by
// tangentOffset. The offsets are absolute, not deltas.
func (m *Mesh) BevelFacePositions(startPositions []core.Vec3, face FaceID, tangentOffset, normalOffset float64) {
	ring := m.FaceHalfedges(face)
	normal := normalOfPositions(startPositions)
	center := centroidOfPositions(startPositions)

	for i, h := range ring {
		if i >= len(startPositions) {
			break
		}
		pos := startPositions[i]
		pos = pos.Subtract(normal.Multiply(normalOffset))
		pos = pos.Add(startPositions[i].Subtract(center).Multiply(tangentOffset))
		m.V(m.halfedges[h].Vertex).Position = pos
	}
}

// BevelVertex is not supported by this editor
func (m *Mesh) BevelVertex(v VertexID) (FaceID, error) {
	return InvalidFace, ErrNotSupported
}

// BevelEdge is not supported by this editor
func (m *Mesh) BevelEdge(e EdgeID) (FaceID, error) {
	return InvalidFace, ErrNotSupported
}

// normalOfPositions returns the unit normal of a planar polygon given its
// vertex positions in ring order.
func normalOfPositions(positions []core.Vec3) core.Vec3 {
	var n core.Vec3
	for i, p := range positions {
		q := positions[(i+1)%len(positions)]
		n = n.Add(p.Cross(q))
	}
	return n.Normalize()
}

// centroidOfPositions returns the arithmetic mean of the positions
func centroidOfPositions(positions []core.Vec3) core.Vec3 {
	var sum core.Vec3
	for _, p := range positions {
		sum = sum.Add(p)
	}
	return sum.Multiply(1.0 / float64(len(positions)))
}
