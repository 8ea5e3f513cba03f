package halfedge

// TriangulateFace splits one non-boundary n-gon into a fan of n-2 triangles
// rooted at the face's first vertex, adding n-3 interior edges. Triangles
// and boundary faces are left alone.
func (m *Mesh) TriangulateFace(f FaceID) {
	if m.faces[f].Boundary {
		return
	}
	hi := m.faces[f].Halfedge
	if m.next(m.next(m.next(hi))) == hi {
		return
	}

	base := m.halfedges[hi].Vertex

	// radial[i] runs base -> vs[i]; twinOf[i] is its twin; fan[i] is the
	// original boundary halfedge vs[i] -> vs[i+1]. The first and last
	// radial pairs reuse the face's own first and last halfedges.
	var radial, twinOf, fan []HalfedgeID
	var vs []VertexID
	var radialEdges []EdgeID
	var tris []FaceID

	radial = append(radial, hi)
	twinOf = append(twinOf, m.twin(hi))
	vs = append(vs, m.head(hi))
	radialEdges = append(radialEdges, m.halfedges[hi].Edge)
	tris = append(tris, f)

	he := hi
	for {
		if he != hi {
			fan = append(fan, he)
			if he != m.next(hi) {
				radial = append(radial, m.newHalfedge())
				twinOf = append(twinOf, m.newHalfedge())
				vs = append(vs, m.halfedges[he].Vertex)
				radialEdges = append(radialEdges, m.newEdge())
				tris = append(tris, m.newFace(false))
			}
		}
		he = m.next(he)
		if m.next(he) == hi {
			break
		}
	}
	radial = append(radial, m.twin(he))
	twinOf = append(twinOf, he)
	vs = append(vs, m.halfedges[he].Vertex)
	radialEdges = append(radialEdges, m.halfedges[he].Edge)

	for i := 0; i < len(tris); i++ {
		he1 := twinOf[i+1] // vs[i+1] -> base
		he2 := fan[i]      // vs[i] -> vs[i+1]
		he3 := radial[i]   // base -> vs[i]
		nf := tris[i]

		h := m.H(he1)
		h.Next, h.Twin, h.Vertex, h.Edge, h.Face =
			he3, radial[i+1], vs[i+1], radialEdges[i+1], nf

		m.H(he2).Next = he1
		m.H(he2).Face = nf

		h = m.H(he3)
		h.Next, h.Twin, h.Vertex, h.Edge, h.Face =
			he2, twinOf[i], base, radialEdges[i], nf

		m.E(radialEdges[i+1]).Halfedge = he1
		m.E(radialEdges[i]).Halfedge = he3
		m.F(nf).Halfedge = he2
	}
}

// Triangulate splits every non-boundary, non-triangular face into triangles
func (m *Mesh) Triangulate() {
	for _, f := range m.FaceIDs() {
		m.TriangulateFace(f)
	}
}
