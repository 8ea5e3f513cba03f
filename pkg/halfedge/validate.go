package halfedge

import "fmt"

// Validate re-verifies every connectivity invariant over the live entities.
// Erased-but-not-swept entities count as absent: a live entity referencing
// a marked or dead one is an error. Surrounding tooling calls this after
// every edit and rejects the edit on failure.
func (m *Mesh) Validate() error {
	verts := m.VertexIDs()
	edges := m.EdgeIDs()
	halfedges := m.HalfedgeIDs()
	faces := m.FaceIDs()

	if len(verts) == 0 {
		return fmt.Errorf("halfedge: mesh has no vertices")
	}

	// Every reference out of a live entity must resolve to a live entity.
	for _, v := range verts {
		if !m.HalfedgeAlive(m.verts[v].Halfedge) {
			return fmt.Errorf("halfedge: vertex %d has dead halfedge", v)
		}
	}
	for _, e := range edges {
		if !m.HalfedgeAlive(m.edges[e].Halfedge) {
			return fmt.Errorf("halfedge: edge %d has dead halfedge", e)
		}
	}
	for _, f := range faces {
		if !m.HalfedgeAlive(m.faces[f].Halfedge) {
			return fmt.Errorf("halfedge: face %d has dead halfedge", f)
		}
	}
	for _, h := range halfedges {
		he := m.halfedges[h]
		if !m.HalfedgeAlive(he.Twin) || !m.HalfedgeAlive(he.Next) {
			return fmt.Errorf("halfedge: halfedge %d has dead neighbour", h)
		}
		if !m.VertexAlive(he.Vertex) {
			return fmt.Errorf("halfedge: halfedge %d has dead vertex", h)
		}
		if !m.EdgeAlive(he.Edge) {
			return fmt.Errorf("halfedge: halfedge %d has dead edge", h)
		}
		if !m.FaceAlive(he.Face) {
			return fmt.Errorf("halfedge: halfedge %d has dead face", h)
		}
	}

	// Twin involution and source/destination agreement.
	for _, h := range halfedges {
		t := m.twin(h)
		if t == h {
			return fmt.Errorf("halfedge: halfedge %d is its own twin", h)
		}
		if m.twin(t) != h {
			return fmt.Errorf("halfedge: twin of %d is not an involution", h)
		}
		if m.halfedges[t].Vertex != m.halfedges[m.next(h)].Vertex {
			return fmt.Errorf("halfedge: twin/next vertex mismatch at halfedge %d", h)
		}
		if m.halfedges[h].Edge != m.halfedges[t].Edge {
			return fmt.Errorf("halfedge: halfedge %d and its twin disagree on edge", h)
		}
	}

	// Face rings: next cycles back within a bounded number of steps and
	// every visited halfedge shares the ring's face.
	limit := len(halfedges) + 1
	seenInFace := make(map[HalfedgeID]FaceID)
	for _, f := range faces {
		start := m.faces[f].Halfedge
		h := start
		for steps := 0; ; steps++ {
			if steps > limit {
				return fmt.Errorf("halfedge: face %d ring does not close", f)
			}
			if m.halfedges[h].Face != f {
				return fmt.Errorf("halfedge: halfedge %d in ring of face %d has face %d",
					h, f, m.halfedges[h].Face)
			}
			if prevFace, dup := seenInFace[h]; dup {
				return fmt.Errorf("halfedge: halfedge %d in rings of faces %d and %d",
					h, prevFace, f)
			}
			seenInFace[h] = f
			h = m.next(h)
			if h == start {
				break
			}
		}
	}
	for _, h := range halfedges {
		if _, ok := seenInFace[h]; !ok {
			return fmt.Errorf("halfedge: halfedge %d is in no face ring", h)
		}
	}

	// Each edge has exactly two halfedges.
	edgeUse := make(map[EdgeID]int)
	for _, h := range halfedges {
		edgeUse[m.halfedges[h].Edge]++
	}
	for _, e := range edges {
		if edgeUse[e] != 2 {
			return fmt.Errorf("halfedge: edge %d has %d halfedges", e, edgeUse[e])
		}
	}
	if len(edgeUse) != len(edges) {
		return fmt.Errorf("halfedge: halfedges reference %d edges, mesh has %d",
			len(edgeUse), len(edges))
	}

	// Vertex orbits: twin-then-next from the stored halfedge returns to it,
	// and every visited halfedge leaves the vertex.
	seenAtVertex := make(map[HalfedgeID]bool)
	for _, v := range verts {
		start := m.verts[v].Halfedge
		h := start
		for steps := 0; ; steps++ {
			if steps > limit {
				return fmt.Errorf("halfedge: vertex %d orbit does not close", v)
			}
			if m.halfedges[h].Vertex != v {
				return fmt.Errorf("halfedge: halfedge %d in orbit of vertex %d has vertex %d",
					h, v, m.halfedges[h].Vertex)
			}
			if seenAtVertex[h] {
				return fmt.Errorf("halfedge: halfedge %d appears in two vertex orbits", h)
			}
			seenAtVertex[h] = true
			h = m.next(m.twin(h))
			if h == start {
				break
			}
		}
	}
	for _, h := range halfedges {
		if !seenAtVertex[h] {
			return fmt.Errorf("halfedge: halfedge %d is in no vertex orbit", h)
		}
	}

	// No two distinct edges may bound the same face with the same endpoint
	// pair.
	for _, f := range faces {
		type pairEdge struct {
			a, b VertexID
		}
		seen := make(map[pairEdge]EdgeID)
		for _, h := range m.FaceHalfedges(f) {
			a, b := m.halfedges[h].Vertex, m.head(h)
			if b < a {
				a, b = b, a
			}
			p := pairEdge{a, b}
			if other, dup := seen[p]; dup && other != m.halfedges[h].Edge {
				return fmt.Errorf("halfedge: face %d has doubled edge between %d and %d", f, a, b)
			}
			seen[p] = m.halfedges[h].Edge
		}
	}

	// Boundary faces may not touch each other across an edge.
	for _, e := range edges {
		h := m.edges[e].Halfedge
		if m.faces[m.halfedges[h].Face].Boundary &&
			m.faces[m.halfedges[m.twin(h)].Face].Boundary {
			return fmt.Errorf("halfedge: edge %d lies between two boundary faces", e)
		}
	}

	return nil
}
