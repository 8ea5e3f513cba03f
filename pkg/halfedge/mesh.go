// Package halfedge implements an editable polygon mesh on the half-edge
// data structure: local topology operations, triangulation, subdivision and
// quadric-error simplification.
//
// Entities live in per-kind arenas and are addressed by integer handles.
// Handles are stable across unrelated edits; they are invalidated only when
// the referent is erased. Erasure is deferred: operations mark entities with
// the erase* helpers and a later Collect sweep frees the slots, so an
// operation can build its replacement topology and drop the remnants in any
// convenient order without transient dangling references.
package halfedge

import "github.com/liberty293/Cardinal3D/pkg/core"

// Handle types for the four entity kinds.
type (
	VertexID   int32
	EdgeID     int32
	HalfedgeID int32
	FaceID     int32
)

// Invalid handles, returned by refused operations.
const (
	InvalidVertex   VertexID   = -1
	InvalidEdge     EdgeID     = -1
	InvalidHalfedge HalfedgeID = -1
	InvalidFace     FaceID     = -1
)

type status uint8

const (
	statusLive   status = iota
	statusMarked        // erased, waiting for Collect
	statusDead          // swept, slot on the free list
)

// Vertex is a mesh vertex: a position and one outgoing halfedge. NewPos and
// IsNew are scratch fields used by the subdivision passes.
type Vertex struct {
	Position core.Vec3
	Halfedge HalfedgeID
	NewPos   core.Vec3
	IsNew    bool
	status   status
}

// Edge is an undirected mesh edge, represented by one of its two halfedges.
type Edge struct {
	Halfedge HalfedgeID
	NewPos   core.Vec3
	IsNew    bool
	status   status
}

// Halfedge is one directed side of an edge.
type Halfedge struct {
	Twin   HalfedgeID
	Next   HalfedgeID
	Vertex VertexID // source vertex
	Edge   EdgeID
	Face   FaceID
	status status
}

// Face is a mesh face. Boundary faces are virtual outside-the-mesh faces
// that represent holes: they participate in the connectivity but are not
// rendered and are excluded from quadric accumulation.
type Face struct {
	Halfedge HalfedgeID
	Boundary bool
	NewPos   core.Vec3
	status   status
}

// Mesh owns the four entity arenas.
type Mesh struct {
	verts     []Vertex
	edges     []Edge
	halfedges []Halfedge
	faces     []Face

	freeVerts     []VertexID
	freeEdges     []EdgeID
	freeHalfedges []HalfedgeID
	freeFaces     []FaceID
}

// New creates an empty mesh
func New() *Mesh {
	return &Mesh{}
}

// V resolves a vertex handle
func (m *Mesh) V(id VertexID) *Vertex { return &m.verts[id] }

// E resolves an edge handle
func (m *Mesh) E(id EdgeID) *Edge { return &m.edges[id] }

// H resolves a halfedge handle
func (m *Mesh) H(id HalfedgeID) *Halfedge { return &m.halfedges[id] }

// F resolves a face handle
func (m *Mesh) F(id FaceID) *Face { return &m.faces[id] }

// Allocators. Free slots are reused only after a Collect sweep.

func (m *Mesh) newVertex() VertexID {
	if n := len(m.freeVerts); n > 0 {
		id := m.freeVerts[n-1]
		m.freeVerts = m.freeVerts[:n-1]
		m.verts[id] = Vertex{Halfedge: InvalidHalfedge}
		return id
	}
	m.verts = append(m.verts, Vertex{Halfedge: InvalidHalfedge})
	return VertexID(len(m.verts) - 1)
}

func (m *Mesh) newEdge() EdgeID {
	if n := len(m.freeEdges); n > 0 {
		id := m.freeEdges[n-1]
		m.freeEdges = m.freeEdges[:n-1]
		m.edges[id] = Edge{Halfedge: InvalidHalfedge}
		return id
	}
	m.edges = append(m.edges, Edge{Halfedge: InvalidHalfedge})
	return EdgeID(len(m.edges) - 1)
}

func (m *Mesh) newHalfedge() HalfedgeID {
	blank := Halfedge{
		Twin: InvalidHalfedge, Next: InvalidHalfedge,
		Vertex: InvalidVertex, Edge: InvalidEdge, Face: InvalidFace,
	}
	if n := len(m.freeHalfedges); n > 0 {
		id := m.freeHalfedges[n-1]
		m.freeHalfedges = m.freeHalfedges[:n-1]
		m.halfedges[id] = blank
		return id
	}
	m.halfedges = append(m.halfedges, blank)
	return HalfedgeID(len(m.halfedges) - 1)
}

func (m *Mesh) newFace(boundary bool) FaceID {
	if n := len(m.freeFaces); n > 0 {
		id := m.freeFaces[n-1]
		m.freeFaces = m.freeFaces[:n-1]
		m.faces[id] = Face{Halfedge: InvalidHalfedge, Boundary: boundary}
		return id
	}
	m.faces = append(m.faces, Face{Halfedge: InvalidHalfedge, Boundary: boundary})
	return FaceID(len(m.faces) - 1)
}

// Deferred erasure: mark now, free on Collect.

func (m *Mesh) eraseV(id VertexID)   { m.verts[id].status = statusMarked }
func (m *Mesh) eraseE(id EdgeID)     { m.edges[id].status = statusMarked }
func (m *Mesh) eraseH(id HalfedgeID) { m.halfedges[id].status = statusMarked }
func (m *Mesh) eraseF(id FaceID)     { m.faces[id].status = statusMarked }

// Collect sweeps every marked entity, freeing its slot for reuse. Callers
// run it after an operation (and any validation) has finished dereferencing.
func (m *Mesh) Collect() {
	for i := range m.verts {
		if m.verts[i].status == statusMarked {
			m.verts[i].status = statusDead
			m.freeVerts = append(m.freeVerts, VertexID(i))
		}
	}
	for i := range m.edges {
		if m.edges[i].status == statusMarked {
			m.edges[i].status = statusDead
			m.freeEdges = append(m.freeEdges, EdgeID(i))
		}
	}
	for i := range m.halfedges {
		if m.halfedges[i].status == statusMarked {
			m.halfedges[i].status = statusDead
			m.freeHalfedges = append(m.freeHalfedges, HalfedgeID(i))
		}
	}
	for i := range m.faces {
		if m.faces[i].status == statusMarked {
			m.faces[i].status = statusDead
			m.freeFaces = append(m.freeFaces, FaceID(i))
		}
	}
}

// Liveness. Marked entities count as absent everywhere except inside an
// operation that has not finished rewiring yet.

// VertexAlive reports whether the handle resolves to a live vertex
func (m *Mesh) VertexAlive(id VertexID) bool {
	return id >= 0 && int(id) < len(m.verts) && m.verts[id].status == statusLive
}

// EdgeAlive reports whether the handle resolves to a live edge
func (m *Mesh) EdgeAlive(id EdgeID) bool {
	return id >= 0 && int(id) < len(m.edges) && m.edges[id].status == statusLive
}

// HalfedgeAlive reports whether the handle resolves to a live halfedge
func (m *Mesh) HalfedgeAlive(id HalfedgeID) bool {
	return id >= 0 && int(id) < len(m.halfedges) && m.halfedges[id].status == statusLive
}

// FaceAlive reports whether the handle resolves to a live face
func (m *Mesh) FaceAlive(id FaceID) bool {
	return id >= 0 && int(id) < len(m.faces) && m.faces[id].status == statusLive
}

// VertexIDs returns the handles of all live vertices
func (m *Mesh) VertexIDs() []VertexID {
	out := make([]VertexID, 0, len(m.verts))
	for i := range m.verts {
		if m.verts[i].status == statusLive {
			out = append(out, VertexID(i))
		}
	}
	return out
}

// EdgeIDs returns the handles of all live edges
func (m *Mesh) EdgeIDs() []EdgeID {
	out := make([]EdgeID, 0, len(m.edges))
	for i := range m.edges {
		if m.edges[i].status == statusLive {
			out = append(out, EdgeID(i))
		}
	}
	return out
}

// HalfedgeIDs returns the handles of all live halfedges
func (m *Mesh) HalfedgeIDs() []HalfedgeID {
	out := make([]HalfedgeID, 0, len(m.halfedges))
	for i := range m.halfedges {
		if m.halfedges[i].status == statusLive {
			out = append(out, HalfedgeID(i))
		}
	}
	return out
}

// FaceIDs returns the handles of all live faces, boundary faces included
func (m *Mesh) FaceIDs() []FaceID {
	out := make([]FaceID, 0, len(m.faces))
	for i := range m.faces {
		if m.faces[i].status == statusLive {
			out = append(out, FaceID(i))
		}
	}
	return out
}

// NVertices counts live vertices
func (m *Mesh) NVertices() int { return len(m.VertexIDs()) }

// NEdges counts live edges
func (m *Mesh) NEdges() int { return len(m.EdgeIDs()) }

// NFaces counts live interior (non-boundary) faces
func (m *Mesh) NFaces() int {
	n := 0
	for i := range m.faces {
		if m.faces[i].status == statusLive && !m.faces[i].Boundary {
			n++
		}
	}
	return n
}

// NBoundaries counts live boundary faces
func (m *Mesh) NBoundaries() int {
	n := 0
	for i := range m.faces {
		if m.faces[i].status == statusLive && m.faces[i].Boundary {
			n++
		}
	}
	return n
}

// Navigation shorthand.

func (m *Mesh) twin(h HalfedgeID) HalfedgeID { return m.halfedges[h].Twin }
func (m *Mesh) next(h HalfedgeID) HalfedgeID { return m.halfedges[h].Next }

// prev walks the face ring until it comes back around to h
func (m *Mesh) prev(h HalfedgeID) HalfedgeID {
	p := h
	for m.next(p) != h {
		p = m.next(p)
	}
	return p
}

// head returns the destination vertex of a halfedge
func (m *Mesh) head(h HalfedgeID) VertexID {
	return m.halfedges[m.halfedges[h].Twin].Vertex
}

// OnBoundary reports whether either side of the edge is a boundary face
func (m *Mesh) OnBoundary(e EdgeID) bool {
	h := m.edges[e].Halfedge
	return m.faces[m.halfedges[h].Face].Boundary ||
		m.faces[m.halfedges[m.twin(h)].Face].Boundary
}

// FaceDegree counts the halfedges bounding a face
func (m *Mesh) FaceDegree(f FaceID) int {
	start := m.faces[f].Halfedge
	n := 0
	h := start
	for {
		n++
		h = m.next(h)
		if h == start {
			return n
		}
	}
}

// FaceHalfedges returns the boundary ring of a face in next order
func (m *Mesh) FaceHalfedges(f FaceID) []HalfedgeID {
	start := m.faces[f].Halfedge
	var out []HalfedgeID
	h := start
	for {
		out = append(out, h)
		h = m.next(h)
		if h == start {
			return out
		}
	}
}

// FaceCenter returns the centroid of a face's vertices
func (m *Mesh) FaceCenter(f FaceID) core.Vec3 {
	var sum core.Vec3
	n := 0
	for _, h := range m.FaceHalfedges(f) {
		sum = sum.Add(m.verts[m.halfedges[h].Vertex].Position)
		n++
	}
	return sum.Multiply(1.0 / float64(n))
}

// FaceNormal returns the unit normal of a face. The cross-product sum over
// consecutive vertex pairs telescopes, so the result is independent of the
// face's position.
func (m *Mesh) FaceNormal(f FaceID) core.Vec3 {
	ring := m.FaceHalfedges(f)
	var n core.Vec3
	for i, h := range ring {
		p := m.verts[m.halfedges[h].Vertex].Position
		q := m.verts[m.halfedges[ring[(i+1)%len(ring)]].Vertex].Position
		n = n.Add(p.Cross(q))
	}
	return n.Normalize()
}

// EdgeCenter returns the midpoint of an edge
func (m *Mesh) EdgeCenter(e EdgeID) core.Vec3 {
	h := m.edges[e].Halfedge
	a := m.verts[m.halfedges[h].Vertex].Position
	b := m.verts[m.head(h)].Position
	return a.Add(b).Multiply(0.5)
}

// EdgeLength returns the length of an edge
func (m *Mesh) EdgeLength(e EdgeID) float64 {
	h := m.edges[e].Halfedge
	a := m.verts[m.halfedges[h].Vertex].Position
	b := m.verts[m.head(h)].Position
	return b.Subtract(a).Length()
}

// VertexHalfedges returns the outgoing halfedges around a vertex, starting
// from its stored halfedge and orbiting twin-then-next.
func (m *Mesh) VertexHalfedges(v VertexID) []HalfedgeID {
	start := m.verts[v].Halfedge
	var out []HalfedgeID
	h := start
	for {
		out = append(out, h)
		h = m.next(m.twin(h))
		if h == start {
			return out
		}
	}
}

// VertexDegree counts the edges incident to a vertex
func (m *Mesh) VertexDegree(v VertexID) int {
	return len(m.VertexHalfedges(v))
}

// vertexNeighborhood maps each neighbouring vertex to the outgoing halfedge
// that reaches it.
func (m *Mesh) vertexNeighborhood(v VertexID) map[VertexID]HalfedgeID {
	out := make(map[VertexID]HalfedgeID)
	for _, h := range m.VertexHalfedges(v) {
		out[m.head(h)] = h
	}
	return out
}
