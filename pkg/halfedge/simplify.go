package halfedge

import (
	"container/heap"
	"math"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

// Threshold for treating the quadric minimisation system as invertible. It
// is scaled by the cube of the edge length so the test is scale-invariant.
const invertibleThreshold = 1e-6

// Each simplification pass tries to remove three quarters of the faces.
const simplificationFactor = 4

// edgeRecord ranks one edge for collapse: the position minimising the
// combined endpoint quadric and the quadric error at that position.
type edgeRecord struct {
	edge    EdgeID
	optimal core.Vec3
	cost    float64
}

// newEdgeRecord solves for the optimal collapse position of e under the
// combined quadric of its endpoints. When the system is (nearly) singular
// the optimum is constrained to the segment: the quadric is sampled at both
// endpoints and the midpoint, a quadratic is fitted through the samples and
// its minimiser is clamped to the segment.
func (m *Mesh) newEdgeRecord(vertexQuadrics map[VertexID]Quadric, e EdgeID) edgeRecord {
	h := m.edges[e].Halfedge
	v1 := m.halfedges[h].Vertex
	v2 := m.head(h)
	k := vertexQuadrics[v1].Add(vertexQuadrics[v2])

	rec := edgeRecord{edge: e}

	a, b := k.LinearSystem()
	det := det3(a)
	if det > invertibleThreshold*math.Pow(m.EdgeLength(e), 3) {
		rec.optimal = solve3(a, b, det).Negate()
		rec.cost = k.Evaluate(rec.optimal)
		return rec
	}

	p1 := m.verts[v1].Position
	p2 := m.verts[v2].Position
	mid := p1.Add(p2).Multiply(0.5)
	cost1 := k.Evaluate(p1)
	cost2 := k.Evaluate(p2)
	costMid := k.Evaluate(mid)

	// Fit cost(t) = a t^2 + b t + c through t = 0, 1/2, 1.
	ca := 2 * (cost2 - 2*costMid + cost1)
	cb := cost2 - cost1 - ca
	cc := cost1

	t := 0.5
	if ca != 0 {
		t = -cb / (2 * ca)
	}
	t = math.Max(0, math.Min(1, t))

	rec.optimal = p1.Multiply(1 - t).Add(p2.Multiply(t))
	rec.cost = ca*t*t + cb*t + cc
	return rec
}

// recordQueue is a min-priority queue over edge records, keyed by cost with
// the edge handle as a deterministic tie-break. Records can be removed by
// edge before they reach the top.
type recordQueue struct {
	items []edgeRecord
	pos   map[EdgeID]int
}

func newRecordQueue() *recordQueue {
	return &recordQueue{pos: make(map[EdgeID]int)}
}

func (q *recordQueue) Len() int { return len(q.items) }

func (q *recordQueue) Less(i, j int) bool {
	if q.items[i].cost != q.items[j].cost {
		return q.items[i].cost < q.items[j].cost
	}
	return q.items[i].edge < q.items[j].edge
}

func (q *recordQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.pos[q.items[i].edge] = i
	q.pos[q.items[j].edge] = j
}

func (q *recordQueue) Push(x any) {
	rec := x.(edgeRecord)
	q.pos[rec.edge] = len(q.items)
	q.items = append(q.items, rec)
}

func (q *recordQueue) Pop() any {
	n := len(q.items)
	rec := q.items[n-1]
	q.items = q.items[:n-1]
	delete(q.pos, rec.edge)
	return rec
}

func (q *recordQueue) insert(rec edgeRecord) {
	heap.Push(q, rec)
}

func (q *recordQueue) popMin() edgeRecord {
	return heap.Pop(q).(edgeRecord)
}

func (q *recordQueue) remove(e EdgeID) {
	if i, ok := q.pos[e]; ok {
		heap.Remove(q, i)
	}
}

// faceQuadric builds the plane quadric n n^T of a triangle, with the plane
// in homogeneous form (normal, -normal.p).
func (m *Mesh) faceQuadric(f FaceID) Quadric {
	n := m.FaceNormal(f)
	p := m.verts[m.halfedges[m.faces[f].Halfedge].Vertex].Position
	return OuterProduct(n, -n.Dot(p))
}

// vertexQuadric sums the face quadrics of the non-boundary faces around v
func (m *Mesh) vertexQuadric(v VertexID, faceQuadrics map[FaceID]Quadric) Quadric {
	var q Quadric
	for _, h := range m.VertexHalfedges(v) {
		f := m.halfedges[h].Face
		if !m.faces[f].Boundary {
			q = q.Add(faceQuadrics[f])
		}
	}
	return q
}

// EdgeCollapsible reports whether collapsing e keeps the mesh manifold.
// It rejects identical endpoints, 2-gons, doubled edges, and any shared
// neighbour of the endpoints that does not already close a triangle with
// them (collapsing would pin an edge to more than two faces or clone a face
// around the neighbour).
func (m *Mesh) EdgeCollapsible(e EdgeID) bool {
	he1 := m.edges[e].Halfedge
	he2 := m.twin(he1)
	v1 := m.halfedges[he1].Vertex
	v2 := m.halfedges[he2].Vertex

	if v1 == m.head(he1) {
		return false
	}
	if m.next(m.next(he1)) == he1 || m.next(m.next(he2)) == he2 {
		return false
	}
	// Two faces sharing two consecutive edges with this one.
	if m.next(m.twin(m.next(he1))) == he2 {
		return false
	}
	if m.next(m.twin(m.next(he2))) == he1 {
		return false
	}

	m1 := m.vertexNeighborhood(v1)
	m2 := m.vertexNeighborhood(v2)
	for v3, he13 := range m1 {
		he23, shared := m2[v3]
		if !shared {
			continue
		}
		// Unless v1,v2,v3 already form a triangle on some side, the fused
		// edges to v3 would be incident to more than two faces.
		v123 := m.next(m.twin(he13)) == he1 && m.next(he1) == he23
		v321 := m.next(m.twin(he23)) == he2 && m.next(he2) == he13
		if !v123 && !v321 {
			return false
		}
		// Collapsing must not create two faces that are identical around v3.
		if m.next(m.twin(m.next(he13))) == m.twin(he23) ||
			m.next(m.twin(m.next(he23))) == m.twin(he13) {
			return false
		}
		if m.halfedges[m.twin(he13)].Face == m.halfedges[he23].Face &&
			m.halfedges[m.twin(he23)].Face == m.halfedges[he13].Face {
			return false
		}
	}
	return true
}

// Simplify reduces the interior face count by roughly a factor of four with
// greedy quadric-error edge collapses. It refuses (returns false) when a
// non-boundary face is not a triangle; otherwise it returns true iff at
// least one collapse succeeded.
func (m *Mesh) Simplify() bool {
	for _, f := range m.FaceIDs() {
		if !m.faces[f].Boundary && m.FaceDegree(f) != 3 {
			return false
		}
	}

	faceQuadrics := make(map[FaceID]Quadric)
	for _, f := range m.FaceIDs() {
		if !m.faces[f].Boundary {
			faceQuadrics[f] = m.faceQuadric(f)
		}
	}

	vertexQuadrics := make(map[VertexID]Quadric)
	for _, v := range m.VertexIDs() {
		vertexQuadrics[v] = m.vertexQuadric(v, faceQuadrics)
	}

	queue := newRecordQueue()
	for _, e := range m.EdgeIDs() {
		queue.insert(m.newEdgeRecord(vertexQuadrics, e))
	}

	interior := m.NFaces()
	target := interior - (interior - interior/simplificationFactor)

	collapsed := false
	for m.NFaces() > target && queue.Len() > 0 {
		top := queue.popMin()
		if !m.EdgeCollapsible(top.edge) {
			continue
		}

		h := m.edges[top.edge].Halfedge
		v1 := m.halfedges[h].Vertex
		v2 := m.head(h)
		combined := vertexQuadrics[v1].Add(vertexQuadrics[v2])

		// Records touching either endpoint go stale with the collapse.
		for _, v := range []VertexID{v1, v2} {
			delete(vertexQuadrics, v)
			for _, vh := range m.VertexHalfedges(v) {
				queue.remove(m.halfedges[vh].Edge)
			}
		}

		survivor, err := m.CollapseEdge(top.edge)
		if err != nil {
			continue
		}
		m.Collect()
		collapsed = true

		vertexQuadrics[survivor] = combined
		for _, vh := range m.VertexHalfedges(survivor) {
			e := m.halfedges[vh].Edge
			if _, queued := queue.pos[e]; !queued {
				queue.insert(m.newEdgeRecord(vertexQuadrics, e))
			}
		}
	}

	return collapsed
}
