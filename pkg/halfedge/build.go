package halfedge

import (
	"errors"
	"fmt"

	"github.com/liberty293/Cardinal3D/pkg/core"
)

// ErrNonManifold is returned when a polygon soup cannot be stitched into a
// manifold half-edge mesh.
var ErrNonManifold = errors.New("halfedge: polygons do not form a manifold mesh")

type vertexPair struct {
	a, b int
}

// FromPolygons builds a half-edge mesh from indexed polygons. Polygons must
// be consistently wound and each directed edge may appear at most once;
// unmatched sides are closed off with virtual boundary faces, one per hole.
func FromPolygons(positions []core.Vec3, polygons [][]int) (*Mesh, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("%w: no vertices", ErrNonManifold)
	}

	m := New()
	for _, p := range positions {
		v := m.newVertex()
		m.V(v).Position = p
	}

	directed := make(map[vertexPair]HalfedgeID)

	for pi, poly := range polygons {
		if len(poly) < 3 {
			return nil, fmt.Errorf("%w: polygon %d has fewer than 3 sides", ErrNonManifold, pi)
		}
		f := m.newFace(false)

		ring := make([]HalfedgeID, len(poly))
		for i := range poly {
			ring[i] = m.newHalfedge()
		}
		for i, vi := range poly {
			if vi < 0 || vi >= len(positions) {
				return nil, fmt.Errorf("%w: polygon %d references vertex %d", ErrNonManifold, pi, vi)
			}
			h := m.H(ring[i])
			h.Vertex = VertexID(vi)
			h.Face = f
			h.Next = ring[(i+1)%len(poly)]

			pair := vertexPair{vi, poly[(i+1)%len(poly)]}
			if pair.a == pair.b {
				return nil, fmt.Errorf("%w: degenerate side on polygon %d", ErrNonManifold, pi)
			}
			if _, dup := directed[pair]; dup {
				return nil, fmt.Errorf("%w: duplicate directed edge %d->%d", ErrNonManifold, pair.a, pair.b)
			}
			directed[pair] = ring[i]

			m.V(VertexID(vi)).Halfedge = ring[i]
		}
		m.F(f).Halfedge = ring[0]
	}

	// Pair twins. Sides without an opposite are hole borders.
	unmatched := make(map[int]HalfedgeID) // tail vertex -> interior halfedge
	for pair, h := range directed {
		if m.halfedges[h].Twin != InvalidHalfedge {
			continue
		}
		opp, ok := directed[vertexPair{pair.b, pair.a}]
		if ok {
			e := m.newEdge()
			m.H(h).Twin = opp
			m.H(opp).Twin = h
			m.H(h).Edge = e
			m.H(opp).Edge = e
			m.E(e).Halfedge = h
			continue
		}
		if _, seen := unmatched[pair.a]; seen {
			// Two hole borders leaving the same vertex: the vertex's faces
			// would not form a single fan.
			return nil, fmt.Errorf("%w: non-manifold vertex %d", ErrNonManifold, pair.a)
		}
		unmatched[pair.a] = h
	}

	// Close each hole with a ring of boundary halfedges. The boundary twin
	// of a border side a->b runs b->a; its next leaves a, and is the twin
	// of the border side arriving at a.
	boundaryTwin := make(map[HalfedgeID]HalfedgeID)
	unmatchedByHead := make(map[int]HalfedgeID)
	for _, h := range unmatched {
		// The head of a border side is the tail of its ring successor; the
		// twin slot is still unset here, so head() cannot be used.
		headV := m.halfedges[m.next(h)].Vertex

		t := m.newHalfedge()
		e := m.newEdge()
		m.H(h).Twin = t
		m.H(t).Twin = h
		m.H(h).Edge = e
		m.H(t).Edge = e
		m.H(t).Vertex = headV
		m.E(e).Halfedge = h
		boundaryTwin[h] = t

		head := int(headV)
		if _, seen := unmatchedByHead[head]; seen {
			return nil, fmt.Errorf("%w: non-manifold vertex %d", ErrNonManifold, head)
		}
		unmatchedByHead[head] = h
	}
	for tail, h := range unmatched {
		t := boundaryTwin[h]
		into, ok := unmatchedByHead[tail]
		if !ok {
			return nil, fmt.Errorf("%w: open hole border at vertex %d", ErrNonManifold, tail)
		}
		m.H(t).Next = boundaryTwin[into]
	}

	// Group boundary halfedges into rings, one virtual face per hole.
	for _, t := range boundaryTwin {
		if m.halfedges[t].Face != InvalidFace {
			continue
		}
		f := m.newFace(true)
		m.F(f).Halfedge = t
		h := t
		for {
			m.H(h).Face = f
			h = m.next(h)
			if h == t {
				break
			}
		}
	}

	// Every vertex must have been referenced by some polygon.
	for _, v := range m.VertexIDs() {
		if m.verts[v].Halfedge == InvalidHalfedge {
			return nil, fmt.Errorf("%w: vertex %d is unreferenced", ErrNonManifold, v)
		}
	}

	return m, nil
}
