package halfedge

import "github.com/liberty293/Cardinal3D/pkg/core"

// Soup is an indexed triangle soup: the renderer-facing view of a mesh.
// Normals are area-weighted vertex normals accumulated from the incident
// interior faces.
type Soup struct {
	Positions []core.Vec3
	Normals   []core.Vec3
	Indices   []int
}

// TriangleSoup fan-triangulates every interior face into an indexed soup
// without mutating the mesh.
func (m *Mesh) TriangleSoup() Soup {
	var soup Soup
	index := make(map[VertexID]int)

	for _, v := range m.VertexIDs() {
		index[v] = len(soup.Positions)
		soup.Positions = append(soup.Positions, m.verts[v].Position)
		soup.Normals = append(soup.Normals, core.Vec3{})
	}

	for _, f := range m.FaceIDs() {
		if m.faces[f].Boundary {
			continue
		}
		ring := m.FaceHalfedges(f)

		// Unnormalised face normal weights the accumulation by area.
		var n core.Vec3
		for i, h := range ring {
			p := m.verts[m.halfedges[h].Vertex].Position
			q := m.verts[m.halfedges[ring[(i+1)%len(ring)]].Vertex].Position
			n = n.Add(p.Cross(q))
		}
		for _, h := range ring {
			i := index[m.halfedges[h].Vertex]
			soup.Normals[i] = soup.Normals[i].Add(n)
		}

		base := index[m.halfedges[ring[0]].Vertex]
		for i := 1; i+1 < len(ring); i++ {
			soup.Indices = append(soup.Indices,
				base,
				index[m.halfedges[ring[i]].Vertex],
				index[m.halfedges[ring[i+1]].Vertex],
			)
		}
	}

	for i := range soup.Normals {
		soup.Normals[i] = soup.Normals[i].Normalize()
	}
	return soup
}

// Polygons returns the mesh's interior faces as indexed polygons, in the
// vertex order FromPolygons would rebuild them from.
func (m *Mesh) Polygons() ([]core.Vec3, [][]int) {
	index := make(map[VertexID]int)
	positions := make([]core.Vec3, 0, len(m.verts))
	for _, v := range m.VertexIDs() {
		index[v] = len(positions)
		positions = append(positions, m.verts[v].Position)
	}

	var polys [][]int
	for _, f := range m.FaceIDs() {
		if m.faces[f].Boundary {
			continue
		}
		var poly []int
		for _, h := range m.FaceHalfedges(f) {
			poly = append(poly, index[m.halfedges[h].Vertex])
		}
		polys = append(polys, poly)
	}
	return positions, polys
}

// Stats summarises a mesh for diagnostics
type Stats struct {
	Vertices   int
	Edges      int
	Halfedges  int
	Faces      int
	Boundaries int
	MinDegree  int
	MaxDegree  int
}

// CollectStats walks the mesh and counts its elements
func (m *Mesh) CollectStats() Stats {
	s := Stats{
		Vertices:   m.NVertices(),
		Edges:      m.NEdges(),
		Halfedges:  len(m.HalfedgeIDs()),
		Faces:      m.NFaces(),
		Boundaries: m.NBoundaries(),
	}
	for _, f := range m.FaceIDs() {
		if m.faces[f].Boundary {
			continue
		}
		d := m.FaceDegree(f)
		if s.MinDegree == 0 || d < s.MinDegree {
			s.MinDegree = d
		}
		if d > s.MaxDegree {
			s.MaxDegree = d
		}
	}
	return s
}
