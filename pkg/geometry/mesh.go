package geometry

import "github.com/liberty293/Cardinal3D/pkg/core"

// Leaf size used for the per-mesh triangle BVH.
const meshLeafSize = 4

// Mesh is a triangle mesh with a BVH over its triangles. It implements the
// same primitive contract as its triangles, so a scene BVH can nest it.
type Mesh struct {
	verts     []Vert
	triangles *core.BVH[Triangle]
}

// NewMesh builds a mesh from a vertex list and a flat index list, three
// indices per triangle.
func NewMesh(verts []Vert, indices []int) *Mesh {
	tris := make([]Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		tris = append(tris, NewTriangle(verts, indices[i], indices[i+1], indices[i+2]))
	}
	return &Mesh{
		verts:     verts,
		triangles: core.BuildBVH(tris, meshLeafSize),
	}
}

// BBox returns the bounds of the whole mesh
func (m *Mesh) BBox() core.BBox {
	return m.triangles.BBox()
}

// Hit intersects the ray against the mesh's triangle BVH
func (m *Mesh) Hit(ray *core.Ray) core.Trace {
	return m.triangles.Hit(ray)
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.triangles.Prims)
}

// Stats exposes the shape of the underlying BVH
func (m *Mesh) Stats() core.BVHStats {
	return m.triangles.Stats()
}
