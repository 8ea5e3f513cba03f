package scene

import (
	"github.com/liberty293/Cardinal3D/pkg/bsdf"
	"github.com/liberty293/Cardinal3D/pkg/core"
	"github.com/liberty293/Cardinal3D/pkg/geometry"
	"github.com/liberty293/Cardinal3D/pkg/halfedge"
	"github.com/liberty293/Cardinal3D/pkg/renderer"
)

// NewDefaultScene builds the demo scene: a large diffuse ground sphere, a
// glass sphere, a mirror sphere, a subdivided cube mesh and an emissive
// sphere light overhead.
func NewDefaultScene(aspect float64) (*Scene, *renderer.Camera) {
	materials := []bsdf.BSDF{
		bsdf.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)), // 0: ground
		bsdf.NewGlass(1.5),                              // 1
		bsdf.NewMirror(),                                // 2
		bsdf.NewLambertian(core.NewVec3(0.7, 0.3, 0.2)), // 3: cube
		bsdf.NewEmissive(core.NewVec3(12, 12, 12)),      // 4: light
	}

	cube := mustCube()
	if err := cube.Subdivide(halfedge.CatmullClark); err != nil {
		panic(err)
	}
	soup := cube.TriangleSoup()

	verts := make([]geometry.Vert, len(soup.Positions))
	for i := range soup.Positions {
		verts[i] = geometry.Vert{Position: soup.Positions[i], Normal: soup.Normals[i]}
	}

	objects := []Object{
		{Shape: geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000), Material: 0},
		{Shape: geometry.NewSphere(core.NewVec3(-2.2, 1, 0), 1), Material: 1},
		{Shape: geometry.NewSphere(core.NewVec3(2.2, 1, 0), 1), Material: 2},
		{Shape: geometry.NewMesh(verts, soup.Indices), Material: 3},
		{Shape: geometry.NewSphere(core.NewVec3(0, 6, 2), 1.5), Material: 4},
	}

	scene := New(objects, materials, core.NewVec3(0.35, 0.45, 0.6))
	camera := renderer.NewCamera(
		core.NewVec3(0, 2, 8),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 1, 0),
		40, aspect, 1,
	)
	return scene, camera
}

// mustCube returns a cube half-edge mesh of side 1.4 centred at (0,1,0)
func mustCube() *halfedge.Mesh {
	positions := []core.Vec3{
		{X: -0.7, Y: 0.3, Z: -0.7},
		{X: 0.7, Y: 0.3, Z: -0.7},
		{X: 0.7, Y: 1.7, Z: -0.7},
		{X: -0.7, Y: 1.7, Z: -0.7},
		{X: -0.7, Y: 0.3, Z: 0.7},
		{X: 0.7, Y: 0.3, Z: 0.7},
		{X: 0.7, Y: 1.7, Z: 0.7},
		{X: -0.7, Y: 1.7, Z: 0.7},
	}
	quads := [][]int{
		{0, 1, 5, 4}, // bottom
		{3, 7, 6, 2}, // top
		{0, 3, 2, 1}, // back
		{4, 5, 6, 7}, // front
		{0, 4, 7, 3}, // left
		{1, 2, 6, 5}, // right
	}
	m, err := halfedge.FromPolygons(positions, quads)
	if err != nil {
		panic(err)
	}
	return m
}
