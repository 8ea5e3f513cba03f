package meshio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liberty293/Cardinal3D/pkg/core"
	"github.com/liberty293/Cardinal3D/pkg/halfedge"
)

const cubeOBJ = `# unit-ish cube
v -1 -1 -1
v 1 -1 -1
v 1 1 -1
v -1 1 -1
v -1 -1 1
v 1 -1 1
v 1 1 1
v -1 1 1
f 1 2 6 5
f 4 8 7 3
f 1 4 3 2
f 5 6 7 8
f 1 5 8 4
f 2 3 7 6
`

func TestReadOBJ_Cube(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(cubeOBJ))
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, 8, m.NVertices())
	assert.Equal(t, 12, m.NEdges())
	assert.Equal(t, 6, m.NFaces())
	assert.Equal(t, 0, m.NBoundaries())
}

func TestReadOBJ_FaceVariants(t *testing.T) {
	// v/vt/vn style face specs still parse down to vertex indices, and
	// negative indices count from the end.
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f 1/1/1 2/2/2 3//3
`
	m, err := ReadOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 1, m.NFaces())

	neg := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	m, err = ReadOBJ(strings.NewReader(neg))
	require.NoError(t, err)
	assert.Equal(t, 1, m.NFaces())
}

func TestReadOBJ_Errors(t *testing.T) {
	_, err := ReadOBJ(strings.NewReader("v 1 2\n"))
	assert.Error(t, err)

	_, err = ReadOBJ(strings.NewReader("v 0 0 0\nf 1 2 3\n"))
	assert.Error(t, err, "face index out of range")
}

func TestOBJ_RoundTrip(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(cubeOBJ))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, m))

	back, err := ReadOBJ(&buf)
	require.NoError(t, err)
	require.NoError(t, back.Validate())
	assert.Equal(t, m.NVertices(), back.NVertices())
	assert.Equal(t, m.NEdges(), back.NEdges())
	assert.Equal(t, m.NFaces(), back.NFaces())
}

func TestSnapshot_RoundTrip(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(cubeOBJ))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, m))

	back, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	require.NoError(t, back.Validate())
	assert.Equal(t, 8, back.NVertices())
	assert.Equal(t, 12, back.NEdges())
	assert.Equal(t, 6, back.NFaces())

	// Positions survive byte-exactly.
	found := false
	for _, v := range back.VertexIDs() {
		if back.V(v).Position == core.NewVec3(-1, -1, -1) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSnapshot_RejectsGarbage(t *testing.T) {
	_, err := ReadSnapshot(bytes.NewReader([]byte("not a snapshot")))
	assert.Error(t, err)
}

func TestSnapshot_SurvivesEditing(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(cubeOBJ))
	require.NoError(t, err)
	require.NoError(t, m.Subdivide(halfedge.CatmullClark))

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, m))
	back, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	require.NoError(t, back.Validate())
	assert.Equal(t, 24, back.NFaces())
}
