package openscad

import (
	"bytes"
	"context"
	"testing"

	"github.com/philipparndt/polymesh/pkg/geometry"
	"github.com/philipparndt/polymesh/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePolyhedronReversesWinding(t *testing.T) {
	m := mesh.New("Tetrahedron")
	m.AddVertex(geometry.NewVector3(1, 1, 1))
	m.AddVertex(geometry.NewVector3(1, -1, -1))
	m.AddVertex(geometry.NewVector3(-1, 1, -1))
	m.AddVertex(geometry.NewVector3(-0.5, -1, 1))
	m.AddFace(0, 1, 2)
	m.AddFace(1, 3, 2)

	var buf bytes.Buffer
	require.NoError(t, WritePolyhedron(&buf, m))

	expected := `// Tetrahedron
polyhedron(
  points = [
    [1, 1, 1],
    [1, -1, -1],
    [-1, 1, -1],
    [-0.5, -1, 1]
  ],
  faces = [
    [2, 1, 0],
    [2, 3, 1]
  ],
  convexity = 10
);
`
	assert.Equal(t, expected, buf.String())
}

func TestRenderWithoutBinary(t *testing.T) {
	r := NewRenderer(t.TempDir())
	r.binary = "openscad-not-installed-for-tests"

	err := r.RenderToSTL(context.Background(), "model.scad", "model.stl")
	assert.ErrorIs(t, err, ErrNotInstalled)

	_, err = r.Load(context.Background(), "model.scad")
	assert.ErrorIs(t, err, ErrNotInstalled)
}
