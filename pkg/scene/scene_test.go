package scene

import (
	"testing"

	"github.com/philipparndt/polymesh/pkg/geometry"
	"github.com/philipparndt/polymesh/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var triangle = []geometry.Vector3{
	geometry.NewVector3(0, 0, 0),
	geometry.NewVector3(1, 0, 0),
	geometry.NewVector3(0, 1, 0),
}

func TestNewSceneHasDefaultCollection(t *testing.T) {
	s := New()
	c, err := s.Collection(DefaultCollection)
	require.NoError(t, err)
	assert.Equal(t, "Collection", c.Name)
	assert.Empty(t, c.Objects())
	assert.Nil(t, s.ViewLayer().Active())
}

func TestCollectionNotFound(t *testing.T) {
	_, err := New().Collection("Missing")
	assert.ErrorIs(t, err, ErrNoCollection)
}

func TestUniqueNames(t *testing.T) {
	s := New()
	assert.Equal(t, "Cube", s.NewMesh("Cube").Name)
	assert.Equal(t, "Cube.001", s.NewMesh("Cube").Name)
	assert.Equal(t, "Cube.002", s.NewMesh("Cube").Name)
	assert.Len(t, s.Meshes(), 3)

	m := s.Meshes()[0]
	assert.Equal(t, "Cube", s.NewObject("Cube", m).Name)
	assert.Equal(t, "Cube.001", s.NewObject("Cube", m).Name)
}

func TestFromPydataDerivesEdges(t *testing.T) {
	m := New().NewMesh("Tri")
	require.NoError(t, m.FromPydata(triangle, nil, []mesh.Face{{0, 1, 2}}))

	assert.Equal(t, triangle, m.Vertices)
	assert.Equal(t, []mesh.Face{{0, 1, 2}}, m.Faces)
	assert.Equal(t, []mesh.Edge{{A: 0, B: 1}, {A: 1, B: 2}, {A: 0, B: 2}}, m.Edges)
}

func TestFromPydataExplicitEdges(t *testing.T) {
	m := New().NewMesh("Wire")
	require.NoError(t, m.FromPydata(triangle, []mesh.Edge{{A: 0, B: 2}}, nil))
	assert.Equal(t, []mesh.Edge{{A: 0, B: 2}}, m.Edges)

	err := m.FromPydata(triangle, []mesh.Edge{{A: 0, B: 3}}, nil)
	assert.Error(t, err)
}

func TestFromPydataCopiesInput(t *testing.T) {
	faces := []mesh.Face{{0, 1, 2}}
	m := New().NewMesh("Tri")
	require.NoError(t, m.FromPydata(triangle, nil, faces))

	faces[0][0] = 2
	assert.Equal(t, 0, m.Faces[0][0])
}

func TestLinkAndActivate(t *testing.T) {
	s := New()
	m := s.NewMesh("Tri")
	obj := s.NewObject(m.Name, m)

	c, err := s.Collection(DefaultCollection)
	require.NoError(t, err)
	require.NoError(t, c.Link(obj))
	assert.ErrorIs(t, c.Link(obj), ErrAlreadyLinked)

	s.ViewLayer().SetActive(obj)
	assert.Same(t, obj, s.ViewLayer().Active())

	other := s.NewCollection("Other")
	require.NoError(t, other.Link(obj))
	assert.Same(t, c, s.NewCollection(DefaultCollection))
	assert.Len(t, s.Objects(), 2)
}
