package coxeter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolyhedronCounts(t *testing.T) {
	cases := []struct {
		diagram  string
		name     string
		vertices int
		faces    int
	}{
		{"x3o3o", "Tetrahedron", 4, 4},
		{"x4o3o", "Cube", 8, 6},
		{"x3o4o", "Octahedron", 6, 8},
		{"o3x3o", "Octahedron", 6, 8},
		{"x5o3o", "Dodecahedron", 20, 12},
		{"x3o5o", "Icosahedron", 12, 20},
		{"o5o3x", "Icosahedron", 12, 20},
		{"o3x5o", "Icosidodecahedron", 30, 32},
		{"x3x5o", "Truncated icosahedron", 60, 32},
		{"x5x3x", "Truncated icosidodecahedron", 120, 62},
		{"x5f3o", "x5f3o", 60, 32},
		{"x4o2x", "x4o2x", 8, 6},
	}
	for _, tc := range cases {
		t.Run(tc.diagram, func(t *testing.T) {
			m, err := Generate(tc.diagram)
			require.NoError(t, err)
			require.NoError(t, m.Validate())

			assert.Equal(t, tc.name, m.Name)
			assert.Len(t, m.Vertices, tc.vertices)
			assert.Len(t, m.Faces, tc.faces)
			assert.Equal(t, 2, m.EulerCharacteristic())
			assert.Greater(t, m.Volume(), 0.0)
		})
	}
}

func TestUnitEdgesForRingedNodes(t *testing.T) {
	for _, diagram := range []string{"x3o3o", "x4o3o", "x5o3o", "x3o5o", "x4x3x"} {
		m := MustGenerate(diagram)
		for _, e := range m.Edges() {
			assert.InDelta(t, 1.0, m.Vertices[e.A].Distance(m.Vertices[e.B]), 1e-9, diagram)
		}
	}
}

func TestPolyhedronIsCentered(t *testing.T) {
	m := MustGenerate("x3x3o")
	var sum [3]float64
	for _, v := range m.Vertices {
		sum[0] += v.X
		sum[1] += v.Y
		sum[2] += v.Z
	}
	for _, s := range sum {
		assert.InDelta(t, 0, s, 1e-9)
	}
}

func TestPolyhedronErrors(t *testing.T) {
	cases := map[string]error{
		"o3o3o":   ErrNoRing,
		"x3o6o":   ErrNotFinite,
		"x5o5o":   ErrNotFinite,
		"x3o2o":   ErrDegenerate,
		"x3o":     ErrUnsupported,
		"x3o3o3o": ErrUnsupported,
		"x5/2o5o": ErrUnsupported,
		"x3y3o":   ErrSyntax,
	}
	for diagram, want := range cases {
		_, err := Generate(diagram)
		assert.ErrorIs(t, err, want, diagram)
	}
}

func TestMustGeneratePanics(t *testing.T) {
	assert.Panics(t, func() { MustGenerate("o3o3o") })
}
