package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/polymesh/pkg/geometry"
	"github.com/philipparndt/polymesh/pkg/mesh"
	"github.com/philipparndt/polymesh/pkg/polydb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeTetrahedron(t *testing.T) {
	result := AnalyzeMesh(polydb.Tetrahedron())

	assert.Equal(t, 4, result.VertexCount)
	assert.Equal(t, 6, result.EdgeCount)
	assert.Equal(t, 4, result.FaceCount)
	assert.Equal(t, 4, result.TriangleCount)
	assert.Equal(t, 2, result.Euler)
	assert.Equal(t, map[int]int{3: 4}, result.FaceSizes)

	edge := 2 * math.Sqrt2
	assert.InDelta(t, edge, result.MinEdgeLength, 1e-9)
	assert.InDelta(t, edge, result.MaxEdgeLength, 1e-9)
	assert.InDelta(t, edge, result.AvgEdgeLength, 1e-9)

	// V = a³ / (6√2), A = √3 a²
	assert.InDelta(t, math.Pow(edge, 3)/(6*math.Sqrt2), result.Volume, 1e-9)
	assert.InDelta(t, math.Sqrt(3)*edge*edge, result.SurfaceArea, 1e-9)

	// Circumradius of an equilateral triangle is a / √3
	require.Len(t, result.Faces, 4)
	for _, f := range result.Faces {
		assert.InDelta(t, edge/math.Sqrt(3), f.Circumradius, 1e-9)
	}
	assert.True(t, IsRegular(result, 1e-9))
}

func TestAnalyzePlatonicSolids(t *testing.T) {
	sizes := map[string]map[int]int{
		"Tetrahedron":  {3: 4},
		"Cube":         {4: 6},
		"Octahedron":   {3: 8},
		"Dodecahedron": {5: 12},
		"Icosahedron":  {3: 20},
	}
	for _, m := range polydb.PlatonicSolids() {
		result := AnalyzeMesh(m)
		assert.Equal(t, sizes[m.Name], result.FaceSizes, m.Name)
		assert.Equal(t, 2, result.Euler, m.Name)
		assert.True(t, IsRegular(result, 1e-9), m.Name)
	}
}

func TestIrregularBox(t *testing.T) {
	var corners []geometry.Vector3
	for _, x := range []float64{0, 2} {
		for _, y := range []float64{0, 1} {
			for _, z := range []float64{0, 1} {
				corners = append(corners, geometry.NewVector3(x, y, z))
			}
		}
	}
	result := AnalyzeMesh(mesh.ConvexHull("Box", corners))

	assert.Equal(t, geometry.NewVector3(2, 1, 1), result.Dimensions)
	assert.InDelta(t, 2.0, result.Volume, 1e-9)
	assert.False(t, IsRegular(result, 1e-9))
}

func TestFindEdges(t *testing.T) {
	result := &MeasurementResult{AllEdges: []EdgeInfo{
		{A: 0, B: 1, Length: 3},
		{A: 1, B: 2, Length: 1},
		{A: 2, B: 3, Length: 2},
	}}

	longest := FindLongestEdges(result, 2)
	assert.Equal(t, []float64{3, 2}, lengths(longest))

	shortest := FindShortestEdges(result, 10)
	assert.Equal(t, []float64{1, 2, 3}, lengths(shortest))

	inRange := FindEdgesByLength(result, 1.5, 3)
	assert.Equal(t, []float64{3, 2}, lengths(inRange))
}

func lengths(edges []EdgeInfo) []float64 {
	out := make([]float64, len(edges))
	for i, e := range edges {
		out[i] = e.Length
	}
	return out
}

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "(1.000000, -2.500000, 0.000000)", FormatVector(geometry.NewVector3(1, -2.5, 0)))
	assert.Equal(t, "1.500000 units", FormatMeasurement(1.5, ""))
}
