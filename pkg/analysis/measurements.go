package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/polymesh/pkg/geometry"
	"github.com/philipparndt/polymesh/pkg/mesh"
)

// EdgeInfo contains information about an edge in the mesh
type EdgeInfo struct {
	A, B   int
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
}

// FaceInfo describes one polygon face
type FaceInfo struct {
	Index        int
	Vertices     mesh.Face
	Area         float64
	Normal       geometry.Vector3
	Circumradius float64
	Irregularity float64 // circle fit StdDev; zero for a regular polygon
}

// MeasurementResult contains various measurements of a mesh
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64
	SurfaceArea   float64
	VertexCount   int
	EdgeCount     int
	FaceCount     int
	TriangleCount int
	Euler         int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	FaceSizes     map[int]int // vertices per face -> number of faces
	AllEdges      []EdgeInfo
	Faces         []FaceInfo
}

// AnalyzeMesh performs comprehensive analysis on a validated mesh
func AnalyzeMesh(m *mesh.Mesh) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox: m.BoundingBox(),
		SurfaceArea: m.SurfaceArea(),
		Volume:      m.Volume(),
		VertexCount: len(m.Vertices),
		FaceCount:   len(m.Faces),
		FaceSizes:   make(map[int]int),
		AllEdges:    make([]EdgeInfo, 0),
		Faces:       make([]FaceInfo, 0, len(m.Faces)),
	}
	result.Dimensions = result.BoundingBox.Size()

	for fi, face := range m.Faces {
		points := m.FacePoints(fi)
		info := FaceInfo{
			Index:    fi,
			Vertices: face,
			Area:     geometry.PolygonArea(points),
			Normal:   geometry.NewellNormal(points),
		}
		if fit, err := geometry.FitCircle(points); err == nil {
			info.Circumradius = fit.Radius
			info.Irregularity = fit.StdDev
		}
		result.Faces = append(result.Faces, info)
		result.FaceSizes[len(face)]++
		result.TriangleCount += len(face) - 2
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, e := range m.Edges() {
		start, end := m.Vertices[e.A], m.Vertices[e.B]
		length := start.Distance(end)

		result.AllEdges = append(result.AllEdges, EdgeInfo{
			A:      e.A,
			B:      e.B,
			Start:  start,
			End:    end,
			Length: length,
		})

		totalLength += length
		minLength = math.Min(minLength, length)
		maxLength = math.Max(maxLength, length)
	}

	result.EdgeCount = len(result.AllEdges)
	result.Euler = result.VertexCount - result.EdgeCount + result.FaceCount
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// IsRegular reports whether every edge has the same length and every face
// is a regular polygon, within tolerance.
func IsRegular(result *MeasurementResult, tolerance float64) bool {
	if result.EdgeCount == 0 || result.MaxEdgeLength-result.MinEdgeLength > tolerance {
		return false
	}
	for _, f := range result.Faces {
		if f.Irregularity > tolerance {
			return false
		}
	}
	return true
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
