package geometry

// NewellNormal returns the unit normal of a planar polygon using Newell's
// method. It is robust for non-convex and slightly non-planar faces.
func NewellNormal(points []Vector3) Vector3 {
	var n Vector3
	for i, cur := range points {
		next := points[(i+1)%len(points)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n.Normalize()
}

// Centroid returns the mean of the points
func Centroid(points []Vector3) Vector3 {
	if len(points) == 0 {
		return Vector3{}
	}
	var sum Vector3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points)))
}

// FanTriangulate splits a convex polygon into triangles sharing its first
// vertex. Every triangle carries the polygon's Newell normal.
func FanTriangulate(points []Vector3) []Triangle {
	if len(points) < 3 {
		return nil
	}
	normal := NewellNormal(points)
	tris := make([]Triangle, 0, len(points)-2)
	for i := 1; i+1 < len(points); i++ {
		tris = append(tris, NewTriangle(normal, points[0], points[i], points[i+1]))
	}
	return tris
}

// PolygonArea returns the area of a planar polygon
func PolygonArea(points []Vector3) float64 {
	area := 0.0
	for _, tri := range FanTriangulate(points) {
		area += tri.Area()
	}
	return area
}
