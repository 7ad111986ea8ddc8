package mesh

import (
	"math"
	"sort"

	"github.com/philipparndt/polymesh/pkg/geometry"
)

const hullEpsilon = 1e-9

// ConvexHull builds the mesh of the convex polyhedron whose corners are the
// given points. Coplanar corners are merged into one polygon face and every
// face is wound counter-clockwise seen from outside. Points that are not
// corners of the hull are kept as unreferenced vertices.
func ConvexHull(name string, points []geometry.Vector3) *Mesh {
	m := New(name)
	m.Vertices = append(m.Vertices, points...)

	center := geometry.Centroid(points)
	seen := make(map[string]bool)
	n := len(points)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				normal := points[j].Sub(points[i]).Cross(points[k].Sub(points[i]))
				if normal.Length() < hullEpsilon {
					continue
				}
				normal = normal.Normalize()
				if normal.Dot(points[i].Sub(center)) < 0 {
					normal = normal.Mul(-1)
				}

				onPlane, supporting := planeMembers(points, points[i], normal)
				if !supporting {
					continue
				}

				key := faceKey(onPlane)
				if seen[key] {
					continue
				}
				seen[key] = true
				m.Faces = append(m.Faces, windAround(points, onPlane, normal))
			}
		}
	}
	return m
}

// planeMembers returns the points lying on the plane through origin with the
// given normal, and whether every other point lies behind it.
func planeMembers(points []geometry.Vector3, origin, normal geometry.Vector3) ([]int, bool) {
	var members []int
	for idx, p := range points {
		d := normal.Dot(p.Sub(origin))
		if d > hullEpsilon {
			return nil, false
		}
		if math.Abs(d) <= hullEpsilon {
			members = append(members, idx)
		}
	}
	return members, true
}

func faceKey(indices []int) string {
	key := make([]byte, 0, len(indices)*3)
	for _, idx := range indices {
		key = append(key, byte(idx>>8), byte(idx), ',')
	}
	return string(key)
}

// windAround orders face corners counter-clockwise about the outward normal
func windAround(points []geometry.Vector3, indices []int, normal geometry.Vector3) Face {
	corners := make([]geometry.Vector3, len(indices))
	for i, idx := range indices {
		corners[i] = points[idx]
	}
	c := geometry.Centroid(corners)
	u := points[indices[0]].Sub(c).Normalize()
	v := normal.Cross(u)

	angle := func(idx int) float64 {
		d := points[idx].Sub(c)
		a := math.Atan2(d.Dot(v), d.Dot(u))
		if a < -hullEpsilon {
			a += 2 * math.Pi
		}
		return a
	}

	face := make(Face, len(indices))
	copy(face, indices)
	sort.SliceStable(face, func(a, b int) bool {
		return angle(face[a]) < angle(face[b])
	})
	return face
}
