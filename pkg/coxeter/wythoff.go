package coxeter

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/polymesh/pkg/geometry"
	"github.com/philipparndt/polymesh/pkg/mesh"
)

var (
	// ErrNoRing is returned for diagrams without a ringed node
	ErrNoRing = errors.New("diagram has no ringed node")
	// ErrDegenerate is returned when the orbit does not span a solid
	ErrDegenerate = errors.New("diagram does not describe a solid")
)

const (
	orbitEpsilon = 1e-6
	maxVertices  = 240
)

// names lists common uniform polyhedra by diagram. Lookups also try the
// reversed diagram.
var names = map[string]string{
	"x3o3o": "Tetrahedron",
	"o3x3o": "Octahedron",
	"x3x3o": "Truncated tetrahedron",
	"x3o3x": "Cuboctahedron",
	"x3x3x": "Truncated octahedron",
	"x4o3o": "Cube",
	"x3o4o": "Octahedron",
	"o3x4o": "Cuboctahedron",
	"x4x3o": "Truncated cube",
	"x3x4o": "Truncated octahedron",
	"x4o3x": "Rhombicuboctahedron",
	"x4x3x": "Truncated cuboctahedron",
	"x5o3o": "Dodecahedron",
	"x3o5o": "Icosahedron",
	"o3x5o": "Icosidodecahedron",
	"x5x3o": "Truncated dodecahedron",
	"x3x5o": "Truncated icosahedron",
	"x5o3x": "Rhombicosidodecahedron",
	"x5x3x": "Truncated icosidodecahedron",
}

// Name returns the common name of the polyhedron, or the diagram itself
// when it has none
func (d *Diagram) Name() string {
	if name, ok := names[d.String()]; ok {
		return name
	}
	if name, ok := names[d.Reversed().String()]; ok {
		return name
	}
	return d.String()
}

// Polyhedron builds the uniform polyhedron of a rank 3 diagram by Wythoff's
// construction. The seed point sits at distance Length/2 from each mirror,
// its orbit under the mirror reflections gives the vertices, and the faces
// are the convex hull of the orbit. The polyhedron is centered on the
// origin.
func (d *Diagram) Polyhedron() (*mesh.Mesh, error) {
	if d.Rank() != 3 {
		return nil, fmt.Errorf("%w: %s has rank %d, want 3", ErrUnsupported, d, d.Rank())
	}
	for _, m := range d.Marks {
		if m.Rational() {
			return nil, fmt.Errorf("%w: %s has star mark %s", ErrUnsupported, d, m)
		}
	}
	ringed := false
	for _, n := range d.Nodes {
		ringed = ringed || n.Ringed()
	}
	if !ringed {
		return nil, fmt.Errorf("%s: %w", d, ErrNoRing)
	}

	mirrors, err := d.mirrors()
	if err != nil {
		return nil, err
	}
	seed := seedPoint(mirrors, [3]float64{
		d.Nodes[0].Length / 2,
		d.Nodes[1].Length / 2,
		d.Nodes[2].Length / 2,
	})

	points, err := orbit(seed, mirrors[:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d, err)
	}
	if len(points) < 4 {
		return nil, fmt.Errorf("%s: %w", d, ErrDegenerate)
	}

	m := mesh.ConvexHull(d.Name(), points)
	if len(m.Faces) < 4 || m.Volume() < 1e-9 {
		return nil, fmt.Errorf("%s: %w", d, ErrDegenerate)
	}
	return m, nil
}

// mirrors returns unit normals n0, n1, n2 with n_i·n_j = -cos(angle) for
// adjacent nodes and n0·n2 = 0
func (d *Diagram) mirrors() ([3]geometry.Vector3, error) {
	a01 := d.Marks[0].Angle()
	a12 := d.Marks[1].Angle()

	n0 := geometry.NewVector3(1, 0, 0)
	n1 := geometry.NewVector3(-math.Cos(a01), math.Sin(a01), 0)

	y := -math.Cos(a12) / math.Sin(a01)
	z2 := 1 - y*y
	if z2 < 1e-12 {
		return [3]geometry.Vector3{}, fmt.Errorf("%s: %w", d, ErrNotFinite)
	}
	n2 := geometry.NewVector3(0, y, math.Sqrt(z2))

	return [3]geometry.Vector3{n0, n1, n2}, nil
}

// seedPoint solves n_i·p = dist_i by Cramer's rule
func seedPoint(n [3]geometry.Vector3, dist [3]float64) geometry.Vector3 {
	c12 := n[1].Cross(n[2])
	c20 := n[2].Cross(n[0])
	c01 := n[0].Cross(n[1])
	det := n[0].Dot(c12)
	return c12.Mul(dist[0]).Add(c20.Mul(dist[1])).Add(c01.Mul(dist[2])).Mul(1 / det)
}

// orbit collects every image of seed under products of the reflections
func orbit(seed geometry.Vector3, mirrors []geometry.Vector3) ([]geometry.Vector3, error) {
	points := []geometry.Vector3{seed}
	for next := 0; next < len(points); next++ {
		for _, n := range mirrors {
			image := reflectIn(points[next], n)
			if indexOf(points, image) >= 0 {
				continue
			}
			if len(points) == maxVertices {
				return nil, ErrNotFinite
			}
			points = append(points, image)
		}
	}
	return points, nil
}

func reflectIn(v, n geometry.Vector3) geometry.Vector3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

func indexOf(points []geometry.Vector3, v geometry.Vector3) int {
	for i, p := range points {
		if p.Distance(v) < orbitEpsilon {
			return i
		}
	}
	return -1
}

// Generate parses a diagram and builds its polyhedron
func Generate(s string) (*mesh.Mesh, error) {
	d, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return d.Polyhedron()
}

// MustGenerate is like Generate but panics on error. It is meant for
// diagrams fixed at compile time.
func MustGenerate(s string) *mesh.Mesh {
	m, err := Generate(s)
	if err != nil {
		panic(err)
	}
	return m
}
