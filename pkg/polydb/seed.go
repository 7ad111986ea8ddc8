package polydb

import (
	"context"

	"github.com/philipparndt/polymesh/pkg/coxeter"
	"github.com/philipparndt/polymesh/pkg/geometry"
	"github.com/philipparndt/polymesh/pkg/mesh"
)

// Tetrahedron returns the regular tetrahedron inscribed in the cube
// [-1, 1]³ with faces (0,1,2) (0,2,3) (0,3,1) (1,3,2).
func Tetrahedron() *mesh.Mesh {
	m := mesh.New("Tetrahedron")
	m.AddVertex(geometry.NewVector3(1, 1, 1))
	m.AddVertex(geometry.NewVector3(1, -1, -1))
	m.AddVertex(geometry.NewVector3(-1, 1, -1))
	m.AddVertex(geometry.NewVector3(-1, -1, 1))
	m.AddFace(0, 1, 2)
	m.AddFace(0, 2, 3)
	m.AddFace(0, 3, 1)
	m.AddFace(1, 3, 2)
	return m
}

// PlatonicSolids returns the five regular convex polyhedra in the order
// tetrahedron, cube, octahedron, dodecahedron, icosahedron. All but the
// tetrahedron are built from their diagrams with unit edges.
func PlatonicSolids() []*mesh.Mesh {
	return []*mesh.Mesh{
		Tetrahedron(),
		coxeter.MustGenerate("x4o3o"),
		coxeter.MustGenerate("x3o4o"),
		coxeter.MustGenerate("x5o3o"),
		coxeter.MustGenerate("x3o5o"),
	}
}

// Seed creates the schema and stores the Platonic solids under ids 1 to 5
func Seed(ctx context.Context, d *DB) error {
	if err := d.CreateSchema(ctx); err != nil {
		return err
	}
	for i, m := range PlatonicSolids() {
		if err := d.Put(ctx, int64(i+1), m); err != nil {
			return err
		}
	}
	return nil
}
