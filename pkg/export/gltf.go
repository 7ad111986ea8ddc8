package export

import (
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/philipparndt/polymesh/pkg/mesh"
)

// Document builds a glTF document holding m as a single triangulated mesh
// under one root node.
func Document(m *mesh.Mesh) *gltf.Document {
	doc := gltf.NewDocument()

	positions := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = v.Float32()
	}

	positionAccessor := modeler.WritePosition(doc, positions)
	indicesAccessor := modeler.WriteIndices(doc, m.TriangleIndices())

	doc.Meshes = []*gltf.Mesh{{
		Name: m.Name,
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(indicesAccessor),
			Attributes: map[string]int{
				gltf.POSITION: positionAccessor,
			},
			Mode: gltf.PrimitiveTriangles,
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: m.Name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

// WriteGLB writes m as a binary glTF
func WriteGLB(w io.Writer, m *mesh.Mesh) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(Document(m)); err != nil {
		return fmt.Errorf("failed to encode glTF: %w", err)
	}
	return nil
}
