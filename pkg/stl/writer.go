package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/philipparndt/polymesh/pkg/geometry"
	"github.com/philipparndt/polymesh/pkg/mesh"
)

// WriteASCII writes the fan-triangulated faces of m as an ASCII STL solid
func WriteASCII(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "solid %s\n", m.Name)
	for _, tri := range m.Triangles() {
		n := tri.Normal
		fmt.Fprintf(bw, "  facet normal %g %g %g\n", n.X, n.Y, n.Z)
		fmt.Fprintln(bw, "    outer loop")
		for _, v := range []geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}
	fmt.Fprintf(bw, "endsolid %s\n", m.Name)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write ASCII STL: %w", err)
	}
	return nil
}

// WriteBinary writes the fan-triangulated faces of m as a binary STL. The
// mesh name goes into the 80-byte header, truncated if longer.
func WriteBinary(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	tris := m.Triangles()

	var header [80]byte
	copy(header[:], m.Name)
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(tris))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, tri := range tris {
		record := struct {
			Normal, V1, V2, V3 [3]float32
			Attribute          uint16
		}{
			Normal: tri.Normal.Float32(),
			V1:     tri.V1.Float32(),
			V2:     tri.V2.Float32(),
			V3:     tri.V3.Float32(),
		}
		if err := binary.Write(bw, binary.LittleEndian, &record); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write binary STL: %w", err)
	}
	return nil
}
