package openscad

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/philipparndt/polymesh/pkg/mesh"
)

// WritePolyhedron writes m as an OpenSCAD polyhedron() statement. OpenSCAD
// wants faces clockwise seen from outside, so the winding is reversed.
func WritePolyhedron(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	if m.Name != "" {
		fmt.Fprintf(bw, "// %s\n", m.Name)
	}
	bw.WriteString("polyhedron(\n  points = [\n")
	for i, v := range m.Vertices {
		fmt.Fprintf(bw, "    [%s, %s, %s]%s\n", num(v.X), num(v.Y), num(v.Z), sep(i, len(m.Vertices)))
	}
	bw.WriteString("  ],\n  faces = [\n")
	for i, face := range m.Faces {
		bw.WriteString("    [")
		for j := len(face) - 1; j >= 0; j-- {
			bw.WriteString(strconv.Itoa(face[j]))
			if j > 0 {
				bw.WriteString(", ")
			}
		}
		fmt.Fprintf(bw, "]%s\n", sep(i, len(m.Faces)))
	}
	bw.WriteString("  ],\n  convexity = 10\n);\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write OpenSCAD: %w", err)
	}
	return nil
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}
