package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/philipparndt/polymesh/pkg/mesh"
)

// WriteOBJ writes m as a Wavefront OBJ object. Polygon faces are kept as
// n-gons; OBJ indices are 1-based.
func WriteOBJ(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "o %s\n", objName(m.Name))
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, face := range m.Faces {
		bw.WriteString("f")
		for _, idx := range face {
			fmt.Fprintf(bw, " %d", idx+1)
		}
		bw.WriteString("\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write OBJ: %w", err)
	}
	return nil
}

// objName replaces whitespace, which OBJ statements cannot carry
func objName(name string) string {
	if name == "" {
		return "polyhedron"
	}
	return strings.Join(strings.Fields(name), "_")
}
