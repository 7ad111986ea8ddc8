// Package export writes meshes to STL, Wavefront OBJ, binary glTF and
// OpenSCAD files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/polymesh/pkg/mesh"
	"github.com/philipparndt/polymesh/pkg/openscad"
	"github.com/philipparndt/polymesh/pkg/stl"
)

// Format identifies an output file format
type Format int

const (
	FormatSTL Format = iota
	FormatSTLASCII
	FormatOBJ
	FormatGLB
	FormatSCAD
)

func (f Format) String() string {
	switch f {
	case FormatSTL:
		return "stl"
	case FormatSTLASCII:
		return "stl (ascii)"
	case FormatOBJ:
		return "obj"
	case FormatGLB:
		return "glb"
	case FormatSCAD:
		return "scad"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string, ascii bool) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		if ascii {
			return FormatSTLASCII, nil
		}
		return FormatSTL, nil
	case ".obj":
		return FormatOBJ, nil
	case ".glb":
		return FormatGLB, nil
	case ".scad":
		return FormatSCAD, nil
	default:
		return 0, fmt.Errorf("unsupported file type: %s (expected .stl, .obj, .glb or .scad)", ext)
	}
}

// Write encodes m to w in the given format
func Write(w io.Writer, m *mesh.Mesh, format Format) error {
	switch format {
	case FormatSTL:
		return stl.WriteBinary(w, m)
	case FormatSTLASCII:
		return stl.WriteASCII(w, m)
	case FormatOBJ:
		return WriteOBJ(w, m)
	case FormatGLB:
		return WriteGLB(w, m)
	case FormatSCAD:
		return openscad.WritePolyhedron(w, m)
	}
	return fmt.Errorf("unknown format %v", format)
}

// WriteFile writes m to path, choosing the format by extension
func WriteFile(path string, m *mesh.Mesh, ascii bool) error {
	format, err := FormatFromPath(path, ascii)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Write(file, m, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}
