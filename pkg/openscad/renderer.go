package openscad

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/philipparndt/polymesh/pkg/stl"
)

// ErrNotInstalled is returned when the openscad binary is not on PATH
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

// Renderer handles OpenSCAD file rendering to STL
type Renderer struct {
	workDir string
	binary  string
}

// NewRenderer creates a new OpenSCAD renderer resolving relative paths
// against workDir
func NewRenderer(workDir string) *Renderer {
	return &Renderer{
		workDir: workDir,
		binary:  "openscad",
	}
}

func (r *Renderer) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workDir, path)
}

// RenderToSTL renders an OpenSCAD file to STL format
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	binary, err := exec.LookPath(r.binary)
	if err != nil {
		return ErrNotInstalled
	}

	cmd := exec.CommandContext(ctx, binary, "-o", r.abs(outputFile), r.abs(scadFile))
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var errMsg strings.Builder
		fmt.Fprintf(&errMsg, "failed to render %s: %v", scadFile, err)
		if stderr.Len() > 0 {
			errMsg.WriteString("\nstderr: ")
			errMsg.WriteString(stderr.String())
		}
		if stdout.Len() > 0 {
			errMsg.WriteString("\nstdout: ")
			errMsg.WriteString(stdout.String())
		}
		return errors.New(errMsg.String())
	}

	return nil
}

// Load renders scadFile into a temporary STL and parses it
func (r *Renderer) Load(ctx context.Context, scadFile string) (*stl.Model, error) {
	dir, err := os.MkdirTemp("", "polymesh-scad-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "model.stl")
	if err := r.RenderToSTL(ctx, scadFile, out); err != nil {
		return nil, err
	}

	model, err := stl.Parse(out)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered %s: %w", scadFile, err)
	}
	if model.Name == "" || model.Name == "OpenSCAD_Model" {
		model.Name = strings.TrimSuffix(filepath.Base(scadFile), filepath.Ext(scadFile))
	}
	return model, nil
}
