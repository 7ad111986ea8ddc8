// Package render rasterizes meshes into images without a GPU or window, for
// previews and thumbnails.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/philipparndt/polymesh/pkg/geometry"
	"github.com/philipparndt/polymesh/pkg/mesh"
)

// Options controls a render
type Options struct {
	Width, Height int
	Supersample   int     // render at this multiple of the size, then downscale
	Yaw, Pitch    float64 // orbit angles in radians
	Background    color.RGBA
	Fill          color.RGBA
	Edges         color.RGBA // zero alpha disables the wireframe overlay
}

// DefaultOptions returns a 512x512 render with a slight three-quarter view
func DefaultOptions() Options {
	return Options{
		Width:       512,
		Height:      512,
		Supersample: 2,
		Yaw:         math.Pi / 6,
		Pitch:       math.Pi / 8,
		Background:  color.RGBA{R: 30, G: 30, B: 34, A: 255},
		Fill:        color.RGBA{R: 120, G: 170, B: 230, A: 255},
		Edges:       color.RGBA{R: 20, G: 20, B: 20, A: 255},
	}
}

// Render draws m with flat shading and a head light, seen from a camera
// orbiting the mesh at opts.Yaw and opts.Pitch. Back faces are culled, so
// faces must be wound counter-clockwise seen from outside.
func Render(m *mesh.Mesh, opts Options) *image.RGBA {
	camera := NewCamera(m.BoundingBox())
	camera.Rotate(opts.Pitch, opts.Yaw)
	return RenderView(m, camera, opts)
}

// RenderView draws m from the given camera; opts.Yaw and opts.Pitch are
// ignored
func RenderView(m *mesh.Mesh, camera *Camera, opts Options) *image.RGBA {
	ss := max(opts.Supersample, 1)
	width, height := opts.Width*ss, opts.Height*ss

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)

	zbuffer := make([]float64, width*height)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	w, h := float64(width), float64(height)
	light := camera.ViewDirection().Mul(-1)

	for fi := range m.Faces {
		points := m.FacePoints(fi)
		normal := geometry.NewellNormal(points)
		if normal.Dot(camera.Position.Sub(geometry.Centroid(points))) <= 0 {
			continue
		}
		col := shade(opts.Fill, normal.Dot(light))

		for _, tri := range geometry.FanTriangulate(points) {
			x1, y1, z1 := camera.Project(tri.V1, w, h)
			x2, y2, z2 := camera.Project(tri.V2, w, h)
			x3, y3, z3 := camera.Project(tri.V3, w, h)
			fillTriangleWithDepth(img, zbuffer, x1, y1, z1, x2, y2, z2, x3, y3, z3, col)
		}

		if opts.Edges.A == 0 {
			continue
		}
		for i, p := range points {
			q := points[(i+1)%len(points)]
			px, py, _ := camera.Project(p, w, h)
			qx, qy, _ := camera.Project(q, w, h)
			drawLine(img, int(math.Round(px)), int(math.Round(py)), int(math.Round(qx)), int(math.Round(qy)), opts.Edges)
		}
	}

	if ss == 1 {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// shade scales the fill color by a Lambert term with some ambient light
func shade(base color.RGBA, lambert float64) color.RGBA {
	k := 0.3 + 0.7*math.Max(0, lambert)
	return color.RGBA{
		R: uint8(float64(base.R) * k),
		G: uint8(float64(base.G) * k),
		B: uint8(float64(base.B) * k),
		A: base.A,
	}
}

// ImageFormat is an encoded image type
type ImageFormat int

const (
	PNG ImageFormat = iota
	WebP
)

// ImageFormatFromPath picks the image format from the file extension
func ImageFormatFromPath(path string) (ImageFormat, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return PNG, nil
	case ".webp":
		return WebP, nil
	default:
		return 0, fmt.Errorf("unsupported image type: %s (expected .png or .webp)", ext)
	}
}

// Encode writes img in the given format. WebP output is lossless.
func Encode(w io.Writer, img image.Image, format ImageFormat) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case WebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown image format %d", format)
}
