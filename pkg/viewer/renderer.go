package viewer

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/polymesh/pkg/geometry"
	"github.com/philipparndt/polymesh/pkg/mesh"
	"github.com/philipparndt/polymesh/pkg/render"
)

// MeshRenderer is a fyne widget drawing a polyhedron as a wireframe of its
// polygon edges, optionally over a shaded raster
type MeshRenderer struct {
	widget.BaseWidget
	mesh            *mesh.Mesh
	camera          *render.Camera
	lines           []*canvas.Line
	filled          bool
	raster          *canvas.Image
	selectedIndices []int
	pointMarkers    []*canvas.Circle
	dragStart       *fyne.Position
	isDragging      bool
	width           float64
	height          float64
	onVertexSelect  func(index int)
}

// NewMeshRenderer creates a new mesh widget. A nil mesh shows an empty view.
func NewMeshRenderer(m *mesh.Mesh) *MeshRenderer {
	if m == nil {
		m = mesh.New("")
	}
	r := &MeshRenderer{
		mesh:            m,
		camera:          render.NewCamera(m.BoundingBox()),
		lines:           make([]*canvas.Line, 0),
		selectedIndices: make([]int, 0),
		pointMarkers:    make([]*canvas.Circle, 0),
	}
	r.ExtendBaseWidget(r)
	return r
}

// SetMesh replaces the displayed mesh and resets the camera and selection
func (r *MeshRenderer) SetMesh(m *mesh.Mesh) {
	if m == nil {
		m = mesh.New("")
	}
	r.mesh = m
	r.camera = render.NewCamera(m.BoundingBox())
	r.selectedIndices = r.selectedIndices[:0]
	r.Render(r.width, r.height)
}

// SetOnVertexSelect sets the callback for when a vertex is selected
func (r *MeshRenderer) SetOnVertexSelect(callback func(index int)) {
	r.onVertexSelect = callback
}

// SetFilledMode toggles the shaded raster under the wireframe
func (r *MeshRenderer) SetFilledMode(filled bool) {
	r.filled = filled
	r.Render(r.width, r.height)
}

// CreateRenderer creates the renderer for the widget
func (r *MeshRenderer) CreateRenderer() fyne.WidgetRenderer {
	return &meshWidgetRenderer{
		renderer: r,
		objects:  []fyne.CanvasObject{},
	}
}

// Render updates the 3D view
func (r *MeshRenderer) Render(width, height float64) {
	r.width = width
	r.height = height

	if width <= 0 || height <= 0 {
		return
	}

	r.lines = make([]*canvas.Line, 0)
	r.raster = nil

	if r.filled {
		opts := render.DefaultOptions()
		opts.Width, opts.Height = int(width), int(height)
		opts.Supersample = 1
		opts.Edges.A = 0
		r.raster = canvas.NewImageFromImage(render.RenderView(r.mesh, r.camera, opts))
		r.raster.Resize(fyne.NewSize(float32(width), float32(height)))
	}

	// Nearer edges are drawn brighter
	near, far := math.MaxFloat64, 0.0
	type projected struct{ x1, y1, x2, y2, z float64 }
	segments := make([]projected, 0)
	for _, e := range r.mesh.Edges() {
		x1, y1, z1 := r.camera.Project(r.mesh.Vertices[e.A], width, height)
		x2, y2, z2 := r.camera.Project(r.mesh.Vertices[e.B], width, height)
		z := (z1 + z2) / 2
		near, far = math.Min(near, z), math.Max(far, z)
		segments = append(segments, projected{x1, y1, x2, y2, z})
	}

	for _, seg := range segments {
		depth := 0.0
		if far > near {
			depth = (seg.z - near) / (far - near)
		}
		brightness := uint8(255 - depth*170)

		line := canvas.NewLine(color.RGBA{brightness, brightness, brightness, 255})
		line.StrokeWidth = 1
		line.Position1 = fyne.NewPos(float32(seg.x1), float32(seg.y1))
		line.Position2 = fyne.NewPos(float32(seg.x2), float32(seg.y2))

		r.lines = append(r.lines, line)
	}

	// Update point markers
	r.updatePointMarkers()

	r.Refresh()
}

// updatePointMarkers updates the visual markers for selected points
func (r *MeshRenderer) updatePointMarkers() {
	r.pointMarkers = make([]*canvas.Circle, 0)

	colors := []color.Color{
		color.RGBA{255, 0, 0, 255}, // Red for first point
		color.RGBA{0, 255, 0, 255}, // Green for second point
	}

	for i, idx := range r.selectedIndices {
		x, y, _ := r.camera.Project(r.mesh.Vertices[idx], r.width, r.height)

		marker := canvas.NewCircle(colors[i%len(colors)])
		marker.StrokeColor = color.White
		marker.StrokeWidth = 2
		size := float32(10)
		marker.Resize(fyne.NewSize(size, size))
		marker.Move(fyne.NewPos(float32(x)-size/2, float32(y)-size/2))

		r.pointMarkers = append(r.pointMarkers, marker)
	}
}

// Dragged handles mouse drag events for rotation
func (r *MeshRenderer) Dragged(event *fyne.DragEvent) {
	if r.dragStart != nil {
		deltaX := event.Position.X - r.dragStart.X
		deltaY := event.Position.Y - r.dragStart.Y

		r.camera.Rotate(float64(-deltaY)*0.01, float64(deltaX)*0.01)
		r.Render(r.width, r.height)
	}
	r.dragStart = &event.Position
	r.isDragging = true
}

// DragEnd handles the end of a drag event
func (r *MeshRenderer) DragEnd() {
	r.dragStart = nil
	r.isDragging = false
}

// Tapped handles tap events for point selection
func (r *MeshRenderer) Tapped(event *fyne.PointEvent) {
	if r.isDragging {
		return
	}

	// Only select if reasonably close (within 20 pixels)
	idx, dist := NearestVertex(r.mesh, r.camera, float64(event.Position.X), float64(event.Position.Y), r.width, r.height)
	if idx >= 0 && dist < 20 {
		r.addSelected(idx)
	}
}

// NearestVertex returns the index of the vertex projected closest to the
// screen position and its pixel distance, or -1 for an empty mesh
func NearestVertex(m *mesh.Mesh, camera *render.Camera, screenX, screenY, width, height float64) (int, float64) {
	nearest := -1
	minDist := math.MaxFloat64

	for i, vertex := range m.Vertices {
		x, y, _ := camera.Project(vertex, width, height)
		dist := math.Hypot(x-screenX, y-screenY)
		if dist < minDist {
			minDist = dist
			nearest = i
		}
	}

	return nearest, minDist
}

// addSelected adds a vertex to the selection, keeping the last two
func (r *MeshRenderer) addSelected(idx int) {
	r.selectedIndices = append(r.selectedIndices, idx)

	if len(r.selectedIndices) > 2 {
		r.selectedIndices = r.selectedIndices[len(r.selectedIndices)-2:]
	}

	r.updatePointMarkers()
	r.Refresh()

	if r.onVertexSelect != nil {
		r.onVertexSelect(idx)
	}
}

// SelectedPoints returns the positions of the selected vertices
func (r *MeshRenderer) SelectedPoints() []geometry.Vector3 {
	points := make([]geometry.Vector3, len(r.selectedIndices))
	for i, idx := range r.selectedIndices {
		points[i] = r.mesh.Vertices[idx]
	}
	return points
}

// ClearSelection clears all selected vertices
func (r *MeshRenderer) ClearSelection() {
	r.selectedIndices = make([]int, 0)
	r.pointMarkers = make([]*canvas.Circle, 0)
	r.Refresh()
}

// Scrolled handles scroll events for zooming
func (r *MeshRenderer) Scrolled(event *fyne.ScrollEvent) {
	delta := -float64(event.Scrolled.DY) * 0.001
	r.camera.Zoom(delta)
	r.Render(r.width, r.height)
}

// meshWidgetRenderer implements fyne.WidgetRenderer
type meshWidgetRenderer struct {
	renderer *MeshRenderer
	objects  []fyne.CanvasObject
}

func (m *meshWidgetRenderer) Layout(size fyne.Size) {
	m.renderer.Render(float64(size.Width), float64(size.Height))
}

func (m *meshWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (m *meshWidgetRenderer) Refresh() {
	m.objects = make([]fyne.CanvasObject, 0)

	if m.renderer.raster != nil {
		m.objects = append(m.objects, m.renderer.raster)
	}

	for _, line := range m.renderer.lines {
		m.objects = append(m.objects, line)
	}

	// Add point markers
	for _, marker := range m.renderer.pointMarkers {
		m.objects = append(m.objects, marker)
	}

	canvas.Refresh(m.renderer)
}

func (m *meshWidgetRenderer) Objects() []fyne.CanvasObject {
	return m.objects
}

func (m *meshWidgetRenderer) Destroy() {}
