// Package scene is an in-process scene graph with the mesh-construction
// surface of a 3D content-creation host: named mesh resources, objects
// wrapping them, collections that objects are linked into, and a view layer
// with an active object.
package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/philipparndt/polymesh/pkg/geometry"
	"github.com/philipparndt/polymesh/pkg/mesh"
)

// DefaultCollection is the collection every new scene starts with
const DefaultCollection = "Collection"

var (
	// ErrNoCollection is returned when a collection name is unknown
	ErrNoCollection = errors.New("collection not found")
	// ErrAlreadyLinked is returned when an object is linked twice into the
	// same collection
	ErrAlreadyLinked = errors.New("object already in collection")
)

// Mesh is a named geometry resource. Its buffers are filled by FromPydata.
type Mesh struct {
	Name     string
	Vertices []geometry.Vector3
	Edges    []mesh.Edge
	Faces    []mesh.Face
}

// FromPydata fills the mesh buffers. An empty edge list derives the edges
// from the faces. Face indices are not checked here; callers validate.
func (m *Mesh) FromPydata(verts []geometry.Vector3, edges []mesh.Edge, faces []mesh.Face) error {
	for i, e := range edges {
		if e.A < 0 || e.A >= len(verts) || e.B < 0 || e.B >= len(verts) {
			return fmt.Errorf("edge %d (%d, %d) out of range for %d vertices", i, e.A, e.B, len(verts))
		}
	}

	m.Vertices = append([]geometry.Vector3(nil), verts...)
	m.Faces = make([]mesh.Face, len(faces))
	for i, f := range faces {
		m.Faces[i] = append(mesh.Face(nil), f...)
	}
	if len(edges) == 0 {
		edges = m.Geometry().Edges()
	}
	m.Edges = append([]mesh.Edge(nil), edges...)
	return nil
}

// Geometry returns the buffers as a mesh.Mesh for analysis and export
func (m *Mesh) Geometry() *mesh.Mesh {
	return &mesh.Mesh{Name: m.Name, Vertices: m.Vertices, Faces: m.Faces}
}

// Object is a named scene node wrapping a mesh
type Object struct {
	Name string
	Mesh *Mesh
}

// Collection groups objects
type Collection struct {
	Name    string
	mu      *sync.Mutex
	objects []*Object
}

// Link adds an object to the collection
func (c *Collection) Link(obj *Object) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, o := range c.objects {
		if o == obj {
			return fmt.Errorf("%w: %s in %s", ErrAlreadyLinked, obj.Name, c.Name)
		}
	}
	c.objects = append(c.objects, obj)
	return nil
}

// Objects returns the linked objects in link order
func (c *Collection) Objects() []*Object {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Object(nil), c.objects...)
}

// ViewLayer tracks the active object
type ViewLayer struct {
	mu     *sync.Mutex
	active *Object
}

// SetActive makes obj the active object
func (v *ViewLayer) SetActive(obj *Object) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active = obj
}

// Active returns the active object, or nil
func (v *ViewLayer) Active() *Object {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active
}

// Scene owns the data blocks, collections and view layer
type Scene struct {
	mu          sync.Mutex
	meshes      *nameTable[*Mesh]
	objects     *nameTable[*Object]
	collections map[string]*Collection
	order       []string
	viewLayer   *ViewLayer
}

// New creates a scene holding the default collection
func New() *Scene {
	s := &Scene{
		meshes:      newNameTable[*Mesh](),
		objects:     newNameTable[*Object](),
		collections: make(map[string]*Collection),
	}
	s.viewLayer = &ViewLayer{mu: &s.mu}
	s.NewCollection(DefaultCollection)
	return s
}

// NewMesh allocates a mesh resource. A taken name gets a numeric suffix.
func (s *Scene) NewMesh(name string) *Mesh {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &Mesh{}
	m.Name = s.meshes.add(name, m)
	return m
}

// NewObject allocates an object wrapping mesh. A taken name gets a numeric
// suffix.
func (s *Scene) NewObject(name string, m *Mesh) *Object {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj := &Object{Mesh: m}
	obj.Name = s.objects.add(name, obj)
	return obj
}

// NewCollection returns the named collection, creating it when absent
func (s *Scene) NewCollection(name string) *Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[name]; ok {
		return c
	}
	c := &Collection{Name: name, mu: &s.mu}
	s.collections[name] = c
	s.order = append(s.order, name)
	return c
}

// Collection looks up a collection by name
func (s *Scene) Collection(name string) (*Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoCollection, name)
	}
	return c, nil
}

// ViewLayer returns the scene's view layer
func (s *Scene) ViewLayer() *ViewLayer {
	return s.viewLayer
}

// Meshes returns every mesh resource in creation order
func (s *Scene) Meshes() []*Mesh {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meshes.values()
}

// Objects returns every object linked into any collection, in collection
// creation order then link order.
func (s *Scene) Objects() []*Object {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Object
	for _, name := range s.order {
		out = append(out, s.collections[name].objects...)
	}
	return out
}
