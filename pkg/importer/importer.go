// Package importer reconstructs a polyhedron from its database rows and
// materializes it as a mesh object in a scene.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/philipparndt/polymesh/pkg/geometry"
	"github.com/philipparndt/polymesh/pkg/mesh"
	"github.com/philipparndt/polymesh/pkg/polydb"
	"github.com/philipparndt/polymesh/pkg/scene"
)

var (
	// ErrNotFound is returned when the polyhedron id has no name row.
	// Nothing is created in the scene.
	ErrNotFound = polydb.ErrNotFound
	// ErrMalformed is returned when the stored faces do not form a valid
	// mesh. Nothing is created in the scene.
	ErrMalformed = errors.New("malformed polyhedron")
	// ErrNoScene is returned by Import when the target has no scene. Load
	// works without one.
	ErrNoScene = errors.New("import target has no scene")
)

// Source is the read-only query surface the importer needs. *polydb.DB
// implements it.
type Source interface {
	LongName(ctx context.Context, id int64) (string, error)
	Vertices(ctx context.Context, id int64) ([]geometry.Vector3, error)
	FaceIDs(ctx context.Context, id int64) ([]int64, error)
	FaceVertices(ctx context.Context, id, face int64) ([]int, error)
}

// Target names where imported objects go. A Target without a Scene only
// supports Load.
type Target struct {
	Scene      *scene.Scene
	Collection string
}

// Importer loads polyhedra from a Source into a Target
type Importer struct {
	source Source
	target Target
	logger *slog.Logger
}

// New creates an importer. An empty collection name means
// scene.DefaultCollection.
func New(source Source, target Target, logger *slog.Logger) *Importer {
	if target.Collection == "" {
		target.Collection = scene.DefaultCollection
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{source: source, target: target, logger: logger}
}

// Load reads a polyhedron and validates it without touching the scene
func (im *Importer) Load(ctx context.Context, id int64) (*mesh.Mesh, error) {
	name, err := im.source.LongName(ctx, id)
	if err != nil {
		return nil, err
	}
	im.logger.Debug("resolved polyhedron", "id", id, "name", name)

	verts, err := im.source.Vertices(ctx, id)
	if err != nil {
		return nil, err
	}

	fids, err := im.source.FaceIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	m := mesh.New(name)
	m.Vertices = verts
	for _, fid := range fids {
		indices, err := im.source.FaceVertices(ctx, id, fid)
		if err != nil {
			return nil, err
		}
		m.AddFace(indices...)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w %d (%s): %w", ErrMalformed, id, name, err)
	}

	im.logger.Debug("loaded polyhedron", "id", id, "vertices", len(m.Vertices), "faces", len(m.Faces))
	return m, nil
}

// Import loads a polyhedron and links it into the target collection as a new
// object, which becomes the active object. Importing the same id twice
// creates two independent objects.
func (im *Importer) Import(ctx context.Context, id int64) (*scene.Object, error) {
	if im.target.Scene == nil {
		return nil, ErrNoScene
	}

	m, err := im.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	sc := im.target.Scene
	col, err := sc.Collection(im.target.Collection)
	if err != nil {
		return nil, err
	}

	data := sc.NewMesh(m.Name)
	if err := data.FromPydata(m.Vertices, nil, m.Faces); err != nil {
		return nil, fmt.Errorf("failed to fill mesh %s: %w", data.Name, err)
	}
	obj := sc.NewObject(data.Name, data)
	if err := col.Link(obj); err != nil {
		return nil, err
	}
	sc.ViewLayer().SetActive(obj)

	im.logger.Info("imported polyhedron", "id", id, "object", obj.Name, "collection", col.Name)
	return obj, nil
}
