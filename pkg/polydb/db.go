// Package polydb reads and writes polyhedra stored in a SQLite database with
// the tables Polyhedron(id, longname), Vertex(poly, x, y, z) and
// Polygon(poly, face, vertex).
package polydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/philipparndt/polymesh/pkg/geometry"
)

// ErrNotFound is returned when a polyhedron id has no name row
var ErrNotFound = errors.New("polyhedron not found")

// DB is a handle on a polyhedron database. It holds exactly one connection.
type DB struct {
	db   *sql.DB
	path string
}

type options struct {
	writable bool
}

// Option configures Open
type Option func(*options)

// WithWritable opens the database read-write, creating the file if needed
func WithWritable() Option {
	return func(o *options) {
		o.writable = true
	}
}

// Open opens the database at path. It is read-only unless WithWritable is
// given.
func Open(path string, opts ...Option) (*DB, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	mode := "ro"
	if o.writable {
		mode = "rwc"
	}
	dsn, err := fileURI(path, "mode="+mode+"&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return &DB{db: db, path: path}, nil
}

// fileURI builds a SQLite file: URI for path. The path is made absolute and
// percent-encoded so that '?', '#' and '%' in directory names stay part of
// the path.
func fileURI(path, query string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		// drive letter paths
		abs = "/" + abs
	}
	u := url.URL{Scheme: "file", Path: abs, RawQuery: query}
	return u.String(), nil
}

// Path returns the file the handle was opened on
func (d *DB) Path() string {
	return d.path
}

// Close releases the connection
func (d *DB) Close() error {
	return d.db.Close()
}

// LongName returns the display name of a polyhedron. A missing row or a
// NULL name yields ErrNotFound.
func (d *DB) LongName(ctx context.Context, id int64) (string, error) {
	var name sql.NullString
	err := d.db.QueryRowContext(ctx, "SELECT longname FROM Polyhedron WHERE id=?", id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !name.Valid) {
		return "", fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up polyhedron %d: %w", id, err)
	}
	return name.String, nil
}

// Vertices returns the vertex coordinates of a polyhedron. The position in
// the result is the vertex index; rows are ordered by insertion.
func (d *DB) Vertices(ctx context.Context, id int64) ([]geometry.Vector3, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT x, y, z FROM Vertex WHERE poly=? ORDER BY rowid", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query vertices of %d: %w", id, err)
	}
	defer rows.Close()

	verts := make([]geometry.Vector3, 0)
	for rows.Next() {
		var v geometry.Vector3
		if err := rows.Scan(&v.X, &v.Y, &v.Z); err != nil {
			return nil, fmt.Errorf("failed to read vertex %d of %d: %w", len(verts), id, err)
		}
		verts = append(verts, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vertices of %d: %w", id, err)
	}
	return verts, nil
}

// FaceIDs returns the distinct face ids of a polyhedron in the order each
// first appears.
func (d *DB) FaceIDs(ctx context.Context, id int64) ([]int64, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT face FROM Polygon WHERE poly=? GROUP BY face ORDER BY MIN(rowid)", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query faces of %d: %w", id, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var fid int64
		if err := rows.Scan(&fid); err != nil {
			return nil, fmt.Errorf("failed to read face id of %d: %w", id, err)
		}
		ids = append(ids, fid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read faces of %d: %w", id, err)
	}
	return ids, nil
}

// FaceVertices returns the vertex indices of one face in winding order
func (d *DB) FaceVertices(ctx context.Context, id, face int64) ([]int, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT vertex FROM Polygon WHERE poly=? AND face=? ORDER BY rowid", id, face)
	if err != nil {
		return nil, fmt.Errorf("failed to query face %d of %d: %w", face, id, err)
	}
	defer rows.Close()

	indices := make([]int, 0)
	for rows.Next() {
		var idx int
		if err := rows.Scan(&idx); err != nil {
			return nil, fmt.Errorf("failed to read face %d of %d: %w", face, id, err)
		}
		indices = append(indices, idx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read face %d of %d: %w", face, id, err)
	}
	return indices, nil
}

// Summary describes one stored polyhedron
type Summary struct {
	ID          int64
	Name        string
	VertexCount int
	FaceCount   int
}

// List returns every polyhedron ordered by id
func (d *DB) List(ctx context.Context) ([]Summary, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT p.id, COALESCE(p.longname, ''),
			(SELECT COUNT(*) FROM Vertex v WHERE v.poly = p.id),
			(SELECT COUNT(DISTINCT g.face) FROM Polygon g WHERE g.poly = p.id)
		FROM Polyhedron p
		ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list polyhedra: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.VertexCount, &s.FaceCount); err != nil {
			return nil, fmt.Errorf("failed to read polyhedron summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
