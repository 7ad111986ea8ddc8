package polydb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/philipparndt/polymesh/pkg/mesh"
)

const schema = `
CREATE TABLE IF NOT EXISTS Polyhedron (
	id       INTEGER PRIMARY KEY,
	longname TEXT
);
CREATE TABLE IF NOT EXISTS Vertex (
	poly INTEGER NOT NULL REFERENCES Polyhedron(id),
	x    REAL NOT NULL,
	y    REAL NOT NULL,
	z    REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS Polygon (
	poly   INTEGER NOT NULL REFERENCES Polyhedron(id),
	face   INTEGER NOT NULL,
	vertex INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS vertex_poly ON Vertex(poly);
CREATE INDEX IF NOT EXISTS polygon_poly_face ON Polygon(poly, face);
`

// CreateSchema creates the three tables if they do not exist
func (d *DB) CreateSchema(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Put stores a mesh as polyhedron id in one transaction. Vertices are
// written in index order and face corners in winding order, so reading the
// polyhedron back yields the same mesh. Face ids are the face positions.
func (d *DB) Put(ctx context.Context, id int64, m *mesh.Mesh) error {
	return d.inTx(ctx, func(tx *sql.Tx) error {
		return put(ctx, tx, id, m)
	})
}

// Replace stores m as polyhedron id, removing any polyhedron already stored
// under id. Both happen in one transaction, so a failed insert keeps the old
// polyhedron.
func (d *DB) Replace(ctx context.Context, id int64, m *mesh.Mesh) error {
	return d.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := deleteRows(ctx, tx, id); err != nil {
			return err
		}
		return put(ctx, tx, id, m)
	})
}

// Delete removes polyhedron id with its vertex and polygon rows
func (d *DB) Delete(ctx context.Context, id int64) error {
	return d.inTx(ctx, func(tx *sql.Tx) error {
		n, err := deleteRows(ctx, tx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("polyhedron %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (d *DB) inTx(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func put(ctx context.Context, tx *sql.Tx, id int64, m *mesh.Mesh) error {
	if _, err := tx.ExecContext(ctx, "INSERT INTO Polyhedron (id, longname) VALUES (?, ?)", id, m.Name); err != nil {
		return fmt.Errorf("failed to insert polyhedron %d: %w", id, err)
	}

	if err := insertEach(ctx, tx, "INSERT INTO Vertex (poly, x, y, z) VALUES (?, ?, ?, ?)", len(m.Vertices),
		func(i int) []any {
			v := m.Vertices[i]
			return []any{id, v.X, v.Y, v.Z}
		}); err != nil {
		return fmt.Errorf("failed to insert vertices of %d: %w", id, err)
	}

	type corner struct{ face, vertex int }
	var corners []corner
	for fi, face := range m.Faces {
		for _, idx := range face {
			corners = append(corners, corner{fi, idx})
		}
	}
	if err := insertEach(ctx, tx, "INSERT INTO Polygon (poly, face, vertex) VALUES (?, ?, ?)", len(corners),
		func(i int) []any {
			return []any{id, corners[i].face, corners[i].vertex}
		}); err != nil {
		return fmt.Errorf("failed to insert faces of %d: %w", id, err)
	}
	return nil
}

func insertEach(ctx context.Context, tx *sql.Tx, query string, n int, args func(int) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return err
		}
	}
	return nil
}

// deleteRows removes the rows of polyhedron id and reports how many name
// rows went away.
func deleteRows(ctx context.Context, tx *sql.Tx, id int64) (int64, error) {
	for _, table := range []string{"Polygon", "Vertex"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE poly = ?", id); err != nil {
			return 0, fmt.Errorf("failed to delete %s rows of %d: %w", table, id, err)
		}
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM Polyhedron WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete polyhedron %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete polyhedron %d: %w", id, err)
	}
	return n, nil
}
