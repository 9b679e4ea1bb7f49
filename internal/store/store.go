// Package store keeps an imported snapshot of the dataset in sqlite.
package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// Row is one stored record: its id, display name and source JSON.
type Row struct {
	ID   int
	Name string
	Doc  []byte
}

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// SaveAll replaces the snapshot with rows, keeping their order.
func (r *Repo) SaveAll(ctx context.Context, rows []Row) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM heroes`); err != nil {
		return errors.Wrap(err, "clear heroes")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO heroes (id, position, name, doc)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  position = excluded.position,
		  name = excluded.name,
		  doc = excluded.doc,
		  imported_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return errors.Wrap(err, "prepare stmt")
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, row.ID, i, row.Name, string(row.Doc)); err != nil {
			return errors.Wrapf(err, "exec upsert for %d", row.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit tx")
	}
	return nil
}

// All returns the snapshot in stored order.
func (r *Repo) All(ctx context.Context) ([]Row, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, doc
		FROM heroes
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "list query")
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			row Row
			doc string
		)
		if err := rows.Scan(&row.ID, &row.Name, &doc); err != nil {
			return nil, errors.Wrap(err, "list scan")
		}
		row.Doc = []byte(doc)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows err")
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM heroes`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count scan")
	}
	return n, nil
}
