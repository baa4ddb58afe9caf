// Package store persists generated table rows into a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hazyhaar/scoli/pkg/sqlgen"
	_ "modernc.org/sqlite"
)

// Table is a named set of rows to load.
type Table struct {
	Name string
	Rows []sqlgen.Row
}

// Run is one applied build.
type Run struct {
	ID        string
	AppliedAt time.Time
	Tables    int
	Rows      int
}

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS import_runs (
		id           TEXT PRIMARY KEY,
		applied_at   INTEGER NOT NULL,
		table_count  INTEGER NOT NULL,
		row_count    INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create import_runs table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Apply replaces the content of every table with its rows and records the
// run, all in one transaction.
func (s *Store) Apply(ctx context.Context, runID string, tables []Table) error {
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		total := 0
		for _, t := range tables {
			n, err := load(ctx, tx, t)
			if err != nil {
				return fmt.Errorf("load %s: %w", t.Name, err)
			}
			total += n
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO import_runs (id, applied_at, table_count, row_count) VALUES (?, ?, ?, ?)`,
			runID, time.Now().UnixMilli(), len(tables), total)
		if err != nil {
			return fmt.Errorf("record run %s: %w", runID, err)
		}
		return nil
	})
}

type column struct {
	name    string
	integer bool
}

// schema lists the columns of rows in first-seen order. A column is INTEGER
// when it holds integers and nothing else.
func schema(rows []sqlgen.Row) []column {
	var cols []column
	index := make(map[string]int)
	text := make(map[string]bool)
	ints := make(map[string]bool)
	for _, row := range rows {
		for _, c := range row {
			if _, ok := index[c.Name]; !ok {
				index[c.Name] = len(cols)
				cols = append(cols, column{name: c.Name})
			}
			switch v := c.Value.(type) {
			case int64, int:
				ints[c.Name] = true
			case string:
				if v != "" {
					text[c.Name] = true
				}
			case nil:
			default:
				text[c.Name] = true
			}
		}
	}
	for i := range cols {
		cols[i].integer = ints[cols[i].name] && !text[cols[i].name]
	}
	return cols
}

func load(ctx context.Context, tx *sql.Tx, t Table) (int, error) {
	cols := schema(t.Rows)
	if len(cols) == 0 {
		return 0, nil
	}
	table := sqlgen.QuoteIdent(t.Name)

	defs := make([]string, len(cols))
	names := make([]string, len(cols))
	for i, c := range cols {
		typ := "TEXT"
		if c.integer {
			typ = "INTEGER"
		}
		names[i] = sqlgen.QuoteIdent(c.name)
		defs[i] = names[i] + " " + typ
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return 0, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), placeholders))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	n := 0
	args := make([]any, len(cols))
	for _, row := range t.Rows {
		empty := true
		for i, c := range cols {
			args[i] = nil
			if v, ok := row.Get(c.name); ok && v != "" {
				args[i] = v
				empty = false
			}
		}
		if empty {
			continue
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Runs lists applied runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, applied_at, table_count, row_count
		FROM import_runs ORDER BY applied_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ms int64
		if err := rows.Scan(&r.ID, &ms, &r.Tables, &r.Rows); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.AppliedAt = time.UnixMilli(ms)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Count returns the number of rows in table.
func (s *Store) Count(ctx context.Context, table string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+sqlgen.QuoteIdent(table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
