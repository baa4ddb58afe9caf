// Package sqlgen renders rows as SQL INSERT statements.
package sqlgen

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Column is a named value. Value is a string or an int64.
type Column struct {
	Name  string
	Value any
}

// Row is an ordered list of columns.
type Row []Column

// Get returns the value of the named column.
func (r Row) Get(name string) (any, bool) {
	for _, c := range r {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

// present reports whether a column is written: integers always are, strings
// only when non-empty.
func present(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case string:
		return v != ""
	default:
		return true
	}
}

// Insert renders one INSERT statement for row. ok is false when no column
// has a value to write.
func Insert(table string, row Row) (stmt string, ok bool) {
	keys := make([]string, 0, len(row))
	values := make([]string, 0, len(row))
	for _, c := range row {
		if !present(c.Value) {
			continue
		}
		keys = append(keys, QuoteIdent(c.Name))
		values = append(values, Literal(c.Value))
	}
	if len(keys) == 0 {
		return "", false
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		QuoteIdent(table), strings.Join(keys, ", "), strings.Join(values, ", ")), true
}

// Write writes one INSERT statement per row, one per line, and returns the
// number of statements written.
func Write(w io.Writer, table string, rows []Row) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	for _, row := range rows {
		stmt, ok := Insert(table, row)
		if !ok {
			continue
		}
		if _, err := bw.WriteString(stmt + "\n"); err != nil {
			return n, fmt.Errorf("write %s: %w", table, err)
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("write %s: %w", table, err)
	}
	return n, nil
}

// QuoteIdent double-quotes an identifier.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Literal renders a value: integers bare, everything else single-quoted.
func Literal(v any) string {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(v), "'", "''") + "'"
	}
}

// FromStringRecord turns an id → name map into (id, name) rows sorted by id.
func FromStringRecord(record map[string]string) []Row {
	ids := make([]string, 0, len(record))
	for id := range record {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, Row{{Name: "id", Value: id}, {Name: "name", Value: record[id]}})
	}
	return rows
}
