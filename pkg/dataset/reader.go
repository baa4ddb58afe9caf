// Package dataset reads delimited dataset files into ordered key/value rows.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Column is one named value of a row.
type Column struct {
	Name  string
	Value string
}

// Row is one record, columns in header order.
type Row struct {
	Line    int
	Columns []Column
}

// Get returns the value of the named column.
func (r Row) Get(name string) (string, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// Reader yields the rows of a delimited file whose first record is a header.
type Reader struct {
	csv    *csv.Reader
	header []string
}

// NewReader reads the header row of r and returns a Reader for the rest.
func NewReader(r io.Reader, f Format) (*Reader, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	// Transcode non-UTF-8 encodings.
	if enc := f.Encoding; !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		r = transform.NewReader(r, e.NewDecoder())
	}

	cr := csv.NewReader(r)
	cr.Comma = f.comma()
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(norm.NFC.String(header[i]))
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	return &Reader{csv: cr, header: header}, nil
}

// Header returns the column names.
func (r *Reader) Header() []string {
	return r.header
}

// Read returns the next row, or io.EOF after the last one. Values are
// NFC-composed so that decomposed diacritics compare equal to precomposed ones.
func (r *Reader) Read() (Row, error) {
	record, err := r.csv.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	if err != nil {
		return Row{}, fmt.Errorf("read row: %w", err)
	}
	line, _ := r.csv.FieldPos(0)

	row := Row{Line: line, Columns: make([]Column, len(record))}
	for i, v := range record {
		row.Columns[i] = Column{Name: r.header[i], Value: norm.NFC.String(v)}
	}
	return row, nil
}

// Open opens path for reading with format f. The caller closes the file.
func Open(path string, f Format) (*Reader, io.Closer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open dataset: %w", err)
	}
	r, err := NewReader(file, f)
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, file, nil
}
