package dataset

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Format describes the layout of a delimited dataset file.
type Format struct {
	Delimiter     string `yaml:"delimiter"`
	LineSeparator string `yaml:"line_separator"`
	Quote         string `yaml:"quote"`
	Encoding      string `yaml:"encoding"`
}

var (
	// Comma is the layout of the metadata files and the county table.
	Comma = Format{Delimiter: ",", LineSeparator: "\n", Quote: `"`, Encoding: "utf-8"}
	// Semicolon is the layout of the school registry export.
	Semicolon = Format{Delimiter: ";", LineSeparator: "\r\n", Quote: `"`, Encoding: "utf-8"}
)

// Validate reports layouts the reader cannot honour.
func (f Format) Validate() error {
	if utf8.RuneCountInString(f.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", f.Delimiter)
	}
	if f.Delimiter == `"` || f.Delimiter == "\r" || f.Delimiter == "\n" {
		return fmt.Errorf("invalid delimiter %q", f.Delimiter)
	}
	switch f.LineSeparator {
	case "", "\n", "\r\n":
	default:
		return fmt.Errorf("unsupported line separator %q", f.LineSeparator)
	}
	if f.Quote != "" && f.Quote != `"` {
		return fmt.Errorf("unsupported quote character %q", f.Quote)
	}
	return nil
}

func (f Format) comma() rune {
	r, _ := utf8.DecodeRuneInString(f.Delimiter)
	return r
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
