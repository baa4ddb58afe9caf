package schoolname

import "strings"

// prenormalizer rewrites the deprecated cedilla letters to their comma-below
// forms and expands the underscore abbreviation marker. strings.Replacer
// scans left to right once and is safe for concurrent use.
var prenormalizer = strings.NewReplacer(
	"ş", "ș",
	"Ş", "Ș",
	"ţ", "ț",
	"Ţ", "Ț",
	"_", ". ",
)

// Prenormalize returns s in the canonical intermediate form consumed by the
// tokenizer. Every other rune passes through unchanged.
func Prenormalize(s string) string {
	return prenormalizer.Replace(s)
}
