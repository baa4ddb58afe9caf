package schoolname

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var romanian = language.Romanian

// connectives stay lowercase wherever they appear in a name.
var connectives = map[string]bool{
	"a":   true,
	"ale": true,
	"de":  true,
	"și":  true,
}

// Title cases word under Romanian rules: connectives are lowercased, every
// other word gets an uppercase first letter and a lowercase rest.
func Title(word string) string {
	if word == "" {
		return ""
	}
	// A cases.Caser keeps state between calls, so each call gets its own.
	lower := cases.Lower(romanian).String(word)
	if connectives[lower] {
		return lower
	}
	first, size := utf8.DecodeRuneInString(word)
	return cases.Upper(romanian).String(string(first)) + cases.Lower(romanian).String(word[size:])
}
