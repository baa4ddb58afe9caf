package schoolname

import "unicode"

// Class is the lexical category of a single rune.
type Class int

const (
	Other Class = iota
	Letter
	Quote
	Comma
	Blank
	AbbreviationPeriod
	Dash
	Underscore
	Parenthesis
)

var classNames = [...]string{
	Other:              "other",
	Letter:             "letter",
	Quote:              "quote",
	Comma:              "comma",
	Blank:              "blank",
	AbbreviationPeriod: "abbreviation period",
	Dash:               "dash",
	Underscore:         "underscore",
	Parenthesis:        "parenthesis",
}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "unknown"
	}
	return classNames[c]
}

// NotLetter reports whether runes of class c may appear in a separator run.
func (c Class) NotLetter() bool {
	switch c {
	case Blank, Quote, AbbreviationPeriod, Dash, Comma, Parenthesis:
		return true
	}
	return false
}

// extraLetters are the non-ASCII lowercase letters accepted inside words:
// the Romanian diacritics and the Hungarian vowels found in minority school names.
var extraLetters = map[rune]bool{
	'ă': true, 'â': true, 'î': true, 'ș': true, 'ț': true,
	'á': true, 'é': true, 'í': true, 'ó': true, 'ö': true,
	'ő': true, 'ú': true, 'ü': true, 'ű': true,
}

// Classify returns the class of r. It is total: anything unrecognized is Other.
func Classify(r rune) Class {
	switch r {
	case '"', '\'', '’', '‘', '”', '“', '„':
		return Quote
	case ',':
		return Comma
	case ' ':
		return Blank
	case '.':
		return AbbreviationPeriod
	case '-', '–', '—':
		return Dash
	case '_':
		return Underscore
	case '(', ')':
		return Parenthesis
	}
	if isLetter(r) {
		return Letter
	}
	return Other
}

func isLetter(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return extraLetters[unicode.ToLower(r)]
}

func isQuote(r rune) bool { return Classify(r) == Quote }

func isBlank(r rune) bool { return r == ' ' }
