package schoolname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		r    rune
		want Class
	}{
		{'a', Letter}, {'Z', Letter}, {'7', Letter},
		{'ă', Letter}, {'Â', Letter}, {'î', Letter}, {'Ș', Letter}, {'ț', Letter},
		{'ő', Letter}, {'Ű', Letter}, {'é', Letter},
		{'ş', Other}, {'ç', Other}, {'ß', Other},
		{'"', Quote}, {'\'', Quote}, {'’', Quote}, {'‘', Quote}, {'”', Quote}, {'“', Quote}, {'„', Quote},
		{',', Comma},
		{' ', Blank},
		{'.', AbbreviationPeriod},
		{'-', Dash}, {'–', Dash}, {'—', Dash},
		{'_', Underscore},
		{'(', Parenthesis}, {')', Parenthesis},
		{'\t', Other}, {'/', Other}, {'&', Other}, {'\u00a0', Other}, {0, Other},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.r), "Classify(%q)", tt.r)
	}
}

func TestClass_NotLetter(t *testing.T) {
	separators := map[Class]bool{
		Blank: true, Quote: true, AbbreviationPeriod: true,
		Dash: true, Comma: true, Parenthesis: true,
	}
	for _, c := range []Class{Other, Letter, Quote, Comma, Blank, AbbreviationPeriod, Dash, Underscore, Parenthesis} {
		assert.Equal(t, separators[c], c.NotLetter(), "%s", c)
	}
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "abbreviation period", AbbreviationPeriod.String())
	assert.Equal(t, "other", Other.String())
	assert.Equal(t, "unknown", Class(42).String())
}

func TestPrenormalize(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Kiriţescu", "Kirițescu"},
		{"ŞTEFAN ŢEPEŞ", "ȘTEFAN ȚEPEȘ"},
		{"NR_1", "NR. 1"},
		{"a__b", "a. . b"},
		{"déjà vu & co", "déjà vu & co"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Prenormalize(tt.input), "Prenormalize(%q)", tt.input)
	}
}
