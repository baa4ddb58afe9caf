package schoolname

// Pair is one step of the tokenizer: a maximal letter run followed by the
// maximal separator run after it. Either may be empty, never both.
type Pair struct {
	Word string
	Sep  string
	Pos  int // rune offset of Word
}

// Tokenizer walks a pre-normalized name once, left to right.
type Tokenizer struct {
	src []rune
	pos int
}

// NewTokenizer returns a tokenizer positioned at the start of s.
func NewTokenizer(s string) *Tokenizer {
	return &Tokenizer{src: []rune(s)}
}

// Done reports whether the cursor reached the end of the input.
func (t *Tokenizer) Done() bool { return t.pos >= len(t.src) }

// Pos returns the cursor as a rune offset.
func (t *Tokenizer) Pos() int { return t.pos }

// Next consumes one (word, separator) pair. When the rune under the cursor
// starts neither run the cursor cannot advance and Next fails.
func (t *Tokenizer) Next() (Pair, error) {
	start := t.pos
	word := t.run(func(r rune) bool { return Classify(r) == Letter })
	sep := t.run(func(r rune) bool { return Classify(r).NotLetter() })
	if t.pos == start {
		return Pair{}, &MalformedInputError{
			Kind: KindUnknownCharacter,
			Pos:  start,
			Char: t.src[start],
		}
	}
	return Pair{Word: word, Sep: sep, Pos: start}, nil
}

// separator consumes the maximal separator run under the cursor.
func (t *Tokenizer) separator() string {
	return t.run(func(r rune) bool { return Classify(r).NotLetter() })
}

// untilQuote consumes everything up to, not including, the next quote glyph.
// ok is false when the input ends first; the cursor is then left untouched.
func (t *Tokenizer) untilQuote() (span string, ok bool) {
	for i := t.pos; i < len(t.src); i++ {
		if isQuote(t.src[i]) {
			span = string(t.src[t.pos:i])
			t.pos = i
			return span, true
		}
	}
	return "", false
}

// skipQuotes consumes a run of quote glyphs (a closing quote and its doubles).
func (t *Tokenizer) skipQuotes() {
	t.run(isQuote)
}

func (t *Tokenizer) run(pred func(rune) bool) string {
	begin := t.pos
	for t.pos < len(t.src) && pred(t.src[t.pos]) {
		t.pos++
	}
	return string(t.src[begin:t.pos])
}
