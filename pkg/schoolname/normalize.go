// Package schoolname turns raw Romanian school names into their canonical
// display form: Romanian title casing, comma-below diacritics, compact
// abbreviations and „…” quotes.
//
// Normalize is safe for concurrent use; it keeps no state between calls.
package schoolname

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	quoteOpen  = "„"
	quoteClose = "”"
)

// Normalize returns the canonical form of a school name, or a
// *MalformedInputError when the name cannot be read. It never returns a
// partially normalized string.
func Normalize(raw string) (string, error) {
	out, _, err := assemble(NewTokenizer(Prenormalize(raw)), false)
	if err != nil {
		return "", err
	}
	return out, nil
}

// assemble consumes every pair of tok. pending is the deferred space owed
// after a single-letter abbreviation; its final value is returned.
func assemble(tok *Tokenizer, pending bool) (string, bool, error) {
	var out builder
	for !tok.Done() {
		p, err := tok.Next()
		if err != nil {
			return "", pending, err
		}
		sepPos := tok.Pos() - utf8.RuneCountInString(p.Sep)
		punct, quoted, err := splitSep(p.Sep, sepPos)
		if err != nil {
			return "", pending, err
		}

		pending = emit(&out, Title(p.Word), punct, pending)
		if !quoted {
			continue
		}
		if pending {
			out.space()
			pending = false
		}
		open := sepPos + utf8.RuneCountInString(punct)
		openChar, _ := utf8.DecodeRuneInString(p.Sep[len(punct):])
		if err := quoteSpans(tok, &out, open, openChar); err != nil {
			return "", pending, err
		}
	}
	return out.String(), pending, nil
}

// emit appends a cased word and the punctuation policy chosen by punct, the
// separator without its trailing quote run. It returns the new pending flag.
func emit(out *builder, word, punct string, pending bool) bool {
	core := strings.Trim(punct, " ")
	if word == "" && core == "" {
		return pending
	}
	single := utf8.RuneCountInString(word) == 1
	// Initials stay compact ("C.D."); any other word settles the owed space.
	if pending && word != "" && !(single && strings.HasPrefix(core, ".")) {
		out.space()
		pending = false
	}
	switch {
	case core == "":
		out.write(word)
		out.space()

	case core[0] == '.':
		out.write(word + ".")
		if rest := strings.Trim(core[1:], " "); isDash(rest) {
			dash(out, rest, core == punct)
			return false
		}
		if single {
			pending = true
		} else {
			out.space()
		}
		pending = emitRest(out, core[1:], punct, pending)

	case core[0] == ',':
		out.write(word + ",")
		out.space()
		pending = emitRest(out, core[1:], punct, pending)

	case isDash(core):
		out.write(word)
		dash(out, core, core == punct)

	default:
		out.write(word)
		out.collapsed(punct)
	}
	return pending
}

// dash writes a tight ASCII or en dash as "-" and anything else as "—",
// with no blanks on either side.
func dash(out *builder, d string, tight bool) {
	r, _ := utf8.DecodeRuneInString(d)
	if tight && r != '—' {
		out.write("-")
		return
	}
	out.write("—")
}

// emitRest re-emits punctuation left after a leading period or comma.
func emitRest(out *builder, rest, punct string, pending bool) bool {
	rest = strings.Trim(rest, " ")
	if rest == "" {
		return pending
	}
	out.space()
	out.collapsed(rest)
	if strings.HasSuffix(punct, " ") {
		out.space()
	}
	return false
}

// quoteSpans handles the quoted span opened at rune offset open, and any span
// opened right after it. The content is normalized on its own and wrapped in
// Romanian quotes.
func quoteSpans(tok *Tokenizer, out *builder, open int, openChar rune) error {
	for {
		start := tok.Pos()
		span, ok := tok.untilQuote()
		if !ok {
			return &MalformedInputError{Kind: KindUnterminatedQuote, Pos: open, Char: openChar}
		}
		inner, _, err := assemble(NewTokenizer(span), false)
		if err != nil {
			var nested *MalformedInputError
			if !errors.As(err, &nested) {
				return err
			}
			return &MalformedInputError{Kind: KindQuotedSpan, Pos: start, Char: openChar, Span: span, Quoted: nested}
		}
		out.write(quoteOpen + inner + quoteClose)
		tok.skipQuotes()

		after := tok.separator()
		afterPos := tok.Pos() - utf8.RuneCountInString(after)
		punct, quoted, err := splitSep(after, afterPos)
		if err != nil {
			return err
		}
		if core := strings.Trim(punct, " "); core != "" {
			out.collapsed(core)
		}
		out.space()
		if !quoted {
			return nil
		}
		open = afterPos + utf8.RuneCountInString(punct)
		openChar, _ = utf8.DecodeRuneInString(after[len(punct):])
	}
}

// splitSep cuts the trailing run of quote glyphs, and any blanks after it,
// off sep. A quote glyph anywhere else in the separator is reported as a
// stray quote; pos is the rune offset of sep.
func splitSep(sep string, pos int) (punct string, quoted bool, err error) {
	rs := []rune(sep)
	end := len(rs)
	for end > 0 && isBlank(rs[end-1]) {
		end--
	}
	quotes := end
	for end > 0 && isQuote(rs[end-1]) {
		end--
	}
	if end == quotes {
		end = len(rs)
	}
	for i, r := range rs[:end] {
		if isQuote(r) {
			return "", false, &MalformedInputError{Kind: KindStrayQuote, Pos: pos + i, Char: r}
		}
	}
	return string(rs[:end]), end < len(rs), nil
}

func isDash(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size == len(s) && Classify(r) == Dash
}

// builder is the append-only output of one pass. It never writes a blank at
// the start or next to another blank.
type builder struct {
	b    strings.Builder
	last rune
}

func (o *builder) write(s string) {
	if s == "" {
		return
	}
	o.b.WriteString(s)
	o.last, _ = utf8.DecodeLastRuneInString(s)
}

func (o *builder) space() {
	if o.b.Len() == 0 || isBlank(o.last) {
		return
	}
	o.b.WriteByte(' ')
	o.last = ' '
}

// collapsed writes s with every blank run reduced to a single space.
func (o *builder) collapsed(s string) {
	for _, r := range s {
		if isBlank(r) {
			o.space()
			continue
		}
		o.b.WriteRune(r)
		o.last = r
	}
}

func (o *builder) String() string {
	return strings.TrimRight(o.b.String(), " ")
}
