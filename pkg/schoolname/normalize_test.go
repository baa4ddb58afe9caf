package schoolname

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"all caps with connective", "COLEGIUL DE ARTE BAIA MARE", "Colegiul de Arte Baia Mare"},
		{"abbreviations and cedilla", `Col. Ec. "Costin C. Kiriţescu"`, "Col. Ec. „Costin C. Kirițescu”"},
		{"quoted tail", `Colegiul Economic "Costin C. Kiriţescu"`, "Colegiul Economic „Costin C. Kirițescu”"},
		{"quoted middle", `COLEGIUL DE ARTE "SABIN DRAGOI" ARAD`, "Colegiul de Arte „Sabin Dragoi” Arad"},
		{"single quotes and blank run", "Colegiul   'Aurel Vijoli' Făgăraș", "Colegiul „Aurel Vijoli” Făgăraș"},
		{"compact initials", `Colegiul Național "C. D. Loga" Timișoara`, "Colegiul Național „C.D. Loga” Timișoara"},
		{"tight hyphen", `COLEGIUL AUTO "TRAIAN VUIA" TG-JIU`, "Colegiul Auto „Traian Vuia” Tg-Jiu"},
		{"underscore abbreviation", "LICEUL TEORETIC NR_1", "Liceul Teoretic Nr. 1"},
		{"connective și", "ȘCOALA GIMNAZIALĂ ȘI LICEUL", "Școala Gimnazială și Liceul"},
		{"uppercase cedilla", "ŞCOALA ŢĂNDĂRICĂ", "Școala Țăndărică"},
		{"spaced dash", "LICEUL ION CREANGĂ - BÂRLAD", "Liceul Ion Creangă—Bârlad"},
		{"wide spaced dash", "Liceul Ion Creangă  -  Bârlad", "Liceul Ion Creangă—Bârlad"},
		{"tight en dash", "Tg–Jiu", "Tg-Jiu"},
		{"tight em dash kept", "Liceul X—Y", "Liceul X—Y"},
		{"comma after blank", "Școala Gimnazială Nr. 5 , Sector 2", "Școala Gimnazială Nr. 5, Sector 2"},
		{"parentheses", "LICEUL (TEORETIC) ARAD", "Liceul (Teoretic) Arad"},
		{"mismatched quote glyphs", `Liceul "Ion Creangă' Iași`, "Liceul „Ion Creangă” Iași"},
		{"doubled quotes", `Liceul ""Mihai Eminescu"" Iași`, "Liceul „Mihai Eminescu” Iași"},
		{"romanian quotes", "Liceul „Mihai Eminescu” Iași", "Liceul „Mihai Eminescu” Iași"},
		{"leading quote", `"Mihai Viteazul" College`, "„Mihai Viteazul” College"},
		{"adjacent spans", `Liceul "B" "C"`, "Liceul „B” „C”"},
		{"initial before quote", `Școala I. "Ion"`, "Școala I. „Ion”"},
		{"comma after quote", `Liceul "Ion Creangă", Iași`, "Liceul „Ion Creangă”, Iași"},
		{"trailing blank inside quote", `Liceul "Ion "`, "Liceul „Ion”"},
		{"initials", "I. L. CARAGIALE", "I.L. Caragiale"},
		{"initial before hyphenated word", "Liceul I. Creangă-Bârlad", "Liceul I. Creangă-Bârlad"},
		{"initial before spaced dash", "Liceul I. Creangă - Bârlad", "Liceul I. Creangă—Bârlad"},
		{"initial before comma", "Colegiul C. Negruzzi, Iași", "Colegiul C. Negruzzi, Iași"},
		{"initial before abbreviation", "Școala I. Nr. 5", "Școala I. Nr. 5"},
		{"initial before parenthesis", "Liceul I. Creangă (Iași)", "Liceul I. Creangă (Iași)"},
		{"blank after opening quote", `Liceul " Ion Creangă" Iași`, "Liceul „Ion Creangă” Iași"},
		{"blanks around quoted span", `Liceul " Ion " Iași`, "Liceul „Ion” Iași"},
		{"period before tight dash", "Nr.-B", "Nr.-B"},
		{"initial before tight dash", "I.-B", "I.-B"},
		{"period before spaced dash", "Nr. - B", "Nr.—B"},
		{"initials before tight dash", "I. C.-D", "I.C.-D"},
		{"lowercase", "colegiul national de informatica", "Colegiul National de Informatica"},
		{"trailing blanks", "Liceul   ", "Liceul"},
		{"blanks only", "   ", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		pos   int
		char  rune
	}{
		{"unterminated quote", `Colegiul "Test`, KindUnterminatedQuote, 9, '"'},
		{"unknown character", "Liceul & Co", KindUnknownCharacter, 7, '&'},
		{"tab", "Liceul\tX", KindUnknownCharacter, 6, '\t'},
		{"stray quote", `Liceul "- Ion"`, KindStrayQuote, 7, '"'},
		{"blank opening quote unterminated", `Liceul " Ion`, KindUnterminatedQuote, 7, '"'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.True(t, errors.Is(err, ErrMalformedInput))

			var me *MalformedInputError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, tt.kind, me.Kind)
			assert.Equal(t, tt.pos, me.Pos)
			assert.Equal(t, tt.char, me.Char)
		})
	}
}

func TestNormalize_MalformedInsideQuotes(t *testing.T) {
	_, err := Normalize(`Liceul "Ion / Creangă"`)
	require.Error(t, err)

	var me *MalformedInputError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, KindQuotedSpan, me.Kind)
	assert.Equal(t, 8, me.Pos)
	assert.Equal(t, "Ion / Creangă", me.Span)
	require.NotNil(t, me.Quoted)
	assert.Equal(t, KindUnknownCharacter, me.Quoted.Kind)
	assert.Equal(t, 4, me.Quoted.Pos)
	assert.Equal(t, '/', me.Innermost().Char)
	assert.Equal(t, 12, me.Offset())
	assert.Equal(t, `malformed input: in quoted span "Ion / Creangă" at 8: unknown character '/' at 4`, err.Error())
}

var corpus = []string{
	"COLEGIUL DE ARTE BAIA MARE",
	`Col. Ec. "Costin C. Kiriţescu"`,
	"Colegiul   'Aurel Vijoli' Făgăraș",
	`COLEGIUL AUTO "TRAIAN VUIA" TG-JIU`,
	`Colegiul Național "C. D. Loga" Timișoara`,
	"ȘCOALA GIMNAZIALĂ NR_12 A MUNICIPIULUI DE LA TURDA",
	"LICEUL TEHNOLOGIC ALE DOMNITORILOR - SIBIU",
	"Școala Gimnazială „Tamási Áron” Odorheiu Secuiesc",
	"GRĂDINIȚA CU P.P. NR. 3 ( STRUCTURĂ )",
	"Liceul Teoretic  ,  Bolyai Farkas  ,  Târgu Mureș",
	"LICEUL I. CREANGĂ-BÂRLAD",
	"COLEGIUL C. NEGRUZZI, IAȘI",
	"ȘCOALA I. NR. 5 - P. (STRUCTURĂ)",
	"NR.-B",
}

func TestNormalize_Properties(t *testing.T) {
	for _, input := range corpus {
		got, err := Normalize(input)
		require.NoError(t, err, input)

		assert.NotContains(t, got, "  ", "double blank in %q", got)
		assert.Equal(t, strings.Count(got, "„"), strings.Count(got, "”"), "unbalanced quotes in %q", got)
		assert.False(t, strings.ContainsAny(got, "\"'’‘“"), "source quote survived in %q", got)

		for _, w := range words(got) {
			if connectives[strings.ToLower(w)] {
				assert.Equal(t, strings.ToLower(w), w, "connective %q in %q", w, got)
				continue
			}
			assert.Equal(t, Title(strings.ToLower(w)), w, "casing of %q in %q", w, got)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, input := range corpus {
		once, err := Normalize(input)
		require.NoError(t, err)
		twice, err := Normalize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "input %q", input)
	}
}

func TestNormalize_Concurrent(t *testing.T) {
	want := make([]string, len(corpus))
	for i, input := range corpus {
		out, err := Normalize(input)
		require.NoError(t, err)
		want[i] = out
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8*len(corpus))
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, input := range corpus {
				if out, err := Normalize(input); err != nil || out != want[i] {
					errs <- input
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for input := range errs {
		t.Errorf("concurrent Normalize(%q) diverged", input)
	}
}

// words splits s into its letter runs.
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return Classify(r) != Letter })
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"Tg", "Jiu", "C", "D"}, words("Tg-Jiu „C.D.”"))
}
