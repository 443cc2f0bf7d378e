// Package glossary marks pedagogy terms in plan text so the UI can
// emphasize them. Highlighting is a pure function from text to spans;
// no markup is ever substituted into the string itself.
package glossary

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Term is one glossary entry: the phrase to match and its explanation.
type Term struct {
	Phrase     string
	Definition string
}

// Terms is the built-in term table. Matching is case-insensitive and
// whole-word; longer phrases win over shorter ones.
var Terms = []Term{
	{"diferencijavimas", "Mokymo pritaikymas skirtingų gebėjimų mokiniams."},
	{"kompetencijos", "Žinių, gebėjimų ir nuostatų visuma pagal Bendrąsias Programas."},
	{"formuojamasis vertinimas", "Nuolatinis vertinimas mokymuisi, be pažymio."},
	{"kaupiamasis vertinimas", "Vertinimas, kai pažymys kaupiamas iš kelių užduočių."},
	{"diagnostinis vertinimas", "Vertinimas mokymosi spragoms nustatyti."},
	{"refleksija", "Mokinio mąstymas apie savo mokymąsi."},
	{"ugdymo programa", "Valstybės patvirtintas ugdymo turinio dokumentas."},
}

// Span is one run of text, optionally a recognized term.
type Span struct {
	Text   string
	IsTerm bool
	Term   string // matched phrase (lowercased) when IsTerm
}

// Highlight splits text into spans, marking glossary terms. Adjacent
// non-term text is kept in single spans. The concatenation of all span
// texts always equals the input.
func Highlight(text string) []Span {
	if text == "" {
		return nil
	}

	phrases := make([]string, len(Terms))
	for i, t := range Terms {
		phrases[i] = strings.ToLower(t.Phrase)
	}
	// Longest first so "formuojamasis vertinimas" beats "vertinimas".
	sort.Slice(phrases, func(i, j int) bool { return len(phrases[i]) > len(phrases[j]) })

	lower := strings.ToLower(text)
	var spans []Span
	pos := 0

	for pos < len(text) {
		matchLen := 0
		matchPhrase := ""
		for _, p := range phrases {
			if strings.HasPrefix(lower[pos:], p) && wholeWord(lower, pos, len(p)) {
				matchLen = len(p)
				matchPhrase = p
				break
			}
		}

		if matchLen > 0 {
			spans = append(spans, Span{Text: text[pos : pos+matchLen], IsTerm: true, Term: matchPhrase})
			pos += matchLen
			continue
		}

		// Extend the pending plain span to the next candidate position.
		start := pos
		pos++
		for pos < len(text) && !matchesAny(lower, pos, phrases) {
			pos++
		}
		if len(spans) > 0 && !spans[len(spans)-1].IsTerm {
			spans[len(spans)-1].Text += text[start:pos]
		} else {
			spans = append(spans, Span{Text: text[start:pos]})
		}
	}

	return spans
}

// Definition returns the explanation for a matched phrase, or "".
func Definition(phrase string) string {
	phrase = strings.ToLower(phrase)
	for _, t := range Terms {
		if strings.ToLower(t.Phrase) == phrase {
			return t.Definition
		}
	}
	return ""
}

func matchesAny(lower string, pos int, phrases []string) bool {
	for _, p := range phrases {
		if strings.HasPrefix(lower[pos:], p) && wholeWord(lower, pos, len(p)) {
			return true
		}
	}
	return false
}

// wholeWord checks that the match at [pos, pos+n) is not embedded in a
// longer word.
func wholeWord(s string, pos, n int) bool {
	if pos > 0 {
		prev, _ := utf8.DecodeLastRuneInString(s[:pos])
		if unicode.IsLetter(prev) || unicode.IsDigit(prev) {
			return false
		}
	}
	if pos+n < len(s) {
		next, _ := utf8.DecodeRuneInString(s[pos+n:])
		if unicode.IsLetter(next) || unicode.IsDigit(next) {
			return false
		}
	}
	return true
}
