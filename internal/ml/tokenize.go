// Package ml implements text vectorization, classical and neural
// classifiers, and evaluation metrics for the news category models.
// All routines are deterministic for a fixed seed.
package ml

import (
	"strings"
	"unicode"
)

// stopwords are high-frequency English function words that carry no signal
// for topic classification.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"had": true, "has": true, "have": true, "he": true, "her": true,
	"his": true, "if": true, "in": true, "is": true, "it": true, "its": true,
	"no": true, "not": true, "of": true, "on": true, "or": true,
	"she": true, "that": true, "the": true, "their": true, "they": true,
	"this": true, "to": true, "was": true, "were": true, "will": true,
	"with": true, "you": true,
}

// Tokenize splits text into lowercase word tokens. Tokens are maximal runs
// of letters and digits; single characters and stopwords are dropped.
func Tokenize(text string) []string {
	var tokens []string
	var b strings.Builder

	flush := func() {
		if b.Len() == 0 {
			return
		}
		tok := b.String()
		b.Reset()
		if len(tok) < 2 || stopwords[tok] {
			return
		}
		tokens = append(tokens, tok)
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		flush()
	}
	flush()

	return tokens
}
