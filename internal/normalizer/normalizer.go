// Package normalizer turns raw text into the lowercase, alphabetic-only token
// sequences that documents, sentences and queries are scored on.
package normalizer

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"qa/internal/domain"
)

// Options configures optional filtering applied after the alphabetic filter.
type Options struct {
	Stopwords bool
}

// Normalizer lowercases text, splits it with a word tokenizer and keeps only
// units made entirely of letters.
type Normalizer struct {
	tokenizer domain.WordTokenizer
	stopwords map[string]struct{}
}

// New creates a normalizer on top of the given word tokenizer.
func New(tokenizer domain.WordTokenizer, opts Options) *Normalizer {
	n := &Normalizer{tokenizer: tokenizer}
	if opts.Stopwords {
		n.stopwords = defaultStopwords()
	}
	return n
}

// Normalize returns the tokens of text, in order. Empty text yields nil.
func (n *Normalizer) Normalize(text string) []string {
	if text == "" {
		return nil
	}
	// Casers carry state, so one per call keeps Normalize safe for concurrent use.
	lower := cases.Lower(language.Und).String(text)
	units := n.tokenizer.Tokenize(lower)
	var out []string
	for _, u := range units {
		if !isAlpha(u) {
			continue
		}
		if _, stop := n.stopwords[u]; stop {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Query normalizes text and collapses it into a query.
func (n *Normalizer) Query(text string) domain.Query {
	return domain.NewQuery(n.Normalize(text))
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
		"what", "which", "who", "whom", "how", "when", "where", "why", "do", "does", "did", "has", "have", "had", "i", "you", "he", "she", "we", "they", "its", "their", "not", "no",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
