package tokenize

import (
	"regexp"
	"strings"
)

// RegexpTokenizer extracts letter/digit runs, keeping apostrophe-joined
// words together. It needs no model and is used when prose is disabled.
//
// Contractions stay whole ("don't"), so the alphabetic filter in the
// normalizer drops them entirely. ProseTokenizer splits them ("do", "n't")
// and the normalizer keeps "do"; the two tokenizers therefore index
// contractions differently.
type RegexpTokenizer struct {
	pattern *regexp.Regexp
}

// NewRegexpTokenizer creates a regexp word tokenizer.
func NewRegexpTokenizer() *RegexpTokenizer {
	return &RegexpTokenizer{
		pattern: regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`),
	}
}

// Tokenize returns the word units of text in order.
func (t *RegexpTokenizer) Tokenize(text string) []string {
	return t.pattern.FindAllString(text, -1)
}

// RegexpSplitter splits text on terminal punctuation. A trailing fragment
// without terminal punctuation is kept as its own sentence.
type RegexpSplitter struct {
	splitter *regexp.Regexp
}

// NewRegexpSplitter creates a regexp sentence splitter.
func NewRegexpSplitter() *RegexpSplitter {
	return &RegexpSplitter{
		splitter: regexp.MustCompile(`[^.!?]+[.!?]+`),
	}
}

// Split returns the non-blank sentences of text, trimmed, in order.
func (s *RegexpSplitter) Split(text string) []string {
	var out []string
	last := 0
	for _, loc := range s.splitter.FindAllStringIndex(text, -1) {
		if sent := strings.TrimSpace(text[loc[0]:loc[1]]); sent != "" {
			out = append(out, sent)
		}
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		out = append(out, rest)
	}
	return out
}
