package tokenize

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// ProseTokenizer splits text into Penn Treebank style units. Punctuation
// and contraction suffixes ("n't", "'s") come out as separate units.
type ProseTokenizer struct {
	fallback *RegexpTokenizer
}

// NewProseTokenizer creates a word tokenizer backed by prose.
func NewProseTokenizer() *ProseTokenizer {
	return &ProseTokenizer{fallback: NewRegexpTokenizer()}
}

// Tokenize returns the word-level units of text in order.
func (t *ProseTokenizer) Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return t.fallback.Tokenize(text)
	}
	toks := doc.Tokens()
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Text)
	}
	return out
}

// ProseSplitter splits passages into sentences with prose's punkt segmenter.
type ProseSplitter struct {
	fallback *RegexpSplitter
}

// NewProseSplitter creates a sentence splitter backed by prose.
func NewProseSplitter() *ProseSplitter {
	return &ProseSplitter{fallback: NewRegexpSplitter()}
}

// Split returns the non-blank sentences of text, trimmed, in order.
func (s *ProseSplitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return s.fallback.Split(text)
	}
	var out []string
	for _, sent := range doc.Sentences() {
		trimmed := strings.TrimSpace(sent.Text)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
