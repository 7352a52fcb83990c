// Package tokenize provides the word tokenizers and sentence splitters the
// normalizer and the question-answering service are built on.
package tokenize

import (
	"fmt"

	"qa/internal/domain"
)

// Kinds accepted by NewWordTokenizer and NewSentenceSplitter.
const (
	KindProse  = "prose"
	KindRegexp = "regexp"
)

// NewWordTokenizer returns the word tokenizer registered under kind.
func NewWordTokenizer(kind string) (domain.WordTokenizer, error) {
	switch kind {
	case KindProse, "":
		return NewProseTokenizer(), nil
	case KindRegexp:
		return NewRegexpTokenizer(), nil
	default:
		return nil, fmt.Errorf("unknown word tokenizer: %s", kind)
	}
}

// NewSentenceSplitter returns the sentence splitter registered under kind.
func NewSentenceSplitter(kind string) (domain.SentenceSplitter, error) {
	switch kind {
	case KindProse, "":
		return NewProseSplitter(), nil
	case KindRegexp:
		return NewRegexpSplitter(), nil
	default:
		return nil, fmt.Errorf("unknown sentence splitter: %s", kind)
	}
}
