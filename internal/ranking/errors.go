package ranking

import "errors"

var (
	// ErrEmptyCorpus is returned when IDF values are requested for a corpus
	// with no entries.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrEmptyTokenSequence is returned when a sentence with no tokens is
	// passed for scoring; its query term density would divide by zero.
	ErrEmptyTokenSequence = errors.New("empty token sequence")
)
