package ranking

import (
	"fmt"

	"qa/internal/domain"
)

// SentenceScore holds both ranking signals of a sentence.
type SentenceScore struct {
	ID      string
	Match   float64
	Density float64
}

// ScoreSentences returns every sentence's signals, ranked by Match
// descending, then Density descending, then input order. It fails with
// ErrEmptyTokenSequence if any sentence has no tokens.
func (s Scorer) ScoreSentences(query domain.Query, sentences domain.Corpus, idf domain.IDFTable) ([]SentenceScore, error) {
	terms := query.Terms()
	scores := make([]SentenceScore, sentences.Len())
	err := s.scoreAll(sentences.Len(), func(i int) error {
		sent := sentences[i]
		if len(sent.Tokens) == 0 {
			return fmt.Errorf("sentence %q: %w", sent.ID, ErrEmptyTokenSequence)
		}
		length := float64(len(sent.Tokens))
		sc := SentenceScore{ID: sent.ID}
		for _, w := range terms {
			c := countOf(w, sent.Tokens)
			if v, ok := idf.Lookup(w); ok && (c > 0 || s.Mode == MatchAll) {
				sc.Match += v
			}
			sc.Density += float64(c) / length
		}
		scores[i] = sc
		return nil
	})
	if err != nil {
		return nil, err
	}
	order := stableOrder(len(scores), func(a, b int) bool {
		if scores[a].Match != scores[b].Match {
			return scores[a].Match > scores[b].Match
		}
		return scores[a].Density > scores[b].Density
	})
	out := make([]SentenceScore, len(order))
	for rank, i := range order {
		out[rank] = scores[i]
	}
	return out, nil
}

// TopSentences returns the ids of at most n sentences ranked by matching-term
// IDF, with query term density breaking ties.
func (s Scorer) TopSentences(query domain.Query, sentences domain.Corpus, idf domain.IDFTable, n int) ([]string, error) {
	ranked, err := s.ScoreSentences(query, sentences, idf)
	if err != nil {
		return nil, err
	}
	k := limit(n, len(ranked))
	ids := make([]string, k)
	for i := 0; i < k; i++ {
		ids[i] = ranked[i].ID
	}
	return ids, nil
}

// TopSentences ranks sentences sequentially; see Scorer.TopSentences.
func TopSentences(query domain.Query, sentences domain.Corpus, idf domain.IDFTable, n int) ([]string, error) {
	return Scorer{}.TopSentences(query, sentences, idf, n)
}
