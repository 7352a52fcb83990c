// Package ranking implements TF-IDF scoring: IDF tables, document ranking by
// summed TF-IDF and sentence ranking by matching-term IDF and query density.
package ranking

import (
	"math"

	"qa/internal/domain"
)

// ComputeIDF returns ln(N/df(t)) for every token t that appears in at least
// one entry of corpus, where df counts entries containing t at least once.
func ComputeIDF(corpus domain.Corpus) (domain.IDFTable, error) {
	if corpus.Len() == 0 {
		return nil, ErrEmptyCorpus
	}
	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{}, len(doc.Tokens))
		for _, tok := range doc.Tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	n := float64(corpus.Len())
	idf := make(domain.IDFTable, len(df))
	for term, count := range df {
		idf[term] = math.Log(n / float64(count))
	}
	return idf, nil
}
