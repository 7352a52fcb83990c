package ranking

import "qa/internal/domain"

// DocumentScore is a document's summed TF-IDF for a query.
type DocumentScore struct {
	ID    string
	Score float64
}

// ScoreDocuments returns every document's score, ranked by score descending
// with ties kept in corpus order.
func (s Scorer) ScoreDocuments(query domain.Query, corpus domain.Corpus, idf domain.IDFTable) []DocumentScore {
	terms := query.Terms()
	scores := make([]float64, corpus.Len())
	s.scoreEach(corpus.Len(), func(i int) {
		total := 0.0
		for _, w := range terms {
			v, ok := idf.Lookup(w)
			if !ok {
				continue
			}
			total += v * float64(countOf(w, corpus[i].Tokens))
		}
		scores[i] = total
	})
	order := stableOrder(len(scores), func(a, b int) bool { return scores[a] > scores[b] })
	out := make([]DocumentScore, len(order))
	for rank, i := range order {
		out[rank] = DocumentScore{ID: corpus[i].ID, Score: scores[i]}
	}
	return out
}

// TopDocuments returns the ids of at most n documents ranked by summed TF-IDF.
func (s Scorer) TopDocuments(query domain.Query, corpus domain.Corpus, idf domain.IDFTable, n int) []string {
	k := limit(n, corpus.Len())
	if k == 0 {
		return []string{}
	}
	ranked := s.ScoreDocuments(query, corpus, idf)
	ids := make([]string, k)
	for i := 0; i < k; i++ {
		ids[i] = ranked[i].ID
	}
	return ids
}

// TopDocuments ranks documents sequentially; see Scorer.TopDocuments.
func TopDocuments(query domain.Query, corpus domain.Corpus, idf domain.IDFTable, n int) []string {
	return Scorer{}.TopDocuments(query, corpus, idf, n)
}
