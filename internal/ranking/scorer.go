package ranking

import (
	"sort"

	"golang.org/x/sync/errgroup"
)

// MatchMode selects how a sentence's matching-term score is accumulated.
type MatchMode int

const (
	// MatchPresent adds idf[w] only for query words present in the sentence.
	MatchPresent MatchMode = iota
	// MatchAll adds idf[w] for every query word with an IDF entry, whether
	// or not the sentence contains it.
	MatchAll
)

// String returns the config name of the mode.
func (m MatchMode) String() string {
	if m == MatchAll {
		return "all"
	}
	return "presence"
}

// ParseMatchMode maps a config name to a MatchMode.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch s {
	case "presence", "":
		return MatchPresent, true
	case "all":
		return MatchAll, true
	default:
		return MatchPresent, false
	}
}

// Scorer ranks documents and sentences. The zero value scores sequentially
// with MatchPresent.
type Scorer struct {
	// Workers is the number of goroutines used to score entries. Values
	// below 2 score on the calling goroutine.
	Workers int
	Mode    MatchMode
}

// scoreAll runs fn for every index in [0, n). With more than one worker the
// range is cut into contiguous chunks; fn must only write to slot i.
func (s Scorer) scoreAll(n int, fn func(i int) error) error {
	if s.Workers < 2 || n < 2 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	workers := s.Workers
	if workers > n {
		workers = n
	}
	size := (n + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += size {
		lo, hi := lo, min(lo+size, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// scoreEach is scoreAll for fn that cannot fail.
func (s Scorer) scoreEach(n int, fn func(i int)) {
	_ = s.scoreAll(n, func(i int) error {
		fn(i)
		return nil
	})
}

// limit clamps a requested result count to [0, total].
func limit(n, total int) int {
	if n <= 0 {
		return 0
	}
	if n > total {
		return total
	}
	return n
}

// stableOrder returns indexes [0, n) sorted by less, ties in index order.
func stableOrder(n int, less func(a, b int) bool) []int {
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(i, j int) bool { return less(idxs[i], idxs[j]) })
	return idxs
}

func countOf(term string, tokens []string) int {
	c := 0
	for _, t := range tokens {
		if t == term {
			c++
		}
	}
	return c
}
