package domain

import "sort"

// RawDocument is a single text file loaded from the corpus directory.
type RawDocument struct {
	Name    string
	Content string
}

// Document is an identifier paired with its normalized tokens, in order.
// Repeated tokens are kept; they count towards term frequency.
// Sentences use the same shape with the sentence text as ID.
type Document struct {
	ID     string
	Tokens []string
}

// Corpus is an ordered collection of documents. Order is significant:
// it decides rankings when scores tie.
type Corpus []Document

// Len returns the number of documents in the corpus.
func (c Corpus) Len() int { return len(c) }

// IDs returns the document identifiers in corpus order.
func (c Corpus) IDs() []string {
	ids := make([]string, len(c))
	for i, d := range c {
		ids[i] = d.ID
	}
	return ids
}

// IDFTable maps a token to its inverse document frequency over the corpus it
// was computed from.
type IDFTable map[string]float64

// Lookup returns the IDF of term and whether the term was seen in the corpus.
func (t IDFTable) Lookup(term string) (float64, bool) {
	v, ok := t[term]
	return v, ok
}

// Query is a set of normalized tokens. Terms are kept sorted so that scores
// summed over the query are always accumulated in the same order.
type Query struct {
	terms []string
}

// NewQuery collapses duplicate tokens into a query.
func NewQuery(tokens []string) Query {
	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return Query{terms: terms}
}

// Terms returns the distinct query terms in sorted order.
func (q Query) Terms() []string { return q.terms }

// Len returns the number of distinct terms.
func (q Query) Len() int { return len(q.terms) }

// Contains reports whether term is part of the query.
func (q Query) Contains(term string) bool {
	i := sort.SearchStrings(q.terms, term)
	return i < len(q.terms) && q.terms[i] == term
}

// Answer is the outcome of one query-answering pass.
type Answer struct {
	Query     Query
	Documents []string
	Sentences []string
}

// WordTokenizer splits text into word-level units. Units may include
// punctuation; normalization filters them.
type WordTokenizer interface {
	Tokenize(text string) []string
}

// SentenceSplitter splits a passage into sentences, in order.
type SentenceSplitter interface {
	Split(text string) []string
}
