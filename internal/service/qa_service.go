package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"qa/internal/corpus"
	"qa/internal/domain"
	"qa/internal/logger"
	"qa/internal/metrics"
	"qa/internal/normalizer"
	"qa/internal/ranking"
)

// ErrNotIngested is returned by Answer before a corpus has been ingested.
var ErrNotIngested = errors.New("no corpus ingested")

// DefaultExtensions is the corpus file filter used when Options.Extensions is nil.
var DefaultExtensions = []string{".txt"}

// Options configures a QAService.
type Options struct {
	FileMatches     int
	SentenceMatches int
	// Extensions filters corpus files. Nil means DefaultExtensions; an empty
	// non-nil slice loads every file.
	Extensions []string
	Scorer     ranking.Scorer
}

// Stats describes an ingested corpus.
type Stats struct {
	Documents  int
	Vocabulary int
}

// index is the immutable result of one ingest.
type index struct {
	contents  map[string]string
	documents domain.Corpus
	idf       domain.IDFTable
}

// QAService answers queries against an ingested corpus: it narrows the corpus
// to the best files by TF-IDF, then ranks the sentences of those files.
type QAService struct {
	normalizer *normalizer.Normalizer
	splitter   domain.SentenceSplitter
	opts       Options
	metrics    *metrics.Metrics
	log        *logrus.Entry

	mu  sync.RWMutex
	idx *index
}

// NewQAService wires a service. m may be nil.
func NewQAService(norm *normalizer.Normalizer, splitter domain.SentenceSplitter, opts Options, m *metrics.Metrics, log *logrus.Entry) *QAService {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.Extensions == nil {
		opts.Extensions = DefaultExtensions
	}
	return &QAService{normalizer: norm, splitter: splitter, opts: opts, metrics: m, log: log}
}

// Ingest loads every corpus file in dir, normalizes it and computes the
// document IDF table. A successful ingest replaces the previous one.
func (s *QAService) Ingest(dir string) (Stats, error) {
	raw, err := corpus.Load(dir, s.opts.Extensions)
	if err != nil {
		return Stats{}, err
	}
	idx := &index{
		contents:  make(map[string]string, len(raw)),
		documents: make(domain.Corpus, 0, len(raw)),
	}
	for _, d := range raw {
		idx.contents[d.Name] = d.Content
		idx.documents = append(idx.documents, domain.Document{ID: d.Name, Tokens: s.normalizer.Normalize(d.Content)})
	}
	idx.idf, err = ranking.ComputeIDF(idx.documents)
	if err != nil {
		return Stats{}, fmt.Errorf("document idf: %w", err)
	}

	s.mu.Lock()
	s.idx = idx
	s.mu.Unlock()

	stats := Stats{Documents: idx.documents.Len(), Vocabulary: len(idx.idf)}
	if s.metrics != nil {
		s.metrics.DocumentsIndexed.Set(float64(stats.Documents))
	}
	s.log.WithFields(logrus.Fields{"dir": dir, "documents": stats.Documents, "vocabulary": stats.Vocabulary}).Info("corpus ingested")
	return stats, nil
}

// Answer runs one query-answering pass. Errors abort the pass; no partial
// answer is returned with an error.
func (s *QAService) Answer(ctx context.Context, rawQuery string) (domain.Answer, error) {
	start := time.Now()
	log := logger.WithQueryID(s.log, uuid.NewString())

	ans, candidates, err := s.answer(ctx, rawQuery, log)
	s.observe(start, candidates, ans, err)
	if err != nil {
		log.WithError(err).Warn("query failed")
		return domain.Answer{}, err
	}
	log.WithFields(logrus.Fields{
		"terms":     ans.Query.Len(),
		"documents": ans.Documents,
		"sentences": len(ans.Sentences),
		"elapsed":   time.Since(start),
	}).Debug("query answered")
	return ans, nil
}

func (s *QAService) answer(ctx context.Context, rawQuery string, log *logrus.Entry) (domain.Answer, int, error) {
	s.mu.RLock()
	idx := s.idx
	s.mu.RUnlock()
	if idx == nil {
		return domain.Answer{}, 0, ErrNotIngested
	}

	query := s.normalizer.Query(rawQuery)
	files := s.opts.Scorer.TopDocuments(query, idx.documents, idx.idf, s.opts.FileMatches)
	log.WithField("files", files).Debug("top files ranked")
	if err := ctx.Err(); err != nil {
		return domain.Answer{}, 0, err
	}

	sentences := s.sentences(idx, files)
	ans := domain.Answer{Query: query, Documents: files, Sentences: []string{}}
	if sentences.Len() == 0 {
		return ans, 0, nil
	}
	idf, err := ranking.ComputeIDF(sentences)
	if err != nil {
		return domain.Answer{}, sentences.Len(), fmt.Errorf("sentence idf: %w", err)
	}
	top, err := s.opts.Scorer.TopSentences(query, sentences, idf, s.opts.SentenceMatches)
	if err != nil {
		return domain.Answer{}, sentences.Len(), err
	}
	ans.Sentences = top
	return ans, sentences.Len(), nil
}

// sentences splits the given files line by line into sentences, keeping
// those with at least one token. A sentence repeated verbatim is kept once,
// at its first position.
func (s *QAService) sentences(idx *index, files []string) domain.Corpus {
	var out domain.Corpus
	seen := make(map[string]struct{})
	for _, name := range files {
		for _, passage := range strings.Split(idx.contents[name], "\n") {
			for _, sent := range s.splitter.Split(passage) {
				if _, ok := seen[sent]; ok {
					continue
				}
				tokens := s.normalizer.Normalize(sent)
				if len(tokens) == 0 {
					continue
				}
				seen[sent] = struct{}{}
				out = append(out, domain.Document{ID: sent, Tokens: tokens})
			}
		}
	}
	return out
}

func (s *QAService) observe(start time.Time, candidates int, ans domain.Answer, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.QueryDuration.Observe(time.Since(start).Seconds())
	switch {
	case err != nil:
		s.metrics.QueriesTotal.WithLabelValues(metrics.ResultError).Inc()
		return
	case len(ans.Sentences) == 0:
		s.metrics.QueriesTotal.WithLabelValues(metrics.ResultEmpty).Inc()
	default:
		s.metrics.QueriesTotal.WithLabelValues(metrics.ResultAnswered).Inc()
	}
	s.metrics.SentencesScored.Observe(float64(candidates))
}
