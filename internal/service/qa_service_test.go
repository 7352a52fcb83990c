package service_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qa/internal/corpus"
	"qa/internal/metrics"
	"qa/internal/normalizer"
	"qa/internal/ranking"
	"qa/internal/service"
	"qa/internal/tokenize"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func newService(opts service.Options, m *metrics.Metrics) *service.QAService {
	norm := normalizer.New(tokenize.NewRegexpTokenizer(), normalizer.Options{})
	if opts.FileMatches == 0 {
		opts.FileMatches = 1
	}
	if opts.SentenceMatches == 0 {
		opts.SentenceMatches = 1
	}
	return service.NewQAService(norm, tokenize.NewRegexpSplitter(), opts, m, quietLogger())
}

var sampleCorpus = map[string]string{
	"animals.txt": "Cats purr when happy.\nDogs bark at strangers. Dogs also fetch sticks.",
	"python.txt":  "Python is a programming language. Python was created by Guido.",
}

func TestAnswer_CatScenario(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"a.txt": "the cat sat",
		"b.txt": "the cat sat on the mat",
	})
	svc := newService(service.Options{}, nil)

	stats, err := svc.Ingest(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 5, stats.Vocabulary)

	ans, err := svc.Answer(context.Background(), "mat")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt"}, ans.Documents)
	assert.Equal(t, []string{"the cat sat on the mat"}, ans.Sentences)
}

func TestAnswer_NarrowsThenRanksSentences(t *testing.T) {
	svc := newService(service.Options{SentenceMatches: 2}, nil)
	_, err := svc.Ingest(writeCorpus(t, sampleCorpus))
	require.NoError(t, err)

	ans, err := svc.Answer(context.Background(), "Who created Python?")
	require.NoError(t, err)
	assert.Equal(t, []string{"created", "python", "who"}, ans.Query.Terms())
	assert.Equal(t, []string{"python.txt"}, ans.Documents)
	assert.Equal(t, []string{"Python was created by Guido.", "Python is a programming language."}, ans.Sentences)
}

func TestAnswer_TiesKeepTextOrder(t *testing.T) {
	svc := newService(service.Options{}, nil)
	_, err := svc.Ingest(writeCorpus(t, sampleCorpus))
	require.NoError(t, err)

	ans, err := svc.Answer(context.Background(), "dogs")
	require.NoError(t, err)
	assert.Equal(t, []string{"animals.txt"}, ans.Documents)
	assert.Equal(t, []string{"Dogs bark at strangers."}, ans.Sentences)
}

func TestAnswer_MultipleFiles(t *testing.T) {
	svc := newService(service.Options{FileMatches: 5, SentenceMatches: 10}, nil)
	_, err := svc.Ingest(writeCorpus(t, sampleCorpus))
	require.NoError(t, err)

	ans, err := svc.Answer(context.Background(), "python")
	require.NoError(t, err)
	assert.Equal(t, []string{"python.txt", "animals.txt"}, ans.Documents)
	assert.Len(t, ans.Sentences, 5)
}

func TestAnswer_SkipsEmptyAndDuplicateSentences(t *testing.T) {
	svc := newService(service.Options{SentenceMatches: 10}, nil)
	_, err := svc.Ingest(writeCorpus(t, map[string]string{
		"echo.txt": "Hello there. Hello there. 1234.\n...\nBye now.",
	}))
	require.NoError(t, err)

	ans, err := svc.Answer(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello there.", "Bye now."}, ans.Sentences)
}

func TestAnswer_NoSentenceCandidates(t *testing.T) {
	m := metrics.New()
	svc := newService(service.Options{}, m)
	_, err := svc.Ingest(writeCorpus(t, map[string]string{
		"numbers.txt": "1234. 5678.",
		"words.txt":   "alpha beta",
	}))
	require.NoError(t, err)

	ans, err := svc.Answer(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Equal(t, []string{"numbers.txt"}, ans.Documents)
	assert.Empty(t, ans.Sentences)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues(metrics.ResultEmpty)))
}

func TestAnswer_MatchModes(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"birds.txt": "An owl sat in a very old tree. Hens hens everywhere. Hens sleep.",
	})

	t.Run("presence", func(t *testing.T) {
		svc := newService(service.Options{}, nil)
		_, err := svc.Ingest(dir)
		require.NoError(t, err)

		ans, err := svc.Answer(context.Background(), "owl hens")
		require.NoError(t, err)
		assert.Equal(t, []string{"An owl sat in a very old tree."}, ans.Sentences)
	})
	t.Run("all", func(t *testing.T) {
		svc := newService(service.Options{Scorer: ranking.Scorer{Mode: ranking.MatchAll}}, nil)
		_, err := svc.Ingest(dir)
		require.NoError(t, err)

		// Every sentence gets the same match score, so density decides.
		ans, err := svc.Answer(context.Background(), "owl hens")
		require.NoError(t, err)
		assert.Equal(t, []string{"Hens hens everywhere."}, ans.Sentences)
	})
}

func TestAnswer_Errors(t *testing.T) {
	svc := newService(service.Options{}, nil)

	_, err := svc.Answer(context.Background(), "anything")
	assert.ErrorIs(t, err, service.ErrNotIngested)

	_, err = svc.Ingest(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = svc.Ingest(writeCorpus(t, map[string]string{"notes.md": "x"}))
	assert.ErrorIs(t, err, corpus.ErrNoDocuments)
}

func TestIngest_ExtensionFilter(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"a.txt": "the cat sat",
		"b.txt": "the cat sat on the mat",
		"c.md":  "mat mat mat",
	})

	t.Run("nil defaults to txt", func(t *testing.T) {
		svc := newService(service.Options{}, nil)
		stats, err := svc.Ingest(dir)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Documents)

		ans, err := svc.Answer(context.Background(), "mat")
		require.NoError(t, err)
		assert.Equal(t, []string{"b.txt"}, ans.Documents)
	})

	t.Run("empty loads every file", func(t *testing.T) {
		svc := newService(service.Options{Extensions: []string{}}, nil)
		stats, err := svc.Ingest(dir)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.Documents)

		ans, err := svc.Answer(context.Background(), "mat")
		require.NoError(t, err)
		assert.Equal(t, []string{"c.md"}, ans.Documents)
		assert.Equal(t, []string{"mat mat mat"}, ans.Sentences)
	})
}

func TestAnswer_CanceledContext(t *testing.T) {
	m := metrics.New()
	svc := newService(service.Options{}, m)
	_, err := svc.Ingest(writeCorpus(t, sampleCorpus))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ans, err := svc.Answer(ctx, "dogs")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ans.Sentences)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues(metrics.ResultError)))
}

func TestAnswer_Metrics(t *testing.T) {
	m := metrics.New()
	svc := newService(service.Options{}, m)
	_, err := svc.Ingest(writeCorpus(t, sampleCorpus))
	require.NoError(t, err)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DocumentsIndexed))

	for i := 0; i < 3; i++ {
		_, err := svc.Answer(context.Background(), "python")
		require.NoError(t, err)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues(metrics.ResultAnswered)))
}

func TestAnswer_Deterministic(t *testing.T) {
	svc := newService(service.Options{FileMatches: 2, SentenceMatches: 5, Scorer: ranking.Scorer{Workers: 4}}, nil)
	_, err := svc.Ingest(writeCorpus(t, sampleCorpus))
	require.NoError(t, err)

	first, err := svc.Answer(context.Background(), "dogs fetch python")
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := svc.Answer(context.Background(), "dogs fetch python")
		require.NoError(t, err)
		assert.Equal(t, first.Sentences, again.Sentences)
		assert.Equal(t, first.Documents, again.Documents)
	}
}

func TestAnswer_WithProse(t *testing.T) {
	norm := normalizer.New(tokenize.NewProseTokenizer(), normalizer.Options{})
	svc := service.NewQAService(norm, tokenize.NewProseSplitter(), service.Options{FileMatches: 1, SentenceMatches: 1}, nil, quietLogger())
	_, err := svc.Ingest(writeCorpus(t, sampleCorpus))
	require.NoError(t, err)

	ans, err := svc.Answer(context.Background(), "Who created Python?")
	require.NoError(t, err)
	assert.Equal(t, []string{"python.txt"}, ans.Documents)
	assert.Equal(t, []string{"Python was created by Guido."}, ans.Sentences)
}
