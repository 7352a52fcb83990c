package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"qa/internal/config"
	"qa/internal/logger"
	"qa/internal/metrics"
	"qa/internal/normalizer"
	"qa/internal/ranking"
	"qa/internal/service"
	"qa/internal/tokenize"
	"qa/internal/tui"
)

var errUsage = errors.New("usage: qa [--config=qa.yaml] [--query=\"question\"] corpus_dir")

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run wires the components and either answers one query or starts the TUI.
// Deferred cleanup (log file, metrics server) always runs before it returns.
func run(args []string, stdout io.Writer) (err error) {
	fs := flag.NewFlagSet("qa", flag.ContinueOnError)
	var cfgPath, query string
	fs.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./qa.yaml or ~/.config/qa/config.yaml if not provided)")
	fs.StringVar(&query, "query", "", "Answer a single query, print the matching sentences and exit")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	dir := fs.Arg(0)

	var cfg *config.AppConfig
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	interactive := query == ""
	out, closeLog, err := logOutput(cfg.Logging.File, interactive)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format, out)
	log := logger.WithComponent("cli")
	defer func() {
		if err != nil {
			log.WithError(err).Error("fatal")
		}
	}()

	// Assemble components
	words, err := tokenize.NewWordTokenizer(cfg.Tokenizer.Words)
	if err != nil {
		return err
	}
	splitter, err := tokenize.NewSentenceSplitter(cfg.Tokenizer.Sentences)
	if err != nil {
		return err
	}
	mode, _ := ranking.ParseMatchMode(cfg.Retrieval.MatchMode)
	norm := normalizer.New(words, normalizer.Options{Stopwords: cfg.Normalizer.Stopwords})

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		srv := serveMetrics(cfg.Metrics.Addr, m, log)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	svc := service.NewQAService(norm, splitter, service.Options{
		FileMatches:     cfg.Retrieval.FileMatches,
		SentenceMatches: cfg.Retrieval.SentenceMatches,
		Extensions:      cfg.Corpus.Extensions,
		Scorer:          ranking.Scorer{Workers: cfg.Retrieval.Workers, Mode: mode},
	}, m, logger.WithComponent("service"))

	stats, err := svc.Ingest(dir)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if !interactive {
		ans, err := svc.Answer(context.Background(), query)
		if err != nil {
			return err
		}
		for _, s := range ans.Sentences {
			fmt.Fprintln(stdout, s)
		}
		return nil
	}

	desc := fmt.Sprintf("%s: %d documents, %d distinct words", dir, stats.Documents, stats.Vocabulary)
	if _, err := tea.NewProgram(tui.New(svc, desc), tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return nil
}

// logOutput picks the log destination. The TUI owns the terminal, so in
// interactive mode logs go to the configured file or nowhere.
func logOutput(path string, interactive bool) (io.Writer, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	}
	if interactive {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

func serveMetrics(addr string, m *metrics.Metrics, log *logrus.Entry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server stopped")
		}
	}()
	log.WithField("addr", addr).Info("serving metrics")
	return srv
}
