package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// RetrievalConfig controls how many documents and sentences are returned.
type RetrievalConfig struct {
	FileMatches     int    `yaml:"file_matches"`
	SentenceMatches int    `yaml:"sentence_matches"`
	MatchMode       string `yaml:"match_mode"`
	Workers         int    `yaml:"workers"`
}

// NormalizerConfig configures token filtering.
type NormalizerConfig struct {
	Stopwords bool `yaml:"stopwords"`
}

// TokenizerConfig selects the word tokenizer and sentence splitter.
type TokenizerConfig struct {
	Words     string `yaml:"words"`
	Sentences string `yaml:"sentences"`
}

// CorpusConfig controls which files of the corpus directory are loaded.
type CorpusConfig struct {
	Extensions []string `yaml:"extensions"`
}

// LoggingConfig controls log level, format and destination. An empty File
// discards logs while the interactive UI owns the terminal.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// MetricsConfig controls the Prometheus scrape endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Tokenizer  TokenizerConfig  `yaml:"tokenizer"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment overrides are applied on top of the file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			if err := cfg.ApplyEnv(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(cfg)
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault tries ./qa.yaml first, then ~/.config/qa/config.yaml.
// If neither exists, it writes defaults to ~/.config/qa/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "qa.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	if err := Save(userPath, defaultConfig()); err != nil {
		return nil, "", err
	}
	cfg, err := Load(userPath)
	return cfg, userPath, err
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv overrides fields from QA_* environment variables. Unset or empty
// variables leave the field untouched; malformed values are an error.
func (c *AppConfig) ApplyEnv() error {
	var err error
	intEnv := func(key string, dst *int) {
		v := os.Getenv(key)
		if v == "" || err != nil {
			return
		}
		n, perr := strconv.Atoi(v)
		if perr != nil {
			err = fmt.Errorf("%s=%q: %w", key, v, perr)
			return
		}
		*dst = n
	}
	boolEnv := func(key string, dst *bool) {
		v := os.Getenv(key)
		if v == "" || err != nil {
			return
		}
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			err = fmt.Errorf("%s=%q: %w", key, v, perr)
			return
		}
		*dst = b
	}
	stringEnv := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	intEnv("QA_FILE_MATCHES", &c.Retrieval.FileMatches)
	intEnv("QA_SENTENCE_MATCHES", &c.Retrieval.SentenceMatches)
	intEnv("QA_WORKERS", &c.Retrieval.Workers)
	stringEnv("QA_MATCH_MODE", &c.Retrieval.MatchMode)
	boolEnv("QA_STOPWORDS", &c.Normalizer.Stopwords)
	stringEnv("QA_LOG_LEVEL", &c.Logging.Level)
	stringEnv("QA_LOG_FORMAT", &c.Logging.Format)
	stringEnv("QA_LOG_FILE", &c.Logging.File)
	if addr := os.Getenv("QA_METRICS_ADDR"); addr != "" {
		c.Metrics.Enabled = true
		c.Metrics.Addr = addr
	}
	return err
}

// Validate reports the first setting that cannot be used.
func (c *AppConfig) Validate() error {
	switch {
	case c.Retrieval.FileMatches < 1:
		return fmt.Errorf("%w: retrieval.file_matches must be >= 1, got %d", ErrInvalid, c.Retrieval.FileMatches)
	case c.Retrieval.SentenceMatches < 1:
		return fmt.Errorf("%w: retrieval.sentence_matches must be >= 1, got %d", ErrInvalid, c.Retrieval.SentenceMatches)
	case c.Retrieval.Workers < 0:
		return fmt.Errorf("%w: retrieval.workers must be >= 0, got %d", ErrInvalid, c.Retrieval.Workers)
	}
	switch c.Retrieval.MatchMode {
	case "presence", "all":
	default:
		return fmt.Errorf("%w: retrieval.match_mode %q", ErrInvalid, c.Retrieval.MatchMode)
	}
	if !knownTokenizer(c.Tokenizer.Words) {
		return fmt.Errorf("%w: tokenizer.words %q", ErrInvalid, c.Tokenizer.Words)
	}
	if !knownTokenizer(c.Tokenizer.Sentences) {
		return fmt.Errorf("%w: tokenizer.sentences %q", ErrInvalid, c.Tokenizer.Sentences)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalid, c.Logging.Format)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("%w: metrics.addr is required when metrics are enabled", ErrInvalid)
	}
	return nil
}

func knownTokenizer(kind string) bool {
	return kind == "prose" || kind == "regexp"
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qa", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig { return defaultConfig() }

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Retrieval:  RetrievalConfig{FileMatches: 1, SentenceMatches: 1, MatchMode: "presence"},
		Normalizer: NormalizerConfig{Stopwords: false},
		Tokenizer:  TokenizerConfig{Words: "prose", Sentences: "prose"},
		Corpus:     CorpusConfig{Extensions: []string{".txt"}},
		Logging:    LoggingConfig{Level: "info", Format: "text"},
		Metrics:    MetricsConfig{Enabled: false, Addr: ":9090"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Retrieval.FileMatches == 0 {
		cfg.Retrieval.FileMatches = 1
	}
	if cfg.Retrieval.SentenceMatches == 0 {
		cfg.Retrieval.SentenceMatches = 1
	}
	if cfg.Retrieval.MatchMode == "" {
		cfg.Retrieval.MatchMode = "presence"
	}
	if cfg.Tokenizer.Words == "" {
		cfg.Tokenizer.Words = "prose"
	}
	if cfg.Tokenizer.Sentences == "" {
		cfg.Tokenizer.Sentences = "prose"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}
}
