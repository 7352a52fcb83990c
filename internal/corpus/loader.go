// Package corpus reads the plain-text files a question-answering session is
// run against.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"qa/internal/domain"
)

// ErrNoDocuments is returned when a directory holds no matching files.
var ErrNoDocuments = errors.New("no documents found")

// Load returns one RawDocument per regular file in dir whose extension is in
// exts, ordered by file name. An empty exts accepts every file. Contents are
// returned verbatim.
func Load(dir string, exts []string) ([]domain.RawDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}
	var docs []domain.RawDocument
	for _, e := range entries {
		if !e.Type().IsRegular() || !matchExt(e.Name(), exts) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		docs = append(docs, domain.RawDocument{Name: e.Name(), Content: string(data)})
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoDocuments)
	}
	return docs, nil
}

func matchExt(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range exts {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
