package tokenize_test

import (
	"strings"
	"testing"

	"qa/internal/tokenize"
)

var sampleTexts = map[string]string{
	"short": "The quick brown fox jumps over the lazy dog.",
	"medium": `Python is an interpreted, high-level programming language. Its design
        philosophy emphasizes code readability. It supports multiple programming
        paradigms, including structured, object-oriented and functional programming.`,
	"long": strings.Repeat(`Information retrieval systems rank documents by relevance.
        Term frequency rewards words that repeat within a document, while inverse
        document frequency rewards words that are rare across the corpus. `, 20),
}

func BenchmarkRegexpTokenizer(b *testing.B) {
	tok := tokenize.NewRegexpTokenizer()
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				_ = tok.Tokenize(text)
			}
		})
	}
}

func BenchmarkProseTokenizer(b *testing.B) {
	tok := tokenize.NewProseTokenizer()
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				_ = tok.Tokenize(text)
			}
		})
	}
}

func BenchmarkSplitters(b *testing.B) {
	text := sampleTexts["long"]
	splitters := map[string]interface{ Split(string) []string }{
		"regexp": tokenize.NewRegexpSplitter(),
		"prose":  tokenize.NewProseSplitter(),
	}
	for name, s := range splitters {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = s.Split(text)
			}
		})
	}
}
