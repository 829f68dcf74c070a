package similarity

import (
	"strings"
	"unicode"

	"github.com/tebeka/snowball"
)

// TokenizerOptions controls how a document is split into terms
type TokenizerOptions struct {
	Lowercase      bool     `json:"lowercase"`            // Fold case before counting
	MinTokenLength int      `json:"min_token_length"`     // Tokens shorter than this are dropped (in runes)
	Stem           bool     `json:"stem"`                 // Apply English Snowball stemming
	StopWords      []string `json:"stop_words,omitempty"` // Terms ignored after normalisation
}

// DefaultOptions returns the plain rule: alphanumeric runs, case-sensitive, every length kept
func DefaultOptions() TokenizerOptions {
	return TokenizerOptions{
		MinTokenLength: 1,
	}
}

// CompatOptions mirrors a classic bag-of-words count vectorizer:
// lowercase and tokens of at least two characters
func CompatOptions() TokenizerOptions {
	return TokenizerOptions{
		Lowercase:      true,
		MinTokenLength: 2,
	}
}

// Tokenizer splits text into terms
type Tokenizer struct {
	opts      TokenizerOptions
	stopWords map[string]struct{}
}

// NewTokenizer creates a tokenizer with the given options
func NewTokenizer(opts TokenizerOptions) *Tokenizer {
	if opts.MinTokenLength < 1 {
		opts.MinTokenLength = 1
	}

	stop := make(map[string]struct{}, len(opts.StopWords))
	for _, w := range opts.StopWords {
		if opts.Lowercase {
			w = strings.ToLower(w)
		}
		stop[w] = struct{}{}
	}

	return &Tokenizer{opts: opts, stopWords: stop}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Tokens returns the terms of text in order of appearance
func (t *Tokenizer) Tokens(text string) ([]string, error) {
	var stemmer *snowball.Stemmer
	if t.opts.Stem {
		s, err := snowball.New("english")
		if err != nil {
			return nil, err
		}
		defer s.Close()
		stemmer = s
	}

	fields := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
		return !isWordRune(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if t.opts.Lowercase {
			f = strings.ToLower(f)
		}
		if len([]rune(f)) < t.opts.MinTokenLength {
			continue
		}
		if _, skip := t.stopWords[f]; skip {
			continue
		}
		if stemmer != nil {
			f = stemmer.Stem(f)
		}
		tokens = append(tokens, f)
	}

	return tokens, nil
}

// Counts returns term frequencies for text
func (t *Tokenizer) Counts(text string) (map[string]int, error) {
	tokens, err := t.Tokens(text)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts, nil
}
