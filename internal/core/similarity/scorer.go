package similarity

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

var (
	// ErrInvalidArgument is returned for out-of-range numeric arguments (e.g. max marks <= 0)
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidInput is returned when a document payload is not text
	ErrInvalidInput = errors.New("invalid input")
)

// Document is raw document content as received from an extraction step
type Document []byte

// Comparison is the outcome of scoring two documents
type Comparison struct {
	Similarity     float64  `json:"similarity"`      // Percentage in [0, 100]
	VocabularySize int      `json:"vocabulary_size"` // Distinct terms across both documents
	SharedTerms    []string `json:"shared_terms"`    // Terms present in both, sorted
}

// Scorer computes bag-of-words cosine similarity. It is immutable and safe for concurrent use.
type Scorer struct {
	tokenizer *Tokenizer
}

// NewScorer creates a scorer with the given tokenizer options
func NewScorer(opts TokenizerOptions) *Scorer {
	return &Scorer{tokenizer: NewTokenizer(opts)}
}

var defaultScorer = NewScorer(DefaultOptions())

// Options returns the tokenizer options the scorer was built with
func (s *Scorer) Options() TokenizerOptions {
	return s.tokenizer.opts
}

// Compare scores textA against textB
func (s *Scorer) Compare(textA, textB string) (*Comparison, error) {
	countsA, err := s.tokenizer.Counts(textA)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize first document: %w", err)
	}
	countsB, err := s.tokenizer.Counts(textB)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize second document: %w", err)
	}

	vocab := BuildVocabulary(countsA, countsB)
	vecA := vocab.Vectorize(countsA)
	vecB := vocab.Vectorize(countsB)

	shared := []string{}
	for i, term := range vocab {
		if vecA[i] > 0 && vecB[i] > 0 {
			shared = append(shared, term)
		}
	}

	return &Comparison{
		Similarity:     clampPercent(Cosine(vecA, vecB) * 100),
		VocabularySize: len(vocab),
		SharedTerms:    shared,
	}, nil
}

// Similarity returns only the percentage score of Compare
func (s *Scorer) Similarity(textA, textB string) (float64, error) {
	cmp, err := s.Compare(textA, textB)
	if err != nil {
		return 0, err
	}
	return cmp.Similarity, nil
}

// CompareDocuments validates both payloads as text and compares them
func (s *Scorer) CompareDocuments(a, b Document) (*Comparison, error) {
	if err := validateDocument(a); err != nil {
		return nil, fmt.Errorf("first document: %w", err)
	}
	if err := validateDocument(b); err != nil {
		return nil, fmt.Errorf("second document: %w", err)
	}
	return s.Compare(string(a), string(b))
}

// ComputeSimilarity returns the cosine similarity of two texts as a percentage in [0, 100].
// Texts without any terms score 0.
func ComputeSimilarity(textA, textB string) float64 {
	// the default tokenizer never stems, so Compare cannot fail
	score, _ := defaultScorer.Similarity(textA, textB)
	return score
}

// ComputeSimilarityText is ComputeSimilarity for raw payloads; non-text payloads fail with ErrInvalidInput
func ComputeSimilarityText(a, b Document) (float64, error) {
	cmp, err := defaultScorer.CompareDocuments(a, b)
	if err != nil {
		return 0, err
	}
	return cmp.Similarity, nil
}

// ComputeMarks scales a similarity percentage onto [0, maxMarks]
func ComputeMarks(similarityPercent, maxMarks float64) (float64, error) {
	if err := ValidateMaxMarks(maxMarks); err != nil {
		return 0, err
	}
	if math.IsNaN(similarityPercent) || similarityPercent < 0 || similarityPercent > 100 {
		return 0, fmt.Errorf("%w: similarity must be within [0, 100], got %v", ErrInvalidArgument, similarityPercent)
	}

	return similarityPercent / 100 * maxMarks, nil
}

// ValidateMaxMarks rejects non-positive or non-finite maxima
func ValidateMaxMarks(maxMarks float64) error {
	if math.IsNaN(maxMarks) || math.IsInf(maxMarks, 0) || maxMarks <= 0 {
		return fmt.Errorf("%w: max marks must be positive, got %v", ErrInvalidArgument, maxMarks)
	}
	return nil
}

// FormatPercent renders a similarity score as "87.50%"
func FormatPercent(similarityPercent float64) string {
	return fmt.Sprintf("%.2f%%", similarityPercent)
}

// FormatMarks renders obtained marks as "8.75/10"
func FormatMarks(marks, maxMarks float64) string {
	return fmt.Sprintf("%.2f/%s", marks, strconv.FormatFloat(maxMarks, 'f', -1, 64))
}

func validateDocument(d Document) error {
	if d == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidInput)
	}
	if !utf8.Valid(d) {
		return fmt.Errorf("%w: document is not valid UTF-8 text", ErrInvalidInput)
	}
	if bytes.IndexByte(d, 0) >= 0 {
		return fmt.Errorf("%w: document contains binary data", ErrInvalidInput)
	}
	return nil
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
