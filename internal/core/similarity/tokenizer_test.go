package similarity

import (
	"reflect"
	"testing"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		opts TokenizerOptions
		in   string
		want []string
	}{
		{
			name: "default splits on punctuation",
			opts: DefaultOptions(),
			in:   "  Hello, world! It's 2024.",
			want: []string{"Hello", "world", "It", "s", "2024"},
		},
		{
			name: "compat lowercases and drops short tokens",
			opts: CompatOptions(),
			in:   "A Cat, a HAT",
			want: []string{"cat", "hat"},
		},
		{
			name: "stop words",
			opts: TokenizerOptions{Lowercase: true, StopWords: []string{"The", "on"}},
			in:   "The cat sat on the mat",
			want: []string{"cat", "sat", "mat"},
		},
		{
			name: "stemming",
			opts: TokenizerOptions{Lowercase: true, Stem: true},
			in:   "running runs",
			want: []string{"run", "run"},
		},
		{
			name: "empty",
			opts: DefaultOptions(),
			in:   "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTokenizer(tt.opts).Tokens(tt.in)
			if err != nil {
				t.Fatalf("Tokens failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildVocabularyAndVectorize(t *testing.T) {
	a := map[string]int{"the": 2, "cat": 1}
	b := map[string]int{"the": 1, "dog": 3}

	vocab := BuildVocabulary(a, b)
	want := Vocabulary{"cat", "dog", "the"}
	if !reflect.DeepEqual(vocab, want) {
		t.Fatalf("BuildVocabulary = %v, want %v", vocab, want)
	}

	if got := vocab.Vectorize(a); !reflect.DeepEqual(got, []int{1, 0, 2}) {
		t.Errorf("Vectorize(a) = %v", got)
	}
	if got := vocab.Vectorize(b); !reflect.DeepEqual(got, []int{0, 3, 1}) {
		t.Errorf("Vectorize(b) = %v", got)
	}
}

func TestCosine(t *testing.T) {
	if got := Cosine([]int{1, 0}, []int{0, 1}); got != 0 {
		t.Errorf("orthogonal vectors: %v", got)
	}
	if got := Cosine([]int{2, 2}, []int{1, 1}); got != 1 {
		t.Errorf("parallel vectors: %v", got)
	}
	if got := Cosine([]int{0, 0}, []int{1, 1}); got != 0 {
		t.Errorf("zero vector: %v", got)
	}
	if got := Cosine([]int{1}, []int{1, 1}); got != 0 {
		t.Errorf("mismatched lengths: %v", got)
	}
}
