package similarity

import (
	"math"
	"sort"
)

// Vocabulary is the sorted set of distinct terms seen across the documents of one comparison
type Vocabulary []string

// BuildVocabulary merges the terms of every count map into a lexicographically sorted vocabulary
func BuildVocabulary(counts ...map[string]int) Vocabulary {
	seen := make(map[string]struct{})
	for _, c := range counts {
		for term := range c {
			seen[term] = struct{}{}
		}
	}

	vocab := make(Vocabulary, 0, len(seen))
	for term := range seen {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)
	return vocab
}

// Vectorize lays counts out in vocabulary order
func (v Vocabulary) Vectorize(counts map[string]int) []int {
	vec := make([]int, len(v))
	for i, term := range v {
		vec[i] = counts[term]
	}
	return vec
}

// Cosine returns the cosine of the angle between a and b.
// A zero-norm vector on either side gives 0.
func Cosine(a, b []int) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / math.Sqrt(normA*normB)
}
