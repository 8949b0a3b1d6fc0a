package textutil

import (
	"math"
	"regexp"
	"strings"

	"github.com/hbollon/go-edlib"
)

var tokenSplitPattern = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Fingerprint is a term-frequency vector of a string's tokens.
type Fingerprint struct {
	tokens map[string]float64
	norm   float64
}

// NewFingerprint returns nil when text has no tokens.
func NewFingerprint(text string) *Fingerprint {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{tokens: counts, norm: math.Sqrt(norm)}
}

// Tokenize lowercases text and splits it on anything that is not a letter or
// a number.
func Tokenize(text string) []string {
	raw := tokenSplitPattern.Split(strings.ToLower(text), -1)
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		if token != "" {
			terms = append(terms, token)
		}
	}
	return terms
}

// CosineSimilarity returns 0 if either fingerprint is nil.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	return dot / (a.norm * b.norm)
}

// Similarity returns a score in [0, 1]; the larger of the case-folded
// Jaro-Winkler similarity and the token cosine.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	var best float64
	if sim, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler); err == nil {
		best = float64(sim)
	}
	if cos := CosineSimilarity(NewFingerprint(a), NewFingerprint(b)); cos > best {
		best = cos
	}
	return best
}

// Match is a candidate name and its similarity to the query.
type Match struct {
	Index int
	Name  string
	Score float64
}

// Nearest returns the most similar name scoring at least threshold. Ties keep
// the earliest name.
func Nearest(query string, names []string, threshold float64) (Match, bool) {
	best := Match{Index: -1}
	for i, name := range names {
		score := Similarity(query, name)
		if score < threshold || score <= best.Score {
			continue
		}
		best = Match{Index: i, Name: name, Score: score}
	}
	return best, best.Index >= 0
}
