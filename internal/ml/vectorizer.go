package ml

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Vectorizer converts documents into L2-normalized TF-IDF feature vectors.
// The vocabulary is built by Fit and frozen afterwards; unseen terms are
// ignored at transform time.
//
// Vocabulary order is fully deterministic: terms are ranked by document
// frequency, ties broken alphabetically, then truncated to MaxFeatures.
type Vectorizer struct {
	// MaxFeatures caps the vocabulary size. Zero means unlimited.
	MaxFeatures int

	// MinDF drops terms appearing in fewer than MinDF documents.
	MinDF int

	vocab map[string]int
	idf   []float64
}

// NewVectorizer returns a Vectorizer with the default limits.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{
		MaxFeatures: 20000,
		MinDF:       2,
	}
}

// NumFeatures returns the vocabulary size after Fit.
func (v *Vectorizer) NumFeatures() int {
	return len(v.vocab)
}

// Fit builds the vocabulary and IDF weights from the given documents.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("vectorizer fit: no documents")
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	minDF := v.MinDF
	if minDF < 1 {
		minDF = 1
	}

	terms := make([]string, 0, len(df))
	for term, count := range df {
		if count >= minDF {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return fmt.Errorf("vectorizer fit: vocabulary empty after min_df=%d filter", minDF)
	}

	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}

	// Feature indices are alphabetical over the kept terms so the mapping
	// does not depend on frequency ties.
	sort.Strings(terms)

	n := float64(len(docs))
	v.vocab = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, term := range terms {
		v.vocab[term] = i
		// Smoothed IDF, never zero.
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return nil
}

// Transform converts documents into a dense TF-IDF matrix with one row per
// document. Fit must have been called first.
func (v *Vectorizer) Transform(docs []string) (*mat.Dense, error) {
	if len(v.vocab) == 0 {
		return nil, fmt.Errorf("vectorizer transform: not fitted")
	}

	x := mat.NewDense(len(docs), len(v.vocab), nil)
	for i, doc := range docs {
		counts := make(map[int]float64)
		total := 0.0
		for _, tok := range Tokenize(doc) {
			if j, ok := v.vocab[tok]; ok {
				counts[j]++
				total++
			}
		}
		if total == 0 {
			continue
		}

		norm := 0.0
		for j, c := range counts {
			w := (c / total) * v.idf[j]
			x.Set(i, j, w)
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range counts {
				x.Set(i, j, x.At(i, j)/norm)
			}
		}
	}

	return x, nil
}

// FitTransform fits the vocabulary on docs and returns their TF-IDF matrix.
func (v *Vectorizer) FitTransform(docs []string) (*mat.Dense, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs)
}
