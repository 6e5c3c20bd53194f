package ml

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Classifier is the common interface of the category models. Fit trains on
// a TF-IDF matrix with one row per document and integer class labels;
// Predict returns one class index per row.
type Classifier interface {
	Name() string
	Fit(x *mat.Dense, y []int, numClasses int) error
	Predict(x *mat.Dense) []int
}

// argmax returns the index of the largest element of row.
func argmax(row []float64) int {
	best := 0
	for i, v := range row {
		if v > row[best] {
			best = i
		}
	}
	return best
}

// softmaxInPlace converts logits to probabilities, numerically stable.
func softmaxInPlace(row []float64) {
	maxv := row[argmax(row)]
	sum := 0.0
	for i, v := range row {
		row[i] = math.Exp(v - maxv)
		sum += row[i]
	}
	for i := range row {
		row[i] /= sum
	}
}
