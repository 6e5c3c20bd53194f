package ml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MultinomialNB is a multinomial naive Bayes classifier with Lidstone
// smoothing. It works on the non-negative TF-IDF weights produced by the
// Vectorizer. Training is a closed-form count pass, so it is trivially
// deterministic.
type MultinomialNB struct {
	// Alpha is the additive smoothing parameter.
	Alpha float64

	classLogPrior  []float64
	featureLogProb *mat.Dense // numClasses x numFeatures
}

// NewMultinomialNB returns a naive Bayes classifier with alpha=1.0.
func NewMultinomialNB() *MultinomialNB {
	return &MultinomialNB{Alpha: 1.0}
}

func (m *MultinomialNB) Name() string { return "naive_bayes" }

// Fit estimates class priors and per-class feature likelihoods.
func (m *MultinomialNB) Fit(x *mat.Dense, y []int, numClasses int) error {
	rows, cols := x.Dims()
	if rows != len(y) {
		return fmt.Errorf("naive bayes fit: %d rows but %d labels", rows, len(y))
	}
	if rows == 0 {
		return fmt.Errorf("naive bayes fit: empty training set")
	}

	classCount := make([]float64, numClasses)
	featureSum := mat.NewDense(numClasses, cols, nil)

	for i := 0; i < rows; i++ {
		c := y[i]
		if c < 0 || c >= numClasses {
			return fmt.Errorf("naive bayes fit: label %d out of range [0, %d)", c, numClasses)
		}
		classCount[c]++
		for j := 0; j < cols; j++ {
			featureSum.Set(c, j, featureSum.At(c, j)+x.At(i, j))
		}
	}

	m.classLogPrior = make([]float64, numClasses)
	m.featureLogProb = mat.NewDense(numClasses, cols, nil)
	for c := 0; c < numClasses; c++ {
		// Unseen classes get the smoothed floor rather than -Inf.
		m.classLogPrior[c] = math.Log((classCount[c] + m.Alpha) / (float64(rows) + m.Alpha*float64(numClasses)))

		total := 0.0
		for j := 0; j < cols; j++ {
			total += featureSum.At(c, j)
		}
		denom := math.Log(total + m.Alpha*float64(cols))
		for j := 0; j < cols; j++ {
			m.featureLogProb.Set(c, j, math.Log(featureSum.At(c, j)+m.Alpha)-denom)
		}
	}

	return nil
}

// Predict returns the most likely class for each row of x.
func (m *MultinomialNB) Predict(x *mat.Dense) []int {
	rows, _ := x.Dims()
	numClasses, _ := m.featureLogProb.Dims()

	pred := make([]int, rows)
	scores := make([]float64, numClasses)
	for i := 0; i < rows; i++ {
		row := x.RawRowView(i)
		for c := 0; c < numClasses; c++ {
			s := m.classLogPrior[c]
			logProb := m.featureLogProb.RawRowView(c)
			for j, v := range row {
				if v != 0 {
					s += v * logProb[j]
				}
			}
			scores[c] = s
		}
		pred[i] = argmax(scores)
	}
	return pred
}
