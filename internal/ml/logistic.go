package ml

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LogisticRegression is a multinomial (softmax) logistic regression trained
// by full-batch gradient descent. Weights start at zero and the data order
// never changes, so training is deterministic without any seed.
type LogisticRegression struct {
	// LearningRate is the gradient descent step size.
	LearningRate float64

	// Epochs is the number of full passes over the training set.
	Epochs int

	// L2 is the ridge penalty on the weights (not the biases).
	L2 float64

	weights *mat.Dense // numFeatures x numClasses
	bias    []float64
}

// NewLogisticRegression returns a logistic regression with defaults tuned
// for L2-normalized TF-IDF input.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{
		LearningRate: 1.0,
		Epochs:       200,
		L2:           1e-4,
	}
}

func (l *LogisticRegression) Name() string { return "logistic_regression" }

// Fit trains the model on x and y.
func (l *LogisticRegression) Fit(x *mat.Dense, y []int, numClasses int) error {
	rows, cols := x.Dims()
	if rows != len(y) {
		return fmt.Errorf("logistic regression fit: %d rows but %d labels", rows, len(y))
	}
	if rows == 0 {
		return fmt.Errorf("logistic regression fit: empty training set")
	}
	for _, c := range y {
		if c < 0 || c >= numClasses {
			return fmt.Errorf("logistic regression fit: label %d out of range [0, %d)", c, numClasses)
		}
	}

	l.weights = mat.NewDense(cols, numClasses, nil)
	l.bias = make([]float64, numClasses)

	probs := mat.NewDense(rows, numClasses, nil)
	grad := mat.NewDense(cols, numClasses, nil)
	invN := 1.0 / float64(rows)

	for epoch := 0; epoch < l.Epochs; epoch++ {
		// Forward pass: probs = softmax(xW + b).
		probs.Mul(x, l.weights)
		for i := 0; i < rows; i++ {
			row := probs.RawRowView(i)
			for c := range row {
				row[c] += l.bias[c]
			}
			softmaxInPlace(row)
		}

		// probs becomes the error term (p - onehot(y)).
		for i := 0; i < rows; i++ {
			probs.Set(i, y[i], probs.At(i, y[i])-1)
		}

		grad.Mul(x.T(), probs)
		grad.Scale(invN, grad)
		if l.L2 > 0 {
			var reg mat.Dense
			reg.Scale(l.L2, l.weights)
			grad.Add(grad, &reg)
		}

		var step mat.Dense
		step.Scale(l.LearningRate, grad)
		l.weights.Sub(l.weights, &step)

		for c := 0; c < numClasses; c++ {
			sum := 0.0
			for i := 0; i < rows; i++ {
				sum += probs.At(i, c)
			}
			l.bias[c] -= l.LearningRate * sum * invN
		}
	}

	return nil
}

// Predict returns the most likely class for each row of x.
func (l *LogisticRegression) Predict(x *mat.Dense) []int {
	rows, _ := x.Dims()
	var logits mat.Dense
	logits.Mul(x, l.weights)

	pred := make([]int, rows)
	for i := 0; i < rows; i++ {
		row := logits.RawRowView(i)
		for c := range row {
			row[c] += l.bias[c]
		}
		pred[i] = argmax(row)
	}
	return pred
}
