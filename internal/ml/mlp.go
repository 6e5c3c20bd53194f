package ml

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// MLP is a one-hidden-layer feed-forward network (ReLU hidden activation,
// softmax output) trained by mini-batch gradient descent. Weight
// initialization and batch order come from a single seeded source, so two
// runs with the same seed produce identical models.
type MLP struct {
	// HiddenSize is the width of the hidden layer.
	HiddenSize int

	// LearningRate is the gradient descent step size.
	LearningRate float64

	// Epochs is the number of full passes over the training set.
	Epochs int

	// BatchSize is the mini-batch size.
	BatchSize int

	// Seed drives weight initialization and batch shuffling.
	Seed int64

	w1 *mat.Dense // numFeatures x hidden
	b1 []float64
	w2 *mat.Dense // hidden x numClasses
	b2 []float64
}

// NewMLP returns an MLP with defaults sized for TF-IDF text features.
func NewMLP(seed int64) *MLP {
	return &MLP{
		HiddenSize:   64,
		LearningRate: 0.5,
		Epochs:       30,
		BatchSize:    32,
		Seed:         seed,
	}
}

func (m *MLP) Name() string { return "mlp" }

// Fit trains the network on x and y.
func (m *MLP) Fit(x *mat.Dense, y []int, numClasses int) error {
	rows, cols := x.Dims()
	if rows != len(y) {
		return fmt.Errorf("mlp fit: %d rows but %d labels", rows, len(y))
	}
	if rows == 0 {
		return fmt.Errorf("mlp fit: empty training set")
	}
	for _, c := range y {
		if c < 0 || c >= numClasses {
			return fmt.Errorf("mlp fit: label %d out of range [0, %d)", c, numClasses)
		}
	}

	rng := rand.New(rand.NewSource(m.Seed))

	// He initialization for the ReLU layer, Xavier for the output.
	m.w1 = mat.NewDense(cols, m.HiddenSize, nil)
	scale1 := math.Sqrt(2.0 / float64(cols))
	for i := 0; i < cols; i++ {
		for j := 0; j < m.HiddenSize; j++ {
			m.w1.Set(i, j, rng.NormFloat64()*scale1)
		}
	}
	m.b1 = make([]float64, m.HiddenSize)

	m.w2 = mat.NewDense(m.HiddenSize, numClasses, nil)
	scale2 := math.Sqrt(1.0 / float64(m.HiddenSize))
	for i := 0; i < m.HiddenSize; i++ {
		for j := 0; j < numClasses; j++ {
			m.w2.Set(i, j, rng.NormFloat64()*scale2)
		}
	}
	m.b2 = make([]float64, numClasses)

	order := make([]int, rows)
	for i := range order {
		order[i] = i
	}

	batchSize := m.BatchSize
	if batchSize <= 0 || batchSize > rows {
		batchSize = rows
	}

	for epoch := 0; epoch < m.Epochs; epoch++ {
		rng.Shuffle(rows, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for start := 0; start < rows; start += batchSize {
			end := start + batchSize
			if end > rows {
				end = rows
			}
			m.step(x, y, order[start:end])
		}
	}

	return nil
}

// step applies one gradient update from the given sample indices.
func (m *MLP) step(x *mat.Dense, y []int, batch []int) {
	n := len(batch)
	_, cols := x.Dims()
	_, numClasses := m.w2.Dims()

	xb := mat.NewDense(n, cols, nil)
	for bi, i := range batch {
		xb.SetRow(bi, x.RawRowView(i))
	}

	// Forward.
	var hidden mat.Dense
	hidden.Mul(xb, m.w1)
	for i := 0; i < n; i++ {
		row := hidden.RawRowView(i)
		for j := range row {
			row[j] += m.b1[j]
			if row[j] < 0 {
				row[j] = 0
			}
		}
	}

	var out mat.Dense
	out.Mul(&hidden, m.w2)
	for i := 0; i < n; i++ {
		row := out.RawRowView(i)
		for c := range row {
			row[c] += m.b2[c]
		}
		softmaxInPlace(row)
	}

	// Backward: out becomes dL/dlogits = (p - onehot(y)) / n.
	invN := 1.0 / float64(n)
	for bi, i := range batch {
		out.Set(bi, y[i], out.At(bi, y[i])-1)
	}
	out.Scale(invN, &out)

	var gradW2 mat.Dense
	gradW2.Mul(hidden.T(), &out)

	gradB2 := make([]float64, numClasses)
	for c := 0; c < numClasses; c++ {
		for i := 0; i < n; i++ {
			gradB2[c] += out.At(i, c)
		}
	}

	// Backprop through ReLU.
	var dHidden mat.Dense
	dHidden.Mul(&out, m.w2.T())
	for i := 0; i < n; i++ {
		row := dHidden.RawRowView(i)
		for j := range row {
			if hidden.At(i, j) <= 0 {
				row[j] = 0
			}
		}
	}

	var gradW1 mat.Dense
	gradW1.Mul(xb.T(), &dHidden)

	gradB1 := make([]float64, m.HiddenSize)
	for j := 0; j < m.HiddenSize; j++ {
		for i := 0; i < n; i++ {
			gradB1[j] += dHidden.At(i, j)
		}
	}

	// Update.
	gradW1.Scale(m.LearningRate, &gradW1)
	m.w1.Sub(m.w1, &gradW1)
	gradW2.Scale(m.LearningRate, &gradW2)
	m.w2.Sub(m.w2, &gradW2)
	for j := range m.b1 {
		m.b1[j] -= m.LearningRate * gradB1[j]
	}
	for c := range m.b2 {
		m.b2[c] -= m.LearningRate * gradB2[c]
	}
}

// Predict returns the most likely class for each row of x.
func (m *MLP) Predict(x *mat.Dense) []int {
	rows, _ := x.Dims()

	var hidden mat.Dense
	hidden.Mul(x, m.w1)
	r, c := hidden.Dims()
	for i := 0; i < r; i++ {
		row := hidden.RawRowView(i)
		for j := 0; j < c; j++ {
			row[j] += m.b1[j]
			if row[j] < 0 {
				row[j] = 0
			}
		}
	}

	var out mat.Dense
	out.Mul(&hidden, m.w2)

	pred := make([]int, rows)
	for i := 0; i < rows; i++ {
		row := out.RawRowView(i)
		for j := range row {
			row[j] += m.b2[j]
		}
		pred[i] = argmax(row)
	}
	return pred
}
