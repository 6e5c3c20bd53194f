// Package train implements the model training and evaluation flow: encode
// the labeled dataset, split it, fit the candidate classifiers, and score
// them on the held-out set.
package train

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newslab/internal/domain/entity"
	"newslab/internal/infra/dataset"
	"newslab/internal/ml"
	"newslab/internal/observability/logging"
)

// Config holds the tunables of a training run.
type Config struct {
	// Seed drives the train/test split and neural network initialization.
	// The same seed over the same dataset reproduces every metric exactly.
	Seed int64

	// TestFraction is the held-out share of each class.
	TestFraction float64

	// MaxFeatures caps the TF-IDF vocabulary.
	MaxFeatures int

	// MinDF drops terms seen in fewer training documents than this.
	MinDF int
}

// DefaultConfig returns the training defaults.
func DefaultConfig() Config {
	return Config{
		Seed:         42,
		TestFraction: 0.2,
		MaxFeatures:  20000,
		MinDF:        2,
	}
}

// ModelResult is one classifier's held-out evaluation.
type ModelResult struct {
	Model      string
	Evaluation *ml.Evaluation
	TrainTime  time.Duration
}

// Result summarizes a full training run.
type Result struct {
	NumDocs     int
	NumTrain    int
	NumTest     int
	NumFeatures int
	Labels      []entity.Label
	Models      []ModelResult
}

// Service runs training and evaluation over a loaded dataset.
type Service struct {
	cfg Config
}

// NewService creates a training Service.
func NewService(cfg Config) *Service {
	if cfg.TestFraction <= 0 || cfg.TestFraction >= 1 {
		cfg.TestFraction = DefaultConfig().TestFraction
	}
	return &Service{cfg: cfg}
}

// minTrainDocs is the smallest dataset worth splitting and fitting.
const minTrainDocs = 20

// Run trains naive Bayes, logistic regression, and the MLP on the given
// rows and evaluates each on the same held-out split. The vectorizer is
// fitted on training documents only, so test-set vocabulary never leaks
// into the features.
func (s *Service) Run(ctx context.Context, rows []dataset.Row) (*Result, error) {
	logger := logging.FromContext(ctx)

	if len(rows) < minTrainDocs {
		return nil, fmt.Errorf("training needs at least %d documents, got %d", minTrainDocs, len(rows))
	}

	labels := entity.AllLabels()
	classIndex := make(map[entity.Label]int, len(labels))
	for i, l := range labels {
		classIndex[l] = i
	}

	docs := make([]string, len(rows))
	y := make([]int, len(rows))
	for i, row := range rows {
		idx, ok := classIndex[row.Label]
		if !ok {
			return nil, fmt.Errorf("row %s: unknown label %q", row.ID, row.Label)
		}
		docs[i] = row.Title + ". " + row.Text
		y[i] = idx
	}

	trainIdx, testIdx, err := ml.TrainTestSplit(y, s.cfg.TestFraction, s.cfg.Seed)
	if err != nil {
		return nil, err
	}

	trainDocs := make([]string, len(trainIdx))
	trainY := make([]int, len(trainIdx))
	for i, idx := range trainIdx {
		trainDocs[i] = docs[idx]
		trainY[i] = y[idx]
	}
	testDocs := make([]string, len(testIdx))
	testY := make([]int, len(testIdx))
	for i, idx := range testIdx {
		testDocs[i] = docs[idx]
		testY[i] = y[idx]
	}

	vectorizer := ml.NewVectorizer()
	if s.cfg.MaxFeatures > 0 {
		vectorizer.MaxFeatures = s.cfg.MaxFeatures
	}
	if s.cfg.MinDF > 0 {
		vectorizer.MinDF = s.cfg.MinDF
	}

	xTrain, err := vectorizer.FitTransform(trainDocs)
	if err != nil {
		return nil, fmt.Errorf("vectorize training set: %w", err)
	}
	xTest, err := vectorizer.Transform(testDocs)
	if err != nil {
		return nil, fmt.Errorf("vectorize test set: %w", err)
	}

	logger.Info("dataset vectorized",
		slog.Int("documents", len(rows)),
		slog.Int("train", len(trainIdx)),
		slog.Int("test", len(testIdx)),
		slog.Int("features", vectorizer.NumFeatures()),
		slog.Int64("seed", s.cfg.Seed),
	)

	result := &Result{
		NumDocs:     len(rows),
		NumTrain:    len(trainIdx),
		NumTest:     len(testIdx),
		NumFeatures: vectorizer.NumFeatures(),
		Labels:      labels,
	}

	models := []ml.Classifier{
		ml.NewMultinomialNB(),
		ml.NewLogisticRegression(),
		ml.NewMLP(s.cfg.Seed),
	}

	for _, clf := range models {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		if err := clf.Fit(xTrain, trainY, len(labels)); err != nil {
			return nil, fmt.Errorf("fit %s: %w", clf.Name(), err)
		}
		trainTime := time.Since(start)

		pred := clf.Predict(xTest)
		eval, err := ml.Evaluate(testY, pred, len(labels))
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", clf.Name(), err)
		}

		logger.Info("model evaluated",
			slog.String("model", clf.Name()),
			slog.Float64("accuracy", eval.Accuracy),
			slog.Float64("macro_f1", eval.MacroF1),
			slog.Duration("train_time", trainTime),
		)

		result.Models = append(result.Models, ModelResult{
			Model:      clf.Name(),
			Evaluation: eval,
			TrainTime:  trainTime,
		})
	}

	return result, nil
}
