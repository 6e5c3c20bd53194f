package train

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"newslab/internal/domain/entity"
	"newslab/internal/infra/dataset"
)

// labeledCorpus builds a dataset with one disjoint vocabulary per label.
func labeledCorpus(perLabel int) []dataset.Row {
	texts := map[entity.Label]string{
		entity.LabelBusiness: "shares earnings revenue profit market stocks quarterly dividend investors trading",
		entity.LabelHealth:   "vaccine hospital patients doctors treatment clinical symptoms disease therapy medical",
		entity.LabelScience:  "galaxy telescope orbit spacecraft astronomers planets laboratory experiment physics research",
		entity.LabelTech:     "software startup chips processors cloud computing developers algorithm silicon platform",
		entity.LabelWorld:    "parliament election diplomats treaty border ministers summit embassy sanctions government",
	}

	var rows []dataset.Row
	for _, label := range entity.AllLabels() {
		for i := 0; i < perLabel; i++ {
			url := fmt.Sprintf("https://example.com/%s/%d", label, i)
			rows = append(rows, dataset.Row{
				ID:    entity.StableID(url),
				Label: label,
				URL:   url,
				Title: fmt.Sprintf("%s story %d", label, i),
				Text:  texts[label],
			})
		}
	}
	return rows
}

func TestService_Run_EvaluatesAllModels(t *testing.T) {
	svc := NewService(DefaultConfig())

	result, err := svc.Run(context.Background(), labeledCorpus(20))
	require.NoError(t, err)

	require.Equal(t, 100, result.NumDocs)
	require.Equal(t, 80, result.NumTrain)
	require.Equal(t, 20, result.NumTest)
	require.Equal(t, entity.AllLabels(), result.Labels)

	require.Len(t, result.Models, 3)
	names := make([]string, len(result.Models))
	for i, m := range result.Models {
		names[i] = m.Model
	}
	require.Equal(t, []string{"naive_bayes", "logistic_regression", "mlp"}, names)

	for _, m := range result.Models {
		require.Equal(t, 1.0, m.Evaluation.Accuracy,
			"%s should classify a vocabulary-disjoint corpus exactly", m.Model)
		require.Len(t, m.Evaluation.PerClass, len(entity.AllLabels()))
	}
}

func TestService_Run_DeterministicForSeed(t *testing.T) {
	rows := labeledCorpus(20)

	run := func(seed int64) *Result {
		cfg := DefaultConfig()
		cfg.Seed = seed
		result, err := NewService(cfg).Run(context.Background(), rows)
		require.NoError(t, err)
		return result
	}

	r1 := run(7)
	r2 := run(7)

	require.Equal(t, r1.NumFeatures, r2.NumFeatures)
	for i := range r1.Models {
		require.Equal(t, r1.Models[i].Evaluation.Accuracy, r2.Models[i].Evaluation.Accuracy)
		require.Equal(t, r1.Models[i].Evaluation.MacroF1, r2.Models[i].Evaluation.MacroF1)
		require.Equal(t, r1.Models[i].Evaluation.Confusion, r2.Models[i].Evaluation.Confusion,
			"%s must be reproducible for a fixed seed", r1.Models[i].Model)
	}
}

func TestService_Run_TooFewDocuments(t *testing.T) {
	svc := NewService(DefaultConfig())

	_, err := svc.Run(context.Background(), labeledCorpus(2))
	require.Error(t, err)
}

func TestService_Run_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService(DefaultConfig()).Run(ctx, labeledCorpus(20))
	require.ErrorIs(t, err, context.Canceled)
}

func TestFormatReport(t *testing.T) {
	result, err := NewService(DefaultConfig()).Run(context.Background(), labeledCorpus(20))
	require.NoError(t, err)

	report := FormatReport(result)

	require.Contains(t, report, "naive_bayes")
	require.Contains(t, report, "logistic_regression")
	require.Contains(t, report, "mlp")
	for _, label := range entity.AllLabels() {
		require.Contains(t, report, label.DisplayName())
	}
	require.True(t, strings.Contains(report, "confusion"))
}
