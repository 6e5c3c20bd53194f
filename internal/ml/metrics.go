package ml

import "fmt"

// ClassMetrics holds per-class precision, recall, and F1.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Evaluation summarizes classifier performance on a labeled set.
type Evaluation struct {
	Accuracy  float64
	MacroF1   float64
	PerClass  []ClassMetrics
	Confusion [][]int // Confusion[actual][predicted]
}

// Evaluate computes accuracy, per-class precision/recall/F1, macro F1, and
// the confusion matrix for the given truth and predictions.
func Evaluate(truth, pred []int, numClasses int) (*Evaluation, error) {
	if len(truth) != len(pred) {
		return nil, fmt.Errorf("evaluate: %d truth labels but %d predictions", len(truth), len(pred))
	}
	if len(truth) == 0 {
		return nil, fmt.Errorf("evaluate: empty label set")
	}

	confusion := make([][]int, numClasses)
	for i := range confusion {
		confusion[i] = make([]int, numClasses)
	}

	correct := 0
	for i, t := range truth {
		p := pred[i]
		if t < 0 || t >= numClasses || p < 0 || p >= numClasses {
			return nil, fmt.Errorf("evaluate: label out of range at index %d (truth=%d, pred=%d)", i, t, p)
		}
		confusion[t][p]++
		if t == p {
			correct++
		}
	}

	ev := &Evaluation{
		Accuracy:  float64(correct) / float64(len(truth)),
		PerClass:  make([]ClassMetrics, numClasses),
		Confusion: confusion,
	}

	f1Sum := 0.0
	for c := 0; c < numClasses; c++ {
		tp := confusion[c][c]
		fp, fn, support := 0, 0, 0
		for other := 0; other < numClasses; other++ {
			if other != c {
				fp += confusion[other][c]
				fn += confusion[c][other]
			}
			support += confusion[c][other]
		}

		cm := ClassMetrics{Support: support}
		if tp+fp > 0 {
			cm.Precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			cm.Recall = float64(tp) / float64(tp+fn)
		}
		if cm.Precision+cm.Recall > 0 {
			cm.F1 = 2 * cm.Precision * cm.Recall / (cm.Precision + cm.Recall)
		}
		ev.PerClass[c] = cm
		f1Sum += cm.F1
	}
	ev.MacroF1 = f1Sum / float64(numClasses)

	return ev, nil
}
