package train

import (
	"fmt"
	"strings"
)

// FormatReport renders a training result as a human-readable comparison
// table with per-class breakdowns and confusion matrices.
func FormatReport(r *Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dataset: %d documents (%d train / %d test), %d features\n\n",
		r.NumDocs, r.NumTrain, r.NumTest, r.NumFeatures)

	fmt.Fprintf(&b, "%-22s %10s %10s\n", "Model", "Accuracy", "Macro F1")
	fmt.Fprintln(&b, strings.Repeat("-", 44))
	for _, m := range r.Models {
		fmt.Fprintf(&b, "%-22s %10.4f %10.4f\n", m.Model, m.Evaluation.Accuracy, m.Evaluation.MacroF1)
	}

	for _, m := range r.Models {
		fmt.Fprintf(&b, "\n%s\n", m.Model)
		fmt.Fprintf(&b, "  %-12s %10s %10s %10s %9s\n", "Class", "Precision", "Recall", "F1", "Support")
		for i, cm := range m.Evaluation.PerClass {
			fmt.Fprintf(&b, "  %-12s %10.4f %10.4f %10.4f %9d\n",
				r.Labels[i].DisplayName(), cm.Precision, cm.Recall, cm.F1, cm.Support)
		}

		fmt.Fprintf(&b, "  confusion (rows=actual, cols=predicted):\n")
		fmt.Fprintf(&b, "  %12s", "")
		for _, l := range r.Labels {
			fmt.Fprintf(&b, " %10s", l)
		}
		fmt.Fprintln(&b)
		for i, row := range m.Evaluation.Confusion {
			fmt.Fprintf(&b, "  %12s", r.Labels[i])
			for _, n := range row {
				fmt.Fprintf(&b, " %10d", n)
			}
			fmt.Fprintln(&b)
		}
	}

	return b.String()
}
