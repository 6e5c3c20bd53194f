package entity

import "fmt"

// Label is one of the five fixed topical categories an article can carry.
// The lower-case form is what gets persisted to raw.jsonl and processed.csv.
type Label string

const (
	LabelBusiness Label = "business"
	LabelHealth   Label = "health"
	LabelScience  Label = "science"
	LabelTech     Label = "tech"
	LabelWorld    Label = "world"
)

// AllLabels returns the full label set in a fixed, stable order.
// The order defines the class index mapping used by the trainer.
func AllLabels() []Label {
	return []Label{LabelBusiness, LabelHealth, LabelScience, LabelTech, LabelWorld}
}

// Valid reports whether l is one of the five known labels.
func (l Label) Valid() bool {
	switch l {
	case LabelBusiness, LabelHealth, LabelScience, LabelTech, LabelWorld:
		return true
	}
	return false
}

// DisplayName returns the human-readable category name for reports.
func (l Label) DisplayName() string {
	switch l {
	case LabelBusiness:
		return "Business"
	case LabelHealth:
		return "Health"
	case LabelScience:
		return "Science"
	case LabelTech:
		return "Technology"
	case LabelWorld:
		return "World"
	}
	return string(l)
}

// ParseLabel converts a persisted label string back into a Label.
func ParseLabel(s string) (Label, error) {
	l := Label(s)
	if !l.Valid() {
		return "", fmt.Errorf("%w: unknown label %q", ErrInvalidInput, s)
	}
	return l, nil
}
