package entity

// Source is a configured RSS feed endpoint. Every article collected from a
// source inherits the source's label; that mapping is the whole labeling
// strategy, so a source without a valid label is unusable.
type Source struct {
	Name    string `yaml:"name"`
	FeedURL string `yaml:"url"`
	Label   Label  `yaml:"label"`
	Active  bool   `yaml:"enabled"`
}

// Validate checks that the source can participate in a collection run.
func (s *Source) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "name", Message: "source name is required"}
	}
	if err := ValidateURL(s.FeedURL); err != nil {
		return err
	}
	if !s.Label.Valid() {
		return &ValidationError{Field: "label", Message: "source label must be one of the five categories"}
	}
	return nil
}
