// Package config loads the application-level feed catalog: which RSS feeds
// are polled and which category each one labels its articles with.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"newslab/internal/domain/entity"
)

// FeedsFile is the on-disk shape of feeds.yaml.
type FeedsFile struct {
	Sources []SourceConfig `yaml:"sources" validate:"required,min=1,dive"`
}

// SourceConfig is one feed entry in feeds.yaml.
type SourceConfig struct {
	Name    string `yaml:"name" validate:"required"`
	URL     string `yaml:"url" validate:"required,url"`
	Label   string `yaml:"label" validate:"required"`
	Enabled *bool  `yaml:"enabled"` // nil means enabled
}

// LoadFeeds reads and validates a feeds.yaml file and returns the sources
// it declares. Labels must be one of the five known categories.
func LoadFeeds(path string) ([]*entity.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds file: %w", err)
	}

	var file FeedsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse feeds file %s: %w", path, err)
	}

	if err := validator.New().Struct(&file); err != nil {
		return nil, fmt.Errorf("invalid feeds file %s: %w", path, err)
	}

	sources := make([]*entity.Source, 0, len(file.Sources))
	for i, sc := range file.Sources {
		label, err := entity.ParseLabel(sc.Label)
		if err != nil {
			return nil, fmt.Errorf("feeds file %s, source %d (%s): %w", path, i, sc.Name, err)
		}

		src := &entity.Source{
			Name:    sc.Name,
			FeedURL: sc.URL,
			Label:   label,
			Active:  sc.Enabled == nil || *sc.Enabled,
		}
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("feeds file %s, source %d (%s): %w", path, i, sc.Name, err)
		}
		sources = append(sources, src)
	}

	return sources, nil
}

// GoogleNewsSearchURL builds a Google News RSS search feed for a query.
// Spaces become '+'; operators like OR and when:30d pass through.
func GoogleNewsSearchURL(query string) string {
	q := strings.ReplaceAll(query, " ", "+")
	return fmt.Sprintf("https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en", q)
}

// labelQueries are the curated Google News search queries per category,
// used when no feeds.yaml is given. Each query becomes its own feed so a
// narrow topic going quiet does not starve the label.
var labelQueries = map[entity.Label][]string{
	entity.LabelBusiness: {
		"economy OR inflation OR stock market OR central bank when:30d",
		"interest rates OR bond yields OR GDP when:30d",
		"company earnings OR revenue OR profit when:30d",
		"trade deficit OR exports OR imports when:30d",
		"banking regulation OR fintech when:30d",
	},
	entity.LabelTech: {
		"artificial intelligence OR generative AI OR LLM when:30d",
		"cybersecurity OR data breach OR ransomware when:30d",
		"software update OR cloud computing OR SaaS when:30d",
		"startup funding OR venture capital tech when:30d",
		"semiconductor OR chip manufacturing when:30d",
	},
	entity.LabelScience: {
		"climate change OR environment research when:30d",
		"space mission OR NASA OR telescope when:30d",
		"scientists discover OR study finds when:30d",
		"renewable energy research OR fusion when:30d",
		"biodiversity OR ocean study when:30d",
	},
	entity.LabelHealth: {
		"public health OR WHO OR outbreak when:30d",
		"vaccine trial OR clinical trial when:30d",
		"hospital OR healthcare policy when:30d",
		"disease symptoms OR treatment study when:30d",
		"mental health study OR depression anxiety when:30d",
	},
	entity.LabelWorld: {
		"election OR parliament OR government policy when:30d",
		"war OR conflict OR ceasefire when:30d",
		"diplomacy OR summit OR sanctions when:30d",
		"protest OR referendum OR coup when:30d",
		"migration OR refugees OR border policy when:30d",
	},
}

// DefaultSources returns the built-in Google News feed catalog, one source
// per curated query, in a fixed label-then-query order.
func DefaultSources() []*entity.Source {
	var sources []*entity.Source
	for _, label := range entity.AllLabels() {
		for i, query := range labelQueries[label] {
			sources = append(sources, &entity.Source{
				Name:    fmt.Sprintf("google-news-%s-%d", label, i+1),
				FeedURL: GoogleNewsSearchURL(query),
				Label:   label,
				Active:  true,
			})
		}
	}
	return sources
}
