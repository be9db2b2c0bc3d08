package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vocradar/vocradar/internal/classify"
)

// TopicsConfig is the keyword table file. Topic order in the file is the
// classifier's tie-break order and must stay stable across edits.
type TopicsConfig struct {
	Topics        []classify.Topic `yaml:"topics"`
	NegativeWords []string         `yaml:"negative_words"`
}

// LoadTopics reads and validates the topic table.
func LoadTopics(path string) (*TopicsConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topics file %s: %w", path, err)
	}

	var cfg TopicsConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse topics file %s: %w", path, err)
	}

	if len(cfg.Topics) == 0 {
		return nil, fmt.Errorf("topics file %s defines no topics", path)
	}
	seen := make(map[string]bool)
	for _, t := range cfg.Topics {
		if t.Name == "" {
			return nil, fmt.Errorf("topics file %s contains a topic without a name", path)
		}
		if t.Name == classify.TopicOther {
			return nil, fmt.Errorf("topic name %q is reserved", classify.TopicOther)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("duplicate topic %q in %s", t.Name, path)
		}
		seen[t.Name] = true
	}

	return &cfg, nil
}

// CardTemplate is the hypothesis/action/KPI template for one topic.
type CardTemplate struct {
	Topic      string   `yaml:"topic"`
	Hypothesis []string `yaml:"hypothesis"`
	Action     []string `yaml:"action"`
	KPI        []string `yaml:"kpi"`
}

// Templates is the card/highlight template file.
type Templates struct {
	Cards          []CardTemplate    `yaml:"cards"`
	QuickActions   map[string]string `yaml:"quick_actions"`
	PriorityTopics []string          `yaml:"priority_topics"`

	// Highlight floors
	MinHighlightLength int `yaml:"min_highlight_length"`
	MinKeywordHits     int `yaml:"min_keyword_hits"`
}

// LoadTemplates reads the template file, applying highlight-floor defaults.
func LoadTemplates(path string) (*Templates, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates file %s: %w", path, err)
	}

	var tpl Templates
	if err := yaml.Unmarshal(raw, &tpl); err != nil {
		return nil, fmt.Errorf("failed to parse templates file %s: %w", path, err)
	}

	seen := make(map[string]bool)
	for _, c := range tpl.Cards {
		if c.Topic == "" {
			return nil, fmt.Errorf("templates file %s contains a card without a topic", path)
		}
		if seen[c.Topic] {
			return nil, fmt.Errorf("duplicate card for topic %q in %s", c.Topic, path)
		}
		seen[c.Topic] = true
		// The card headline is the first action item, so an action list
		// may never be empty.
		if len(c.Action) == 0 {
			return nil, fmt.Errorf("card for topic %q in %s has no action items", c.Topic, path)
		}
	}

	if tpl.MinHighlightLength <= 0 {
		tpl.MinHighlightLength = 20
	}
	if tpl.MinKeywordHits <= 0 {
		tpl.MinKeywordHits = 2
	}

	return &tpl, nil
}

// CardFor returns the template registered for topic, or nil.
func (t *Templates) CardFor(topic string) *CardTemplate {
	for i := range t.Cards {
		if t.Cards[i].Topic == topic {
			return &t.Cards[i]
		}
	}
	return nil
}

// QuickAction returns the one-line suggested action for topic and whether
// one is configured.
func (t *Templates) QuickAction(topic string) (string, bool) {
	action, ok := t.QuickActions[topic]
	return action, ok
}

// IsPriority reports whether topic is in the operationally-high-priority
// set used by the highlight ranking.
func (t *Templates) IsPriority(topic string) bool {
	for _, p := range t.PriorityTopics {
		if p == topic {
			return true
		}
	}
	return false
}
