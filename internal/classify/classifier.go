// Package classify provides keyword-based topic scoring for forum posts.
package classify

import (
	"strings"
)

// TopicOther is the reserved fallback topic for posts that match no keywords.
const TopicOther = "OTHER"

// Topic is a named VOC category with its keyword list. Declaration order
// matters: when two topics reach the same hit count, the earlier one wins.
type Topic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Classifier scores text against a fixed, ordered topic table and a
// negative-sentiment word set. The tables are captured at construction;
// a Classifier is immutable and safe for concurrent reads.
type Classifier struct {
	topics   []Topic
	negWords []string
}

// New builds a Classifier from an ordered topic table and a negative word
// set. Keywords are matched case-insensitively as plain substrings, so they
// are lowercased once here.
func New(topics []Topic, negWords []string) *Classifier {
	c := &Classifier{
		topics: make([]Topic, 0, len(topics)),
	}
	for _, t := range topics {
		kws := make([]string, 0, len(t.Keywords))
		for _, kw := range t.Keywords {
			// An empty keyword would match everything.
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		c.topics = append(c.topics, Topic{Name: t.Name, Keywords: kws})
	}
	for _, w := range negWords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			c.negWords = append(c.negWords, w)
		}
	}
	return c
}

// Classify returns the best-scoring topic for text and its keyword hit
// count. A topic wins only with a strictly greater count than the current
// best, so ties keep the earliest-declared topic. Text matching no keyword
// at all classifies to TopicOther with a count of zero.
func (c *Classifier) Classify(text string) (string, int) {
	lower := strings.ToLower(text)

	bestTopic := TopicOther
	bestScore := 0
	for _, t := range c.topics {
		score := 0
		for _, kw := range t.Keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			bestTopic, bestScore = t.Name, score
		}
	}
	return bestTopic, bestScore
}

// IsNegative reports whether any configured negative-sentiment word occurs
// as a substring of text.
func (c *Classifier) IsNegative(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range c.negWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Topics returns the topic names in declaration order.
func (c *Classifier) Topics() []string {
	names := make([]string, len(c.topics))
	for i, t := range c.topics {
		names[i] = t.Name
	}
	return names
}
