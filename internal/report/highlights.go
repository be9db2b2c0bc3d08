package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vocradar/vocradar/internal/models"
)

// noActionMarker is emitted for highlight topics without a configured
// quick action.
const noActionMarker = "(no action defined)"

// highlight is a selected post with its precomputed ranking key.
type highlight struct {
	post     models.Post
	tag      models.Classification
	priority bool
}

// selectHighlights filters the day's posts through the noise and ambiguity
// floors, then ranks descending by negative sentiment, operational priority
// of the topic, keyword hits, and body length, and returns the top n.
func (g *Generator) selectHighlights(posts []models.Post, n int) []highlight {
	var picked []highlight
	for i := range posts {
		text := posts[i].CombinedText()

		// Noise floor: very short posts carry no signal.
		if len(strings.TrimSpace(posts[i].Title+posts[i].Body)) < g.tpl.MinHighlightLength {
			continue
		}

		tag := g.classify(text)
		// Ambiguity floor: weakly-matched posts are debatable evidence.
		if tag.Hits < g.tpl.MinKeywordHits {
			continue
		}

		picked = append(picked, highlight{
			post:     posts[i],
			tag:      tag,
			priority: g.tpl.IsPriority(tag.Topic),
		})
	}

	sort.SliceStable(picked, func(i, j int) bool {
		a, b := picked[i], picked[j]
		if a.tag.Negative != b.tag.Negative {
			return a.tag.Negative
		}
		if a.priority != b.priority {
			return a.priority
		}
		if a.tag.Hits != b.tag.Hits {
			return a.tag.Hits > b.tag.Hits
		}
		return len(a.post.Body) > len(b.post.Body)
	})

	if len(picked) > n {
		picked = picked[:n]
	}
	return picked
}

// renderHighlights renders the numbered highlight list with per-topic
// quick actions.
func (g *Generator) renderHighlights(picked []highlight) string {
	if len(picked) == 0 {
		return "- No new posts collected today."
	}

	lines := make([]string, 0, len(picked))
	for i, h := range picked {
		negTag := ""
		if h.tag.Negative {
			negTag = "🔥"
		}
		action, ok := g.tpl.QuickAction(h.tag.Topic)
		if !ok {
			action = noActionMarker
		}
		lines = append(lines, fmt.Sprintf("%d) [%s]%s %s (%s)\n   - Quick Action: %s",
			i+1, h.tag.Topic, negTag, h.post.Title, h.post.URL, action))
	}
	return strings.Join(lines, "\n")
}
