package report

import (
	"fmt"
	"strings"

	"github.com/vocradar/vocradar/internal/models"
	"github.com/vocradar/vocradar/internal/ranking"
)

// Placeholder entries for topics that surfaced in the ranking before a card
// template was registered for them. A card is always emitted; the
// placeholders make the gap visible instead of silently dropping the topic.
const (
	placeholderHypothesis = "(no hypothesis template: needs keyword tuning)"
	placeholderAction     = "(no action template)"
	placeholderKPI        = "(no KPI template)"
	placeholderEvidence   = "- (no sample)"
)

// maxEvidence is the number of sample posts cited per card.
const maxEvidence = 2

// Card is one rendered issue→action block.
type Card struct {
	Topic      string
	Headline   string
	Evidence   []models.Post
	Hypothesis []string
	Action     []string
	KPI        []string
}

// buildCards assembles cards for the ranked topics, in rank order. Evidence
// is the most recently observed posts of each topic.
func (g *Generator) buildCards(top []ranking.TopicStat, byTopic map[string][]models.Post) []Card {
	cards := make([]Card, 0, len(top))
	for _, st := range top {
		evidence := byTopic[st.Topic]
		if len(evidence) > maxEvidence {
			evidence = evidence[:maxEvidence]
		}

		card := Card{
			Topic:      st.Topic,
			Evidence:   evidence,
			Hypothesis: []string{placeholderHypothesis},
			Action:     []string{placeholderAction},
			KPI:        []string{placeholderKPI},
		}
		if tpl := g.tpl.CardFor(st.Topic); tpl != nil {
			card.Hypothesis = tpl.Hypothesis
			card.Action = tpl.Action
			card.KPI = tpl.KPI
		}
		// The one-line takeaway is always the first action item.
		card.Headline = card.Action[0]

		cards = append(cards, card)
	}
	return cards
}

// renderCards renders numbered card blocks separated by a horizontal rule,
// with no rule before the first card.
func renderCards(cards []Card) string {
	if len(cards) == 0 {
		return "- No ranked topics to build cards from."
	}

	blocks := make([]string, 0, len(cards))
	for i, c := range cards {
		var b strings.Builder
		fmt.Fprintf(&b, "### Card %d: %s\n", i+1, c.Topic)
		fmt.Fprintf(&b, "**One-line takeaway:** %s\n\n", c.Headline)

		b.WriteString("**Evidence**\n")
		if len(c.Evidence) == 0 {
			b.WriteString(placeholderEvidence + "\n")
		}
		for _, p := range c.Evidence {
			fmt.Fprintf(&b, "- %s (%s)\n", p.Title, p.URL)
		}

		writeBulletBlock(&b, "**Hypothesis**", c.Hypothesis)
		writeBulletBlock(&b, "**Action**", c.Action)
		writeBulletBlock(&b, "**KPI**", c.KPI)

		blocks = append(blocks, strings.TrimRight(b.String(), "\n"))
	}
	return strings.Join(blocks, "\n---\n")
}

func writeBulletBlock(b *strings.Builder, heading string, items []string) {
	b.WriteString("\n" + heading + "\n")
	for _, it := range items {
		b.WriteString("- " + it + "\n")
	}
}
