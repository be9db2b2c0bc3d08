package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testClassifier() *Classifier {
	return New([]Topic{
		{Name: "T1_Billing", Keywords: []string{"refund", "price", "package"}},
		{Name: "T2_Bugs", Keywords: []string{"crash", "error", "server"}},
		{Name: "T3_Events", Keywords: []string{"event", "reward"}},
	}, []string{"refund", "crash", "terrible"})
}

func TestClassify(t *testing.T) {
	cls := testClassifier()

	tests := []struct {
		name      string
		text      string
		wantTopic string
		wantHits  int
	}{
		{
			name:      "no match falls back to OTHER",
			text:      "just saying hello to everyone",
			wantTopic: TopicOther,
			wantHits:  0,
		},
		{
			name:      "empty text is OTHER",
			text:      "",
			wantTopic: TopicOther,
			wantHits:  0,
		},
		{
			name:      "single topic wins",
			text:      "the game keeps crashing with a server error",
			wantTopic: "T2_Bugs",
			wantHits:  2,
		},
		{
			name:      "tie keeps earliest declared topic",
			text:      "price of the event",
			wantTopic: "T1_Billing",
			wantHits:  1,
		},
		{
			name:      "strictly greater count beats earlier topic",
			text:      "price crash error",
			wantTopic: "T2_Bugs",
			wantHits:  2,
		},
		{
			name:      "matching is case-insensitive",
			text:      "REFUND the PACKAGE now",
			wantTopic: "T1_Billing",
			wantHits:  2,
		},
		{
			name:      "repeated keyword counts once",
			text:      "crash crash crash",
			wantTopic: "T2_Bugs",
			wantHits:  1,
		},
		{
			name:      "substring containment, not word boundaries",
			text:      "the servers are rewarding",
			wantTopic: "T2_Bugs",
			wantHits:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, hits := cls.Classify(tt.text)
			assert.Equal(t, tt.wantTopic, topic)
			assert.Equal(t, tt.wantHits, hits)
		})
	}
}

func TestClassifySubstringTieAcrossTopics(t *testing.T) {
	cls := testClassifier()

	// One hit each for T2 ("server") and T3 ("reward"): the earlier
	// declared topic keeps the tie.
	topic, hits := cls.Classify("server reward")
	assert.Equal(t, "T2_Bugs", topic)
	assert.Equal(t, 1, hits)
}

func TestIsNegative(t *testing.T) {
	cls := testClassifier()

	assert.True(t, cls.IsNegative("I want a refund"))
	assert.True(t, cls.IsNegative("TERRIBLE experience"))
	assert.False(t, cls.IsNegative("great patch, well done"))
	assert.False(t, cls.IsNegative(""))
}

func TestNewSkipsEmptyKeywords(t *testing.T) {
	cls := New([]Topic{{Name: "T1", Keywords: []string{"", "  ", "real"}}}, []string{"", " "})

	topic, hits := cls.Classify("nothing relevant here")
	assert.Equal(t, TopicOther, topic)
	assert.Equal(t, 0, hits)
	assert.False(t, cls.IsNegative("anything"))

	topic, hits = cls.Classify("the real deal")
	assert.Equal(t, "T1", topic)
	assert.Equal(t, 1, hits)
}

func TestTopicsOrder(t *testing.T) {
	cls := testClassifier()
	assert.Equal(t, []string{"T1_Billing", "T2_Bugs", "T3_Events"}, cls.Topics())
}
