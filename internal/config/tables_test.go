package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempYAML(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTopics(t *testing.T) {
	path := writeTempYAML(t, "topics.yaml", `
topics:
  - name: T4_Bugs/Server
    keywords: [bug, crash, server]
  - name: T2_Monetization
    keywords: [gacha, price]
negative_words: [terrible, refund]
`)

	cfg, err := LoadTopics(path)
	require.NoError(t, err)
	require.Len(t, cfg.Topics, 2)
	assert.Equal(t, "T4_Bugs/Server", cfg.Topics[0].Name)
	assert.Equal(t, []string{"bug", "crash", "server"}, cfg.Topics[0].Keywords)
	assert.Equal(t, []string{"terrible", "refund"}, cfg.NegativeWords)
}

func TestLoadTopicsRejectsEmptyTable(t *testing.T) {
	path := writeTempYAML(t, "topics.yaml", "topics: []\n")
	_, err := LoadTopics(path)
	assert.ErrorContains(t, err, "defines no topics")
}

func TestLoadTopicsRejectsUnnamedTopic(t *testing.T) {
	path := writeTempYAML(t, "topics.yaml", `
topics:
  - keywords: [bug]
`)
	_, err := LoadTopics(path)
	assert.ErrorContains(t, err, "without a name")
}

func TestLoadTopicsRejectsReservedName(t *testing.T) {
	path := writeTempYAML(t, "topics.yaml", `
topics:
  - name: OTHER
    keywords: [misc]
`)
	_, err := LoadTopics(path)
	assert.ErrorContains(t, err, "reserved")
}

func TestLoadTopicsRejectsDuplicates(t *testing.T) {
	path := writeTempYAML(t, "topics.yaml", `
topics:
  - name: T4_Bugs/Server
    keywords: [bug]
  - name: T4_Bugs/Server
    keywords: [crash]
`)
	_, err := LoadTopics(path)
	assert.ErrorContains(t, err, "duplicate topic")
}

func TestLoadTopicsMissingFile(t *testing.T) {
	_, err := LoadTopics(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadTemplates(t *testing.T) {
	path := writeTempYAML(t, "templates.yaml", `
cards:
  - topic: T2_Monetization
    hypothesis: [Pull rates feel opaque]
    action: [Publish gacha rates, Run a pricing survey]
    kpi: [Refund ticket volume]
quick_actions:
  T4_Bugs/Server: Escalate to live ops
priority_topics: [T4_Bugs/Server]
min_highlight_length: 30
min_keyword_hits: 3
`)

	tpl, err := LoadTemplates(path)
	require.NoError(t, err)

	card := tpl.CardFor("T2_Monetization")
	require.NotNil(t, card)
	assert.Equal(t, []string{"Publish gacha rates", "Run a pricing survey"}, card.Action)
	assert.Nil(t, tpl.CardFor("T7_UI/QoL"))

	action, ok := tpl.QuickAction("T4_Bugs/Server")
	require.True(t, ok)
	assert.Equal(t, "Escalate to live ops", action)
	_, ok = tpl.QuickAction("T7_UI/QoL")
	assert.False(t, ok)

	assert.True(t, tpl.IsPriority("T4_Bugs/Server"))
	assert.False(t, tpl.IsPriority("T2_Monetization"))

	assert.Equal(t, 30, tpl.MinHighlightLength)
	assert.Equal(t, 3, tpl.MinKeywordHits)
}

func TestLoadTemplatesRejectsCardWithoutActions(t *testing.T) {
	path := writeTempYAML(t, "templates.yaml", `
cards:
  - topic: T2_Monetization
    hypothesis: [Pull rates feel opaque]
    kpi: [Refund ticket volume]
`)
	_, err := LoadTemplates(path)
	assert.ErrorContains(t, err, "no action items")
}

func TestLoadTemplatesRejectsUntopicedCard(t *testing.T) {
	path := writeTempYAML(t, "templates.yaml", `
cards:
  - action: [Do something]
`)
	_, err := LoadTemplates(path)
	assert.ErrorContains(t, err, "without a topic")
}

func TestLoadTemplatesRejectsDuplicateCards(t *testing.T) {
	path := writeTempYAML(t, "templates.yaml", `
cards:
  - topic: T2_Monetization
    action: [First]
  - topic: T2_Monetization
    action: [Second]
`)
	_, err := LoadTemplates(path)
	assert.ErrorContains(t, err, "duplicate card")
}

func TestLoadTemplatesAppliesFloorDefaults(t *testing.T) {
	path := writeTempYAML(t, "templates.yaml", "cards: []\n")

	tpl, err := LoadTemplates(path)
	require.NoError(t, err)
	assert.Equal(t, 20, tpl.MinHighlightLength)
	assert.Equal(t, 2, tpl.MinKeywordHits)
}

func TestShippedTablesParse(t *testing.T) {
	root := filepath.Join("..", "..", "configs")

	topics, err := LoadTopics(filepath.Join(root, "topics.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, topics.Topics)
	assert.NotEmpty(t, topics.NegativeWords)

	tpl, err := LoadTemplates(filepath.Join(root, "templates.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, tpl.Cards)
	assert.NotEmpty(t, tpl.QuickActions)
	assert.NotEmpty(t, tpl.PriorityTopics)
}
