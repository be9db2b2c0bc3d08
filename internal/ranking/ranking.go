// Package ranking aggregates classified posts into per-topic volume and
// negative-sentiment statistics and computes issue rankings and
// day-over-day deltas.
package ranking

import (
	"fmt"
	"sort"

	"github.com/vocradar/vocradar/internal/classify"
)

// TopicStat holds the per-topic counters for a single window.
type TopicStat struct {
	Topic     string `json:"topic"`
	Volume    int    `json:"volume"`
	Negatives int    `json:"negatives"`
}

// NegRatio is the share of this topic's posts flagged negative.
func (s TopicStat) NegRatio() float64 {
	if s.Volume == 0 {
		return 0
	}
	return float64(s.Negatives) / float64(s.Volume)
}

// Aggregate accumulates topic counters while preserving first-encounter
// order, which is the tie-break order for equal volumes.
type Aggregate struct {
	order []string
	stats map[string]*TopicStat
}

// NewAggregate returns an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{stats: make(map[string]*TopicStat)}
}

// Add records one classified post.
func (a *Aggregate) Add(topic string, negative bool) {
	st, ok := a.stats[topic]
	if !ok {
		st = &TopicStat{Topic: topic}
		a.stats[topic] = st
		a.order = append(a.order, topic)
	}
	st.Volume++
	if negative {
		st.Negatives++
	}
}

// Volume returns the post count for a topic, zero if unseen.
func (a *Aggregate) Volume(topic string) int {
	if st, ok := a.stats[topic]; ok {
		return st.Volume
	}
	return 0
}

// Total returns the post count across all topics, OTHER included.
func (a *Aggregate) Total() int {
	total := 0
	for _, st := range a.stats {
		total += st.Volume
	}
	return total
}

// NoiseRatio returns OTHER's share of the whole window, 0 for an empty
// window.
func (a *Aggregate) NoiseRatio() float64 {
	total := a.Total()
	if total == 0 {
		return 0
	}
	return float64(a.Volume(classify.TopicOther)) / float64(total)
}

// Topics returns topic names in first-encounter order.
func (a *Aggregate) Topics() []string {
	return append([]string(nil), a.order...)
}

// TopN returns up to n topics ranked by volume descending, excluding OTHER.
// The sort is stable over first-encounter order; callers must not rely on
// a particular order among equal volumes beyond that.
func (a *Aggregate) TopN(n int) []TopicStat {
	ranked := make([]TopicStat, 0, len(a.order))
	for _, topic := range a.order {
		if topic == classify.TopicOther {
			continue
		}
		ranked = append(ranked, *a.stats[topic])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Volume > ranked[j].Volume
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// DeltaState describes the outcome of a day-over-day computation.
type DeltaState int

const (
	// DeltaOK means at least one topic rose versus yesterday.
	DeltaOK DeltaState = iota

	// DeltaInsufficientData means storage holds fewer than two distinct
	// dates, so no comparison is possible.
	DeltaInsufficientData

	// DeltaNoRising means a comparison was made but the best delta is <= 0.
	DeltaNoRising
)

// DeltaEntry is one topic's day-over-day movement.
type DeltaEntry struct {
	Topic     string `json:"topic"`
	Delta     int    `json:"delta"`
	Today     int    `json:"today"`
	Yesterday int    `json:"yesterday"`
}

// DeltaResult is the outcome of comparing today's aggregate with
// yesterday's.
type DeltaResult struct {
	State         DeltaState   `json:"state"`
	TodayDate     string       `json:"today_date,omitempty"`
	YesterdayDate string       `json:"yesterday_date,omitempty"`
	Top           []DeltaEntry `json:"top,omitempty"`
}

// InsufficientDelta is the explicit placeholder result for storage holding
// fewer than two distinct dates. It must be used instead of a zero-delta
// comparison, which would be misleading.
func InsufficientDelta() DeltaResult {
	return DeltaResult{State: DeltaInsufficientData}
}

// DayOverDay computes delta(topic) = today - yesterday over the union of
// topics seen either day, excluding OTHER, and keeps the top n by delta
// descending. todayDate and yesterdayDate label the two windows.
func DayOverDay(today, yesterday *Aggregate, todayDate, yesterdayDate string, n int) DeltaResult {
	seen := make(map[string]bool)
	var topics []string
	for _, t := range append(today.Topics(), yesterday.Topics()...) {
		if t == classify.TopicOther || seen[t] {
			continue
		}
		seen[t] = true
		topics = append(topics, t)
	}

	entries := make([]DeltaEntry, 0, len(topics))
	for _, t := range topics {
		ct, cy := today.Volume(t), yesterday.Volume(t)
		entries = append(entries, DeltaEntry{
			Topic:     t,
			Delta:     ct - cy,
			Today:     ct,
			Yesterday: cy,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Delta > entries[j].Delta
	})
	if len(entries) > n {
		entries = entries[:n]
	}

	res := DeltaResult{
		State:         DeltaOK,
		TodayDate:     todayDate,
		YesterdayDate: yesterdayDate,
		Top:           entries,
	}
	if len(entries) == 0 || entries[0].Delta <= 0 {
		res.State = DeltaNoRising
		res.Top = nil
	}
	return res
}

// String implements fmt.Stringer for log fields.
func (s DeltaState) String() string {
	switch s {
	case DeltaOK:
		return "ok"
	case DeltaInsufficientData:
		return "insufficient_data"
	case DeltaNoRising:
		return "no_rising"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}
