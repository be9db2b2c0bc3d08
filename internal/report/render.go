package report

import (
	"fmt"
	"strings"

	"github.com/vocradar/vocradar/internal/classify"
	"github.com/vocradar/vocradar/internal/ranking"
)

// renderTop10 renders the ranking table plus the noise line. The output is
// deterministic for identical inputs: fixed column layout, NegRatio and
// noise ratio to two decimals.
func renderTop10(top []ranking.TopicStat, agg *ranking.Aggregate) string {
	lines := []string{
		"| Rank | Topic | Volume | NegRatio |",
		"|---:|---|---:|---:|",
	}
	for i, st := range top {
		lines = append(lines, fmt.Sprintf("| %d | %s | %d | %.2f |", i+1, st.Topic, st.Volume, st.NegRatio()))
	}

	noise := agg.Volume(classify.TopicOther)
	total := agg.Total()
	noiseLine := fmt.Sprintf("- Noise(OTHER): %d/%d (%.2f)", noise, total, agg.NoiseRatio())

	return strings.Join(lines, "\n") + "\n\n" + noiseLine
}

// renderDelta renders the rising-topics list or one of the two explicit
// placeholder states.
func renderDelta(res ranking.DeltaResult) string {
	switch res.State {
	case ranking.DeltaInsufficientData:
		return "- No yesterday data yet; rising topics resume after the next crawl day"

	case ranking.DeltaNoRising:
		return fmt.Sprintf("- Compared: %s vs %s\n- No rising topic (all deltas ≤ 0)",
			res.TodayDate, res.YesterdayDate)
	}

	lines := []string{fmt.Sprintf("- Compared: %s vs %s", res.TodayDate, res.YesterdayDate)}
	for i, e := range res.Top {
		lines = append(lines, fmt.Sprintf("%d) %s: +%d (today %d / yesterday %d)",
			i+1, e.Topic, e.Delta, e.Today, e.Yesterday))
	}
	return strings.Join(lines, "\n")
}
