package frontend

import (
	"fmt"
	"math"
	"strings"

	"github.com/janpfeifer/GoShuffle/internal/stats"
)

// Colormap stops for the recent frequency of a score: orange when rare, green when frequent.
var colormap = []struct {
	at      float64
	r, g, b float64
}{
	{0, 0xff, 0xa5, 0x00},   // orange
	{0.5, 0x00, 0x80, 0x00}, // green
	{1, 0x00, 0x80, 0x00},   // green
}

// BarColor maps a recent frequency in [0, 1] to a "#rrggbb" color.
// Values outside [0, 1] are clamped.
func BarColor(freq float64) string {
	freq = math.Max(0, math.Min(1, freq))
	for i := 1; i < len(colormap); i++ {
		lo, hi := colormap[i-1], colormap[i]
		if freq > hi.at {
			continue
		}
		t := (freq - lo.at) / (hi.at - lo.at)
		lerp := func(a, b float64) int { return int(math.Round(a + t*(b-a))) }
		return fmt.Sprintf("#%02x%02x%02x", lerp(lo.r, hi.r), lerp(lo.g, hi.g), lerp(lo.b, hi.b))
	}
	last := colormap[len(colormap)-1]
	return fmt.Sprintf("#%02x%02x%02x", int(last.r), int(last.g), int(last.b))
}

// ChartTitle is shown above the histogram.
func ChartTitle(total int) string {
	return fmt.Sprintf("Frequency of Maximum Similarity per Shuffle (Total Decks: %d)", total)
}

// RenderChart renders the cumulative histogram of snap as an SVG bar chart: one bar per
// score up to the highest score seen, colored by the score's recent frequency.
func RenderChart(snap stats.Snapshot, width, height int) string {
	const (
		marginLeft   = 60.0
		marginRight  = 20.0
		marginTop    = 50.0
		marginBottom = 60.0
	)
	plotW := float64(width) - marginLeft - marginRight
	plotH := float64(height) - marginTop - marginBottom

	// X range goes up to the highest non-empty score (inclusive).
	numBars := max(snap.MaxScore+1, 1)
	maxCount := 0
	for _, c := range snap.Counts {
		maxCount = max(maxCount, c)
	}
	yMax := float64(maxCount)*1.05 + 5
	slot := plotW / float64(numBars)
	barW := slot * 0.8

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%[1]d" height="%[2]d" viewBox="0 0 %[1]d %[2]d" class="histogram-svg">`, width, height)
	fmt.Fprintf(&sb, `<text class="title" x="%f" y="%f" text-anchor="middle" font-size="18">%s</text>`,
		float64(width)/2, marginTop/2, ChartTitle(snap.Total))

	// Axes.
	fmt.Fprintf(&sb, `<line x1="%[1]f" y1="%[2]f" x2="%[1]f" y2="%[3]f" stroke="currentColor" />`,
		marginLeft, marginTop, marginTop+plotH)
	fmt.Fprintf(&sb, `<line x1="%[1]f" y1="%[3]f" x2="%[2]f" y2="%[3]f" stroke="currentColor" />`,
		marginLeft, marginLeft+plotW, marginTop+plotH)
	fmt.Fprintf(&sb, `<text x="%f" y="%f" text-anchor="middle" font-size="14">Number of Matching Cards</text>`,
		marginLeft+plotW/2, float64(height)-15)
	fmt.Fprintf(&sb, `<text x="15" y="%[1]f" text-anchor="middle" font-size="14" transform="rotate(-90 15 %[1]f)">Frequency</text>`,
		marginTop+plotH/2)

	for score := range numBars {
		count := 0
		if score < len(snap.Counts) {
			count = snap.Counts[score]
		}
		freq := 0.0
		if score < len(snap.RecentFrequencies) {
			freq = snap.RecentFrequencies[score]
		}
		x := marginLeft + float64(score)*slot + (slot-barW)/2
		barH := plotH * float64(count) / yMax
		y := marginTop + plotH - barH
		fmt.Fprintf(&sb, `<rect class="bar" data-score="%d" x="%f" y="%f" width="%f" height="%f" fill="%s" />`,
			score, x, y, barW, barH, BarColor(freq))
		if count > 0 {
			fmt.Fprintf(&sb, `<text class="count" x="%f" y="%f" text-anchor="middle" font-size="12">%d</text>`,
				x+barW/2, y-4, count)
		}
		fmt.Fprintf(&sb, `<text x="%f" y="%f" text-anchor="middle" font-size="12">%d</text>`,
			x+barW/2, marginTop+plotH+16, score)
	}

	// Summary box, top right.
	maxValue := "-"
	if snap.MaxScore >= 0 {
		maxValue = fmt.Sprintf("%d", snap.MaxScore)
	}
	boxX := marginLeft + plotW - 170
	fmt.Fprintf(&sb, `<rect x="%f" y="%f" width="165" height="44" fill="white" fill-opacity="0.5" stroke="currentColor" />`,
		boxX, marginTop+5)
	fmt.Fprintf(&sb, `<text class="summary" x="%f" y="%f" font-size="13">Max Value: %s</text>`,
		boxX+8, marginTop+22, maxValue)
	fmt.Fprintf(&sb, `<text class="summary" x="%f" y="%f" font-size="13">Avg Similarity: %.2f</text>`,
		boxX+8, marginTop+40, snap.MeanScore)

	sb.WriteString(`</svg>`)
	return sb.String()
}
