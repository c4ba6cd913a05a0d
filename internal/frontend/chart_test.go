package frontend

import (
	"strings"
	"testing"

	"github.com/janpfeifer/GoShuffle/internal/stats"
)

func TestBarColor(t *testing.T) {
	tests := []struct {
		freq float64
		want string
	}{
		{0, "#ffa500"},
		{0.25, "#809300"},
		{0.5, "#008000"},
		{0.75, "#008000"},
		{1, "#008000"},
		{-1, "#ffa500"},
		{2, "#008000"},
	}
	for _, tc := range tests {
		if got := BarColor(tc.freq); got != tc.want {
			t.Errorf("BarColor(%v) = %s, want %s", tc.freq, got, tc.want)
		}
	}
}

func TestRenderChart(t *testing.T) {
	snap := stats.Snapshot{
		Total:             3,
		Counts:            []int{2, 0, 1, 0, 0},
		RecentFrequencies: []float64{0.5, 0, 0.5, 0, 0},
		WindowSize:        2,
		LastScore:         0,
		MaxScore:          2,
		MeanScore:         2.0 / 3,
	}
	svg := RenderChart(snap, ChartWidth, ChartHeight)

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("Not an SVG document: %s", svg)
	}
	if !strings.Contains(svg, ChartTitle(3)) {
		t.Errorf("Missing title in %s", svg)
	}
	// Bars up to the highest score seen.
	if n := strings.Count(svg, `class="bar"`); n != 3 {
		t.Errorf("Expected 3 bars, got %d", n)
	}
	// Count labels only on non-empty bars.
	if n := strings.Count(svg, `class="count"`); n != 2 {
		t.Errorf("Expected 2 count labels, got %d", n)
	}
	if !strings.Contains(svg, `data-score="1" `) || !strings.Contains(svg, `fill="#ffa500"`) {
		t.Errorf("Expected score 1 to be drawn in orange: %s", svg)
	}
	for _, want := range []string{"Max Value: 2", "Avg Similarity: 0.67"} {
		if !strings.Contains(svg, want) {
			t.Errorf("Missing %q in %s", want, svg)
		}
	}
}

func TestRenderChartEmpty(t *testing.T) {
	snap := stats.Snapshot{
		Counts:            make([]int, 53),
		RecentFrequencies: make([]float64, 53),
		LastScore:         -1,
		MaxScore:          -1,
	}
	svg := RenderChart(snap, ChartWidth, ChartHeight)
	if n := strings.Count(svg, `class="bar"`); n != 1 {
		t.Errorf("Expected a single empty bar, got %d", n)
	}
	if !strings.Contains(svg, "Max Value: -") {
		t.Errorf("Expected no max value in %s", svg)
	}
}

func TestToggleLabel(t *testing.T) {
	if ToggleLabel(false) != "Stop Shuffling" || ToggleLabel(true) != "Start Shuffling" {
		t.Errorf("Unexpected labels: %q, %q", ToggleLabel(false), ToggleLabel(true))
	}
}
