package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tdee/internal/contract"
	"github.com/alexanderramin/tdee/internal/domain"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{2319, "2,319"},
		{1234567, "1,234,567"},
		{-1450, "-1,450"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GroupThousands(tt.in))
	}
}

func TestKcalAndKg(t *testing.T) {
	assert.Equal(t, "1,553 kcal", Kcal(1552.6))
	assert.Equal(t, "80.4 kg", Kg(domain.Ptr(80.44)))
	assert.Equal(t, "--", stripANSI(Kg(nil)))
	assert.Equal(t, "--", stripANSI(OptionalKcal(nil)))
	assert.Equal(t, "-0.50 kg/week", SignedKg(-0.5, "kg/week"))
	assert.Equal(t, "+1.40 kg/week", SignedKg(1.4, "kg/week"))
}

func TestRelativeDayFrom(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		day  time.Time
		want string
	}{
		{"today", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "Today"},
		{"yesterday", time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), "Yesterday"},
		{"tomorrow", time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), "Tomorrow"},
		{"5 days", time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), "5d ago"},
		{"3 weeks", time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC), "3w ago"},
		{"months", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), "3mo ago"},
		{"future", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), "In 4d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDayFrom(tt.day, now))
		})
	}
}

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "[░░░░]   0%", stripANSI(RenderProgress(-0.2, 4)))
	assert.Equal(t, "[██░░]  50%", stripANSI(RenderProgress(0.5, 4)))
	assert.Equal(t, "[████] 100%", stripANSI(RenderProgress(1.7, 4)))
	assert.Equal(t, "[█░]  50%", stripANSI(RenderProgress(0.5, 1)), "width clamps to 2")
}

func TestSparkline(t *testing.T) {
	assert.Empty(t, Sparkline(nil))
	assert.Equal(t, "▁█", Sparkline([]float64{70, 71}))
	assert.Equal(t, "▄▄▄", Sparkline([]float64{80, 80, 80}))
	got := []rune(Sparkline([]float64{84.2, 84.0, 83.7, 83.9}))
	require.Len(t, got, 4)
	assert.Equal(t, '█', got[0])
	assert.Equal(t, '▁', got[2])
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"DATE", "WEIGHT"},
		[][]string{{"2025-01-01", "80.0 kg"}, {"2025-01-02", "100.5 kg"}},
		1,
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "DATE          WEIGHT", lines[0])
	assert.Equal(t, "2025-01-01   80.0 kg", lines[2])
	assert.Equal(t, "2025-01-02  100.5 kg", lines[3])
	for _, l := range lines {
		assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(l))
	}
	assert.Empty(t, RenderTable(nil, nil))
}

func TestFormatLogList(t *testing.T) {
	now := time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)
	entries := []domain.LogEntry{
		{Date: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), Weight: domain.Ptr(70.4), Calories: domain.Ptr(2050.0)},
		{Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Calories: domain.Ptr(2100.0)},
	}
	out := stripANSI(FormatLogList(entries, now))
	assert.Contains(t, out, "2025-01-03")
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "Yesterday")
	assert.Contains(t, out, "70.4 kg")
	assert.Contains(t, out, "2,100 kcal")
	assert.Contains(t, out, "--")

	assert.Equal(t, "No log entries.\n", stripANSI(FormatLogList(nil, now)))
}

func TestFormatSummary(t *testing.T) {
	raw := 510.0
	resp := &contract.SummaryResponse{
		LogCount:        3,
		AdaptiveActive:  true,
		TDEE:            1582,
		TDEESource:      contract.SourceAdaptive,
		RawTDEE:         &raw,
		TrendKgPerWeek:  1.4,
		WeeklyRate:      0.5,
		CalorieTarget:   2132,
		CurrentWeight:   domain.Ptr(70.4),
		AverageWeight:   domain.Ptr(70.2),
		StartWeight:     domain.Ptr(70.0),
		GoalWeight:      domain.Ptr(75.0),
		RemainingKg:     domain.Ptr(4.6),
		GoalProgressPct: domain.Ptr(8.0),
		WeeksToGoal:     domain.Ptr(10.0),
		LastLogDate:     domain.Ptr("2025-01-03"),
		Warnings:        []string{"weekly rate of +1.50 kg is aggressive"},
	}
	out := stripANSI(FormatSummary(resp, []float64{70, 72, 77}))

	for _, want := range []string{
		"STATUS",
		"1,582 kcal",
		"adaptive",
		"510 kcal",
		"2,132 kcal",
		"+0.50 kg/week",
		"+1.40 kg/week",
		"70.4 kg",
		"7-entry avg 70.2 kg",
		"4.6 kg to go, ~10 weeks",
		"8%",
		"▁▃█",
		"3 entries, last 2025-01-03",
		"WARNING: weekly rate of +1.50 kg is aggressive",
		"╭",
	} {
		assert.Contains(t, out, want)
	}
}

func TestFormatSummary_EmptyTracker(t *testing.T) {
	resp := &contract.SummaryResponse{
		TDEE:          2000,
		TDEESource:    contract.SourceDefault,
		WeeklyRate:    0.5,
		CalorieTarget: 2550,
	}
	out := stripANSI(FormatSummary(resp, nil))
	assert.Contains(t, out, "2,000 kcal")
	assert.Contains(t, out, "default")
	assert.NotContains(t, out, "Trend")
	assert.NotContains(t, out, "Goal")
	assert.Contains(t, out, "0 entries")
}

func TestFormatTarget(t *testing.T) {
	out := stripANSI(FormatTarget(&contract.TargetResponse{
		TDEE: 2000, WeeklyRate: -0.5, DailyDelta: -550, CalorieTarget: 1450,
	}))
	assert.Contains(t, out, "2,000 kcal")
	assert.Contains(t, out, "-0.50 kg/week")
	assert.Contains(t, out, "-550 kcal")
	assert.Contains(t, out, "1,450 kcal")
}

func TestFormatProfile(t *testing.T) {
	p := domain.DefaultUserProfile()
	out := stripANSI(FormatProfile(p))
	assert.Contains(t, out, "PROFILE")
	assert.Contains(t, out, "+0.50 kg/week")
	assert.Contains(t, out, "not estimated yet")

	p.StartWeight = domain.Ptr(80.0)
	p.HeightCm = domain.Ptr(178.0)
	tdee := 2319
	p.CalculatedTDEE = &tdee
	out = stripANSI(FormatProfile(p))
	assert.Contains(t, out, "80.0 kg")
	assert.Contains(t, out, "178 cm")
	assert.Contains(t, out, "2,319 kcal")
}

func TestFormatLogWrite(t *testing.T) {
	out := stripANSI(FormatLogWrite("Logged", time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), 1553))
	assert.Equal(t, "✔ Logged 2025-01-03. TDEE is now 1,553 kcal\n", out)
}

func TestTrendStyle(t *testing.T) {
	assert.Equal(t, StyleGreen, TrendStyle(-0.4, -0.5))
	assert.Equal(t, StyleYellow, TrendStyle(0.3, -0.5))
	assert.Equal(t, StyleFg, TrendStyle(0, -0.5))
}
