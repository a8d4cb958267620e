package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tdee/internal/contract"
)

const (
	summaryProgressBarWidth = 20
	labelWidth              = 13
)

func line(label, value string) string {
	return StyleDim.Render(fmt.Sprintf("%-*s", labelWidth, label)) + value + "\n"
}

// FormatSummary renders the status dashboard. weights is the recent weight
// series, oldest first, shown as a sparkline when it has two or more points.
func FormatSummary(resp *contract.SummaryResponse, weights []float64) string {
	var b strings.Builder

	b.WriteString(line("TDEE", Bold(Kcal(float64(resp.TDEE)))+"  "+SourceBadge(resp.TDEESource)))
	if resp.RawTDEE != nil {
		b.WriteString(line("Raw estimate", Kcal(*resp.RawTDEE)))
	}
	b.WriteString(line("Target", StyleBlue.Render(Kcal(resp.CalorieTarget))+Dim(fmt.Sprintf("  at %s", SignedKg(resp.WeeklyRate, "kg/week")))))
	if resp.LogCount >= 2 {
		trend := TrendStyle(resp.TrendKgPerWeek, resp.WeeklyRate).Render(SignedKg(resp.TrendKgPerWeek, "kg/week"))
		b.WriteString(line("Trend", trend))
	}

	b.WriteString("\n")
	current := Kg(resp.CurrentWeight)
	if resp.AverageWeight != nil {
		current += Dim(fmt.Sprintf("  7-entry avg %.1f kg", *resp.AverageWeight))
	}
	b.WriteString(line("Current", current))
	if resp.GoalWeight != nil {
		b.WriteString(line("Goal", Kg(resp.GoalWeight)+Dim(goalDetail(resp))))
	}
	if resp.GoalProgressPct != nil {
		b.WriteString(line("Progress", RenderProgress(*resp.GoalProgressPct/100, summaryProgressBarWidth)))
	}
	if len(weights) >= 2 {
		b.WriteString(line("Weight", StylePurple.Render(Sparkline(weights))))
	}

	b.WriteString("\n")
	logLine := fmt.Sprintf("%d entries", resp.LogCount)
	if resp.LastLogDate != nil {
		logLine += ", last " + *resp.LastLogDate
	}
	b.WriteString(line("Log", logLine))

	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range resp.Warnings {
			b.WriteString(Warning(w) + "\n")
		}
	}

	return RenderBox("Status", strings.TrimRight(b.String(), "\n"))
}

func goalDetail(resp *contract.SummaryResponse) string {
	if resp.RemainingKg == nil {
		return ""
	}
	if *resp.RemainingKg == 0 {
		return "  reached"
	}
	detail := fmt.Sprintf("  %.1f kg to go", abs(*resp.RemainingKg))
	if resp.WeeksToGoal != nil {
		detail += fmt.Sprintf(", ~%.0f weeks", *resp.WeeksToGoal)
	}
	return detail
}

// FormatTarget renders the calorie target for one weekly rate.
func FormatTarget(resp *contract.TargetResponse) string {
	var b strings.Builder
	b.WriteString(line("TDEE", Kcal(float64(resp.TDEE))))
	b.WriteString(line("Weekly rate", SignedKg(resp.WeeklyRate, "kg/week")))
	b.WriteString(line("Daily delta", fmt.Sprintf("%+.0f kcal", resp.DailyDelta)))
	b.WriteString(line("Target", Bold(Kcal(resp.CalorieTarget))))
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
