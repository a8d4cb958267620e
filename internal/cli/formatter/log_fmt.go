package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tdee/internal/domain"
)

// FormatLogList renders log entries as a table, in the order given.
func FormatLogList(entries []domain.LogEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No log entries.") + "\n"
	}

	headers := []string{"DATE", "WHEN", "WEIGHT", "CALORIES"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			Bold(e.DateKey()),
			Dim(RelativeDayFrom(e.Date, now)),
			Kg(e.Weight),
			OptionalKcal(e.Calories),
		})
	}
	return RenderTable(headers, rows, 2, 3)
}

// FormatProfile renders the stored profile.
func FormatProfile(p *domain.UserProfile) string {
	var b strings.Builder
	b.WriteString(line("Start weight", Kg(p.StartWeight)))
	b.WriteString(line("Goal weight", Kg(p.GoalWeight)))
	height := Dim(placeholder)
	if p.HeightCm != nil {
		height = fmt.Sprintf("%.0f cm", *p.HeightCm)
	}
	b.WriteString(line("Height", height))
	b.WriteString(line("Weekly rate", SignedKg(p.WeeklyRate, "kg/week")))
	tdee := Dim("not estimated yet")
	if p.CalculatedTDEE != nil {
		tdee = Kcal(float64(*p.CalculatedTDEE))
	}
	b.WriteString(line("Stored TDEE", tdee))
	return RenderBox("Profile", strings.TrimRight(b.String(), "\n"))
}

// FormatLogWrite reports the outcome of adding or removing an entry.
func FormatLogWrite(verb string, date time.Time, tdee int) string {
	return fmt.Sprintf("%s %s %s. TDEE is now %s\n",
		StyleGreen.Render("✔"), verb, Bold(date.Format(domain.DateLayout)), Bold(Kcal(float64(tdee))))
}
