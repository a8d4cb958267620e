package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const placeholder = "--"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return boxStyle.Render(content)
	}
	return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// RelativeDayFrom describes a log date relative to now at day resolution.
func RelativeDayFrom(day, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := day.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	days := int(math.Round(b.Sub(a).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == -1:
		return "Yesterday"
	case days == 1:
		return "Tomorrow"
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	case days < 0:
		return fmt.Sprintf("%dmo ago", -days/30)
	default:
		return fmt.Sprintf("In %dd", days)
	}
}

// Kg formats an optional weight with one decimal.
func Kg(v *float64) string {
	if v == nil {
		return Dim(placeholder)
	}
	return fmt.Sprintf("%.1f kg", *v)
}

// SignedKg formats a weight difference with an explicit sign.
func SignedKg(v float64, unit string) string {
	return fmt.Sprintf("%+.2f %s", v, unit)
}

// Kcal formats an energy value rounded to whole kcal with thousands separators.
func Kcal(v float64) string {
	return GroupThousands(int(math.Round(v))) + " kcal"
}

// OptionalKcal formats an optional intake value.
func OptionalKcal(v *float64) string {
	if v == nil {
		return Dim(placeholder)
	}
	return Kcal(*v)
}

// GroupThousands renders n with comma separators, e.g. 12,345.
func GroupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
