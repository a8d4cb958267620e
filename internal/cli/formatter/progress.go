package formatter

import (
	"fmt"
	"math"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = math.Max(0, math.Min(1, pct))
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// Sparkline renders values as a single line of block characters scaled
// between their minimum and maximum. A flat series renders at mid height.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	out := make([]rune, len(values))
	top := len(sparkLevels) - 1
	for i, v := range values {
		level := top / 2
		if hi > lo {
			level = int(math.Round((v - lo) / (hi - lo) * float64(top)))
		}
		out[i] = sparkLevels[level]
	}
	return string(out)
}
