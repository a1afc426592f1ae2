package substitution

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// roundHalfUp rounds with ties going toward positive infinity, matching the
// arithmetic the published recipes were computed with. Note this differs from
// math.Round for negative halves: -1.5 rounds to -1.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// formatDelta renders a signed macro change: "+12g", "-8g", "0g". Calories
// use an empty unit.
func formatDelta(value int, unit string) string {
	if value > 0 {
		return fmt.Sprintf("+%d%s", value, unit)
	}
	return fmt.Sprintf("%d%s", value, unit)
}

// FormattedAmount renders a line's amount for display:
// the "pinch" sentinel as-is, fractional display amounts (containing "/")
// verbatim, explicit non-gram units as "5ml" or "2 tsp" (preferring the
// display amount over the numeric one), and everything else in grams.
func (l Line) FormattedAmount() string {
	if l.DisplayAmount == "pinch" {
		return "pinch"
	}
	if strings.Contains(l.DisplayAmount, "/") {
		return l.DisplayAmount
	}
	if l.Unit != "" && l.Unit != "g" {
		amount := l.DisplayAmount
		if amount == "" {
			amount = formatNumber(l.Amount)
		}
		if l.Unit == "ml" {
			return amount + "ml"
		}
		return amount + " " + l.Unit
	}
	return formatNumber(l.Amount) + "g"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
