// Package graph draws monthly totals as a horizontal ASCII bar chart.
package graph

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"budgetbuddy/internal/core"
)

// DefaultWidth is the bar length of the largest month.
const DefaultWidth = 40

const barChar = "#"

// Chart renders one year of monthly totals.
type Chart struct {
	Width    int
	Currency string
}

// Render returns one row per month, January first. Bars are scaled so the
// largest month spans Width characters; any non-zero month gets at least one.
func (c Chart) Render(noun string, year int, totals [12]core.Money) string {
	width := c.Width
	if width <= 0 {
		width = DefaultWidth
	}

	peak := decimal.Zero
	for _, t := range totals {
		if t.Decimal().GreaterThan(peak) {
			peak = t.Decimal()
		}
	}
	if !peak.IsPositive() {
		return fmt.Sprintf("No %s recorded in %d.", noun, year)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Monthly %s for %d\n", noun, year)
	for i, t := range totals {
		n := barLen(t.Decimal(), peak, width)
		fmt.Fprintf(&b, "%02d/%d | %-*s %s\n", i+1, year, width, strings.Repeat(barChar, n), t.Format(c.Currency))
	}
	return strings.TrimRight(b.String(), "\n")
}

func barLen(v, peak decimal.Decimal, width int) int {
	if !v.IsPositive() {
		return 0
	}
	n := int(v.Div(peak).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	return n
}
