package report

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Round2 rounds half away from zero to two decimals. Values are kept at full
// precision through the pipeline and rounded only for display. Non-finite
// values are returned unchanged since decimal cannot represent them.
func Round2(v float64) float64 {
	if !finite(v) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Money formats v with exactly two decimals.
func Money(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func Pct(v float64) string {
	return Money(v) + "%"
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
