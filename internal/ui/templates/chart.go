package templates

import (
	"fmt"
	"html/template"
	"strings"

	"store-dashboard/internal/models"
)

const (
	chartWidth  = 600.0
	chartHeight = 160.0
	chartPad    = 8.0
)

// TrendChart draws one daily series as an SVG polyline scaled to its own
// range, with a zero baseline when the series crosses it.
func TrendChart(daily []models.DailySummary, value func(models.DailySummary) float64, stroke string) template.HTML {
	if len(daily) == 0 {
		return template.HTML(`<p class="muted">No data.</p>`)
	}

	lo, hi := value(daily[0]), value(daily[0])
	for _, d := range daily {
		lo = min(lo, value(d))
		hi = max(hi, value(d))
	}

	step := chartWidth / float64(max(1, len(daily)-1))
	pts := make([]string, len(daily))
	for i, d := range daily {
		x := float64(i) * step
		y := chartHeight - scale(value(d), lo, hi, chartPad, chartHeight-chartPad)
		pts[i] = fmt.Sprintf("%.1f,%.1f", x, y)
	}

	baseline := ""
	if lo < 0 && hi > 0 {
		y := chartHeight - scale(0, lo, hi, chartPad, chartHeight-chartPad)
		baseline = fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%.0f" y2="%.1f" stroke="#9ca3af" stroke-dasharray="4"/>`, y, chartWidth, y)
	}

	return template.HTML(fmt.Sprintf(
		`<svg class="chart" viewBox="0 0 %.0f %.0f" preserveAspectRatio="none" role="img"><polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>%s<line x1="0" y1="%.1f" x2="%.0f" y2="%.1f" stroke="#d1d5db"/></svg>`,
		chartWidth, chartHeight, strings.Join(pts, " "), stroke, baseline, chartHeight-0.5, chartWidth, chartHeight-0.5))
}

func scale(v, lo, hi, a, b float64) float64 {
	if hi == lo {
		return (a + b) / 2
	}
	return a + (v-lo)*(b-a)/(hi-lo)
}

func revenueOf(d models.DailySummary) float64 { return d.Revenue }
func profitOf(d models.DailySummary) float64  { return d.Profit }
