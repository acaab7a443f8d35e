package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"store-dashboard/internal/models"
)

const Title = "General Store Business Dashboard"

// Markdown renders rep with the same sections, in the same order, as the web
// dashboard.
func Markdown(rep models.Report) string {
	var b strings.Builder
	writeMarkdown(&b, rep)
	return b.String()
}

func WriteMarkdown(w io.Writer, rep models.Report) error {
	_, err := io.WriteString(w, Markdown(rep))
	return err
}

func writeMarkdown(b *strings.Builder, rep models.Report) {
	fmt.Fprintf(b, "# %s\n\n", Title)
	fmt.Fprintf(b, "_%d rows across %d days_\n\n", rep.Rows, len(rep.Daily))

	b.WriteString("## Executive Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---:|\n")
	fmt.Fprintf(b, "| Total Revenue | %s |\n", Money(rep.Totals.TotalRevenue))
	fmt.Fprintf(b, "| Total Profit | %s |\n", Money(rep.Totals.TotalProfit))
	fmt.Fprintf(b, "| Total Orders | %d |\n", rep.Totals.TotalOrders)
	fmt.Fprintf(b, "| Avg Order Value | %s |\n", Money(rep.Totals.AvgOrderValue))
	fmt.Fprintf(b, "| Profit Margin %% | %s |\n\n", Money(rep.Totals.ProfitMarginPct))

	b.WriteString("## Performance Overview\n\n")
	if len(rep.Daily) == 0 {
		b.WriteString("No daily data for the current selection.\n\n")
	} else {
		b.WriteString("| Date | Revenue | Profit | Orders |\n|---|---:|---:|---:|\n")
		for _, d := range rep.Daily {
			fmt.Fprintf(b, "| %s | %s | %s | %d |\n", d.Date.Format(time.DateOnly), Money(d.Revenue), Money(d.Profit), d.Orders)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Category Strength & Weakness\n\n")
	if len(rep.Categories.Shares) == 0 {
		b.WriteString("No categories in the current selection.\n\n")
	} else {
		fmt.Fprintf(b, "- Top Performing Category: **%s**\n", rep.Categories.Top)
		fmt.Fprintf(b, "- Lowest Performing Category: **%s**\n\n", rep.Categories.Bottom)
		b.WriteString("| Category | Revenue | Contribution |\n|---|---:|---:|\n")
		for _, s := range rep.Categories.Shares {
			fmt.Fprintf(b, "| %s | %s | %s |\n", s.Category, Money(s.Revenue), Pct(s.Percent))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Growth Analysis\n\n")
	fmt.Fprintf(b, "%s\n\n", GrowthLine(rep.Growth))

	b.WriteString("## Business Health Analysis\n\n")
	if rep.Health.Stable {
		fmt.Fprintf(b, "%s\n\n", rep.Health.Status)
	} else {
		for _, a := range rep.Health.Alerts {
			fmt.Fprintf(b, "- ⚠ %s\n", a.Message)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Profit Quality Analysis\n\n")
	fmt.Fprintf(b, "- Average Discount: %s\n", Pct(rep.Discount.AvgDiscount))
	fmt.Fprintf(b, "- Revenue from Heavy Discount Sales: %s (%s)\n\n", Pct(rep.Discount.DependencyPct), DependencyLine(rep.Discount.Dependency))

	b.WriteString("## What To Expect (Next 7 Days)\n\n")
	fmt.Fprintf(b, "%s\n\n", ForecastLine(rep.Forecast))

	b.WriteString("## Recommended Actions for Store Owner\n\n")
	if len(rep.Recommendations.Actions) == 0 {
		fmt.Fprintf(b, "%s\n\n", rep.Recommendations.Default)
	} else {
		for _, a := range rep.Recommendations.Actions {
			fmt.Fprintf(b, "- %s\n", a.Message)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Overall Business Score\n\n")
	fmt.Fprintf(b, "**%d / 100** (%s)\n\n%s\n", rep.Score.Score, rep.Score.Band, rep.Score.Detail)
}

// GrowthLine is the one-line summary of the growth section.
func GrowthLine(g models.Growth) string {
	if !g.Available {
		return g.Reason
	}
	var verdict string
	switch g.Trend {
	case models.GrowthPositive:
		verdict = "Business is showing positive growth trend."
	case models.GrowthDeclining:
		verdict = "Revenue is declining compared to earlier period."
	default:
		verdict = "Revenue is relatively stable."
	}
	return fmt.Sprintf("Revenue Growth (First Half vs Second Half): %s. %s", Pct(g.RatePct), verdict)
}

func DependencyLine(d models.DiscountDependency) string {
	switch d {
	case models.DependencyHigh:
		return "Large portion of revenue depends on heavy discounts."
	case models.DependencyLow:
		return "Revenue not heavily dependent on discounts."
	default:
		return "Moderate dependency on discount-based sales."
	}
}

func ForecastLine(f models.Forecast) string {
	if !f.Available {
		return f.Reason
	}
	return fmt.Sprintf("Expected Revenue After %d Days: %s", f.HorizonDays, Money(f.Predicted))
}
