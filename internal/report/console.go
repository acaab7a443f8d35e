package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"store-dashboard/internal/models"
)

const barWidth = 40

var (
	boldCyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	boldGreen  = color.New(color.FgGreen, color.Bold).SprintFunc()
	boldYellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	boldRed    = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Console renders a report for a terminal.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Render(rep models.Report) error {
	var b strings.Builder

	b.WriteString(boldCyan(Title) + "\n")
	fmt.Fprintf(&b, "%d rows across %d days\n\n", rep.Rows, len(rep.Daily))

	summary, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(pterm.TableData{
		{"Total Revenue", "Total Profit", "Total Orders", "Avg Order Value", "Profit Margin %"},
		{
			Money(rep.Totals.TotalRevenue),
			Money(rep.Totals.TotalProfit),
			fmt.Sprint(rep.Totals.TotalOrders),
			Money(rep.Totals.AvgOrderValue),
			Money(rep.Totals.ProfitMarginPct),
		},
	}).Srender()
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	b.WriteString(pterm.DefaultBox.WithTitle("Executive Summary").Sprint(summary) + "\n\n")

	trend, err := c.trendBars(rep.Daily)
	if err != nil {
		return err
	}
	b.WriteString(trend)

	if len(rep.Categories.Shares) > 0 {
		td := pterm.TableData{{"Category", "Revenue", "Contribution"}}
		for _, s := range rep.Categories.Shares {
			td = append(td, []string{s.Category, Money(s.Revenue), Pct(s.Percent)})
		}
		categories, err := pterm.DefaultTable.WithHasHeader().WithData(td).Srender()
		if err != nil {
			return fmt.Errorf("render categories: %w", err)
		}
		b.WriteString(boldCyan("Category Strength & Weakness") + "\n")
		fmt.Fprintf(&b, "Top: %s  Lowest: %s\n%s\n\n", rep.Categories.Top, rep.Categories.Bottom, categories)
	}

	b.WriteString(boldCyan("Growth Analysis") + "\n")
	b.WriteString(growthColor(rep.Growth)(GrowthLine(rep.Growth)) + "\n\n")

	b.WriteString(boldCyan("Business Health Analysis") + "\n")
	if rep.Health.Stable {
		b.WriteString(pterm.Success.Sprintln(rep.Health.Status))
	}
	for _, a := range rep.Health.Alerts {
		b.WriteString(pterm.Warning.Sprintln(a.Message))
	}
	b.WriteString("\n")

	b.WriteString(boldCyan("Profit Quality Analysis") + "\n")
	fmt.Fprintf(&b, "Average Discount: %s\nRevenue from Heavy Discount Sales: %s\n", Pct(rep.Discount.AvgDiscount), Pct(rep.Discount.DependencyPct))
	switch rep.Discount.Dependency {
	case models.DependencyHigh:
		b.WriteString(pterm.Warning.Sprintln(DependencyLine(rep.Discount.Dependency)))
	case models.DependencyLow:
		b.WriteString(pterm.Success.Sprintln(DependencyLine(rep.Discount.Dependency)))
	default:
		b.WriteString(pterm.Info.Sprintln(DependencyLine(rep.Discount.Dependency)))
	}
	b.WriteString("\n")

	b.WriteString(boldCyan("What To Expect (Next 7 Days)") + "\n")
	b.WriteString(ForecastLine(rep.Forecast) + "\n\n")

	b.WriteString(boldCyan("Recommended Actions for Store Owner") + "\n")
	if len(rep.Recommendations.Actions) == 0 {
		b.WriteString(rep.Recommendations.Default + "\n")
	}
	for _, a := range rep.Recommendations.Actions {
		b.WriteString("- " + a.Message + "\n")
	}
	b.WriteString("\n")

	b.WriteString(boldCyan("Overall Business Score") + "\n")
	score := fmt.Sprintf("%d / 100", rep.Score.Score)
	switch rep.Score.Band {
	case models.BandStrong:
		b.WriteString(boldGreen(score) + "\n" + pterm.Success.Sprintln(rep.Score.Detail))
	case models.BandNeedsAttention:
		b.WriteString(boldYellow(score) + "\n" + pterm.Info.Sprintln(rep.Score.Detail))
	default:
		b.WriteString(boldRed(score) + "\n" + pterm.Error.Sprintln(rep.Score.Detail))
	}

	_, err = io.WriteString(c.w, b.String())
	return err
}

// trendBars draws daily revenue as horizontal bars scaled to the best day and
// colored by the change against the previous day.
func (c *Console) trendBars(daily []models.DailySummary) (string, error) {
	var peak float64
	for _, d := range daily {
		peak = max(peak, d.Revenue)
	}
	if peak <= 0 {
		return pterm.Warning.Sprintln("No revenue in the current selection") + "\n", nil
	}

	td := pterm.TableData{{"Date", "Revenue", "", "Change"}}
	for i, d := range daily {
		bar := strings.Repeat("█", int(max(d.Revenue, 0)/peak*barWidth))
		colored := pterm.FgBlue.Sprint(bar)
		change := ""

		if i > 0 {
			prev := daily[i-1].Revenue
			switch {
			case prev <= 0:
				change = pterm.FgYellow.Sprint("N/A")
			case d.Revenue > prev:
				change = pterm.FgGreen.Sprintf("+%s%%", Money((d.Revenue-prev)/prev*100))
				colored = pterm.FgGreen.Sprint(bar)
			case d.Revenue < prev:
				change = pterm.FgRed.Sprintf("%s%%", Money((d.Revenue-prev)/prev*100))
				colored = pterm.FgRed.Sprint(bar)
			default:
				change = pterm.FgYellow.Sprint("0%")
			}
		}

		td = append(td, []string{d.Date.Format(time.DateOnly), Money(d.Revenue), colored, change})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(td).Srender()
	if err != nil {
		return "", fmt.Errorf("render trend: %w", err)
	}
	return pterm.DefaultBox.WithTitle("Daily Revenue Trend").WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(table) + "\n\n", nil
}

func growthColor(g models.Growth) func(a ...interface{}) string {
	switch {
	case !g.Available:
		return fmt.Sprint
	case g.Trend == models.GrowthPositive:
		return boldGreen
	case g.Trend == models.GrowthDeclining:
		return boldRed
	default:
		return boldYellow
	}
}
