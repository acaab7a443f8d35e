package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"store-dashboard/internal/models"
)

const maxPDFDailyRows = 31

// WritePDF lays the report out as titled sections on A4 pages.
func WritePDF(w io.Writer, rep models.Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(Title, true)
	pdf.AddPage()

	pdf.SetFillColor(40, 40, 40)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  "+Title), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 7, fmt.Sprintf("%d rows across %d days", rep.Rows, len(rep.Daily)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section := func(title, content string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(3)
		if content != "" {
			pdf.SetFont("Arial", "", 10)
			pdf.SetTextColor(50, 50, 50)
			pdf.MultiCell(190, 5, tr(content), "", "L", false)
		}
		pdf.Ln(5)
	}

	section("Executive Summary", fmt.Sprintf(
		"Total Revenue: %s\nTotal Profit: %s\nTotal Orders: %d\nAvg Order Value: %s\nProfit Margin: %s",
		Money(rep.Totals.TotalRevenue), Money(rep.Totals.TotalProfit), rep.Totals.TotalOrders,
		Money(rep.Totals.AvgOrderValue), Pct(rep.Totals.ProfitMarginPct)))

	section("Performance Overview", "")
	if len(rep.Daily) == 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(190, 5, "No daily data for the current selection.", "", "L", false)
	} else {
		dailyTable(pdf, rep.Daily)
	}
	pdf.Ln(5)

	categories := "No categories in the current selection."
	if len(rep.Categories.Shares) > 0 {
		categories = fmt.Sprintf("Top: %s\nLowest: %s\n", rep.Categories.Top, rep.Categories.Bottom)
		for _, s := range rep.Categories.Shares {
			categories += fmt.Sprintf("%s: %s (%s)\n", s.Category, Money(s.Revenue), Pct(s.Percent))
		}
	}
	section("Category Strength & Weakness", categories)
	section("Growth Analysis", GrowthLine(rep.Growth))
	section("Business Health Analysis", findings(rep.Health.Alerts, rep.Health.Status))
	section("Profit Quality Analysis", fmt.Sprintf("Average Discount: %s\nHeavy Discount Revenue: %s\n%s",
		Pct(rep.Discount.AvgDiscount), Pct(rep.Discount.DependencyPct), DependencyLine(rep.Discount.Dependency)))
	section("What To Expect (Next 7 Days)", ForecastLine(rep.Forecast))
	section("Recommended Actions", findings(rep.Recommendations.Actions, rep.Recommendations.Default))
	section("Overall Business Score", fmt.Sprintf("%d / 100 (%s)\n%s", rep.Score.Score, rep.Score.Band, rep.Score.Detail))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// dailyTable prints the last days of the period; long periods are truncated
// to keep the table on one page.
func dailyTable(pdf *gofpdf.Fpdf, daily []models.DailySummary) {
	if len(daily) > maxPDFDailyRows {
		daily = daily[len(daily)-maxPDFDailyRows:]
	}
	widths := []float64{45, 50, 50, 45}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range []string{"Date", "Revenue", "Profit", "Orders"} {
		pdf.CellFormat(widths[i], 6, h, "B", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, d := range daily {
		pdf.CellFormat(widths[0], 5, d.Date.Format(time.DateOnly), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 5, Money(d.Revenue), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 5, Money(d.Profit), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 5, fmt.Sprint(d.Orders), "", 1, "L", false, 0, "")
	}
}

func findings(fs []models.Finding, fallback string) string {
	if len(fs) == 0 {
		return fallback
	}
	var s string
	for _, f := range fs {
		s += "- " + f.Message + "\n"
	}
	return s
}
