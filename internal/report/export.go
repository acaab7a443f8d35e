package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"store-dashboard/internal/models"
)

const (
	FormatConsole  = "console"
	FormatMarkdown = "md"
	FormatHTML     = "html"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatCSV      = "csv"
)

// FileFormats are the formats Export can write.
var FileFormats = []string{FormatMarkdown, FormatHTML, FormatPDF, FormatJSON, FormatCSV}

var writers = map[string]func(io.Writer, models.Report) error{
	FormatMarkdown: WriteMarkdown,
	FormatHTML:     WriteHTML,
	FormatPDF:      WritePDF,
	FormatJSON:     WriteJSON,
	FormatCSV:      WriteDailyCSV,
}

// Export writes rep once per format into dir and returns the absolute paths
// written. Unknown formats fail before any file is created.
func Export(rep models.Report, formats []string, dir, base string) ([]string, error) {
	for _, f := range formats {
		if _, ok := writers[f]; !ok {
			return nil, fmt.Errorf("unsupported export format %q", f)
		}
	}

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path, err := exportFile(rep, f, dir, base)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func exportFile(rep models.Report, format, dir, base string) (string, error) {
	name, err := generateFilename(base, dir, format)
	if err != nil {
		return "", err
	}

	file, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("error creating %s file: %w", strings.ToUpper(format), err)
	}
	defer file.Close()

	if err := writers[format](file, rep); err != nil {
		return "", fmt.Errorf("export %s: %w", format, err)
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	return filepath.Abs(name)
}

func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", base, timestamp, ext)), nil
}

// WriteJSON writes the report with every float rounded to two decimals.
func WriteJSON(w io.Writer, rep models.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Rounded(rep)); err != nil {
		return fmt.Errorf("error encoding JSON data: %w", err)
	}
	return nil
}

// WriteDailyCSV writes the daily summary table.
func WriteDailyCSV(w io.Writer, rep models.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Revenue", "Profit", "Orders"}); err != nil {
		return err
	}
	for _, d := range rep.Daily {
		record := []string{d.Date.Format(time.DateOnly), Money(d.Revenue), Money(d.Profit), strconv.Itoa(d.Orders)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Rounded returns a copy of rep for display with every amount and percentage
// rounded to two decimals.
func Rounded(rep models.Report) models.Report {
	out := rep

	out.Totals.TotalRevenue = Round2(rep.Totals.TotalRevenue)
	out.Totals.TotalProfit = Round2(rep.Totals.TotalProfit)
	out.Totals.AvgOrderValue = Round2(rep.Totals.AvgOrderValue)
	out.Totals.ProfitMarginPct = Round2(rep.Totals.ProfitMarginPct)

	out.Daily = make([]models.DailySummary, len(rep.Daily))
	for i, d := range rep.Daily {
		d.Revenue = Round2(d.Revenue)
		d.Profit = Round2(d.Profit)
		out.Daily[i] = d
	}

	out.Categories.Shares = make([]models.CategoryShare, len(rep.Categories.Shares))
	for i, s := range rep.Categories.Shares {
		s.Revenue = Round2(s.Revenue)
		s.Percent = Round2(s.Percent)
		out.Categories.Shares[i] = s
	}
	out.Categories.MaxPercent = Round2(rep.Categories.MaxPercent)

	out.Growth.FirstHalfMean = Round2(rep.Growth.FirstHalfMean)
	out.Growth.SecondHalfMean = Round2(rep.Growth.SecondHalfMean)
	out.Growth.RatePct = Round2(rep.Growth.RatePct)

	out.Recency.RecentRevenue = Round2(rep.Recency.RecentRevenue)
	out.Recency.OverallRevenue = Round2(rep.Recency.OverallRevenue)
	out.Recency.RecentOrders = Round2(rep.Recency.RecentOrders)
	out.Recency.OverallOrders = Round2(rep.Recency.OverallOrders)

	out.Discount.AvgDiscount = Round2(rep.Discount.AvgDiscount)
	out.Discount.DependencyPct = Round2(rep.Discount.DependencyPct)

	out.Forecast.Slope = Round2(rep.Forecast.Slope)
	out.Forecast.Intercept = Round2(rep.Forecast.Intercept)
	out.Forecast.Predicted = Round2(rep.Forecast.Predicted)
	return out
}
