package insights

import (
	"log/slog"

	"store-dashboard/internal/models"
)

// Run computes the whole report from the loaded rows and a filter selection.
// It keeps no state between calls.
func Run(txs []models.Transaction, sel models.Selection) models.Report {
	filtered := Filter(txs, sel)
	daily := Aggregate(filtered)

	slog.Debug("pipeline run",
		"rows", len(txs),
		"filtered_rows", len(filtered),
		"dates", len(daily),
	)

	return Build(filtered, daily)
}

// Build derives every report section from already filtered rows and their
// daily summary.
func Build(filtered []models.Transaction, daily []models.DailySummary) models.Report {
	report := models.Report{
		Rows:       len(filtered),
		Totals:     Totals(filtered),
		Daily:      daily,
		Categories: Categories(filtered),
		Growth:     GrowthOf(daily),
		Recency:    RecencyOf(daily),
		Discount:   Discounts(filtered),
		Forecast:   ForecastOf(daily),
	}

	snap := Snapshot{
		ProfitMarginPct: report.Totals.ProfitMarginPct,
		AvgDiscount:     report.Discount.AvgDiscount,
		MaxCategoryPct:  report.Categories.MaxPercent,
		Recency:         report.Recency,
	}
	report.Health = HealthOf(snap)
	report.Recommendations = RecommendationsOf(snap)
	report.Score = ScoreOf(snap)
	return report
}
