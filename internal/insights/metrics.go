package insights

import (
	"cmp"
	"slices"

	"store-dashboard/internal/models"
)

const (
	minGrowthDates      = 10
	growthBandPct       = 5.0
	recentWindow        = 5
	decliningRatio      = 0.85
	improvingRatio      = 1.10
	heavyDiscountPct    = 25.0
	highDependencyPct   = 40.0
	lowDependencyPct    = 15.0
	insufficientHistory = "insufficient data: growth analysis needs at least 10 days"
	zeroBaseline        = "insufficient data: first-half revenue is zero"
)

// Totals computes the executive summary of the filtered rows.
func Totals(txs []models.Transaction) models.ExecutiveTotals {
	var totals models.ExecutiveTotals
	invoices := make(map[string]struct{})

	for _, tx := range txs {
		totals.TotalRevenue += tx.Revenue()
		totals.TotalProfit += tx.Profit()
		invoices[tx.InvoiceID] = struct{}{}
	}

	totals.TotalOrders = len(invoices)
	totals.AvgOrderValue = SafeRatio(totals.TotalRevenue, float64(totals.TotalOrders), 0)
	totals.ProfitMarginPct = Percent(totals.TotalProfit, totals.TotalRevenue)
	return totals
}

// Categories sums revenue per category, sorted by revenue descending. Equal
// revenues are ordered by category name.
func Categories(txs []models.Transaction) models.CategoryBreakdown {
	revenue := make(map[string]float64)
	var total float64
	for _, tx := range txs {
		r := tx.Revenue()
		revenue[tx.ProductCategory] += r
		total += r
	}

	shares := make([]models.CategoryShare, 0, len(revenue))
	for category, r := range revenue {
		shares = append(shares, models.CategoryShare{Category: category, Revenue: r})
	}
	slices.SortFunc(shares, func(a, b models.CategoryShare) int {
		if c := cmp.Compare(b.Revenue, a.Revenue); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})

	breakdown := models.CategoryBreakdown{Shares: shares}
	for i := range shares {
		shares[i].Percent = Percent(shares[i].Revenue, total)
		breakdown.MaxPercent = max(breakdown.MaxPercent, shares[i].Percent)
	}
	if len(shares) > 0 {
		breakdown.Top = shares[0].Category
		breakdown.Bottom = shares[len(shares)-1].Category
	}
	return breakdown
}

// GrowthOf compares the mean revenue of the first and second half of the
// daily summary. Fewer than ten days, or a zero first-half mean, leave the
// section unavailable.
func GrowthOf(daily []models.DailySummary) models.Growth {
	if len(daily) < minGrowthDates {
		return models.Growth{Reason: insufficientHistory}
	}

	revenue := dailyRevenue(daily)
	mid := len(revenue) / 2
	g := models.Growth{
		FirstHalfMean:  mean(revenue[:mid]),
		SecondHalfMean: mean(revenue[mid:]),
	}
	if g.FirstHalfMean == 0 {
		g.Reason = zeroBaseline
		return g
	}

	g.Available = true
	g.RatePct = Percent(g.SecondHalfMean-g.FirstHalfMean, g.FirstHalfMean)
	switch {
	case g.RatePct > growthBandPct:
		g.Trend = models.GrowthPositive
	case g.RatePct < -growthBandPct:
		g.Trend = models.GrowthDeclining
	default:
		g.Trend = models.GrowthStable
	}
	return g
}

// RecencyOf compares the last five days against the whole period.
func RecencyOf(daily []models.DailySummary) models.Recency {
	revenue := dailyRevenue(daily)
	orders := make([]float64, len(daily))
	for i, d := range daily {
		orders[i] = float64(d.Orders)
	}

	tail := max(len(daily)-recentWindow, 0)
	rec := models.Recency{
		RecentRevenue:  mean(revenue[tail:]),
		OverallRevenue: mean(revenue),
		RecentOrders:   mean(orders[tail:]),
		OverallOrders:  mean(orders),
		RevenueTrend:   models.RecencySteady,
	}
	switch {
	case revenueDeclining(rec):
		rec.RevenueTrend = models.RecencyDeclining
	case revenueImproving(rec):
		rec.RevenueTrend = models.RecencyImproving
	}
	return rec
}

// Discounts computes the average discount and the share of revenue that
// comes from rows discounted by more than 25%.
func Discounts(txs []models.Transaction) models.DiscountMetrics {
	var discountSum, heavy, total float64
	for _, tx := range txs {
		discountSum += tx.Discount
		r := tx.Revenue()
		total += r
		if tx.Discount > heavyDiscountPct {
			heavy += r
		}
	}

	m := models.DiscountMetrics{
		AvgDiscount:   SafeRatio(discountSum, float64(len(txs)), 0),
		DependencyPct: Percent(heavy, total),
	}
	switch {
	case m.DependencyPct > highDependencyPct:
		m.Dependency = models.DependencyHigh
	case m.DependencyPct < lowDependencyPct:
		m.Dependency = models.DependencyLow
	default:
		m.Dependency = models.DependencyModerate
	}
	return m
}

func revenueDeclining(r models.Recency) bool {
	return r.RecentRevenue < r.OverallRevenue*decliningRatio
}

func revenueImproving(r models.Recency) bool {
	return r.RecentRevenue > r.OverallRevenue*improvingRatio
}

func ordersDeclining(r models.Recency) bool {
	return r.RecentOrders < r.OverallOrders*decliningRatio
}

func dailyRevenue(daily []models.DailySummary) []float64 {
	out := make([]float64, len(daily))
	for i, d := range daily {
		out[i] = d.Revenue
	}
	return out
}
