package insights

import (
	"slices"
	"time"

	"store-dashboard/internal/models"
)

type dayGroup struct {
	summary  models.DailySummary
	invoices map[string]struct{}
}

// Aggregate groups rows by date. Orders counts distinct invoices per day, so
// an invoice with several line items counts once. The result is sorted by date.
func Aggregate(txs []models.Transaction) []models.DailySummary {
	groups := make(map[time.Time]*dayGroup)

	for _, tx := range txs {
		day := truncateDay(tx.Date)
		g := groups[day]
		if g == nil {
			g = &dayGroup{
				summary:  models.DailySummary{Date: day},
				invoices: make(map[string]struct{}),
			}
			groups[day] = g
		}
		g.summary.Revenue += tx.Revenue()
		g.summary.Profit += tx.Profit()
		g.invoices[tx.InvoiceID] = struct{}{}
	}

	result := make([]models.DailySummary, 0, len(groups))
	for _, g := range groups {
		g.summary.Orders = len(g.invoices)
		result = append(result, g.summary)
	}
	slices.SortFunc(result, func(a, b models.DailySummary) int {
		return a.Date.Compare(b.Date)
	})
	return result
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
