package insights

import (
	"math"
	"testing"
	"time"

	"store-dashboard/internal/models"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func day(n int) time.Time {
	return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func line(date time.Time, invoice, category, store string, qty int, unit, cost, discount float64) models.Transaction {
	return models.Transaction{
		Date:            date,
		InvoiceID:       invoice,
		ProductCategory: category,
		ProductName:     category + " item",
		Quantity:        qty,
		UnitPrice:       unit,
		CostPrice:       cost,
		Discount:        discount,
		PaymentMethod:   "Cash",
		CustomerType:    "Regular",
		StoreType:       store,
	}
}

func dailyFromRevenue(t *testing.T, revenue ...float64) []models.DailySummary {
	t.Helper()
	out := make([]models.DailySummary, len(revenue))
	for i, r := range revenue {
		out[i] = models.DailySummary{Date: day(i), Revenue: r, Orders: 10}
	}
	return out
}
