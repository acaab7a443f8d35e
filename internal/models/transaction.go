package models

import "time"

// Transaction is one line item of an invoice as it appears in the store CSV.
type Transaction struct {
	Date            time.Time `json:"date"`
	InvoiceID       string    `json:"invoice_id"`
	ProductCategory string    `json:"product_category"`
	ProductName     string    `json:"product_name"`
	Quantity        int       `json:"quantity"`
	UnitPrice       float64   `json:"unit_price"`
	CostPrice       float64   `json:"cost_price"`
	Discount        float64   `json:"discount"`
	PaymentMethod   string    `json:"payment_method"`
	CustomerType    string    `json:"customer_type"`
	StoreType       string    `json:"store_type"`
}

// Revenue is the discounted sale amount of the line item.
func (t Transaction) Revenue() float64 {
	return float64(t.Quantity) * t.UnitPrice * (1 - t.Discount/100)
}

// Profit is the margin of the line item before overhead. Discounts are not
// taken into account.
func (t Transaction) Profit() float64 {
	return (t.UnitPrice - t.CostPrice) * float64(t.Quantity)
}

type DailySummary struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	Profit  float64   `json:"profit"`
	Orders  int       `json:"orders"`
}

// Selection restricts a dataset to the listed categories and store types.
// An empty list selects nothing.
type Selection struct {
	Categories []string `json:"categories"`
	StoreTypes []string `json:"store_types"`
}

// FilterOptions lists the distinct filter values of a dataset in first-seen
// order.
type FilterOptions struct {
	Categories []string `json:"categories"`
	StoreTypes []string `json:"store_types"`
}

// All returns the selection that keeps every row, which is the default of
// the dashboard filters.
func (o FilterOptions) All() Selection {
	return Selection{
		Categories: append([]string(nil), o.Categories...),
		StoreTypes: append([]string(nil), o.StoreTypes...),
	}
}
