package generator

import (
	"maps"
	"slices"
)

var (
	paymentMethods = []string{"Cash", "Card", "UPI"}
	customerTypes  = []string{"Member", "Regular"}
)

// Grocery-store catalogue shared by the 2026 profiles. Only the cost side
// differs between the weak and strong month.
func storeCatalogue(cost map[string]float64, weights [4]float64) []Category {
	p := func(name string, unit float64) Product {
		return Product{Name: name, UnitPrice: unit, CostPrice: cost[name]}
	}
	return []Category{
		{Name: "Grocery", Weight: weights[0], Products: []Product{
			p("Rice 5kg", 320), p("Oil 1L", 150), p("Wheat Flour 5kg", 280), p("Milk 1L", 50),
		}},
		{Name: "Snacks", Weight: weights[1], Products: []Product{
			p("Chips Box", 120), p("Biscuits Carton", 300),
		}},
		{Name: "Personal Care", Weight: weights[2], Products: []Product{
			p("Shampoo", 180), p("Soap Pack", 200),
		}},
		{Name: "Household", Weight: weights[3], Products: []Product{
			p("Detergent 2kg", 400), p("Floor Cleaner", 250),
		}},
	}
}

var builtins = map[string]Profile{
	"retail-2024": {
		Name:      "retail-2024",
		Output:    "retail_data.csv",
		StartDate: "2024-01-01",
		Days:      366,
		Seed:      42,
		Categories: []Category{
			{Name: "Electronics", Weight: 1, Products: []Product{
				{"Headphones", 1500, 1000}, {"Mouse", 700, 450}, {"Keyboard", 1200, 800},
				{"Tablet", 15000, 11000}, {"Speaker", 4000, 2800},
			}},
			{Name: "Clothing", Weight: 1, Products: []Product{
				{"T-Shirt", 800, 500}, {"Jeans", 2500, 1700}, {"Jacket", 3500, 2500},
				{"Shoes", 3000, 2000}, {"Shirt", 1200, 800},
			}},
			{Name: "Grocery", Weight: 1, Products: []Product{
				{"Rice", 60, 40}, {"Oil", 150, 100}, {"Milk", 40, 25},
				{"Tea", 200, 120}, {"Biscuits", 20, 12},
			}},
		},
		Volume: Volume{
			Base:         Range{Min: 5, Max: 14},
			WeekendBoost: 5,
			BoostMonths:  []int{10, 11, 12},
			MonthBoost:   5,
		},
		Quantity:       Range{Min: 1, Max: 4},
		Discounts:      []float64{0, 5, 10, 15},
		PaymentMethods: paymentMethods,
		CustomerTypes:  customerTypes,
		StoreTypes:     []string{"Online", "Offline"},
		InvoiceDigits:  5,
	},
	"weak-feb-2026": {
		Name:      "weak-feb-2026",
		Output:    "sales_feb_2026_bad.csv",
		StartDate: "2026-02-01",
		Days:      28,
		Seed:      42,
		Categories: storeCatalogue(map[string]float64{
			"Rice 5kg": 285, "Oil 1L": 130, "Wheat Flour 5kg": 250, "Milk 1L": 42,
			"Chips Box": 100, "Biscuits Carton": 260,
			"Shampoo": 155, "Soap Pack": 170,
			"Detergent 2kg": 360, "Floor Cleaner": 220,
		}, [4]float64{70, 12, 10, 8}),
		Volume: Volume{
			Base:          Range{Min: 9, Max: 12},
			SlumpAfterDay: 21,
			Slump:         &Range{Min: 6, Max: 8},
		},
		Quantity:       Range{Min: 1, Max: 3},
		Discounts:      []float64{5, 10, 15, 20, 25},
		PaymentMethods: paymentMethods,
		CustomerTypes:  customerTypes,
		StoreTypes:     []string{"Offline"},
		InvoiceDigits:  4,
	},
	"strong-mar-2026": {
		Name:      "strong-mar-2026",
		Output:    "sales_march_2026_good.csv",
		StartDate: "2026-03-01",
		Days:      31,
		Seed:      100,
		Categories: storeCatalogue(map[string]float64{
			"Rice 5kg": 260, "Oil 1L": 115, "Wheat Flour 5kg": 220, "Milk 1L": 35,
			"Chips Box": 85, "Biscuits Carton": 210,
			"Shampoo": 130, "Soap Pack": 150,
			"Detergent 2kg": 300, "Floor Cleaner": 180,
		}, [4]float64{55, 20, 15, 10}),
		Volume: Volume{
			Base:    Range{Min: 12, Max: 15},
			Weekend: &Range{Min: 15, Max: 19},
		},
		Quantity:       Range{Min: 2, Max: 5},
		Discounts:      []float64{5, 10, 15},
		PaymentMethods: paymentMethods,
		CustomerTypes:  customerTypes,
		StoreTypes:     []string{"Offline", "Online"},
		InvoiceDigits:  5,
	},
}

// Builtin returns a copy of the named built-in profile.
func Builtin(name string) (Profile, bool) {
	p, ok := builtins[name]
	if !ok {
		return Profile{}, false
	}
	p.Categories = slices.Clone(p.Categories)
	return p, true
}

func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtins))
}
