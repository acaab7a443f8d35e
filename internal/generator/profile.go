// Package generator synthesizes store transaction datasets from declarative
// profiles. Output is deterministic for a given profile and seed.
package generator

import (
	"errors"
	"fmt"
	"time"
)

type Product struct {
	Name      string  `json:"name" yaml:"name" toml:"name"`
	UnitPrice float64 `json:"unit_price" yaml:"unit_price" toml:"unit_price"`
	CostPrice float64 `json:"cost_price" yaml:"cost_price" toml:"cost_price"`
}

// Category is picked with probability proportional to Weight; products
// within it are picked uniformly.
type Category struct {
	Name     string    `json:"name" yaml:"name" toml:"name"`
	Weight   float64   `json:"weight" yaml:"weight" toml:"weight"`
	Products []Product `json:"products" yaml:"products" toml:"products"`
}

// Range is an inclusive integer range.
type Range struct {
	Min int `json:"min" yaml:"min" toml:"min"`
	Max int `json:"max" yaml:"max" toml:"max"`
}

func (r Range) validate(field string) error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("%s: invalid range [%d, %d]", field, r.Min, r.Max)
	}
	return nil
}

// Volume decides how many transactions a day gets. Weekend replaces Base on
// Saturdays and Sundays; Slump replaces both after SlumpAfterDay. Boosts are
// added on top of whichever range applied.
type Volume struct {
	Base          Range  `json:"base" yaml:"base" toml:"base"`
	Weekend       *Range `json:"weekend,omitempty" yaml:"weekend,omitempty" toml:"weekend,omitempty"`
	WeekendBoost  int    `json:"weekend_boost,omitempty" yaml:"weekend_boost,omitempty" toml:"weekend_boost,omitempty"`
	BoostMonths   []int  `json:"boost_months,omitempty" yaml:"boost_months,omitempty" toml:"boost_months,omitempty"`
	MonthBoost    int    `json:"month_boost,omitempty" yaml:"month_boost,omitempty" toml:"month_boost,omitempty"`
	SlumpAfterDay int    `json:"slump_after_day,omitempty" yaml:"slump_after_day,omitempty" toml:"slump_after_day,omitempty"`
	Slump         *Range `json:"slump,omitempty" yaml:"slump,omitempty" toml:"slump,omitempty"`
}

type Profile struct {
	Name           string     `json:"name" yaml:"name" toml:"name"`
	Output         string     `json:"output" yaml:"output" toml:"output"`
	StartDate      string     `json:"start_date" yaml:"start_date" toml:"start_date"`
	Days           int        `json:"days" yaml:"days" toml:"days"`
	Seed           uint64     `json:"seed" yaml:"seed" toml:"seed"`
	Categories     []Category `json:"categories" yaml:"categories" toml:"categories"`
	Volume         Volume     `json:"volume" yaml:"volume" toml:"volume"`
	Quantity       Range      `json:"quantity" yaml:"quantity" toml:"quantity"`
	Discounts      []float64  `json:"discounts" yaml:"discounts" toml:"discounts"`
	PaymentMethods []string   `json:"payment_methods" yaml:"payment_methods" toml:"payment_methods"`
	CustomerTypes  []string   `json:"customer_types" yaml:"customer_types" toml:"customer_types"`
	StoreTypes     []string   `json:"store_types" yaml:"store_types" toml:"store_types"`
	InvoiceDigits  int        `json:"invoice_digits" yaml:"invoice_digits" toml:"invoice_digits"`
}

func (p Profile) Start() (time.Time, error) {
	t, err := time.Parse(time.DateOnly, p.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("profile %s: start_date: %w", p.Name, err)
	}
	return t, nil
}

// Validate reports every problem with p at once.
func (p Profile) Validate() error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if _, err := p.Start(); err != nil {
		errs = append(errs, err)
	}
	if p.Days <= 0 {
		errs = append(errs, fmt.Errorf("days must be positive, got %d", p.Days))
	}
	if p.InvoiceDigits <= 0 {
		errs = append(errs, fmt.Errorf("invoice_digits must be positive, got %d", p.InvoiceDigits))
	}

	var totalWeight float64
	if len(p.Categories) == 0 {
		errs = append(errs, errors.New("at least one category is required"))
	}
	for _, c := range p.Categories {
		if c.Weight < 0 {
			errs = append(errs, fmt.Errorf("category %s: negative weight", c.Name))
		}
		if len(c.Products) == 0 {
			errs = append(errs, fmt.Errorf("category %s: no products", c.Name))
		}
		totalWeight += c.Weight
	}
	if len(p.Categories) > 0 && totalWeight <= 0 {
		errs = append(errs, errors.New("category weights must sum to a positive value"))
	}

	errs = append(errs, p.Volume.Base.validate("volume.base"), p.Quantity.validate("quantity"))
	if p.Quantity.Min < 1 {
		errs = append(errs, errors.New("quantity: minimum must be at least 1"))
	}
	if p.Volume.Weekend != nil {
		errs = append(errs, p.Volume.Weekend.validate("volume.weekend"))
	}
	if p.Volume.Slump != nil {
		errs = append(errs, p.Volume.Slump.validate("volume.slump"))
	}

	for _, list := range []struct {
		field string
		n     int
	}{
		{"discounts", len(p.Discounts)},
		{"payment_methods", len(p.PaymentMethods)},
		{"customer_types", len(p.CustomerTypes)},
		{"store_types", len(p.StoreTypes)},
	} {
		if list.n == 0 {
			errs = append(errs, fmt.Errorf("%s must not be empty", list.field))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid profile %q: %w", p.Name, err)
	}
	return nil
}
