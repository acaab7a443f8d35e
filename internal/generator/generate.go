package generator

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"store-dashboard/internal/ingest"
	"store-dashboard/internal/models"
)

const maxConcurrentProfiles = 4

// Generate synthesizes the transactions described by p.
func Generate(p Profile) ([]models.Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start, _ := p.Start()

	rng := rand.New(rand.NewPCG(p.Seed, p.Seed))
	weights := make([]float64, len(p.Categories))
	for i, c := range p.Categories {
		weights[i] = c.Weight
	}

	var txs []models.Transaction
	invoice := 1
	for day := range p.Days {
		date := start.AddDate(0, 0, day)
		for range dailyVolume(rng, p.Volume, date) {
			category := p.Categories[weightedIndex(rng, weights)]
			product := category.Products[rng.IntN(len(category.Products))]

			txs = append(txs, models.Transaction{
				Date:            date,
				InvoiceID:       fmt.Sprintf("INV%0*d", p.InvoiceDigits, invoice),
				ProductCategory: category.Name,
				ProductName:     product.Name,
				Quantity:        between(rng, p.Quantity),
				UnitPrice:       product.UnitPrice,
				CostPrice:       product.CostPrice,
				Discount:        pick(rng, p.Discounts),
				PaymentMethod:   pick(rng, p.PaymentMethods),
				CustomerType:    pick(rng, p.CustomerTypes),
				StoreType:       pick(rng, p.StoreTypes),
			})
			invoice++
		}
	}
	return txs, nil
}

func dailyVolume(rng *rand.Rand, v Volume, date time.Time) int {
	weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday

	r := v.Base
	switch {
	case v.Slump != nil && v.SlumpAfterDay > 0 && date.Day() > v.SlumpAfterDay:
		r = *v.Slump
	case v.Weekend != nil && weekend:
		r = *v.Weekend
	}

	n := between(rng, r)
	if weekend {
		n += v.WeekendBoost
	}
	if slices.Contains(v.BoostMonths, int(date.Month())) {
		n += v.MonthBoost
	}
	return n
}

func between(rng *rand.Rand, r Range) int {
	return r.Min + rng.IntN(r.Max-r.Min+1)
}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.IntN(len(values))]
}

func weightedIndex(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	target := rng.Float64() * total
	for i, w := range weights {
		if target < w {
			return i
		}
		target -= w
	}
	return len(weights) - 1
}

// WriteCSV writes txs with the ingest column layout. withDerived appends
// Revenue and Profit columns, which ingest ignores.
func WriteCSV(w io.Writer, txs []models.Transaction, withDerived bool) error {
	cw := csv.NewWriter(w)

	header := slices.Clone(ingest.Columns)
	if withDerived {
		header = append(header, "Revenue", "Profit")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, tx := range txs {
		record := []string{
			tx.Date.Format(time.DateOnly),
			tx.InvoiceID,
			tx.ProductCategory,
			tx.ProductName,
			strconv.Itoa(tx.Quantity),
			formatFloat(tx.UnitPrice),
			formatFloat(tx.CostPrice),
			formatFloat(tx.Discount),
			tx.PaymentMethod,
			tx.CustomerType,
			tx.StoreType,
		}
		if withDerived {
			record = append(record, formatFloat(tx.Revenue()), formatFloat(tx.Profit()))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Result describes one generated file.
type Result struct {
	Profile string
	Path    string
	Rows    int
	Revenue float64
	Profit  float64
}

func (r Result) MarginPct() float64 {
	if r.Revenue == 0 {
		return 0
	}
	return r.Profit / r.Revenue * 100
}

// WriteFile generates p into dir/p.Output.
func WriteFile(p Profile, dir string, withDerived bool) (Result, error) {
	txs, err := Generate(p)
	if err != nil {
		return Result{}, err
	}

	name := p.Output
	if name == "" {
		name = p.Name + ".csv"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := WriteCSV(file, txs, withDerived); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return Result{}, err
	}

	res := Result{Profile: p.Name, Path: path, Rows: len(txs)}
	for _, tx := range txs {
		res.Revenue += tx.Revenue()
		res.Profit += tx.Profit()
	}
	return res, nil
}

// GenerateAll writes every profile concurrently. Results keep the order of
// profiles; the first failure cancels the profiles not yet started.
func GenerateAll(ctx context.Context, profiles []Profile, dir string, withDerived bool) ([]Result, error) {
	results := make([]Result, len(profiles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProfiles)
	for i, p := range profiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := WriteFile(p, dir, withDerived)
			if err != nil {
				return fmt.Errorf("profile %s: %w", p.Name, err)
			}
			slog.Debug("dataset generated", "profile", p.Name, "path", res.Path, "rows", res.Rows)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
