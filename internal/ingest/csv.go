package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"store-dashboard/internal/models"
)

// Columns are the required CSV headers. Extra columns, such as precomputed
// Revenue and Profit, are ignored.
var Columns = []string{
	"Date", "Invoice_ID", "Product_Category", "Product_Name",
	"Quantity", "Unit_Price", "Cost_Price", "Discount",
	"Payment_Method", "Customer_Type", "Store_Type",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

// SchemaError reports required columns missing from the header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ParseError reports a value or row that could not be parsed. Line is the
// 1-based line of the CSV file, counting the header. Column is empty when the
// row itself is malformed (wrong field count, bad quoting).
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: malformed row: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: column %s: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a store transaction CSV. It fails on the first missing column
// or unparseable value; there is no partial result.
func Parse(ctx context.Context, r io.Reader) ([]models.Transaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Missing: append([]string(nil), Columns...)}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0, 1024)
	line := 1
	for {
		if line%1000 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, rowError(err, line)
		}

		tx, err := parseRecord(record, index, line)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// rowError turns a csv reader failure into a ParseError so malformed rows
// are reported like bad values.
func rowError(err error, line int) error {
	var csvErr *csv.ParseError
	if !errors.As(err, &csvErr) {
		return fmt.Errorf("read line %d: %w", line, err)
	}
	if csvErr.Line > 0 {
		line = csvErr.Line
	}
	return &ParseError{Line: line, Err: csvErr.Err}
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return index, nil
}

func parseRecord(record []string, index map[string]int, line int) (models.Transaction, error) {
	get := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	fail := func(col string, err error) error {
		return &ParseError{Line: line, Column: col, Value: get(col), Err: err}
	}

	date, err := ParseDate(get("Date"))
	if err != nil {
		return models.Transaction{}, fail("Date", err)
	}

	quantity, err := parseQuantity(get("Quantity"))
	if err != nil {
		return models.Transaction{}, fail("Quantity", err)
	}

	var prices [3]float64
	for i, col := range []string{"Unit_Price", "Cost_Price", "Discount"} {
		v, err := parseNumber(get(col))
		if err != nil {
			return models.Transaction{}, fail(col, err)
		}
		prices[i] = v
	}

	return models.Transaction{
		Date:            date,
		InvoiceID:       get("Invoice_ID"),
		ProductCategory: get("Product_Category"),
		ProductName:     get("Product_Name"),
		Quantity:        quantity,
		UnitPrice:       prices[0],
		CostPrice:       prices[1],
		Discount:        prices[2],
		PaymentMethod:   get("Payment_Method"),
		CustomerType:    get("Customer_Type"),
		StoreType:       get("Store_Type"),
	}, nil
}

// ParseDate accepts ISO dates, with or without a time part, and a few common
// slash layouts. The result is truncated to the calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date format")
}

// parseNumber rejects NaN and infinities, which ParseFloat accepts.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return v, nil
}

// parseQuantity accepts integral floats such as "3.0", which spreadsheet
// exports produce. Quantities must be positive.
func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := parseNumber(s)
		if ferr != nil {
			return 0, ferr
		}
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("quantity must be a whole number")
		}
		n = int(f)
	}
	if n <= 0 {
		return 0, fmt.Errorf("quantity must be positive")
	}
	return n, nil
}
