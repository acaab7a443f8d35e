package ingest

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"
)

const header = "Date,Invoice_ID,Product_Category,Product_Name,Quantity,Unit_Price,Cost_Price,Discount,Payment_Method,Customer_Type,Store_Type"

func TestParse_ValidData(t *testing.T) {
	csvData := header + `
2026-02-01,INV0001,Grocery,Rice 5kg,2,320,285,10,Cash,Regular,Offline
2026-02-01 00:00:00,INV0002,Snacks,Chips Box,1,120,100,0,UPI,Member,Online
2026/02/03,INV0003,Household,Floor Cleaner,3.0,250,220,25,Card,Member,Offline`

	txs, err := Parse(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Parse() with valid data should not error, got: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}

	first := txs[0]
	if !first.Date.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want 2026-02-01", first.Date)
	}
	if first.InvoiceID != "INV0001" || first.ProductCategory != "Grocery" || first.StoreType != "Offline" {
		t.Errorf("unexpected first transaction: %+v", first)
	}
	if first.Revenue() != 576 {
		t.Errorf("Revenue() = %v, want 576", first.Revenue())
	}
	if first.Profit() != 70 {
		t.Errorf("Profit() = %v, want 70", first.Profit())
	}
	if !txs[1].Date.Equal(first.Date) {
		t.Errorf("timestamped date should truncate to the same day, got %v", txs[1].Date)
	}
	if txs[2].Quantity != 3 {
		t.Errorf("Quantity = %d, want 3", txs[2].Quantity)
	}
}

func TestParse_ExtraAndReorderedColumns(t *testing.T) {
	csvData := `Store_Type,Date,Invoice_ID,Product_Category,Product_Name,Quantity,Unit_Price,Cost_Price,Discount,Payment_Method,Customer_Type,Revenue,Profit
Online,2026-03-01,INV00001,Grocery,Milk 1L,4,50,35,5,Cash,Member,190,60`

	txs, err := Parse(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(txs) != 1 || txs[0].StoreType != "Online" || txs[0].Quantity != 4 {
		t.Errorf("unexpected transactions: %+v", txs)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	txs, err := Parse(context.Background(), strings.NewReader(header+"\n"))
	if err != nil {
		t.Fatalf("header-only file should parse, got %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("expected no transactions, got %d", len(txs))
	}
}

func TestParse_SchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		missing []string
	}{
		{"empty file", "", Columns},
		{"misnamed column", strings.Replace(header, "Unit_Price", "UnitPrice", 1), []string{"Unit_Price"}},
		{"two missing", "Date,Invoice_ID,Product_Category,Product_Name,Quantity,Unit_Price,Cost_Price,Discount,Payment_Method", []string{"Customer_Type", "Store_Type"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), strings.NewReader(tt.input))
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
			if !slices.Equal(schemaErr.Missing, tt.missing) {
				t.Errorf("Missing = %v, want %v", schemaErr.Missing, tt.missing)
			}
		})
	}
}

func TestParse_ParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"bad date", "yesterday,INV1,Grocery,Rice,1,10,8,0,Cash,Regular,Offline", "Date"},
		{"bad quantity", "2026-02-01,INV1,Grocery,Rice,two,10,8,0,Cash,Regular,Offline", "Quantity"},
		{"fractional quantity", "2026-02-01,INV1,Grocery,Rice,1.5,10,8,0,Cash,Regular,Offline", "Quantity"},
		{"bad unit price", "2026-02-01,INV1,Grocery,Rice,1,ten,8,0,Cash,Regular,Offline", "Unit_Price"},
		{"bad cost price", "2026-02-01,INV1,Grocery,Rice,1,10,,0,Cash,Regular,Offline", "Cost_Price"},
		{"bad discount", "2026-02-01,INV1,Grocery,Rice,1,10,8,5%,Cash,Regular,Offline", "Discount"},
		{"zero quantity", "2026-02-01,INV1,Grocery,Rice,0,10,8,0,Cash,Regular,Offline", "Quantity"},
		{"negative quantity", "2026-02-01,INV1,Grocery,Rice,-2,10,8,0,Cash,Regular,Offline", "Quantity"},
		{"infinite quantity", "2026-02-01,INV1,Grocery,Rice,Inf,10,8,0,Cash,Regular,Offline", "Quantity"},
		{"NaN unit price", "2026-02-01,INV1,Grocery,Rice,1,NaN,8,0,Cash,Regular,Offline", "Unit_Price"},
		{"infinite cost price", "2026-02-01,INV1,Grocery,Rice,1,10,+Inf,0,Cash,Regular,Offline", "Cost_Price"},
		{"infinite discount", "2026-02-01,INV1,Grocery,Rice,1,10,8,-Inf,Cash,Regular,Offline", "Discount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := header + "\n2026-02-01,INV0,Grocery,Rice,1,10,8,0,Cash,Regular,Offline\n" + tt.row
			_, err := Parse(context.Background(), strings.NewReader(input))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if parseErr.Column != tt.column {
				t.Errorf("Column = %q, want %q", parseErr.Column, tt.column)
			}
			if parseErr.Line != 3 {
				t.Errorf("Line = %d, want 3", parseErr.Line)
			}
		})
	}
}

func TestParse_MalformedRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"short row", "2026-02-01,INV1,Grocery,Rice,1,10,8,0,Cash,Regular"},
		{"long row", "2026-02-01,INV1,Grocery,Rice,1,10,8,0,Cash,Regular,Offline,extra"},
		{"bad quoting", `2026-02-01,INV1,"Groc"ery,Rice,1,10,8,0,Cash,Regular,Offline`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := header + "\n2026-02-01,INV0,Grocery,Rice,1,10,8,0,Cash,Regular,Offline\n" + tt.row
			_, err := Parse(context.Background(), strings.NewReader(input))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if parseErr.Line != 3 {
				t.Errorf("Line = %d, want 3", parseErr.Line)
			}
			if parseErr.Column != "" {
				t.Errorf("Column = %q, want empty for a malformed row", parseErr.Column)
			}
			if !strings.Contains(parseErr.Error(), "malformed row") {
				t.Errorf("Error() = %q", parseErr.Error())
			}
		})
	}
}

func TestParse_CancelledContext(t *testing.T) {
	var b strings.Builder
	b.WriteString(header)
	for range 2500 {
		b.WriteString("\n2026-02-01,INV1,Grocery,Rice,1,10,8,0,Cash,Regular,Offline")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Parse(ctx, strings.NewReader(b.String())); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-12-31", "2024-12-31 18:30:00", "2024-12-31T18:30:00Z", "2024/12/31", "12/31/2024"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseDate("31st Dec"); err == nil {
		t.Error("ParseDate should reject unknown formats")
	}
}
