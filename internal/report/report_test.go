package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"store-dashboard/internal/insights"
	"store-dashboard/internal/models"
)

func sampleReport() models.Report {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	var txs []models.Transaction
	for i := range 12 {
		txs = append(txs, models.Transaction{
			Date:            start.AddDate(0, 0, i),
			InvoiceID:       "INV" + string(rune('A'+i)),
			ProductCategory: []string{"Grocery", "Snacks"}[i%2],
			ProductName:     "Item",
			Quantity:        1 + i%3,
			UnitPrice:       100.555,
			CostPrice:       70,
			Discount:        10,
			StoreType:       "Offline",
		})
	}
	return insights.Run(txs, models.Selection{Categories: []string{"Grocery", "Snacks"}, StoreTypes: []string{"Offline"}})
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
		str  string
	}{
		{in: 1.005, want: 1.01, str: "1.01"},
		{in: 2.344, want: 2.34, str: "2.34"},
		{in: -3.456, want: -3.46, str: "-3.46"},
		{in: 0, want: 0, str: "0.00"},
		{in: 260, want: 260, str: "260.00"},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got := Money(tt.in); got != tt.str {
			t.Errorf("Money(%v) = %q, want %q", tt.in, got, tt.str)
		}
	}
}

func TestRound2_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Round2(v); !math.IsNaN(v) && got != v {
			t.Errorf("Round2(%v) = %v", v, got)
		}
		if got := Money(v); got == "" {
			t.Errorf("Money(%v) is empty", v)
		}
	}
	if got := Money(math.Inf(1)); got != "+Inf" {
		t.Errorf("Money(+Inf) = %q", got)
	}
}

func TestMarkdown_Sections(t *testing.T) {
	out := Markdown(sampleReport())

	for _, heading := range []string{
		"## Executive Summary",
		"## Performance Overview",
		"## Category Strength & Weakness",
		"## Growth Analysis",
		"## Business Health Analysis",
		"## Profit Quality Analysis",
		"## What To Expect (Next 7 Days)",
		"## Recommended Actions for Store Owner",
		"## Overall Business Score",
	} {
		if !strings.Contains(out, heading) {
			t.Errorf("markdown missing %q", heading)
		}
	}
	if !strings.Contains(out, "Expected Revenue After 7 Days") {
		t.Error("forecast should be available for 12 days of data")
	}
}

func TestMarkdown_EmptySelection(t *testing.T) {
	rep := insights.Run(nil, models.Selection{})
	out := Markdown(rep)

	if !strings.Contains(out, "No daily data for the current selection.") {
		t.Error("empty report should say there is no daily data")
	}
	if !strings.Contains(out, rep.Growth.Reason) || !strings.Contains(out, rep.Forecast.Reason) {
		t.Error("unavailable sections should print their reason")
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Error("expected a full HTML document")
	}
	if !strings.Contains(out, "<table>") || !strings.Contains(out, "<h2>Executive Summary</h2>") {
		t.Errorf("GFM tables and headings should be rendered, got:\n%s", out)
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, sampleReport()); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output should start with a PDF header")
	}
}

func TestWriteDailyCSV(t *testing.T) {
	rep := sampleReport()
	var buf bytes.Buffer
	if err := WriteDailyCSV(&buf, rep); err != nil {
		t.Fatalf("WriteDailyCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != len(rep.Daily)+1 {
		t.Fatalf("expected %d records, got %d", len(rep.Daily)+1, len(records))
	}
	if got := strings.Join(records[0], ","); got != "Date,Revenue,Profit,Orders" {
		t.Errorf("header = %q", got)
	}
	if records[1][0] != "2026-03-01" {
		t.Errorf("first date = %q", records[1][0])
	}
}

func TestWriteJSON_Rounded(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded models.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, d := range decoded.Daily {
		if d.Revenue != Round2(d.Revenue) {
			t.Errorf("daily revenue %v is not rounded", d.Revenue)
		}
	}
}

func TestRounded_DoesNotMutate(t *testing.T) {
	rep := sampleReport()
	original := rep.Daily[0].Revenue

	_ = Rounded(rep)
	if rep.Daily[0].Revenue != original {
		t.Error("Rounded should copy the daily slice")
	}
}

func TestConsole_Render(t *testing.T) {
	var buf bytes.Buffer
	if err := NewConsole(&buf).Render(sampleReport()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Executive Summary", "Daily Revenue Trend", "Overall Business Score", "/ 100"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q", want)
		}
	}
}

func TestConsole_RenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewConsole(&buf).Render(insights.Run(nil, models.Selection{})); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No revenue in the current selection") {
		t.Error("empty report should warn about missing revenue")
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()

	paths, err := Export(sampleReport(), FileFormats, dir, "store_report")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(paths) != len(FileFormats) {
		t.Fatalf("expected %d files, got %d", len(FileFormats), len(paths))
	}
	for i, p := range paths {
		if filepath.Ext(p) != "."+FileFormats[i] {
			t.Errorf("path %s should have extension %s", p, FileFormats[i])
		}
		info, err := os.Stat(p)
		if err != nil || info.Size() == 0 {
			t.Errorf("export %s missing or empty: %v", p, err)
		}
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	dir := t.TempDir()

	if _, err := Export(sampleReport(), []string{"md", "xlsx"}, dir, "store_report"); err == nil {
		t.Fatal("Export() should reject unknown formats")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("no file should be written, found %d", len(entries))
	}
}
