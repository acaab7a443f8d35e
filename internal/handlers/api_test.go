package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"

	"store-dashboard/internal/models"
	"store-dashboard/internal/services"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var response map[string]any
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	return response
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestAPIHandlers_HandleReport(t *testing.T) {
	h := NewAPIHandlers(createTestDashboard(t), slog.Default(), 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	w := httptest.NewRecorder()
	h.HandleReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected content-type 'application/json', got %q", ct)
	}

	response := decodeEnvelope(t, w)
	if success, ok := response["success"].(bool); !ok || !success {
		t.Error("expected success=true in response")
	}
	data, ok := response["data"].(map[string]any)
	if !ok {
		t.Fatal("expected report object in data")
	}
	totals := data["totals"].(map[string]any)
	if totals["total_revenue"] != 260.0 {
		t.Errorf("total_revenue = %v, want 260", totals["total_revenue"])
	}
}

func TestAPIHandlers_HandleReportSelections(t *testing.T) {
	h := NewAPIHandlers(createTestDashboard(t), slog.Default(), 1<<20)

	tests := []struct {
		name    string
		query   string
		rows    float64
		revenue float64
	}{
		{name: "all by default", query: "", rows: 3, revenue: 260},
		{name: "one category", query: "category=Snacks", rows: 1, revenue: 60},
		{name: "comma separated", query: "category=Grocery,Snacks&store=Offline", rows: 2, revenue: 200},
		{name: "repeated", query: "store=Online&store=Offline", rows: 3, revenue: 260},
		{name: "emptied selection", query: "category=none", rows: 0, revenue: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/report?"+tt.query, nil)
			w := httptest.NewRecorder()
			h.HandleReport(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			data := decodeEnvelope(t, w)["data"].(map[string]any)
			if data["rows"] != tt.rows {
				t.Errorf("rows = %v, want %v", data["rows"], tt.rows)
			}
			if got := data["totals"].(map[string]any)["total_revenue"]; got != tt.revenue {
				t.Errorf("total_revenue = %v, want %v", got, tt.revenue)
			}
		})
	}
}

func TestAPIHandlers_NoDataset(t *testing.T) {
	h := NewAPIHandlers(services.NewDashboard(), slog.Default(), 1<<20)

	for _, handle := range []http.HandlerFunc{h.HandleReport, h.HandleOptions, h.HandleReportHTML} {
		w := httptest.NewRecorder()
		handle(w, httptest.NewRequest(http.MethodGet, "/", nil))

		if w.Code != http.StatusConflict {
			t.Errorf("expected status %d, got %d", http.StatusConflict, w.Code)
		}
		errObj := decodeEnvelope(t, w)["error"].(map[string]any)
		if errObj["code"] != "NO_DATASET" {
			t.Errorf("error code = %v, want NO_DATASET", errObj["code"])
		}
	}
}

func TestAPIHandlers_HandleOptions(t *testing.T) {
	h := NewAPIHandlers(createTestDashboard(t), slog.Default(), 1<<20)

	w := httptest.NewRecorder()
	h.HandleOptions(w, httptest.NewRequest(http.MethodGet, "/api/options", nil))

	var response struct {
		Data models.FilterOptions `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(response.Data.Categories, []string{"Grocery", "Snacks"}) {
		t.Errorf("categories = %v", response.Data.Categories)
	}
	if !slices.Equal(response.Data.StoreTypes, []string{"Offline", "Online"}) {
		t.Errorf("store types = %v", response.Data.StoreTypes)
	}
}

func TestAPIHandlers_HandleUpload(t *testing.T) {
	d := services.NewDashboard()
	h := NewAPIHandlers(d, slog.Default(), 1<<20)

	body, contentType := multipartBody(t, "file", "sales.csv", testCSV)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.HandleUpload(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	data := decodeEnvelope(t, w)["data"].(map[string]any)
	if data["rows"] != 3.0 || data["name"] != "sales.csv" {
		t.Errorf("unexpected upload response: %v", data)
	}
	if !d.Loaded() {
		t.Error("dataset should be loaded after upload")
	}
}

func TestAPIHandlers_HandleUploadFormRedirects(t *testing.T) {
	h := NewAPIHandlers(services.NewDashboard(), slog.Default(), 1<<20)

	body, contentType := multipartBody(t, "file", "sales.csv", testCSV)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	w := httptest.NewRecorder()
	h.HandleUpload(w, req)

	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Errorf("expected redirect to /, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestAPIHandlers_HandleUploadErrors(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		content  string
		maxBytes int64
		status   int
		code     string
	}{
		{name: "missing column", field: "file", content: "Date,Invoice_ID\n2026-02-01,INV1\n", maxBytes: 1 << 20, status: http.StatusUnprocessableEntity, code: "SCHEMA_ERROR"},
		{name: "bad date", field: "file", content: strings.Replace(testCSV, "2026-02-02", "yesterday", 1), maxBytes: 1 << 20, status: http.StatusUnprocessableEntity, code: "PARSE_ERROR"},
		{name: "short row", field: "file", content: testCSV + "\n2026-02-03,INV9,Grocery,Rice,1,10,8,0,Cash,Regular\n", maxBytes: 1 << 20, status: http.StatusUnprocessableEntity, code: "PARSE_ERROR"},
		{name: "NaN price", field: "file", content: strings.Replace(testCSV, ",100,", ",NaN,", 1), maxBytes: 1 << 20, status: http.StatusUnprocessableEntity, code: "PARSE_ERROR"},
		{name: "wrong field", field: "upload", content: testCSV, maxBytes: 1 << 20, status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "too large", field: "file", content: strings.Repeat(testCSV, 20), maxBytes: 256, status: http.StatusRequestEntityTooLarge, code: "PAYLOAD_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := createTestDashboard(t)
			before, _ := d.Dataset()
			h := NewAPIHandlers(d, slog.Default(), tt.maxBytes)

			body, contentType := multipartBody(t, tt.field, "bad.csv", tt.content)
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			h.HandleUpload(w, req)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
			errObj := decodeEnvelope(t, w)["error"].(map[string]any)
			if errObj["code"] != tt.code {
				t.Errorf("code = %v, want %s", errObj["code"], tt.code)
			}
			if after, _ := d.Dataset(); after.ID != before.ID {
				t.Error("failed upload must keep the previous dataset")
			}
		})
	}
}

func TestAPIHandlers_HandleReportHTML(t *testing.T) {
	h := NewAPIHandlers(createTestDashboard(t), slog.Default(), 1<<20)

	w := httptest.NewRecorder()
	h.HandleReportHTML(w, httptest.NewRequest(http.MethodGet, "/report.html?store=Offline", nil))

	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("content-type = %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "<h2>Executive Summary</h2>") {
		t.Error("expected rendered markdown sections")
	}
}

func TestAPIHandlers_HandleHealthAndStats(t *testing.T) {
	h := NewAPIHandlers(createTestDashboard(t), slog.Default(), 1<<20)

	w := httptest.NewRecorder()
	h.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	health := decodeEnvelope(t, w)["data"].(map[string]any)
	if health["status"] != "healthy" || health["dataset_loaded"] != true {
		t.Errorf("unexpected health: %v", health)
	}

	w = httptest.NewRecorder()
	h.HandleStats(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	stats := decodeEnvelope(t, w)["data"].(map[string]any)
	if stats["rows"] != 3.0 || stats["name"] != "test.csv" {
		t.Errorf("unexpected stats: %v", stats)
	}
}

func TestQueryList(t *testing.T) {
	all := []string{"A", "B"}
	tests := []struct {
		raw  url.Values
		want []string
	}{
		{raw: url.Values{}, want: all},
		{raw: url.Values{"category": {"B"}}, want: []string{"B"}},
		{raw: url.Values{"category": {"A, B"}}, want: []string{"A", "B"}},
		{raw: url.Values{"category": {"none"}}, want: []string{}},
		{raw: url.Values{"category": {""}}, want: []string{}},
	}
	for _, tt := range tests {
		got := queryList(tt.raw["category"], all)
		if !slices.Equal(got, tt.want) || got == nil {
			t.Errorf("queryList(%v) = %#v, want %#v", tt.raw, got, tt.want)
		}
	}
}
