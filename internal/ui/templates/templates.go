// Package templates renders the dashboard page and the report sections that
// the SSE handler patches in place.
package templates

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"store-dashboard/internal/models"
	"store-dashboard/internal/report"
)

//go:embed *.html
var files embed.FS

// SectionIDs are the element ids of the report sections, in page order.
var SectionIDs = []string{
	"summary", "trends", "categories", "growth", "health",
	"discount", "forecast", "actions", "score",
}

var funcs = template.FuncMap{
	"money":           report.Money,
	"pct":             report.Pct,
	"growthLine":      report.GrowthLine,
	"dependencyLine":  report.DependencyLine,
	"revenueChart":    func(d []models.DailySummary) template.HTML { return TrendChart(d, revenueOf, "#2563eb") },
	"profitChart":     func(d []models.DailySummary) template.HTML { return TrendChart(d, profitOf, "#059669") },
	"growthClass":     growthClass,
	"dependencyClass": dependencyClass,
	"bandClass":       bandClass,
}

var pages = template.Must(template.New("").Funcs(funcs).ParseFS(files, "*.html"))

// Signals is the client state bound to the filter checkboxes.
type Signals struct {
	Categories []string `json:"categories"`
	Stores     []string `json:"stores"`
}

type page struct {
	Options models.FilterOptions
	Report  *models.Report
	Signals string
}

// Dashboard renders the full page. A nil report renders the upload prompt.
func Dashboard(opts models.FilterOptions, rep *models.Report) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signals, err := json.Marshal(Signals{Categories: opts.Categories, Stores: opts.StoreTypes})
		if err != nil {
			return err
		}
		return pages.ExecuteTemplate(w, "dashboard", page{
			Options: opts,
			Report:  rep,
			Signals: string(signals),
		})
	})
}

// Section renders one report section by element id.
func Section(id string, rep models.Report) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if pages.Lookup(id) == nil {
			return fmt.Errorf("unknown section %q", id)
		}
		return pages.ExecuteTemplate(w, id, rep)
	})
}

// RenderSection is Section rendered to a string, as datastar expects.
func RenderSection(ctx context.Context, id string, rep models.Report) (string, error) {
	var b strings.Builder
	if err := Section(id, rep).Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func growthClass(g models.Growth) string {
	switch {
	case !g.Available:
		return "muted"
	case g.Trend == models.GrowthPositive:
		return "ok"
	case g.Trend == models.GrowthDeclining:
		return "bad"
	default:
		return "info"
	}
}

func dependencyClass(d models.DiscountDependency) string {
	switch d {
	case models.DependencyHigh:
		return "warn"
	case models.DependencyLow:
		return "ok"
	default:
		return "info"
	}
}

func bandClass(b models.ScoreBand) string {
	switch b {
	case models.BandStrong:
		return "ok"
	case models.BandNeedsAttention:
		return "info"
	default:
		return "bad"
	}
}
