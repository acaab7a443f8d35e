package handlers

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"store-dashboard/internal/errors"
	"store-dashboard/internal/models"
	"store-dashboard/internal/observability"
	"store-dashboard/internal/report"
	"store-dashboard/internal/services"
	"store-dashboard/internal/ui/templates"
)

const noDatasetSection = `<section id="summary" class="card"><p class="warn">Please upload your store transaction CSV file.</p></section>`

type SSEHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewSSEHandlers(dashboard *services.Dashboard, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

// reportSignals are the raw numbers patched alongside the rendered sections.
type reportSignals struct {
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
	Orders    int     `json:"orders"`
	MarginPct float64 `json:"marginPct"`
	Score     int     `json:"score"`
	Forecast  float64 `json:"forecast"`
}

// HandleReport recomputes the report for the current checkbox signals and
// patches every section of the page.
func (h *SSEHandlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	var sig templates.Signals
	if err := datastar.ReadSignals(r, &sig); err != nil {
		errors.WriteError(w, h.logger, errors.BadRequestWrap(err, "invalid datastar signals"), observability.GetRequestID(r.Context()))
		return
	}

	opts, err := h.dashboard.Options()
	if stderrors.Is(err, services.ErrNoDataset) {
		sse := datastar.NewSSE(w, r)
		if err := sse.PatchElements(noDatasetSection); err != nil {
			h.logger.Debug("patch elements", "error", err)
		}
		return
	}

	sel := models.Selection{Categories: sig.Categories, StoreTypes: sig.Stores}
	if sel.Categories == nil {
		sel.Categories = opts.Categories
	}
	if sel.StoreTypes == nil {
		sel.StoreTypes = opts.StoreTypes
	}

	rep, err := h.dashboard.Report(r.Context(), sel)
	if err != nil {
		errors.WriteError(w, h.logger, toAppError(err), observability.GetRequestID(r.Context()))
		return
	}

	sse := datastar.NewSSE(w, r)
	for _, id := range templates.SectionIDs {
		html, err := templates.RenderSection(r.Context(), id, rep)
		if err != nil {
			h.logger.Error("render section", "section", id, "error", err)
			return
		}
		if err := sse.PatchElements(html); err != nil {
			h.logger.Debug("client went away", "error", err)
			return
		}
	}

	signals, err := json.Marshal(map[string]any{
		"report": reportSignals{
			Revenue:   report.Round2(rep.Totals.TotalRevenue),
			Profit:    report.Round2(rep.Totals.TotalProfit),
			Orders:    rep.Totals.TotalOrders,
			MarginPct: report.Round2(rep.Totals.ProfitMarginPct),
			Score:     rep.Score.Score,
			Forecast:  report.Round2(rep.Forecast.Predicted),
		},
	})
	if err != nil {
		h.logger.Error("marshal report signals", "error", err)
		return
	}
	if err := sse.PatchSignals(signals); err != nil {
		h.logger.Debug("client went away", "error", err)
	}
}
