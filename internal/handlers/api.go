package handlers

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"store-dashboard/internal/errors"
	"store-dashboard/internal/ingest"
	"store-dashboard/internal/models"
	"store-dashboard/internal/observability"
	"store-dashboard/internal/report"
	"store-dashboard/internal/services"
)

// NoneValue in a filter query selects nothing, like an emptied multi-select.
const NoneValue = "none"

type APIHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
	maxUpload int64
}

func NewAPIHandlers(dashboard *services.Dashboard, logger *slog.Logger, maxUpload int64) *APIHandlers {
	return &APIHandlers{
		dashboard: dashboard,
		logger:    logger,
		maxUpload: maxUpload,
	}
}

func (h *APIHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	errors.WriteError(w, h.logger, toAppError(err), observability.GetRequestID(r.Context()))
}

// HandleUpload replaces the session dataset with the CSV in the "file" field.
func (h *APIHandlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			h.fail(w, r, errors.TooLarge(fmt.Sprintf("upload exceeds %d bytes", h.maxUpload)))
			return
		}
		h.fail(w, r, errors.BadRequestWrap(err, "expected a multipart form upload"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.fail(w, r, errors.BadRequestWrap(err, `missing CSV file in form field "file"`))
		return
	}
	defer file.Close()

	ds, err := h.dashboard.Load(r.Context(), header.Filename, file)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if acceptsHTML(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	errors.WriteSuccess(w, map[string]any{
		"dataset_id":  ds.ID,
		"name":        ds.Name,
		"rows":        len(ds.Transactions),
		"categories":  ds.Options.Categories,
		"store_types": ds.Options.StoreTypes,
	})
}

func (h *APIHandlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.report(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccessWithHeaders(w, report.Rounded(rep), map[string]string{"Cache-Control": "no-store"})
}

func (h *APIHandlers) HandleReportHTML(w http.ResponseWriter, r *http.Request) {
	rep, err := h.report(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.WriteHTML(w, rep); err != nil {
		h.logger.Error("render html report", "error", err)
	}
}

func (h *APIHandlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.dashboard.Options()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, opts)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]any{
		"status":         "healthy",
		"timestamp":      time.Now().Format(time.RFC3339),
		"version":        "1.0.0",
		"dataset_loaded": h.dashboard.Loaded(),
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dashboard.Stats())
}

func (h *APIHandlers) report(r *http.Request) (models.Report, error) {
	opts, err := h.dashboard.Options()
	if err != nil {
		return models.Report{}, err
	}
	return h.dashboard.Report(r.Context(), selectionFromQuery(r, opts))
}

// selectionFromQuery reads repeated or comma separated "category" and
// "store" parameters. A missing parameter selects every option.
func selectionFromQuery(r *http.Request, opts models.FilterOptions) models.Selection {
	q := r.URL.Query()
	return models.Selection{
		Categories: queryList(q["category"], opts.Categories),
		StoreTypes: queryList(q["store"], opts.StoreTypes),
	}
}

func queryList(raw, all []string) []string {
	if raw == nil {
		return all
	}
	out := []string{}
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" || part == NoneValue {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func acceptsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// toAppError maps service and ingestion failures onto API error codes.
func toAppError(err error) error {
	var appErr *errors.AppError
	var schemaErr *ingest.SchemaError
	var parseErr *ingest.ParseError

	switch {
	case stderrors.As(err, &appErr):
		return appErr
	case stderrors.Is(err, services.ErrNoDataset):
		return errors.NoDataset("no dataset loaded; upload a CSV file first")
	case stderrors.As(err, &schemaErr):
		return errors.Schema(err, "dataset is missing required columns").WithDetails(schemaErr.Error())
	case stderrors.As(err, &parseErr):
		return errors.Parse(err, "dataset contains a value that could not be parsed").WithDetails(parseErr.Error())
	default:
		return errors.InternalWrap(err, "failed to process request")
	}
}
