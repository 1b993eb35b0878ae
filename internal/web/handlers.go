package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"wallet-dashboard/internal/domain"
	"wallet-dashboard/internal/gateway"
	"wallet-dashboard/internal/logger"
	"wallet-dashboard/internal/usecase"
)

// PreviewRows caps the rows rendered on the filter page; exports carry every row.
const PreviewRows = 500

// Handler contains the HTTP handlers of the dashboard.
type Handler struct {
	dashboard *usecase.DashboardUseCase
	templates *template.Template
}

// NewHandler parses the embedded templates and creates the handlers.
func NewHandler(dashboard *usecase.DashboardUseCase) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Handler{dashboard: dashboard, templates: tmpl}, nil
}

// ErrorResponse is the JSON body of a failed API call.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// FilterResponse is the JSON body of a filter call.
type FilterResponse struct {
	Predicates domain.Predicates       `json:"predicates"`
	Stats      domain.TransactionStats `json:"stats"`
	Count      int                     `json:"count"`
	Columns    []string                `json:"columns"`
	Rows       [][]string              `json:"rows"`
}

type dashboardPage struct {
	Overview  *domain.Overview
	UpdatedAt time.Time
}

type filterPage struct {
	Form        filterForm
	Options     *domain.FilterOptions
	Result      *domain.FilterResult
	Columns     []string
	Rows        [][]string
	Shown       int
	Matched     int
	ExportQuery template.URL
	Err         string
}

// Dashboard renders the overview page.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ov, err := h.dashboard.Overview(r.Context())
	if err != nil {
		h.renderError(w, r, statusFor(err), err)
		return
	}
	h.render(w, r, http.StatusOK, "dashboard", dashboardPage{Overview: ov, UpdatedAt: ov.Inception.AsOf})
}

// FilterPage renders the filter form and, when any predicate is given, the result.
func (h *Handler) FilterPage(w http.ResponseWriter, r *http.Request) {
	form := readFilterForm(r.URL.Query())
	page := filterPage{Form: form, ExportQuery: template.URL(form.Query().Encode())}
	status := http.StatusOK

	opts, err := h.dashboard.FilterOptions(r.Context())
	if err != nil {
		h.renderError(w, r, statusFor(err), err)
		return
	}
	page.Options = opts

	p, err := form.Predicates()
	if err == nil {
		var result *domain.FilterResult
		result, err = h.dashboard.Filter(r.Context(), p)
		if err == nil {
			page.Result = result
			page.Columns = gateway.ExportColumns(result.Table)
			page.Matched = len(result.Table.Records)
			page.Shown = min(page.Matched, PreviewRows)
			page.Rows = make([][]string, 0, page.Shown)
			for _, rec := range result.Table.Records[:page.Shown] {
				page.Rows = append(page.Rows, gateway.ExportRow(rec, page.Columns))
			}
		}
	}
	if err != nil {
		status = statusFor(err)
		page.Err = err.Error()
	}
	h.render(w, r, status, "filter", page)
}

// GetOverview returns every dashboard section as JSON.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.dashboard.Overview(r.Context())
	if err != nil {
		writeError(w, statusFor(err), "Failed to build overview", err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

// FilterTransactions returns the filtered inception transactions and their statistics.
func (h *Handler) FilterTransactions(w http.ResponseWriter, r *http.Request) {
	result, ok := h.filter(w, r)
	if !ok {
		return
	}
	columns := gateway.ExportColumns(result.Table)
	rows := make([][]string, 0, len(result.Table.Records))
	for _, rec := range result.Table.Records {
		rows = append(rows, gateway.ExportRow(rec, columns))
	}
	writeJSON(w, http.StatusOK, FilterResponse{
		Predicates: result.Predicates,
		Stats:      result.Stats,
		Count:      len(rows),
		Columns:    columns,
		Rows:       rows,
	})
}

// GetFilterOptions returns the values offered by the filter form.
func (h *Handler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.dashboard.FilterOptions(r.Context())
	if err != nil {
		writeError(w, statusFor(err), "Failed to list filter options", err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// ExportCSV downloads the filtered subset as CSV.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "text/csv; charset=utf-8", "filtered_transactions.csv", gateway.WriteTransactionsCSV)
}

// ExportXLSX downloads the filtered subset as an Excel workbook.
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "filtered_transactions.xlsx", gateway.WriteTransactionsXLSX)
}

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type tableWriter func(w io.Writer, table *domain.TransactionTable) error

func (h *Handler) export(w http.ResponseWriter, r *http.Request, contentType, filename string, write tableWriter) {
	result, ok := h.filter(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := write(&buf, result.Table); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export transactions", err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log := logger.FromContext(r.Context())
		log.Warn().Err(err).Msg("export write failed")
	}
}

func (h *Handler) filter(w http.ResponseWriter, r *http.Request) (*domain.FilterResult, bool) {
	p, err := readFilterForm(r.URL.Query()).Predicates()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter", err)
		return nil, false
	}
	result, err := h.dashboard.Filter(r.Context(), p)
	if err != nil {
		writeError(w, statusFor(err), "Failed to filter transactions", err)
		return nil, false
	}
	return result, true
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Str("template", name).Msg("template render failed")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, err error) {
	log := logger.FromContext(r.Context())
	logEvent(log, status).Err(err).Msg("request failed")
	h.render(w, r, status, "filter", filterPage{Err: err.Error()})
}

func logEvent(log zerolog.Logger, status int) *zerolog.Event {
	if status >= http.StatusInternalServerError {
		return log.Error()
	}
	return log.Warn()
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case domain.IsClientError(err):
		return http.StatusBadRequest
	case domain.IsDataUnavailable(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrMalformedRecord):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
