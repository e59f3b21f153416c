/*
handlers.go - HTTP handlers over one registry instance

PURPOSE:
  Exposes the overtime registry via REST. Handles HTTP request/response and
  JSON serialization, and delegates every computation to the registry/engine.

ENDPOINTS:
  Days:
    GET    /api/days            Day rows for a month (?month=YYYY-MM)
    POST   /api/days            Add a day to a month
    PATCH  /api/days/{id}       Replace a single field
    DELETE /api/days/{id}       Remove a day

  Aggregates:
    GET    /api/summary         Four aggregate figures for the selected month
    GET    /api/distribution    Positive-only monthly distribution
    GET    /api/forecast        Days-to-target projection

  Configuration:
    GET    /api/config          toleranceEnabled + targetHours
    PUT    /api/config          Update both
    PUT    /api/month           Change the selected month

  Backup:
    GET    /api/export          Download the day collection
    POST   /api/import          Replace the day collection (all-or-nothing)
    POST   /api/reset           Clear the day collection

  Reports:
    GET    /api/reports/month   Per-day rows + totals (?month=YYYY-MM)
    GET    /api/reports/general One totals row per month

ERROR HANDLING:
  - 400: malformed bodies, unknown fields, bad month keys, rejected imports
  - 404: non-numeric day ids
  - 500: persistence failures
  Unknown day ids on update/remove are a no-op 204, mirroring the engine.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/overtime-engine/overtime"
	"github.com/warp/overtime-engine/registry"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Registry *registry.Registry
	Log      logrus.FieldLogger
}

// NewHandler creates a handler bound to the given registry.
func NewHandler(reg *registry.Registry, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{Registry: reg, Log: log}
}

// =============================================================================
// DAY HANDLERS
// =============================================================================

// ListDays returns the day rows for one month (the selected month when the
// query parameter is absent), plus the month keys available for selection.
func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = h.Registry.SelectedMonth()
	}

	tolerance := h.Registry.ToleranceEnabled()
	counts := h.Registry.DateCounts()
	days := h.Registry.MonthDays(month)

	writeJSON(w, http.StatusOK, DaysDTO{
		Month:           month,
		MonthLabel:      overtime.FormatYearMonth(month),
		Days:            toDayDTOs(days, tolerance, counts),
		AvailableMonths: h.Registry.AvailableMonths(),
	})
}

// CreateDay adds a day to the requested month.
func (h *Handler) CreateDay(w http.ResponseWriter, r *http.Request) {
	var req AddDayRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}

	day, err := h.Registry.AddDay(r.Context(), req.Month)
	if err != nil {
		if errors.Is(err, registry.ErrInvalidMonthKey) {
			writeError(w, http.StatusBadRequest, "invalid month key (use YYYY-MM)", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to add day", err)
		return
	}

	writeJSON(w, http.StatusCreated, toDayDTO(day, h.Registry.ToleranceEnabled(), h.Registry.DateCounts()))
}

// UpdateDay replaces a single field on a day. Unknown ids are a no-op.
func (h *Handler) UpdateDay(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "invalid day id", err)
		return
	}

	var req UpdateDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	value, err := decodeFieldValue(registry.Field(req.Field), req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid field value", err)
		return
	}

	if err := h.Registry.UpdateDay(r.Context(), id, registry.Field(req.Field), value); err != nil {
		if errors.Is(err, registry.ErrUnknownField) || errors.Is(err, registry.ErrInvalidFieldValue) {
			writeError(w, http.StatusBadRequest, "invalid field update", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update day", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeFieldValue decodes the raw JSON value as the type the field wants:
// booleans for the flags, strings for date and clock times.
func decodeFieldValue(field registry.Field, raw json.RawMessage) (any, error) {
	switch field {
	case registry.FieldHoliday, registry.FieldIgnored, registry.FieldDidNotWork:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("field %s wants a boolean: %w", field, err)
		}
		return b, nil
	default:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("field %s wants a string: %w", field, err)
		}
		return s, nil
	}
}

// DeleteDay removes a day. Unknown ids are a no-op.
func (h *Handler) DeleteDay(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "invalid day id", err)
		return
	}

	if err := h.Registry.RemoveDay(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove day", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// AGGREGATE HANDLERS
// =============================================================================

// GetSummary returns the four aggregate figures for one month (the selected
// month when the query parameter is absent).
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = h.Registry.SelectedMonth()
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(month, h.Registry.Summary(month)))
}

// GetDistribution returns the positive-only monthly distribution.
func (h *Handler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	points := h.Registry.Distribution()
	if points == nil {
		points = []overtime.MonthlyPoint{}
	}
	writeJSON(w, http.StatusOK, points)
}

// GetForecast returns the days-to-target projection.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Registry.Forecast())
}

// =============================================================================
// CONFIGURATION HANDLERS
// =============================================================================

// GetConfig returns the persisted configuration.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	dto := ConfigDTO{ToleranceEnabled: h.Registry.ToleranceEnabled()}
	if target := h.Registry.TargetHours(); target != nil {
		s := target.String()
		dto.TargetHours = &s
	}
	writeJSON(w, http.StatusOK, dto)
}

// PutConfig updates tolerance and target. A null targetHours clears the
// target.
func (h *Handler) PutConfig(w http.ResponseWriter, r *http.Request) {
	var req ConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var target *decimal.Decimal
	if req.TargetHours != nil {
		parsed, err := decimal.NewFromString(*req.TargetHours)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid target hours", err)
			return
		}
		target = &parsed
	}

	if err := h.Registry.SetToleranceEnabled(r.Context(), req.ToleranceEnabled); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist tolerance", err)
		return
	}
	if err := h.Registry.SetTargetHours(r.Context(), target); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist target", err)
		return
	}

	h.GetConfig(w, r)
}

// SelectMonth changes the selected month.
func (h *Handler) SelectMonth(w http.ResponseWriter, r *http.Request) {
	var req SelectMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.Registry.SelectMonth(req.Month); err != nil {
		writeError(w, http.StatusBadRequest, "invalid month key (use YYYY-MM)", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// BACKUP HANDLERS
// =============================================================================

// Export streams the full day collection as a downloadable backup.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.Registry.ExportAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export days", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+registry.ExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Import replaces the day collection with the uploaded backup. A rejected
// payload leaves existing state untouched.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read payload", err)
		return
	}

	if err := h.Registry.ImportAll(r.Context(), data); err != nil {
		if errors.Is(err, overtime.ErrNotDaySequence) {
			writeError(w, http.StatusBadRequest, "import rejected, existing days kept", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to import days", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset clears the day collection.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Registry.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reset days", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetMonthReport returns per-day rows and totals for one month.
func (h *Handler) GetMonthReport(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = h.Registry.SelectedMonth()
	}

	rows, totals := h.Registry.MonthReport(month)
	if rows == nil {
		rows = []overtime.ReportRow{}
	}
	writeJSON(w, http.StatusOK, MonthReportDTO{
		Month:  month,
		Label:  overtime.FormatYearMonth(month),
		Rows:   rows,
		Totals: totals,
	})
}

// GetGeneralReport returns one totals row per month.
func (h *Handler) GetGeneralReport(w http.ResponseWriter, r *http.Request) {
	months := h.Registry.GeneralReport()
	if months == nil {
		months = []overtime.MonthTotalsRow{}
	}
	writeJSON(w, http.StatusOK, GeneralReportDTO{Months: months})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	writeJSON(w, status, ErrorResponse{Error: msg})
}
