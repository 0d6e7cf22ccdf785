package ui

import (
	"encoding/json"
	"net/http"

	apperrors "powerplan/internal/errors"
	"powerplan/ports"
)

// handleIndex renders the calculator landing page
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "index.html", map[string]interface{}{
		"Title": "A/B Test Power Calculator",
	})
}

// handleComputePower solves for statistical power
func (a *App) handleComputePower(w http.ResponseWriter, r *http.Request) {
	var req ports.PowerRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	report, err := a.calculator.ComputePower(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, report)
}

// handleComputeMDE solves for the minimum detectable effect
func (a *App) handleComputeMDE(w http.ResponseWriter, r *http.Request) {
	var req ports.MdeRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	report, err := a.calculator.ComputeMDE(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, report)
}

// handleComputeSampleSize solves for the required total sample
func (a *App) handleComputeSampleSize(w http.ResponseWriter, r *http.Request) {
	var req ports.SampleSizeRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	report, err := a.calculator.ComputeSampleSize(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, report)
}

// handleSweep runs an allocation sweep and returns every grid point
func (a *App) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req ports.SweepRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	sweep, err := a.calculator.SweepByAllocation(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, sweep)
}

// handleSweepExport runs a sweep and streams it as a spreadsheet download
func (a *App) handleSweepExport(w http.ResponseWriter, r *http.Request) {
	var req ports.SweepRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}
	sweep, err := a.calculator.SweepByAllocation(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}
	data, err := a.exporter.Export(sweep)
	if err != nil {
		a.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", a.exporter.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+a.exporter.Filename(sweep))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// decodeJSON parses the request body; on failure it writes a 400 and reports false
func (a *App) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		a.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
			"code":  apperrors.CodeInvalidInput,
		})
		return false
	}
	return true
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps coded application errors onto HTTP statuses. Out-of-domain
// inputs are the caller's problem (422); everything else is ours (500).
func (a *App) writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeDomainError:
		status = http.StatusUnprocessableEntity
	case apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		a.logger.Error("request failed: %v", err)
	}
	a.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  code,
	})
}
