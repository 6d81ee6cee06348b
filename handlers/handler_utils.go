package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/scm-sandbox/scm-backend/middleware"
	"github.com/scm-sandbox/scm-backend/models"
	"github.com/scm-sandbox/scm-backend/pkg/errors"
	"github.com/scm-sandbox/scm-backend/pkg/monitoring"
	"github.com/scm-sandbox/scm-backend/shared/utils"
)

// parseFilter reads the page's filter set from the query string
func parseFilter(r *http.Request, defaultWindowMonths int) models.ReportFilter {
	return models.ParseReportFilter(r.URL.Query(), defaultWindowMonths, time.Now())
}

// wantsJSON reports whether the request is a background refresh
func wantsJSON(r *http.Request) bool {
	return middleware.IsAJAXRequest(r)
}

// pageParam reads a per-tab page number, defaulting to 1
func pageParam(r *http.Request, name string) int {
	page, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// formUint reads an unsigned integer form field, 0 when absent or invalid
func formUint(r *http.Request, name string) uint {
	value, err := strconv.ParseUint(r.FormValue(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(value)
}

// formInt reads an integer form field, 0 when absent or invalid
func formInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.FormValue(name))
	if err != nil {
		return 0
	}
	return value
}

// respondServiceError maps a service error onto the failure envelope.
// Server-side failures are logged with the request ID so the envelope can
// stay terse.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := err.Error()
	if apiErr := errors.GetAPIError(err); apiErr != nil {
		status = apiErr.HTTPStatus
		message = apiErr.Message
	}
	if status >= http.StatusInternalServerError {
		slog.Error("Report request failed",
			"requestId", middleware.RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}
	utils.RespondWithError(w, status, message)
}

// finishEdit records the action outcome and either redirects with the flash
// flag (the browser form path) or reports the failure envelope.
func finishEdit(w http.ResponseWriter, r *http.Request, action string, err error) {
	monitoring.RecordEditAction(r.Context(), action, err == nil)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, r.URL.Path+"?updated="+action, http.StatusFound)
}
