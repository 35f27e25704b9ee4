package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func RegisterScanRoutes(r chi.Router) {
	// Collection routes for /scans
	r.Get("/scans", ListScanRunsHandler)
	r.Post("/scans", TriggerScanHandler)

	// Routes for specific runs: /scans/{scanID}
	r.Route("/scans/{scanID}", func(subRouter chi.Router) {
		subRouter.Get("/", func(w http.ResponseWriter, req *http.Request) {
			runID, ok := scanIDParam(w, req)
			if !ok {
				return
			}
			GetScanRunHandler(w, req, runID)
		})
		subRouter.Get("/document", func(w http.ResponseWriter, req *http.Request) {
			runID, ok := scanIDParam(w, req)
			if !ok {
				return
			}
			GetScanRunDocumentHandler(w, req, runID)
		})
		subRouter.Delete("/", func(w http.ResponseWriter, req *http.Request) {
			runID, ok := scanIDParam(w, req)
			if !ok {
				return
			}
			DeleteScanRunHandler(w, req, runID)
		})
	})
}

// scanIDParam extracts and validates the scanID path parameter.
func scanIDParam(w http.ResponseWriter, req *http.Request) (string, bool) {
	runID := strings.TrimSpace(chi.URLParam(req, "scanID"))
	if _, err := uuid.Parse(runID); err != nil {
		writeJSONError(w, "Invalid scan run ID format", http.StatusBadRequest)
		return "", false
	}
	return runID, true
}
