package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"citetool/core"
	"citetool/database"
	"citetool/logger"
	"citetool/models"

	"github.com/google/uuid"
)

// ListScanRunsHandler handles GET requests to list recorded scan runs.
// @Summary List scan runs
// @Description Retrieves a paginated list of recorded scan runs, newest first by default.
// @Tags Scans
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param sort_by query string false "Sort column (created_at, root_path, citation_count, id)"
// @Param sort_order query string false "Sort order (ASC or DESC)"
// @Success 200 {object} models.PaginatedScanRunsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /scans [get]
func ListScanRunsHandler(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	sortBy := r.URL.Query().Get("sort_by")
	sortOrder := r.URL.Query().Get("sort_order")

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if sortBy == "" {
		sortBy = "created_at"
	}
	if sortOrder == "" || (strings.ToUpper(sortOrder) != "ASC" && strings.ToUpper(sortOrder) != "DESC") {
		sortOrder = "DESC"
	}

	offset := (page - 1) * limit

	runs, totalRecords, err := database.GetAllScanRunsPaginated(limit, offset, sortBy, sortOrder)
	if err != nil {
		logger.Error("ListScanRunsHandler: Error fetching scan runs: %v", err)
		writeJSONError(w, "Failed to retrieve scan runs", http.StatusInternalServerError)
		return
	}

	totalPages := (totalRecords + int64(limit) - 1) / int64(limit)
	if totalPages == 0 && totalRecords > 0 {
		totalPages = 1
	}

	writeJSON(w, models.PaginatedScanRunsResponse{
		Page:         page,
		Limit:        limit,
		TotalRecords: totalRecords,
		TotalPages:   totalPages,
		Runs:         runs,
	}, http.StatusOK)
}

// GetScanRunHandler handles GET requests for a single scan run by ID.
// @Summary Get scan run
// @Description Retrieves one scan run, including its rendered document.
// @Tags Scans
// @Produce json
// @Param scanID path string true "Scan run ID"
// @Success 200 {object} models.ScanRun
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /scans/{scanID} [get]
func GetScanRunHandler(w http.ResponseWriter, r *http.Request, runID string) {
	run, err := database.GetScanRunByID(runID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeJSONError(w, "Scan run not found", http.StatusNotFound)
		} else {
			logger.Error("GetScanRunHandler: Error fetching scan run %s: %v", runID, err)
			writeJSONError(w, "Failed to retrieve scan run", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, run, http.StatusOK)
}

// TriggerScanHandler handles POST requests to run a scan synchronously.
// @Summary Trigger a scan
// @Description Scans the given directory for citation comments, renders the document and records the run.
// @Tags Scans
// @Accept json
// @Produce json
// @Param request body models.ScanTriggerRequest true "Scan parameters"
// @Success 201 {object} models.ScanRun
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /scans [post]
func TriggerScanHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ScanTriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("TriggerScanHandler: Error decoding request body: %v", err)
		writeJSONError(w, "Invalid request payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.RootPath) == "" {
		writeJSONError(w, "root_path cannot be empty", http.StatusBadRequest)
		return
	}

	format := req.Format
	if format == "" {
		stored, err := database.GetDefaultFormat()
		if err != nil {
			logger.Error("TriggerScanHandler: Error reading default format setting: %v", err)
		}
		format = stored
	}

	recursive := true
	if req.Recursive != nil {
		recursive = *req.Recursive
	}

	report, err := core.GenerateDocumentation(r.Context(), core.Options{
		RootPath:          req.RootPath,
		Format:            format,
		IncludeExtensions: req.Extensions,
		Recursive:         recursive,
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidRoot):
			writeJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, core.ErrUnsupportedFormat):
			writeJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			logger.Error("TriggerScanHandler: Scan of %s failed: %v", req.RootPath, err)
			writeJSONError(w, "Scan failed", http.StatusInternalServerError)
		}
		return
	}

	run := models.ScanRun{
		ID:            uuid.NewString(),
		RootPath:      req.RootPath,
		Format:        report.Format,
		FilesScanned:  report.FilesScanned,
		FilesSkipped:  report.FilesSkipped,
		CitationCount: report.CitationCount,
		DurationMs:    report.Duration.Milliseconds(),
		Document:      report.Document,
	}
	if err := database.CreateScanRun(run); err != nil {
		logger.Error("TriggerScanHandler: Error recording scan run %s: %v", run.ID, err)
		writeJSONError(w, "Failed to record scan run", http.StatusInternalServerError)
		return
	}

	logger.Info("TriggerScanHandler: Scan %s of %s recorded (%d citations)", run.ID, run.RootPath, run.CitationCount)
	writeJSON(w, run, http.StatusCreated)
}

// GetScanRunDocumentHandler handles GET requests for a run's rendered document.
// @Summary Get scan run document
// @Description Retrieves the rendered document of one scan run, served with a content type matching its format.
// @Tags Scans
// @Produce plain
// @Param scanID path string true "Scan run ID"
// @Success 200 {string} string "Rendered document"
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /scans/{scanID}/document [get]
func GetScanRunDocumentHandler(w http.ResponseWriter, r *http.Request, runID string) {
	document, format, err := database.GetScanRunDocument(runID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeJSONError(w, "Scan run not found", http.StatusNotFound)
		} else {
			logger.Error("GetScanRunDocumentHandler: Error fetching document for scan run %s: %v", runID, err)
			writeJSONError(w, "Failed to retrieve scan run document", http.StatusInternalServerError)
		}
		return
	}

	switch format {
	case core.FormatHTML:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	case core.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	default:
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(document))
}

// DeleteScanRunHandler handles DELETE requests to remove a recorded scan run.
// @Summary Delete scan run
// @Description Removes one scan run and its stored document.
// @Tags Scans
// @Param scanID path string true "Scan run ID"
// @Success 204 "No Content"
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /scans/{scanID} [delete]
func DeleteScanRunHandler(w http.ResponseWriter, r *http.Request, runID string) {
	deleted, err := database.DeleteScanRun(runID)
	if err != nil {
		logger.Error("DeleteScanRunHandler: Error deleting scan run %s: %v", runID, err)
		writeJSONError(w, "Failed to delete scan run", http.StatusInternalServerError)
		return
	}
	if !deleted {
		writeJSONError(w, "Scan run not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
