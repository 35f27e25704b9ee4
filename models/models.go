package models

import (
	"database/sql"
	"time"
)

// NullString is a helper function to create a sql.NullString from a string.
// If the input string is empty, it returns a NullString with Valid set to false.
// Otherwise, it returns a NullString with the given string and Valid set to true.
func NullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{String: "", Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// ScanRun is one recorded execution of the extraction+generation pipeline.
type ScanRun struct {
	ID            string         `json:"id" example:"7b0c7e1a-1f2d-4c1e-9a54-6a1f2f3f4a5b" readOnly:"true"`
	RootPath      string         `json:"root_path" example:"/home/user/project"`
	Format        string         `json:"format" example:"markdown" enum:"markdown,html,json"`
	OutputPath    sql.NullString `json:"output_path,omitempty"` // Empty when the run was count-only or API-triggered.
	FilesScanned  int            `json:"files_scanned" example:"42"`
	FilesSkipped  int            `json:"files_skipped" example:"1"`
	CitationCount int            `json:"citation_count" example:"7"`
	DurationMs    int64          `json:"duration_ms" example:"120"`
	Document      string         `json:"document,omitempty"` // Rendered artifact as produced by the generator.
	CreatedAt     time.Time      `json:"created_at" readOnly:"true"`
}

// ScanTriggerRequest is the request body for POST /api/scans.
type ScanTriggerRequest struct {
	RootPath   string   `json:"root_path" binding:"required" example:"/home/user/project"`
	Format     string   `json:"format,omitempty" example:"json"`
	Extensions []string `json:"extensions,omitempty" example:".py,.go"`
	Recursive  *bool    `json:"recursive,omitempty"`
}

// PaginatedScanRunsResponse is the structure for the paginated scan-run list.
type PaginatedScanRunsResponse struct {
	Page         int       `json:"page"`
	Limit        int       `json:"limit"`
	TotalRecords int64     `json:"total_records"`
	TotalPages   int64     `json:"total_pages"`
	Runs         []ScanRun `json:"runs"`
}
