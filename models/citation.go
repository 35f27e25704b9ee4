package models

// CitationRecord represents one attributed citation found in a source file.
// Any of the four text fields may be empty when the author omitted the
// corresponding line, but a record never has all four empty.
type CitationRecord struct {
	SourceURL   string `json:"source"`
	Author      string `json:"author"`
	Date        string `json:"date"`       // Raw date string as written in the comment.
	DateValid   bool   `json:"date_valid"` // True when Date parses as an ISO-8601 calendar date.
	Description string `json:"description"`
	FilePath    string `json:"file_path,omitempty"` // Relative to the scan root.
	LineNumber  int    `json:"line"`                // 1-based line where the citation block began.
}

// HasContent reports whether at least one citation field carries text.
// Blocks whose labels all have empty values are noise and are discarded.
func (c CitationRecord) HasContent() bool {
	return c.SourceURL != "" || c.Author != "" || c.Date != "" || c.Description != ""
}

// FileCitations groups the citations found in a single file, in line order.
type FileCitations struct {
	FilePath  string           `json:"file"`
	Citations []CitationRecord `json:"citations"`
}

// ScanWarning records a recoverable per-file problem (unreadable file,
// broken symlink). Warnings never abort a scan.
type ScanWarning struct {
	FilePath string `json:"file_path"`
	Message  string `json:"message"`
}

// ScanResult is the aggregate of one directory scan. Files are ordered by
// relative path (lexicographic, case-sensitive) independent of filesystem
// traversal order, so repeated scans of an unchanged tree render
// byte-identical output.
type ScanResult struct {
	RootPath     string          `json:"root_path"`
	Files        []FileCitations `json:"files"`
	FilesScanned int             `json:"files_scanned"`
	Warnings     []ScanWarning   `json:"warnings,omitempty"`
}

// AddWarning appends a recoverable per-file warning.
func (r *ScanResult) AddWarning(path, message string) {
	r.Warnings = append(r.Warnings, ScanWarning{FilePath: path, Message: message})
}

// FilesSkipped returns the number of files the scan could not process.
func (r ScanResult) FilesSkipped() int {
	return len(r.Warnings)
}

// TotalCitations returns the number of citation records across all files.
func (r ScanResult) TotalCitations() int {
	total := 0
	for _, f := range r.Files {
		total += len(f.Citations)
	}
	return total
}
