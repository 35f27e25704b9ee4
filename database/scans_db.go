package database

import (
	"database/sql"
	"fmt"
	"strings"

	"citetool/models"
)

// CreateScanRun persists one completed scan run. The caller assigns the ID.
func CreateScanRun(run models.ScanRun) error {
	stmt, err := DB.Prepare(`
		INSERT INTO scan_runs (id, root_path, format, output_path, files_scanned, files_skipped, citation_count, duration_ms, document, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`)
	if err != nil {
		return fmt.Errorf("preparing create scan run statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(run.ID, run.RootPath, run.Format, run.OutputPath, run.FilesScanned, run.FilesSkipped, run.CitationCount, run.DurationMs, run.Document)
	if err != nil {
		return fmt.Errorf("executing create scan run statement for %s: %w", run.ID, err)
	}
	return nil
}

func GetScanRunByID(runID string) (models.ScanRun, error) {
	var run models.ScanRun
	err := DB.QueryRow(`
		SELECT id, root_path, format, output_path, files_scanned, files_skipped, citation_count, duration_ms, document, created_at
		FROM scan_runs
		WHERE id = ?
	`, runID).Scan(&run.ID, &run.RootPath, &run.Format, &run.OutputPath, &run.FilesScanned, &run.FilesSkipped, &run.CitationCount, &run.DurationMs, &run.Document, &run.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return run, fmt.Errorf("scan run with ID %s not found: %w", runID, err)
		}
		return run, fmt.Errorf("querying scan run %s: %w", runID, err)
	}
	return run, nil
}

func GetAllScanRunsPaginated(limit int, offset int, sortByColumn string, sortOrder string) ([]models.ScanRun, int64, error) {
	var runs []models.ScanRun
	var totalRecords int64

	countQuery := "SELECT COUNT(*) FROM scan_runs"
	err := DB.QueryRow(countQuery).Scan(&totalRecords)
	if err != nil {
		return nil, 0, fmt.Errorf("counting scan runs: %w", err)
	}

	if totalRecords == 0 {
		return runs, 0, nil
	}

	allowedSortColumns := map[string]bool{"created_at": true, "root_path": true, "citation_count": true, "id": true}
	if !allowedSortColumns[sortByColumn] {
		sortByColumn = "created_at"
	}
	if strings.ToUpper(sortOrder) != "ASC" && strings.ToUpper(sortOrder) != "DESC" {
		sortOrder = "DESC"
	}

	// The document column is excluded from list queries; rendered documents
	// can be large and are fetched per run.
	query := fmt.Sprintf(`SELECT id, root_path, format, output_path, files_scanned, files_skipped, citation_count, duration_ms, created_at
						   FROM scan_runs
						   ORDER BY %s %s, id %s
						   LIMIT ? OFFSET ?`, sortByColumn, sortOrder, sortOrder)

	rows, err := DB.Query(query, limit, offset)
	if err != nil {
		return nil, totalRecords, fmt.Errorf("querying scan runs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var run models.ScanRun
		if err := rows.Scan(&run.ID, &run.RootPath, &run.Format, &run.OutputPath, &run.FilesScanned, &run.FilesSkipped, &run.CitationCount, &run.DurationMs, &run.CreatedAt); err != nil {
			return nil, totalRecords, fmt.Errorf("scanning scan run row: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, totalRecords, rows.Err()
}

// GetScanRunDocument fetches only the rendered document of one run.
func GetScanRunDocument(runID string) (string, string, error) {
	var document, format string
	err := DB.QueryRow("SELECT document, format FROM scan_runs WHERE id = ?", runID).Scan(&document, &format)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", "", fmt.Errorf("scan run with ID %s not found: %w", runID, err)
		}
		return "", "", fmt.Errorf("querying document for scan run %s: %w", runID, err)
	}
	return document, format, nil
}

func DeleteScanRun(runID string) (bool, error) {
	result, err := DB.Exec("DELETE FROM scan_runs WHERE id = ?", runID)
	if err != nil {
		return false, fmt.Errorf("deleting scan run %s: %w", runID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected for scan run delete: %w", err)
	}
	return rowsAffected > 0, nil
}
