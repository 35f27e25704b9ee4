package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"citetool/core"
	"citetool/database"
	"citetool/logger"
)

// AppSettings is the JSON shape of the general application settings.
type AppSettings struct {
	DefaultFormat     string `json:"default_format,omitempty" example:"markdown"`
	DefaultOutputPath string `json:"default_output_path,omitempty" example:"Documentation/citations.md"`
}

// GetApplicationSettingsHandler handles GET requests for application settings.
// @Summary Get application settings
// @Description Retrieves the stored default output format and output path.
// @Tags Settings
// @Produce json
// @Success 200 {object} AppSettings
// @Failure 500 {object} models.ErrorResponse
// @Router /settings/app [get]
func GetApplicationSettingsHandler(w http.ResponseWriter, r *http.Request) {
	format, err := database.GetDefaultFormat()
	if err != nil {
		logger.Error("GetApplicationSettingsHandler: Error reading default format: %v", err)
		writeJSONError(w, "Failed to retrieve settings", http.StatusInternalServerError)
		return
	}
	outputPath, err := database.GetDefaultOutputPath()
	if err != nil {
		logger.Error("GetApplicationSettingsHandler: Error reading default output path: %v", err)
		writeJSONError(w, "Failed to retrieve settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, AppSettings{DefaultFormat: format, DefaultOutputPath: outputPath}, http.StatusOK)
}

// SaveApplicationSettingsHandler handles PUT requests to update application settings.
// @Summary Save application settings
// @Description Stores the default output format and output path. An empty format clears the override.
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body AppSettings true "Settings to store"
// @Success 200 {object} AppSettings
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /settings/app [put]
func SaveApplicationSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var settings AppSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		logger.Error("SaveApplicationSettingsHandler: Error decoding request body: %v", err)
		writeJSONError(w, "Invalid request payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	format := strings.TrimSpace(settings.DefaultFormat)
	switch format {
	case "", core.FormatMarkdown, core.FormatHTML, core.FormatJSON:
	default:
		writeJSONError(w, "default_format must be markdown, html or json", http.StatusBadRequest)
		return
	}

	if err := database.SetDefaultFormat(format); err != nil {
		logger.Error("SaveApplicationSettingsHandler: Error storing default format: %v", err)
		writeJSONError(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}
	if err := database.SetDefaultOutputPath(strings.TrimSpace(settings.DefaultOutputPath)); err != nil {
		logger.Error("SaveApplicationSettingsHandler: Error storing default output path: %v", err)
		writeJSONError(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, settings, http.StatusOK)
}
