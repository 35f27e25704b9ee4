package database

import (
	"database/sql"
	"fmt"

	"citetool/models"
)

// GetSetting retrieves a specific setting value from the app_settings table.
func GetSetting(key string) (string, error) {
	var value string
	err := DB.QueryRow("SELECT value FROM app_settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil // Return empty string if not found, not an error
		}
		return "", fmt.Errorf("failed to get setting '%s': %w", key, err)
	}
	return value, nil
}

// SetSetting saves or updates a specific setting value in the app_settings table.
func SetSetting(key, value string) error {
	stmt, err := DB.Prepare("INSERT OR REPLACE INTO app_settings (key, value) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare set setting statement for key '%s': %w", key, err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(key, value)
	if err != nil {
		return fmt.Errorf("failed to execute set setting for key '%s': %w", key, err)
	}
	return nil
}

// GetDefaultFormat returns the stored default output format, or empty string
// when none has been set.
func GetDefaultFormat() (string, error) {
	return GetSetting(models.DefaultFormatKey)
}

// SetDefaultFormat stores the default output format.
func SetDefaultFormat(format string) error {
	return SetSetting(models.DefaultFormatKey, format)
}

// GetDefaultOutputPath returns the stored default output path, or empty
// string when none has been set.
func GetDefaultOutputPath() (string, error) {
	return GetSetting(models.DefaultOutputPathKey)
}

// SetDefaultOutputPath stores the default output path.
func SetDefaultOutputPath(path string) error {
	return SetSetting(models.DefaultOutputPathKey, path)
}
