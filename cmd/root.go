package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"citetool/config"
	"citetool/database"
	"citetool/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile         string
	dbPath          string // Bound to --dbpath flag
	appLogPathFlag  string
	scanLogPathFlag string
	logLevelFlag    string
)

// Helper function to expand tilde in this package too
func expandTildeCmd(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

var rootCmd = &cobra.Command{
	Use:   "citetool",
	Short: "Extract citation comments from source trees into documentation",
	Long: `citetool scans source code for [CITATION] comment blocks and renders
them into Markdown, HTML or JSON documentation.

Citation blocks attribute borrowed code to its source:

    # [CITATION] Source: https://example.com/article
    # [CITATION] Author: Jane Doe
    # [CITATION] Date: 2024-03-15
    # [CITATION] Description: Binary search implementation

Every scan is recorded in a local SQLite database and can be reviewed
with the history commands or through the API server.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize config first, passing flag values for logging config
		if err := config.Init(cfgFile, appLogPathFlag, scanLogPathFlag, logLevelFlag); err != nil {
			return fmt.Errorf("failed to initialize config in PersistentPreRunE: %w", err)
		}

		finalDBPath := dbPath // Get value from flag first
		configDBPath := config.AppConfig.Database.Path

		if finalDBPath != "" {
			expandedPath, err := expandTildeCmd(finalDBPath)
			if err != nil {
				logger.Error("Error expanding tilde in --dbpath flag '%s': %v. Using original.", finalDBPath, err)
			} else {
				finalDBPath = expandedPath
				logger.Info("PersistentPreRunE: Using expanded database path from --dbpath flag: '%s'", finalDBPath)
			}
		} else {
			finalDBPath = configDBPath
			logger.Info("PersistentPreRunE: --dbpath flag was empty, using config path: '%s'", finalDBPath)
			// Expand here too in case the config file itself contains '~'
			expandedPath, err := expandTildeCmd(finalDBPath)
			if err != nil {
				logger.Error("Error expanding tilde in config DB path '%s': %v. Using original.", finalDBPath, err)
			} else {
				finalDBPath = expandedPath
			}
		}

		if finalDBPath == "" {
			logger.Error("PersistentPreRunE: Database path is empty after checking flag and config! Falling back to 'citetool.db' in CWD.")
			finalDBPath = "citetool.db"
		}

		logger.Info("PersistentPreRunE: Attempting to InitDB with final path: '%s'", finalDBPath)
		if err := database.InitDB(finalDBPath); err != nil {
			return fmt.Errorf("failed to initialize database at %s: %w", finalDBPath, err)
		}

		isSuppressedCmd := false
		if cmd.Name() == "completion" ||
			cmd.Name() == cobra.ShellCompRequestCmd ||
			cmd.Name() == cobra.ShellCompNoDescRequestCmd {
			isSuppressedCmd = true
		}

		if !isSuppressedCmd {
			logger.Info("Database initialized at: %s (from rootCmd PersistentPreRunE)", finalDBPath)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/citetool/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "dbpath", "", "path to SQLite database file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&appLogPathFlag, "app-log", "", "path for the application log file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&scanLogPathFlag, "scan-log", "", "path for the scan log file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: DEBUG, INFO, ERROR (overrides config/default)")
}
