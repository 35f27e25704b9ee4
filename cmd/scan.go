package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"citetool/config"
	"citetool/core"
	"citetool/database"
	"citetool/logger"
	"citetool/models"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	scanDirectory   string
	scanOutputPath  string
	scanFormat      string
	scanExtensions  []string
	scanIgnoreNames []string
	scanCountOnly   bool
	scanNoRecursive bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a directory for citation comments and generate documentation",
	Long: `Scans a directory tree for [CITATION] comment blocks and renders them
into a documentation file. The run is recorded in the local database and
can be reviewed later with 'citetool history'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveScanOptions()
		if err != nil {
			return err
		}
		if scanCountOnly {
			opts.OutputPath = ""
		}

		report, err := core.GenerateDocumentation(cmd.Context(), opts)
		if err != nil {
			logger.Error("Scan command failed for %s: %v", opts.RootPath, err)
			return err
		}

		run := models.ScanRun{
			ID:            uuid.NewString(),
			RootPath:      opts.RootPath,
			Format:        report.Format,
			OutputPath:    models.NullString(report.OutputPath),
			FilesScanned:  report.FilesScanned,
			FilesSkipped:  report.FilesSkipped,
			CitationCount: report.CitationCount,
			DurationMs:    report.Duration.Milliseconds(),
			Document:      report.Document,
		}
		if err := database.CreateScanRun(run); err != nil {
			logger.Error("Failed to record scan run %s: %v", run.ID, err)
			fmt.Fprintf(os.Stderr, "Warning: scan completed but the run could not be recorded: %v\n", err)
		}

		fmt.Printf("Scanned %d file(s), skipped %d, found %d citation(s) in %s\n",
			report.FilesScanned, report.FilesSkipped, report.CitationCount, report.Duration.Round(time.Millisecond))
		for _, warning := range report.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", warning.FilePath, warning.Message)
		}

		if scanCountOnly {
			printCitationBreakdown(report.Result)
		} else if report.OutputWritten {
			fmt.Printf("Documentation written to %s\n", report.OutputPath)
		}
		fmt.Printf("Run recorded as %s\n", run.ID)
		return nil
	},
}

// resolveScanOptions merges flags, stored settings and the config file into
// one engine options value. Flags win, then database settings, then config.
func resolveScanOptions() (core.Options, error) {
	format := scanFormat
	if format == "" {
		stored, err := database.GetDefaultFormat()
		if err != nil {
			logger.Error("Could not read default format setting: %v", err)
		}
		format = stored
	}
	if format == "" {
		format = config.AppConfig.Scan.Format
	}

	outputPath := scanOutputPath
	if outputPath == "" {
		stored, err := database.GetDefaultOutputPath()
		if err != nil {
			logger.Error("Could not read default output path setting: %v", err)
		}
		outputPath = stored
	}
	if outputPath == "" {
		outputPath = config.AppConfig.Scan.OutputPath
	}

	extensions := scanExtensions
	if len(extensions) == 0 {
		extensions = config.AppConfig.Scan.Extensions
	}

	ignoreNames := append([]string{}, config.AppConfig.Scan.ExcludeDirs...)
	ignoreNames = append(ignoreNames, scanIgnoreNames...)

	return core.Options{
		RootPath:          scanDirectory,
		OutputPath:        outputPath,
		Format:            format,
		IncludeExtensions: extensions,
		IgnoreNames:       ignoreNames,
		Recursive:         !scanNoRecursive,
	}, nil
}

func printCitationBreakdown(result models.ScanResult) {
	if len(result.Files) == 0 {
		fmt.Println("No citations found.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tCITATIONS")
	for _, file := range result.Files {
		fmt.Fprintf(w, "%s\t%d\n", file.FilePath, len(file.Citations))
	}
	w.Flush()
}

func init() {
	scanCmd.Flags().StringVarP(&scanDirectory, "directory", "d", ".", "Directory to scan")
	scanCmd.Flags().StringVarP(&scanOutputPath, "output", "o", "", "Output file path (default from settings/config)")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "", "Output format: markdown, html or json (default from settings/config)")
	scanCmd.Flags().StringSliceVarP(&scanExtensions, "extensions", "e", nil, "Only scan files with these extensions (e.g. .py,.go)")
	scanCmd.Flags().StringSliceVar(&scanIgnoreNames, "ignore", nil, "Additional directory or file names to skip")
	scanCmd.Flags().BoolVar(&scanCountOnly, "count-only", false, "Report citation counts without writing the output file")
	scanCmd.Flags().BoolVar(&scanNoRecursive, "no-recursive", false, "Do not descend into subdirectories")
	rootCmd.AddCommand(scanCmd)
}
