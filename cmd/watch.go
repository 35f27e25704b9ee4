package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"citetool/core"
	"citetool/database"
	"citetool/logger"
	"citetool/models"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	watchDirectory  string
	watchOutputPath string
	watchFormat     string
	watchDebounce   time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and regenerate documentation on changes",
	Long: `Watches a directory tree and reruns the citation scan whenever files
change. Rapid bursts of events are coalesced into a single rescan.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scanDirectory = watchDirectory
		scanOutputPath = watchOutputPath
		scanFormat = watchFormat
		opts, err := resolveScanOptions()
		if err != nil {
			return err
		}
		opts.Recursive = true

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating filesystem watcher: %w", err)
		}
		defer watcher.Close()

		if err := addWatchesRecursive(watcher, opts.RootPath); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runOnce := func() {
			report, err := core.GenerateDocumentation(ctx, opts)
			if err != nil {
				logger.Error("Watch: scan failed: %v", err)
				fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
				return
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
				logger.Error("Watch: failed to record scan run: %v", err)
			}
			fmt.Printf("[%s] %d citation(s) in %d file(s), wrote %s\n",
				time.Now().Format("15:04:05"), report.CitationCount, report.FilesScanned, report.OutputPath)
		}

		fmt.Printf("Watching %s (debounce %s). Press Ctrl+C to stop.\n", opts.RootPath, watchDebounce)
		runOnce()

		// The timer coalesces event bursts (editor save, git checkout) into
		// one rescan after the debounce window.
		debounce := time.NewTimer(watchDebounce)
		if !debounce.Stop() {
			<-debounce.C
		}

		for {
			select {
			case <-ctx.Done():
				fmt.Println("\nStopping watch.")
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if outputPathMatches(event.Name, opts.OutputPath) {
					// Writing our own artifact must not retrigger a scan.
					logger.Debug("Watch: ignoring event for output artifact %s", event.Name)
					continue
				}
				logger.Debug("Watch: event %s", event)
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := addWatchesRecursive(watcher, event.Name); err != nil {
							logger.Error("Watch: failed to watch new directory %s: %v", event.Name, err)
						}
					}
				}
				debounce.Reset(watchDebounce)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Error("Watch: watcher error: %v", err)
			case <-debounce.C:
				runOnce()
			}
		}
	},
}

// outputPathMatches reports whether an event path refers to the rendered
// output artifact. Both paths are resolved to absolute form so relative
// watch roots and absolute event names compare correctly.
func outputPathMatches(eventName, outputPath string) bool {
	if outputPath == "" {
		return false
	}
	eventAbs, err := filepath.Abs(eventName)
	if err != nil {
		return false
	}
	outputAbs, err := filepath.Abs(outputPath)
	if err != nil {
		return false
	}
	return eventAbs == outputAbs
}

// addWatchesRecursive registers the directory and all its subdirectories,
// skipping the same names the scanner excludes.
func addWatchesRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Error("Watch: cannot access %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && core.ExcludedDirName(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func init() {
	watchCmd.Flags().StringVarP(&watchDirectory, "directory", "d", ".", "Directory to watch")
	watchCmd.Flags().StringVarP(&watchOutputPath, "output", "o", "", "Output file path (default from settings/config)")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "", "Output format: markdown, html or json (default from settings/config)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "Quiet period before rescanning after a change")
	rootCmd.AddCommand(watchCmd)
}
