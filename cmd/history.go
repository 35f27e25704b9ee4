package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"citetool/core"
	"citetool/database"
	"citetool/logger"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var (
	historyPage      int
	historyLimit     int
	historySortBy    string
	historySortOrder string

	historyShowDocument bool
	historyShowQuery    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Review recorded scan runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded scan runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyPage < 1 {
			historyPage = 1
		}
		if historyLimit <= 0 || historyLimit > 100 {
			historyLimit = 20
		}
		offset := (historyPage - 1) * historyLimit

		runs, totalRecords, err := database.GetAllScanRunsPaginated(historyLimit, offset, historySortBy, historySortOrder)
		if err != nil {
			logger.Error("history list: %v", err)
			return fmt.Errorf("listing scan runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No scan runs recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tROOT\tFORMAT\tFILES\tSKIPPED\tCITATIONS\tDURATION")
		for _, run := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%dms\n",
				run.ID,
				run.CreatedAt.Format(time.RFC3339),
				run.RootPath,
				run.Format,
				run.FilesScanned,
				run.FilesSkipped,
				run.CitationCount,
				run.DurationMs)
		}
		w.Flush()
		fmt.Printf("\nShowing %d of %d run(s) (page %d)\n", len(runs), totalRecords, historyPage)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded scan run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := database.GetScanRunByID(args[0])
		if err != nil {
			logger.Error("history show: %v", err)
			return fmt.Errorf("fetching scan run %s: %w", args[0], err)
		}

		if historyShowQuery != "" {
			if run.Format != core.FormatJSON {
				return fmt.Errorf("--query requires a run stored in json format, this run is %s", run.Format)
			}
			result := gjson.Get(run.Document, historyShowQuery)
			if !result.Exists() {
				return fmt.Errorf("query %q matched nothing in run %s", historyShowQuery, run.ID)
			}
			fmt.Println(result.String())
			return nil
		}

		if historyShowDocument {
			fmt.Print(run.Document)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintf(w, "ID:\t%s\n", run.ID)
		fmt.Fprintf(w, "Created:\t%s\n", run.CreatedAt.Format(time.RFC3339))
		fmt.Fprintf(w, "Root:\t%s\n", run.RootPath)
		fmt.Fprintf(w, "Format:\t%s\n", run.Format)
		if run.OutputPath.Valid {
			fmt.Fprintf(w, "Output:\t%s\n", run.OutputPath.String)
		}
		fmt.Fprintf(w, "Files scanned:\t%d\n", run.FilesScanned)
		fmt.Fprintf(w, "Files skipped:\t%d\n", run.FilesSkipped)
		fmt.Fprintf(w, "Citations:\t%d\n", run.CitationCount)
		fmt.Fprintf(w, "Duration:\t%dms\n", run.DurationMs)
		w.Flush()
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete one recorded scan run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deleted, err := database.DeleteScanRun(args[0])
		if err != nil {
			logger.Error("history delete: %v", err)
			return fmt.Errorf("deleting scan run %s: %w", args[0], err)
		}
		if !deleted {
			return fmt.Errorf("scan run %s not found", args[0])
		}
		fmt.Printf("Deleted scan run %s\n", args[0])
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVar(&historyPage, "page", 1, "Page number")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Runs per page")
	historyListCmd.Flags().StringVar(&historySortBy, "sort-by", "created_at", "Sort column: created_at, root_path, citation_count, id")
	historyListCmd.Flags().StringVar(&historySortOrder, "sort-order", "DESC", "Sort order: ASC or DESC")

	historyShowCmd.Flags().BoolVar(&historyShowDocument, "document", false, "Print the stored rendered document instead of run metadata")
	historyShowCmd.Flags().StringVar(&historyShowQuery, "query", "", "GJSON path evaluated against the stored JSON document (e.g. 'files.#.file')")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
