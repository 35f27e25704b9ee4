package cmd

import (
	"net/http"
	"strings"

	"citetool/api"
	"citetool/config"
	"citetool/logger"

	"github.com/spf13/cobra"
)

var standaloneServerPort string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the web UI and API server",
	Run: func(cmd *cobra.Command, args []string) {
		portToUse := standaloneServerPort
		if portToUse == "" {
			portToUse = config.AppConfig.Server.Port
		}
		if portToUse == "" {
			portToUse = "8787"
		}

		logger.Info("--- Server Command: Run ---")
		logger.Info("Attempting to start server on port %s...", portToUse)

		apiRouter := api.NewRouter()
		if apiRouter == nil {
			logger.Fatal("Server Command: api.NewRouter() returned nil!")
			return
		}

		staticFileDir := "./static"
		fileServer := http.FileServer(http.Dir(staticFileDir))

		mainMux := http.NewServeMux()

		mainMux.Handle("/api/", http.StripPrefix("/api", apiRouter))
		logger.Info("Server Command: Registered API router under /api/ prefix with StripPrefix.")

		mainMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				// Safeguard; the /api/ handle above should have matched.
				logger.Error("Request for %s reached root handler unexpectedly, passing to API router.", r.URL.Path)
				http.StripPrefix("/api", apiRouter).ServeHTTP(w, r)
				return
			}
			fileServer.ServeHTTP(w, r)
		})

		logger.Info("Server Command: API and Static File Handlers configured. Attempting to ListenAndServe on :%s...", portToUse)
		if err := http.ListenAndServe(":"+portToUse, mainMux); err != nil {
			logger.Fatal("Could not start server: %v", err)
		}
	},
}

func init() {
	serverCmd.Flags().StringVarP(&standaloneServerPort, "port", "p", "", "Port for the server to listen on (default from config, 8787)")
	rootCmd.AddCommand(serverCmd)
}
