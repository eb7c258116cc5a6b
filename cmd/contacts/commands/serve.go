package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdxmph/contacts-mvc/internal/api"
	"github.com/pdxmph/contacts-mvc/internal/db"
	"github.com/pdxmph/contacts-mvc/internal/logging"
	"github.com/pdxmph/contacts-mvc/internal/printer"
)

var (
	serveAddr string
	serveDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the contacts API server",
	Long: `Run the HTTP API used by 'contacts tui --remote'.

Routes:
  GET    /api/contacts
  POST   /api/contacts
  PUT    /api/contacts/{id}
  DELETE /api/contacts/{id}

The server stops cleanly on Ctrl+C.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :3000)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := firstNonEmpty(serveAddr, cfg.Server.Addr)
	dbPath := firstNonEmpty(serveDB, cfg.Database.Path)

	logger, err := logging.New(cfg.Log.Level, os.Stderr)
	if err != nil {
		return err
	}

	// A fresh install serves an empty collection
	database, err := db.OpenOrCreate(dbPath)
	if err != nil {
		return printer.Error("Could not open database", err.Error(),
			[]string{"Check that the directory of " + dbPath + " is writable"})
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer.Success("Serving contacts on %s (database %s)\n", addr, dbPath)
	srv := api.NewServer(database, api.WithLogger(logger))
	if err := srv.Run(ctx, addr); err != nil {
		return printer.Error("Server failed", err.Error(), nil)
	}
	printer.Info("Server stopped\n")
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
