package commands

import (
	"github.com/spf13/cobra"

	"github.com/pdxmph/contacts-mvc/internal/db"
	"github.com/pdxmph/contacts-mvc/internal/printer"
)

var (
	initDB       string
	initFixtures bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the contacts database",
	Long: `Create the SQLite database served by 'contacts serve'.

Use --fixtures to fill it with a handful of sample contacts.
An existing database is never overwritten.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initDB, "db", "", "SQLite database path (default from config)")
	initCmd.Flags().BoolVar(&initFixtures, "fixtures", false, "Seed the database with sample contacts")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dbPath := firstNonEmpty(initDB, cfg.Database.Path)

	if initFixtures {
		if err := db.CreateFixturesDatabase(cmd.Context(), dbPath); err != nil {
			return printer.Error("Initialization failed", err.Error(),
				[]string{"Remove the existing file or pick another path with --db"})
		}
		printer.Success("Created %s with %d sample contacts\n", dbPath, len(db.Fixtures()))
		return nil
	}

	if err := db.Initialize(dbPath); err != nil {
		return printer.Error("Initialization failed", err.Error(),
			[]string{"Remove the existing file or pick another path with --db"})
	}
	printer.Success("Created %s\n", dbPath)
	return nil
}
