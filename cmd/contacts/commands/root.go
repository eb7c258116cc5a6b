package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdxmph/contacts-mvc/internal/config"
	"github.com/pdxmph/contacts-mvc/internal/printer"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Contacts - a small address book",
	Long: `Contacts keeps a list of people with a name, email and phone number.

The terminal UI works either against a local key-value store (a file,
redis or memory) or against the contacts API server backed by SQLite.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is specified, show help
		return cmd.Help()
	},
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/contacts-mvc/config.toml)")
}

// loadConfig reads the --config file, or the standard location when unset
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, printer.Error(
			"Could not load configuration",
			err.Error(),
			[]string{"Fix or remove the config file, or pass --config with another path"},
		)
	}
	return cfg, nil
}
