package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdxmph/contacts-mvc/internal/export"
	"github.com/pdxmph/contacts-mvc/internal/printer"
)

var (
	listSource   string
	exportSource string
	exportFormat string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print contacts as a table",
	RunE:  runList,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write contacts to stdout as JSON or YAML",
	RunE:  runExport,
}

func init() {
	listCmd.Flags().StringVar(&listSource, "source", sourceLocal, "Where to read contacts from (local, remote, db)")
	exportCmd.Flags().StringVar(&exportSource, "source", sourceLocal, "Where to read contacts from (local, remote, db)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format ("+strings.Join(export.Formats, ", ")+")")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	contacts, err := fetchContacts(cmd.Context(), cfg, listSource)
	if err != nil {
		return err
	}
	printer.Contacts(contacts)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	contacts, err := fetchContacts(cmd.Context(), cfg, exportSource)
	if err != nil {
		return err
	}
	if err := export.Write(cmd.OutOrStdout(), exportFormat, contacts); err != nil {
		return printer.Error("Export failed", err.Error(),
			[]string{"Use --format with one of: " + strings.Join(export.Formats, ", ")})
	}
	return nil
}
