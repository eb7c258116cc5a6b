package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pdxmph/contacts-mvc/internal/logging"
	"github.com/pdxmph/contacts-mvc/internal/printer"
	"github.com/pdxmph/contacts-mvc/internal/store"
	"github.com/pdxmph/contacts-mvc/internal/tui"
)

var (
	tuiRemote  bool
	tuiBackend string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the contact manager",
	Long: `Open the interactive contact manager.

By default contacts are kept in the local storage backend from the config
file. With --remote the UI talks to a running 'contacts serve' instead.

Diagnostics go to the log file configured under [log], never to the screen.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiRemote, "remote", false, "Use the API server instead of local storage")
	tuiCmd.Flags().StringVar(&tuiBackend, "backend", "", "Local storage backend (file, redis, memory)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return printer.Error(
			"Not a terminal",
			"The contact manager needs an interactive terminal.",
			[]string{"Use 'contacts list' or 'contacts export' for scripted access"},
		)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, logFile, err := logging.OpenFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return printer.Error("Could not open log file", err.Error(), nil)
	}
	defer logFile.Close()

	var (
		s    store.Store
		opts = []tui.Option{tui.WithLogger(logger)}
	)
	if tuiRemote {
		remote, err := openRemote(cfg)
		if err != nil {
			return err
		}
		s = remote
		opts = append(opts, tui.WithFetchOnStart())
		logger.Info("starting", "variant", "remote", "base_url", cfg.Remote.BaseURL)
	} else {
		local, closeFn, err := openLocal(cmd.Context(), cfg, tuiBackend)
		if err != nil {
			return err
		}
		defer closeFn()
		s = local
		logger.Info("starting", "variant", "local", "backend", firstNonEmpty(tuiBackend, cfg.Storage.Backend))
	}

	controller := tui.NewController(s, tui.NewView(), opts...)
	defer controller.Close()

	p := tea.NewProgram(tui.NewApp(controller), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
