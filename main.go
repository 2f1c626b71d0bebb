package main

import (
	"fmt"
	"os"

	"github.com/nconklindev/citycsv/internal/form"
	"github.com/nconklindev/citycsv/internal/logging"
	"github.com/nconklindev/citycsv/internal/ui"
	"github.com/nconklindev/citycsv/internal/workbook"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var debug bool

func main() {
	rootCmd := &cobra.Command{
		Use:     "citycsv",
		Short:   "Export a spreadsheet sheet to CSV with a renamed city column",
		Version: fmt.Sprintf("%s\ncommit: %s\nbuilt: %s", version, commit, date),
		Args:    cobra.NoArgs,
		RunE:    run,
	}
	rootCmd.SetVersionTemplate("citycsv {{.Version}}\n")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Write a debug log to "+logging.DebugFile)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logPath := ""
	if debug {
		logPath = logging.DebugFile
	}
	logger, closeLog, err := logging.New(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()

	state := form.New(workbook.Open, logger)
	p := tea.NewProgram(ui.InitialModel(state), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error: %w", err)
	}
	return nil
}
