package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/opentransit/transitboard/internal/config"
	"github.com/opentransit/transitboard/internal/store"
	"github.com/opentransit/transitboard/internal/utils"
	"github.com/opentransit/transitboard/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive TUI interface",
	Long: `Start the interactive Terminal User Interface.

The TUI provides:
- Date range editing with presets and direct date entry
- Time-of-day window selection
- Per-weekday inclusion with weekday/weekend group toggles
- Two comparison ranges with explicit commit and discard

Examples:
  transitboard tui
  transitboard tui --config my-constants.yaml`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	logger := utils.GetLogger()
	defer logger.Close()

	// Create filesystem interface
	fs := afero.NewOsFs()

	constants, err := config.Load(fs, cfgFile)
	if err != nil {
		logger.Error("configuration load failed: %v", err)
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Max range: %d days\n", constants.MaxRangeDays)
		fmt.Fprintf(os.Stderr, "Presets: %d, time windows: %d\n",
			len(constants.Presets), len(constants.TimeWindows))
	}

	// Shared committed state for both comparison ranges
	st := store.New()

	// Initialize TUI
	model := ui.NewAppModel(constants, st)

	// Start the TUI program
	program := tea.NewProgram(model, tea.WithAltScreen())

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Starting TUI...\n")
	}

	_, err = program.Run()
	if err != nil {
		logger.Error("TUI terminated: %v", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
