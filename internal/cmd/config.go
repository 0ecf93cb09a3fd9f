package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/opentransit/transitboard/internal/config"
	"github.com/opentransit/transitboard/internal/daterange"
	"github.com/opentransit/transitboard/internal/models"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	outputPath string
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective range constants and default selection",
	Long: `Resolve the configuration (built-in defaults merged with the optional
configuration file) and print it together with the default date range
selection as JSON.

Examples:
  transitboard config
  transitboard config --config my-constants.yaml
  transitboard config --output resolved.json`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the resolved configuration to a file instead of stdout")
}

// configDump is the serializable shape printed by the config command
type configDump struct {
	Constants        config.Constants          `json:"constants"`
	DefaultSelection models.DateRangeSelection `json:"default_selection"`
	ResolvedAt       string                    `json:"resolved_at"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()

	constants, err := config.Load(fs, cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dump := configDump{
		Constants:        constants,
		DefaultSelection: daterange.New(constants).Selection(),
		ResolvedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if outputPath != "" {
		if err := afero.WriteFile(fs, outputPath, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write configuration file: %w", err)
		}
		fmt.Printf("Resolved configuration written to: %s\n", outputPath)
		return nil
	}

	fmt.Println(string(data))
	return nil
}
