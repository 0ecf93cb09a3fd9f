package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "transitboard",
	Short: "Terminal dashboard for transit performance metrics",
	Long: `Transitboard is a terminal frontend for exploring public-transit
performance metrics over configurable date ranges.

Two comparison ranges ("first" and "second") can each be given a date span,
a time-of-day window, and a set of included weekdays. Edits stay local until
explicitly committed.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file (default ./transitboard.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	viper.SetEnvPrefix("TRANSITBOARD")
	viper.AutomaticEnv()
}
