package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/heartdash/config"
	"github.com/heartdash/loader"
	"github.com/heartdash/logging"
	"github.com/heartdash/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Set by the linker at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cfg holds the validated configuration once sharedSetup has run.
var cfg = &config.Config{}

// logCloser releases the log file opened by sharedSetup.
var logCloser io.Closer

var rootCmd = &cobra.Command{
	Use:                "heartdash",
	Short:              "Explore a heart rate export as tables, files or a dashboard.",
	Long:               `Heartdash flattens a daily heart rate export into a time-ordered series, flags readings above the threshold and summarizes them.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PersistentPreRunE:  sharedSetup,
	PersistentPostRunE: sharedTeardown,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// sharedSetup resolves configuration, then configures logging and color.
func sharedSetup(cmd *cobra.Command, args []string) error {
	config.ConfigureSources(viper.GetViper(), viper.GetString("config"))

	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	if len(args) == 1 {
		loaded.Dataset = args[0]
	}
	if cmd.Name() == serveCommand {
		loaded.LogFile = config.ServeLogFile(viper.GetViper())
	}
	cfg = loaded

	if logCloser, err = logging.Setup(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	switch cfg.Color {
	case "yes":
		color.NoColor = false
	case "no":
		color.NoColor = true
	default:
		color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	}
	return nil
}

func sharedTeardown(_ *cobra.Command, _ []string) error {
	if logCloser == nil {
		return nil
	}
	return logCloser.Close()
}

// loadDataset reads the configured dataset. A malformed document yields an
// empty dataset, which every command renders as "no data".
func loadDataset() (models.Dataset, error) {
	dataset, err := loader.Load(cfg.Dataset)
	if err != nil && !loader.IsMalformed(err) {
		return nil, err
	}
	return dataset, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
