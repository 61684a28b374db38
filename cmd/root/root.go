// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/leak-detector/internal/config"
	"fjacquet/leak-detector/internal/container"
	"fjacquet/leak-detector/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands. It is replaced by the
	// configured logger once the container is built.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer holds the wired dependencies for the running command.
	AppContainer *container.Container

	configFile string
	logLevel   string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "leak-detector",
		Short: "Find money leaks in bank statements.",
		Long: `leak-detector reads a bank statement (PDF or extracted text) and reports
recurring merchant charges, small purchases, bank fees and penalties,
with a total of avoidable spend and savings suggestions.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to release resources")
			}
		},
	}
)

// Init registers the persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./config.yaml or $HOME/.leak-detector/config.yaml)")
	Cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

func initialize(cmd *cobra.Command, args []string) error {
	if AppContainer != nil {
		return nil
	}

	config.LoadEnv()
	cfg, err := config.InitializeConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	SetContainer(c)
	return nil
}

// SetContainer installs c as the command container and logger source.
func SetContainer(c *container.Container) {
	AppContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}

// GetContainer returns the command container.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return AppContainer, nil
}
