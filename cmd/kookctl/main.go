package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kookbot/kook-go/pkg/app"
	"github.com/kookbot/kook-go/pkg/config"
	"github.com/kookbot/kook-go/pkg/logger"
)

var (
	configPath string
	jsonOutput bool

	container *app.Container
)

func defaultConfigPath() string {
	if s := os.Getenv("KOOK_CONFIG"); s != "" {
		return s
	}
	return "kook.yaml"
}

var rootCmd = &cobra.Command{
	Use:           "kookctl <command>",
	Short:         "Operator tool for the kook-go event bus",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		level, err := cfg.LogLevel()
		if err != nil {
			return err
		}
		l, err := logger.New(cmd.ErrOrStderr(), level, logger.Format(cfg.Log.Format))
		if err != nil {
			return err
		}
		logger.SetDefault(l)

		c, err := app.NewContainer(cfg, l)
		if err != nil {
			return fmt.Errorf("failed to start: %w", err)
		}
		container = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if container != nil {
			container.Close()
			container = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "YAML config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(cardCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
