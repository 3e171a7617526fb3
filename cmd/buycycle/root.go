package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"buycycle/internal/config"
)

var (
	cfg        *config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "buycycle",
	Short:         "BuyCycle marketplace API server",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (env vars BUYCYCLE_* override)")
	rootCmd.AddCommand(serveCmd, tokenCmd)
}
