package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ERRORIK404/calculator_screen/internal/logging"
	"github.com/ERRORIK404/calculator_screen/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "calculator",
	Short: "Calculator screen with a persisted history",
	Long: `calculator accumulates an arithmetic expression from key presses, evaluates it
strictly left to right and keeps a history of past calculations.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("env", ".env", "Path to the .env file")
	rootCmd.AddCommand(serveCmd, replCmd, remoteCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("env")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(level), nil
}
