package main

import (
	"context"
	"os"

	"coffeebeans/client/internal/config"
	"coffeebeans/client/internal/container"
	"coffeebeans/client/internal/render"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "beans",
	Short: "Browse the coffee bean catalog",
	Long: `Lists, filters and pages through the coffee bean catalog and shows
per-bean price history.

Examples:
  beans list --country 埃塞俄比亚 --type premium
  beans trends "耶加雪菲 G1"
  beans browse`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json or yaml")
}

// newSession loads configuration and wires the client for one command.
func newSession(ctx context.Context) (*container.Container, render.Format, error) {
	format, err := render.ParseFormat(outputFormat)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, "", err
	}

	if err := config.ConfigureLogging(cfg.Log, os.Stderr); err != nil {
		return nil, "", err
	}

	return container.New(ctx, cfg), format, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
