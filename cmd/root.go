package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amenity-labs/amenity-finder/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "amenity-finder",
	Short: "Nearby amenity search with personal ratings",
	Long:  "Searches the places provider for nearby amenities, ranks them by rating, popularity and proximity, and keeps your own ratings in a local store.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
