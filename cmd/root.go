package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/intelligrit/geostamp/internal/config"
	"github.com/intelligrit/geostamp/internal/geotag"
	"github.com/intelligrit/geostamp/internal/maptile"
	"github.com/intelligrit/geostamp/internal/stamp"
)

var (
	dataDir    string
	verbose    bool
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "geostamp",
	Short: "Geotag photographs with visual location stamps and embedded GPS metadata",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if !cmd.Flags().Changed("data-dir") {
			dataDir = cfg.Storage.Dir
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "Directory for the database and uploaded images")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func Execute() error {
	return rootCmd.Execute()
}

func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// newEngine assembles the tagging engine from configuration. The map-tile
// client is only wired in when enabled; the compositor falls back to the
// drawn placeholder without it.
func newEngine(style geotag.Style) *geotag.Engine {
	comp := &stamp.Compositor{
		Attribution: cfg.Stamp.Attribution,
		FontPaths:   cfg.Stamp.FontPaths,
		Logf:        logVerbose,
	}
	if cfg.MapTile.Enabled {
		comp.Tiles = maptile.New(
			cfg.MapTile.URLTemplate,
			cfg.MapTile.Zoom,
			time.Duration(cfg.MapTile.TimeoutSecs)*time.Second,
			cfg.MapTile.RateLimit,
		)
	}
	return &geotag.Engine{Style: style, Compositor: comp, Logf: logVerbose}
}
