package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/intelligrit/geostamp/internal/geotag"
	"github.com/intelligrit/geostamp/internal/store"
	"github.com/intelligrit/geostamp/internal/web"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the photo upload and geotagging web app",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("host") {
			serveHost = cfg.Server.Host
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		style, err := geotag.ParseStyle(cfg.Stamp.Style)
		if err != nil {
			return err
		}

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		uploadDir := filepath.Join(dataDir, "uploads")
		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			return fmt.Errorf("creating upload dir: %w", err)
		}

		srv := &web.Server{
			Store:          s,
			Engine:         newEngine(style),
			UploadDir:      uploadDir,
			MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
			Addr:           fmt.Sprintf("%s:%d", serveHost, servePort),
		}
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8000, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
