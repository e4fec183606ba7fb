package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/intelligrit/geostamp/internal/geotag"
	"github.com/intelligrit/geostamp/internal/model"
)

var (
	tagLat   float64
	tagLng   float64
	tagName  string
	tagStyle string
)

var tagCmd = &cobra.Command{
	Use:   "tag IMAGE",
	Short: "Geotag a single image from the command line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("style") {
			tagStyle = cfg.Stamp.Style
		}
		style, err := geotag.ParseStyle(tagStyle)
		if err != nil {
			return err
		}
		if tagLat < -90 || tagLat > 90 {
			return fmt.Errorf("latitude %v out of range [-90, 90]", tagLat)
		}
		if tagLng < -180 || tagLng > 180 {
			return fmt.Errorf("longitude %v out of range [-180, 180]", tagLng)
		}

		engine := newEngine(style)
		res := engine.Tag(cmd.Context(), args[0], model.LocationRecord{
			Latitude:  tagLat,
			Longitude: tagLng,
			Name:      tagName,
		})

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("tagging failed: %s", res.Message)
		}
		return nil
	},
}

func init() {
	tagCmd.Flags().Float64Var(&tagLat, "lat", 0, "Latitude in decimal degrees")
	tagCmd.Flags().Float64Var(&tagLng, "lng", 0, "Longitude in decimal degrees")
	tagCmd.Flags().StringVar(&tagName, "name", "", "Location name")
	tagCmd.Flags().StringVar(&tagStyle, "style", "", "Stamp style: badge, textbar or exif")
	tagCmd.MarkFlagRequired("lat")
	tagCmd.MarkFlagRequired("lng")
	rootCmd.AddCommand(tagCmd)
}
