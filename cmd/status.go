package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/intelligrit/geostamp/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stored image and location-history counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		fmt.Printf("Geostamp Status\n")
		fmt.Printf("===============\n")
		fmt.Printf("Tagged images:     %d\n", s.ImageCount())
		fmt.Printf("History entries:   %d\n", s.HistoryCount())
		fmt.Printf("Favorite places:   %d\n", s.FavoriteCount())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
