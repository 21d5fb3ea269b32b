package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amenity-labs/amenity-finder/internal/model"
)

var (
	searchLat         float64
	searchLng         float64
	searchMinRating   float64
	searchOpenNow     bool
	searchMaxDistance float64
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for amenities near a location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		origin := model.Coordinates{Latitude: searchLat, Longitude: searchLng}
		results, err := env.Search.Search(ctx, args[0], origin, model.FilterCriteria{
			MinRating:     searchMinRating,
			OpenNow:       searchOpenNow,
			MaxDistanceKm: searchMaxDistance,
		})
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results.")
			return nil
		}

		fmt.Printf("%-40s %6s %7s %8s %8s\n", "NAME", "SCORE", "RATING", "REVIEWS", "DIST KM")
		for _, r := range results {
			fmt.Printf("%-40.40s %6.1f %7.1f %8d %8.1f\n",
				r.Name, r.RankScore, r.RatingValue(), r.ReviewCountValue(), r.DistanceKm)
		}
		fmt.Printf("\n%d result(s)\n", len(results))

		return nil
	},
}

func init() {
	searchCmd.Flags().Float64Var(&searchLat, "lat", 0, "origin latitude")
	searchCmd.Flags().Float64Var(&searchLng, "lng", 0, "origin longitude")
	searchCmd.Flags().Float64Var(&searchMinRating, "min-rating", 0, "minimum public rating")
	searchCmd.Flags().BoolVar(&searchOpenNow, "open-now", false, "only places open now")
	searchCmd.Flags().Float64Var(&searchMaxDistance, "max-distance", 0, "maximum distance in km (default from config)")
	searchCmd.MarkFlagRequired("lat")
	searchCmd.MarkFlagRequired("lng")
	rootCmd.AddCommand(searchCmd)
}
