package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amenity-labs/amenity-finder/internal/geo"
	"github.com/amenity-labs/amenity-finder/internal/model"
)

var (
	dirFromLat float64
	dirFromLng float64
	dirToLat   float64
	dirToLng   float64
)

var directionsCmd = &cobra.Command{
	Use:   "directions",
	Short: "Estimate travel options between two points",
	RunE: func(cmd *cobra.Command, args []string) error {
		origin := model.Coordinates{Latitude: dirFromLat, Longitude: dirFromLng}
		destination := model.Coordinates{Latitude: dirToLat, Longitude: dirToLng}

		for _, route := range geo.RouteOptions(origin, destination) {
			fmt.Printf("%-10s %6.1f km  ~%d min\n", route.Label, route.DistanceKm, route.TimeMinutes)
		}
		return nil
	},
}

func init() {
	directionsCmd.Flags().Float64Var(&dirFromLat, "from-lat", 0, "origin latitude")
	directionsCmd.Flags().Float64Var(&dirFromLng, "from-lng", 0, "origin longitude")
	directionsCmd.Flags().Float64Var(&dirToLat, "to-lat", 0, "destination latitude")
	directionsCmd.Flags().Float64Var(&dirToLng, "to-lng", 0, "destination longitude")
	directionsCmd.MarkFlagRequired("from-lat")
	directionsCmd.MarkFlagRequired("from-lng")
	directionsCmd.MarkFlagRequired("to-lat")
	directionsCmd.MarkFlagRequired("to-lng")
	rootCmd.AddCommand(directionsCmd)
}
