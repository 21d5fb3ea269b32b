package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amenity-labs/amenity-finder/internal/store"
)

var (
	rateName   string
	rateValue  int
	rateReview string
)

var rateCmd = &cobra.Command{
	Use:   "rate <business-id>",
	Short: "Save or update your rating for a business",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		rating, err := env.Store.UpsertRating(cmd.Context(), args[0], rateName, rateValue, rateReview)
		if err != nil {
			if store.IsValidation(err) {
				return fmt.Errorf("invalid rating: %w", err)
			}
			return err
		}

		fmt.Printf("Saved %d/5 for %s (visited %s)\n",
			rating.UserRating, rating.BusinessName, rating.VisitedDate.Format("2006-01-02"))
		return nil
	},
}

func init() {
	rateCmd.Flags().StringVar(&rateName, "name", "", "business name")
	rateCmd.Flags().IntVar(&rateValue, "rating", 0, "your rating, 1 to 5")
	rateCmd.Flags().StringVar(&rateReview, "review", "", "optional review text")
	rateCmd.MarkFlagRequired("name")
	rateCmd.MarkFlagRequired("rating")
	rootCmd.AddCommand(rateCmd)
}
