package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	ratingsLimit  int
	ratingsOffset int
)

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Inspect saved ratings",
}

var ratingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved ratings, most recently visited first",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		ratings, err := env.Store.ListRatings(cmd.Context(), ratingsLimit, ratingsOffset)
		if err != nil {
			return err
		}

		if len(ratings) == 0 {
			fmt.Println("No ratings saved yet.")
			return nil
		}

		fmt.Printf("%-30s %6s %-12s %s\n", "BUSINESS", "RATING", "VISITED", "REVIEW")
		for _, r := range ratings {
			fmt.Printf("%-30.30s %5d/5 %-12s %.60s\n",
				r.BusinessName, r.UserRating, r.VisitedDate.Format("2006-01-02"), r.UserReview)
		}

		return nil
	},
}

var ratingsGetCmd = &cobra.Command{
	Use:   "get <business-id>",
	Short: "Show your rating for one business",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		rating, err := env.Store.GetRating(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if rating == nil {
			fmt.Println("No rating saved for this business.")
			return nil
		}

		fmt.Printf("%s: %d/5, visited %s\n", rating.BusinessName, rating.UserRating, rating.VisitedDate.Format("2006-01-02"))
		if rating.UserReview != "" {
			fmt.Println(rating.UserReview)
		}
		return nil
	},
}

func init() {
	ratingsListCmd.Flags().IntVar(&ratingsLimit, "limit", 0, "max records to return (default 50)")
	ratingsListCmd.Flags().IntVar(&ratingsOffset, "offset", 0, "records to skip")
	ratingsCmd.AddCommand(ratingsListCmd)
	ratingsCmd.AddCommand(ratingsGetCmd)
	rootCmd.AddCommand(ratingsCmd)
}
