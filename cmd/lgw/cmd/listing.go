package cmd

import (
	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/ebay-listing-gateway/internal/api/client"
)

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <url>",
		Short: "Summarize a listing page",
		Long:  "Has the gateway fetch a public eBay listing page and report its title, keywords, and description snippet.",
		Example: `  lgw analyze https://www.ebay.com/itm/110554770412
  lgw analyze https://www.ebay.com/itm/110554770412 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newClient().AnalyzeListing(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), out)
			}
			return printExtraction(cmd.OutOrStdout(), out)
		},
	}
}

func scoreCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "score <title> <price>",
		Short: "Score a listing",
		Long:  "Scores a listing's title, price, and category and prints improvement tips.",
		Example: `  lgw score "Brand New Widget XL Pro Edition" 1500 --category Electronics
  lgw score "Old lens" 25 --output json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newClient().Score(cmd.Context(), apiclient.ScoreParams{
				Title:    args[0],
				Price:    args[1],
				Category: category,
			})
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), out)
			}
			return printScore(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "listing category")

	return cmd
}

func quotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show eBay API quota usage",
		Example: `  lgw quota
  lgw quota --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := newClient().Quota(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), out)
			}
			return printQuota(cmd.OutOrStdout(), out)
		},
	}
}
