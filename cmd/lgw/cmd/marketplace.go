package cmd

import (
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search eBay products",
		Long:  "Sends a search to the gateway and prints the raw eBay Browse API response.",
		Example: `  lgw search "vintage film camera"
  lgw search "canon ae-1" --limit 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := newClient().Search(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), body)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (server default when unset)")

	return cmd
}

func itemCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "item <id>",
		Short:   "Show eBay item details",
		Long:    "Fetches a single item through the gateway and prints the raw eBay response.",
		Example: `  lgw item "v1|110554770412|0"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := newClient().GetItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), body)
		},
	}
}

func categoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "category <query>",
		Short:   "Suggest eBay categories",
		Long:    "Asks the gateway for eBay category suggestions and prints the raw response.",
		Example: `  lgw category "digital camera"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := newClient().SuggestCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), body)
		},
	}
}
