package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-stepform/pkg/listings"
)

func newBrowseCommand(app *App, opts *RootOptions) *cobra.Command {
	filter := listings.DefaultFilter()
	var featured bool
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Search the listing catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results := app.Catalog.Search(filter)
			if featured {
				kept := results[:0]
				for _, l := range results {
					if l.Featured {
						kept = append(kept, l)
					}
				}
				results = kept
			}
			if opts.Format != "text" {
				return writeStructured(cmd.OutOrStdout(), opts.Format, results)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tCITY\tPRICE")
			for _, l := range results {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s %.2f/%s\n",
					l.ID, l.Title, l.Category, l.Location.City,
					l.Pricing.Currency, l.Pricing.Amount, l.Pricing.Unit)
			}
			fmt.Fprintf(tw, "\n%d of %d listings\n", len(results), app.Catalog.Len())
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&filter.Query, "query", "", "match title or description")
	cmd.Flags().StringVar(&filter.Category, "category", "", "category key (all for every category)")
	cmd.Flags().Float64Var(&filter.MinPrice, "min", filter.MinPrice, "minimum price")
	cmd.Flags().Float64Var(&filter.MaxPrice, "max", filter.MaxPrice, "maximum price (0 for no limit)")
	cmd.Flags().BoolVar(&featured, "featured", false, "only featured listings")
	return cmd
}
