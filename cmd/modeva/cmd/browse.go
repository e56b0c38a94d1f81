package cmd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/Modeva-Ecommerce/modeva-storefront/logger"
	"github.com/Modeva-Ecommerce/modeva-storefront/search"
)

func browseCmd() *cobra.Command {
	flags := map[string]*string{}
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Search the storefront catalog",
		Long: "browse builds a filter state from flags, runs it against a storefront\n" +
			"and prints one page of results. Facets set to \"all\" are unconstrained.",
		Example: `  modeva browse --category mens-shoes --sort price-low-to-high
  modeva browse --q dress --price 50-100 --page 2 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values := url.Values{}
			for param, v := range flags {
				values.Set(param, *v)
			}
			return runBrowse(cmd.Context(), cmd, search.FromValues(values))
		},
	}

	for _, f := range []struct{ param, usage string }{
		{search.ParamQuery, "text to match in name or description"},
		{search.ParamCategory, "category slug"},
		{search.ParamTag, "tag"},
		{search.ParamPrice, "price range, e.g. 10-50"},
		{search.ParamRating, "minimum average rating"},
		{search.ParamBrand, "brand slug"},
		{search.ParamSort, "sort key"},
		{search.ParamPage, "page number"},
	} {
		flags[f.param] = cmd.Flags().String(f.param, "", f.usage)
	}
	return cmd
}

func runBrowse(ctx context.Context, cmd *cobra.Command, state search.FilterState) error {
	log, err := logger.New("warn", "console")
	if err != nil {
		return err
	}

	session := search.NewSession(state, newClient(), search.WithLogger(log))
	defer session.Close()

	session.Refresh()
	session.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	snap := session.Snapshot()
	if snap.Err != nil {
		return snap.Err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return outputJSON(out, snap.Results)
	}
	fmt.Fprintf(out, "?%s\n", snap.State.Encode())
	if len(snap.Results.Products) == 0 {
		fmt.Fprintln(out, "No products found.")
		return nil
	}
	if err := printProductTable(out, snap.Results.Products); err != nil {
		return err
	}
	fmt.Fprintf(out, "\npage %d of %d (%d products)\n", snap.Results.Page, snap.Results.TotalPages, snap.Results.Total)
	return nil
}
