package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/logger"
)

func historyCmd() *cobra.Command {
	var file string
	historyRoot := &cobra.Command{
		Use:   "history",
		Short: "Manage a local browsing history",
		Long: "Keeps a recently viewed list in a file and resolves it into the\n" +
			"\"recently viewed\" and \"related products\" rails against a storefront.",
	}
	historyRoot.PersistentFlags().StringVar(&file, "file", "", "history file (default in the user config dir)")

	openStore := func(ctx context.Context) (*history.Store, error) {
		path := file
		if path == "" {
			var err error
			if path, err = history.DefaultFilePath(); err != nil {
				return nil, err
			}
		}
		return history.NewStore(ctx, history.NewFileStorage(path))
	}

	historyRoot.AddCommand(
		historyAddCmd(openStore),
		historyListCmd(openStore),
		historyClearCmd(openStore),
		historyRailsCmd(openStore),
	)
	return historyRoot
}

type storeOpener func(ctx context.Context) (*history.Store, error)

func historyAddCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:     "add <product-id> <category>",
		Short:   "Record a product view",
		Example: `  modeva history add 0190a0b0-0000-7000-8000-000000000001 mens-shoes`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(cmd.Context())
			if err != nil {
				return err
			}
			return store.Add(cmd.Context(), history.Entry{ID: args[0], Category: args[1]})
		},
	}
}

func historyListCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show recorded views, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := open(cmd.Context())
			if err != nil {
				return err
			}
			entries := store.Entries()
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "History is empty.")
				return nil
			}
			tw := newTabWriter(out)
			tw.writef("#\tPRODUCT\tCATEGORY\n")
			for i, e := range entries {
				tw.writef("%d\t%s\t%s\n", i+1, e.ID, e.Category)
			}
			return tw.finish()
		},
	}
}

func historyClearCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget all recorded views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := open(cmd.Context())
			if err != nil {
				return err
			}
			return store.Clear(cmd.Context())
		},
	}
}

func historyRailsCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "rails",
		Short: "Resolve the history into product rails",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := open(cmd.Context())
			if err != nil {
				return err
			}
			log, err := logger.New("warn", "console")
			if err != nil {
				return err
			}

			rails := history.NewRails(store, newClient(), nil, log)
			rails.Wait()
			set := rails.Current()
			rails.Close()

			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, map[string]any{"history": set.History, "related": set.Related})
			}
			fmt.Fprintln(out, "Recently viewed")
			if err := printProductTable(out, set.History); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nRelated products")
			return printProductTable(out, set.Related)
		},
	}
}
