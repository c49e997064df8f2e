package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	inventoryview "github.com/bnema/invscan/internal/adapters/render/inventory"
	"github.com/bnema/invscan/internal/domain"
	"github.com/spf13/cobra"
)

func newItemsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Browse inventory items",
	}

	cmd.AddCommand(newItemsListCmd(app))

	return cmd
}

func newItemsListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all items with their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			var items []domain.Item
			fetch := func(ctx context.Context) error {
				items, err = conn.inventory.ListItems(ctx)
				return err
			}
			if asJSON {
				err = fetch(cmd.Context())
			} else {
				err = runSyncSpinner(cmd.Context(), cmd.ErrOrStderr(), syncStep{label: "Fetching items...", run: fetch})
			}
			if err != nil {
				return fmt.Errorf("list items: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			return writeView(cmd, app, inventoryview.View{Title: "Items", Items: items})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeView(cmd *cobra.Command, app *app, view inventoryview.View) error {
	rendered, err := app.render(view, inventoryview.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render inventory: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
