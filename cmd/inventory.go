package cmd

import (
	"context"
	"fmt"

	inventoryview "github.com/bnema/invscan/internal/adapters/render/inventory"
	"github.com/bnema/invscan/internal/application"
	"github.com/bnema/invscan/internal/domain"
	"github.com/spf13/cobra"
)

func newInventoryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"count"},
		Short:   "Inspect and edit cycle-count sessions",
	}

	cmd.AddCommand(newInventoryShowCmd(app), newInventoryUpdateCmd(app))

	return cmd
}

func newInventoryShowCmd(app *app) *cobra.Command {
	var sessionFlag string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show progress of a cycle-count session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}
			sessionID, err := requireSession(app, sessionFlag, conn.profile)
			if err != nil {
				return err
			}

			var items []domain.Item
			var session domain.InventorySession
			svc := application.NewCycleCountService(conn.inventory, app.newEntryCache())
			loadSession := func(ctx context.Context) (err error) {
				session, err = svc.Load(ctx, sessionID)
				return err
			}
			listItems := func(ctx context.Context) (err error) {
				items, err = conn.inventory.ListItems(ctx)
				return err
			}
			if err := runSyncSpinner(cmd.Context(), cmd.ErrOrStderr(),
				syncStep{label: "Fetching session...", run: loadSession},
				syncStep{label: "Fetching items...", run: listItems},
			); err != nil {
				return fmt.Errorf("load session %s: %w", sessionID, err)
			}

			return writeView(cmd, app, inventoryview.View{Title: "Inventory", Items: items, Session: &session})
		},
	}

	cmd.Flags().StringVar(&sessionFlag, "session", "", "Session ID (default: profile session)")

	return cmd
}

func newInventoryUpdateCmd(app *app) *cobra.Command {
	var sessionFlag string
	var itemID int64
	var location string
	var condition string
	var notes string
	var unchecked bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Record location, condition or notes for a session entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if itemID <= 0 {
				return fmt.Errorf("--item must be a positive item id")
			}
			conn, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}
			sessionID, err := requireSession(app, sessionFlag, conn.profile)
			if err != nil {
				return err
			}

			var patch domain.EntryPatch
			if cmd.Flags().Changed("location") {
				patch.NewLocation = &location
			}
			if cmd.Flags().Changed("condition") {
				patch.NewCondition = &condition
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			if cmd.Flags().Changed("unchecked") {
				checked := !unchecked
				patch.Checked = &checked
			}
			if patch.Empty() {
				return fmt.Errorf("nothing to update: set --location, --condition, --notes or --unchecked")
			}

			svc := application.NewCycleCountService(conn.inventory, app.newEntryCache())
			if _, err := svc.Load(cmd.Context(), sessionID); err != nil {
				return fmt.Errorf("load session %s: %w", sessionID, err)
			}
			entry, err := svc.UpdateEntry(cmd.Context(), sessionID, domain.ItemID(itemID), patch)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated item %d: checked=%t location=%q condition=%q notes=%q\n",
				entry.ItemID, entry.Checked, sanitizeForTerminal(entry.NewLocation), sanitizeForTerminal(entry.NewCondition), sanitizeForTerminal(entry.Notes))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionFlag, "session", "", "Session ID (default: profile session)")
	cmd.Flags().Int64Var(&itemID, "item", 0, "Item ID")
	cmd.Flags().StringVar(&location, "location", "", "New location")
	cmd.Flags().StringVar(&condition, "condition", "", "New condition")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	cmd.Flags().BoolVar(&unchecked, "unchecked", false, "Mark the entry as not yet counted")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func requireSession(app *app, flag string, profile domain.Profile) (domain.InventorySessionID, error) {
	sessionID := app.sessionID(flag, profile)
	if sessionID == "" {
		return "", fmt.Errorf("no cycle-count session: pass --session or set one with `invscan profile set --session`")
	}
	return sessionID, nil
}
