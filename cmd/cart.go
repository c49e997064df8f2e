package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
	"github.com/spf13/cobra"
)

func newCartCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the server-side borrow cart",
	}

	cmd.AddCommand(newCartRemoveCmd(app), newCartCheckoutCmd(app))

	return cmd
}

func newCartRemoveCmd(app *app) *cobra.Command {
	var itemID int64

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove an item from the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if itemID <= 0 {
				return fmt.Errorf("--item must be a positive item id")
			}
			conn, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			if err := conn.inventory.RemoveFromCart(cmd.Context(), domain.ItemID(itemID)); err != nil {
				return fmt.Errorf("remove item %d from cart: %w", itemID, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed item %d from cart\n", itemID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&itemID, "item", 0, "Item ID")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func newCartCheckoutCmd(app *app) *cobra.Command {
	var borrower string
	var due time.Duration

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Borrow every item in the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			req := checkoutRequest(app, conn.profile, borrower, due)
			transactionID, err := conn.inventory.Checkout(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("checkout cart: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Checked out cart for %s (transaction %s)\n", sanitizeForTerminal(req.Borrower), transactionID)
			return nil
		},
	}

	cmd.Flags().StringVar(&borrower, "borrower", "", "Borrower name (default: profile borrower)")
	cmd.Flags().DurationVar(&due, "due", 0, "Expected return, relative to now (e.g. 72h)")

	return cmd
}

func checkoutRequest(app *app, profile domain.Profile, borrower string, due time.Duration) ports.CheckoutRequest {
	req := ports.CheckoutRequest{Borrower: strings.TrimSpace(borrower)}
	if req.Borrower == "" {
		req.Borrower = profile.Borrower
	}
	if due > 0 {
		req.ExpectedReturnAt = app.now().Add(due).UTC()
	}
	return req
}
