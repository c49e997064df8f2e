package cmd

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/bnema/invscan/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage inventory server profiles",
	}

	cmd.AddCommand(newProfileSetCmd(app), newProfileListCmd(app), newProfileUseCmd(app))

	return cmd
}

func newProfileSetCmd(app *app) *cobra.Command {
	var name string
	var baseURL string
	var borrower string
	var sessionID string
	var token string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			profile, err := app.profiles.GetByName(ctx, name)
			if err != nil {
				if !errors.Is(err, domain.ErrProfileNotFound) {
					return err
				}
				profile = domain.Profile{Name: name}
			}
			if cmd.Flags().Changed("base-url") {
				profile.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
			}
			if cmd.Flags().Changed("borrower") {
				profile.Borrower = strings.TrimSpace(borrower)
			}
			if cmd.Flags().Changed("session") {
				profile.ActiveSession = domain.InventorySessionID(strings.TrimSpace(sessionID))
			}
			profile.UpdatedAt = app.now().UTC()

			if err := app.profiles.Save(ctx, profile); err != nil {
				return err
			}
			if cmd.Flags().Changed("token") {
				if err := app.secretStore.Put(ctx, profile.TokenKey(), strings.TrimSpace(token)); err != nil {
					return fmt.Errorf("store token for profile %s: %w", profile.Name, err)
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %s (%s)\n", sanitizeForTerminal(profile.Name), sanitizeForTerminal(profile.BaseURL))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", domain.DefaultProfileName, "Profile name")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Inventory server base URL")
	cmd.Flags().StringVar(&borrower, "borrower", "", "Default borrower for checkouts")
	cmd.Flags().StringVar(&sessionID, "session", "", "Active cycle-count session ID")
	cmd.Flags().StringVar(&token, "token", "", "API token, kept in the secret store")

	return cmd
}

func newProfileListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.profiles.List(cmd.Context())
			if err != nil {
				return err
			}
			current, err := app.profiles.GetByName(cmd.Context(), "")
			if err != nil {
				current = domain.Profile{}
			}

			if len(profiles) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "profiles: none")
				return nil
			}
			for _, profile := range profiles {
				marker := " "
				if profile.Name == current.Name {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\t%s\n",
					marker,
					sanitizeForTerminal(profile.Name),
					sanitizeForTerminal(profile.BaseURL),
					sanitizeForTerminal(profile.Borrower),
					sanitizeForTerminal(string(profile.ActiveSession)),
				)
			}
			return nil
		},
	}
}

func newProfileUseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Make a profile the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.profiles.Use(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Using profile %s\n", sanitizeForTerminal(args[0]))
			return nil
		},
	}
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
