package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var profileName string

	rootCmd := &cobra.Command{
		Use:           "invscan",
		Short:         "Inventory scanner: borrow, return and count items by QR code",
		Long:          "invscan decodes item QR codes from camera frames or typed input and turns each scan into a borrow-cart, return or cycle-count action against the inventory server, keeping a local item cache reconciled with the server.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Server profile (default: current profile or INVSCAN_PROFILE)")

	app, err := wireApp(&profileName)
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newItemsCmd(app),
		newScanCmd(app),
		newCartCmd(app),
		newInventoryCmd(app),
		newProfileCmd(app),
		newLabelCmd(app),
		newDevServerCmd(app),
	)

	return rootCmd
}
