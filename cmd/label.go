package cmd

import (
	"fmt"

	"github.com/bnema/invscan/internal/adapters/label"
	"github.com/bnema/invscan/internal/domain"
	"github.com/spf13/cobra"
)

func newLabelCmd(_ *app) *cobra.Command {
	var itemIDs []int64
	var dir string
	var output string
	var size int

	cmd := &cobra.Command{
		Use:   "label",
		Short: "Write QR labels for items as PNG files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != "" && len(itemIDs) > 1 {
				return fmt.Errorf("--out takes a single --item")
			}

			for _, id := range itemIDs {
				path, err := label.Write(cmd.Context(), domain.ItemID(id), dir, output, size)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", label.Payload(domain.ItemID(id)), path)
			}
			return nil
		},
	}

	cmd.Flags().Int64SliceVar(&itemIDs, "item", nil, "Item ID (repeatable)")
	cmd.Flags().StringVar(&dir, "dir", ".", "Output directory")
	cmd.Flags().StringVar(&output, "out", "", "Output file for a single label")
	cmd.Flags().IntVar(&size, "size", label.DefaultSize, "Label size in pixels")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}
