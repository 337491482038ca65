package cmd

import (
	"context"

	"github.com/els0r/netproto/cmd/netproto/config"
	"github.com/els0r/netproto/pkg/protocols"
	"github.com/spf13/cobra"
)

func listCommand(cfg *config.Config) *cobra.Command {
	var withFingerprint bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all protocols",
		Long:  "List all entries of the protocol database in database order. Not available for the system backend on Windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, fp, err := listRecords(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if !withFingerprint {
				fp = ""
			}

			printer, err := newPrinter(cmd, cfg)
			if err != nil {
				return err
			}
			return printer.PrintRecords(records, fp)
		},
	}
	cmd.Flags().BoolVar(&withFingerprint, "fingerprint", false, "print a digest of the listed entries")

	return cmd
}

func listRecords(ctx context.Context, cfg *config.Config) ([]*protocols.Record, string, error) {
	d, err := initDirectory(ctx, cfg)
	if err != nil {
		return nil, "", err
	}
	return protocols.List(ctx, d)
}
