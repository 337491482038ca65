package cmd

import (
	"fmt"
	"strconv"

	"github.com/els0r/netproto/cmd/netproto/config"
	"github.com/els0r/netproto/pkg/output"
	"github.com/els0r/netproto/pkg/protocols"
	"github.com/spf13/cobra"
)

type resolveFunc func(d protocols.Directory, arg string) (*protocols.Record, error)

func nameCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "name NAME [NAME...]",
		Short: "Look up protocols by name or alias",
		Long:  "Look up protocols by name or alias. Names are matched case sensitively. Exits with code 2 if a protocol is unknown",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, cfg, args, byName)
		},
	}
}

func numberCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "number NUMBER [NUMBER...]",
		Short: "Look up protocols by number",
		Long:  "Look up protocols by their IANA protocol number. Exits with code 2 if a protocol is unknown",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, cfg, args, byNumber)
		},
	}
}

func lookupCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup PROTOCOL [PROTOCOL...]",
		Short: "Look up protocols by name or number",
		Long:  "Look up protocols by number if the argument is numeric and by name or alias otherwise. Exits with code 2 if a protocol is unknown",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, cfg, args, func(d protocols.Directory, arg string) (*protocols.Record, error) {
				if _, err := strconv.ParseInt(arg, 10, 64); err == nil {
					return byNumber(d, arg)
				}
				return byName(d, arg)
			})
		},
	}
}

func byName(d protocols.Directory, name string) (*protocols.Record, error) {
	return d.ByName(name)
}

func byNumber(d protocols.Directory, arg string) (*protocols.Record, error) {
	number, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a protocol number", protocols.ErrInvalidArgument, arg)
	}
	if _, err := protocols.CheckNumber(number); err != nil {
		return nil, err
	}
	return d.ByNumber(int(number))
}

func runLookup(cmd *cobra.Command, cfg *config.Config, args []string, resolve resolveFunc) error {
	d, err := initDirectory(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	printer, err := newPrinter(cmd, cfg)
	if err != nil {
		return err
	}

	hits := make([]*protocols.Record, 0, len(args))
	for _, arg := range args {
		r, err := resolve(d, arg)
		if err != nil {
			return err
		}
		if r == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "protocol %q not found\n", arg)
			continue
		}
		hits = append(hits, r)
	}

	// a single query prints a single record, everything else one list
	switch {
	case len(args) == 1 && len(hits) == 1:
		err = printer.PrintRecord(hits[0])
	case len(hits) > 0:
		err = printer.PrintRecords(hits, "")
	}
	if err != nil {
		return err
	}
	if len(hits) < len(args) {
		return ErrNotFound
	}
	return nil
}

func newPrinter(cmd *cobra.Command, cfg *config.Config) (output.Printer, error) {
	w := cmd.OutOrStdout()

	format := output.DefaultFormat(w)
	if cfg.Output.Format != "" {
		var err error
		format, err = output.ParseFormat(cfg.Output.Format)
		if err != nil {
			return nil, err
		}
	}
	return output.New(format, w)
}
