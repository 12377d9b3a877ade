package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"path-explorer/internal/pathexpr"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <path>",
		Short: "Show the segments of a path expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
			cfg.Fdump(cmd.OutOrStdout(), pathexpr.Parse(args[0]))

			return nil
		},
	}
}
