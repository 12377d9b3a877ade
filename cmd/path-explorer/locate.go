package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"path-explorer/internal/shape"
)

func newLocateCmd(a *app) *cobra.Command {
	var types typeFlags

	cmd := &cobra.Command{
		Use:   "locate <type>",
		Short: "Print the file declaring a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := a.loadTypes(types)
			if err != nil {
				return err
			}

			path, err := ts.chain().Locate(shape.TypeRef(strings.TrimSpace(args[0])))
			if err != nil {
				return exitHint(err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)

			return err
		},
	}

	types.register(cmd)

	return cmd
}
