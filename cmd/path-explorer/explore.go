package main

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"path-explorer/internal/logger"
	"path-explorer/internal/resolve"
	"path-explorer/internal/shape"
)

type exploreOptions struct {
	types   typeFlags
	sources []string
	enum    bool
	target  bool
}

func newExploreCmd(a *app) *cobra.Command {
	opts := &exploreOptions{}

	cmd := &cobra.Command{
		Use:   "explore <type> [path]",
		Short: "List completions at the end of a path expression",
		Long: `Explore lists the members reachable at the end of a path expression and
prints the result as JSON.

With --source the path starts with one of the named parameters and the
type argument is omitted:
  path-explorer explore --catalog types.yaml com.example.Person address.
  path-explorer explore --source order=store.Order --source user=store.User order.items.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(opts.sources) > 0 {
				return cobra.MaximumNArgs(1)(cmd, args)
			}

			return cobra.RangeArgs(1, 2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExplore(cmd, opts, args)
		},
	}

	opts.types.register(cmd)
	cmd.Flags().StringArrayVar(&opts.sources, "source", nil, "Source parameter as name=type (repeatable)")
	cmd.Flags().BoolVar(&opts.enum, "enum", false, "Complete enumeration constants")
	cmd.Flags().BoolVar(&opts.target, "target", false, "Complete the write target of a mapping")

	return cmd
}

func (a *app) runExplore(cmd *cobra.Command, opts *exploreOptions, args []string) error {
	req := resolve.Request{IsEnum: opts.enum, IsTargetCompletion: opts.target}

	if len(opts.sources) > 0 {
		for _, s := range opts.sources {
			p, err := resolve.ParseSourceParameter(s)
			if err != nil {
				return err
			}

			req.Sources = append(req.Sources, p)
		}

		if len(args) == 1 {
			req.PathExpression = args[0]
		}
	} else {
		p, err := resolve.NewSourceParameter(resolve.SingleSourceName, args[0])
		if err != nil {
			return err
		}

		req.Sources = []resolve.SourceParameter{p}
		if len(args) == 2 {
			req.PathExpression = args[1]
		}
	}

	ts, err := a.loadTypes(opts.types)
	if err != nil {
		return err
	}

	result, err := newResolver(ts.chain()).Resolve(req)
	if err != nil {
		return exitHint(err)
	}

	logger.Logger.Debugw("explored",
		logger.FieldPath, req.PathExpression,
		logger.FieldType, result.ClassName,
		logger.FieldCount, len(result.Completions),
	)

	return writeJSON(cmd.OutOrStdout(), result)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return errors.Wrap(enc.Encode(v), "failed to write output")
}

// exitHint adds a hint for type lookups that failed on the command line.
func exitHint(err error) error {
	if errors.Is(err, shape.ErrTypeNotFound) {
		return errors.WithHint(err, "pass --pkg or --catalog, or set types in the config file")
	}

	return err
}
