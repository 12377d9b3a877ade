package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"path-explorer/internal/ipc"
	"path-explorer/internal/logger"
	"path-explorer/internal/metrics"
	"path-explorer/internal/shape"
	"path-explorer/internal/watch"
)

type serveOptions struct {
	types            typeFlags
	heartbeatTimeout time.Duration
	stayAlive        bool
	metricsAddr      string
	watch            bool
}

func newServeCmd(a *app) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve <socket>",
		Short: "Answer completion requests on a Unix domain socket",
		Long: `Serve listens on a Unix domain socket and answers line-delimited JSON
requests (ping, heartbeat, shutdown, explore_path, explore_type_source).

The server stops on shutdown, when the client disconnects (unless
--stay-alive), when no request arrives within the heartbeat timeout, or on
SIGINT/SIGTERM. The socket file is removed on exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd, opts, args[0])
		},
	}

	opts.types.register(cmd)
	cmd.Flags().DurationVar(&opts.heartbeatTimeout, "heartbeat-timeout", ipc.DefaultHeartbeatTimeout, "Stop when no request arrives for this long (0 disables)")
	cmd.Flags().BoolVar(&opts.stayAlive, "stay-alive", false, "Keep serving after the client disconnects")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload the catalog when its files change")

	return cmd
}

// serverOptions merges the configuration with the flags set explicitly.
func (a *app) serverOptions(cmd *cobra.Command, opts *serveOptions) (ipc.Options, string) {
	sc := a.cfg.Server

	o := ipc.Options{
		HeartbeatTimeout:  sc.HeartbeatTimeout,
		HeartbeatInterval: sc.HeartbeatInterval,
		ExitOnDisconnect:  sc.ExitOnDisconnect,
	}
	addr := sc.MetricsAddr

	flags := cmd.Flags()
	if flags.Changed("heartbeat-timeout") {
		o.HeartbeatTimeout = opts.heartbeatTimeout
	}

	if flags.Changed("stay-alive") {
		o.ExitOnDisconnect = !opts.stayAlive
	}

	if flags.Changed("metrics-addr") {
		addr = opts.metricsAddr
	}

	return o, addr
}

func (a *app) runServe(cmd *cobra.Command, opts *serveOptions, socket string) error {
	ts, err := a.loadTypes(opts.types)
	if err != nil {
		return err
	}

	serverOpts, metricsAddr := a.serverOptions(cmd, opts)

	watchCatalog := a.cfg.Types.Watch
	if cmd.Flags().Changed("watch") {
		watchCatalog = opts.watch
	}

	m := metrics.New()
	chain := ts.chain()

	handler := ipc.NewHandler(newResolver(chain),
		ipc.WithLocator(chain),
		ipc.WithMetrics(m),
		ipc.WithHandlerLogger(logger.Named("handler")),
	)
	server := ipc.NewServer(socket, handler, serverOpts,
		ipc.WithLogger(logger.Named("server")),
		ipc.WithServerMetrics(m),
	)

	var watcher *watch.Watcher

	if watchCatalog && ts.pattern != "" {
		files, err := shape.CatalogFiles(ts.pattern)
		if err != nil {
			return err
		}

		watcher, err = watch.New(files, func() error {
			if err := ts.reloadCatalog(); err != nil {
				return err
			}

			next := ts.chain()
			handler.Reload(newResolver(next), next)

			return nil
		}, watch.WithLogger(logger.Named("watch")))
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Listen(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	if metricsAddr != "" {
		g.Go(func() error {
			logger.Logger.Infow("serving metrics", logger.FieldAddress, metricsAddr)
			return m.Serve(gctx, metricsAddr)
		})
	}

	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	g.Go(func() error {
		defer cancel()
		return server.Serve(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Logger.Infow("exiting", "reason", string(server.Reason()))

	return nil
}
