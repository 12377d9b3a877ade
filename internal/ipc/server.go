package ipc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"path-explorer/internal/logger"
	"path-explorer/internal/metrics"
)

// Default policy values.
const (
	DefaultHeartbeatTimeout  = 30 * time.Second
	DefaultHeartbeatInterval = 5 * time.Second

	maxLineSize = 4 << 20
)

// StopReason tells why Serve returned.
type StopReason string

const (
	StopNone             StopReason = ""
	StopShutdown         StopReason = "shutdown requested"
	StopDisconnect       StopReason = "client disconnected"
	StopHeartbeatTimeout StopReason = "heartbeat timeout"
	StopContext          StopReason = "context done"
)

// Options is the lifecycle policy of a Server.
type Options struct {
	// HeartbeatTimeout stops the server when no line arrives for this long.
	// Zero disables the check.
	HeartbeatTimeout time.Duration
	// HeartbeatInterval is how often the timeout is checked.
	HeartbeatInterval time.Duration
	// ExitOnDisconnect stops the server when a client disconnects.
	ExitOnDisconnect bool
}

// DefaultOptions returns the policy of an editor-owned daemon.
func DefaultOptions() Options {
	return Options{
		HeartbeatTimeout:  DefaultHeartbeatTimeout,
		HeartbeatInterval: DefaultHeartbeatInterval,
		ExitOnDisconnect:  true,
	}
}

// Server accepts clients on a Unix domain socket.
type Server struct {
	path    string
	handler *Handler
	opts    Options
	log     *zap.SugaredLogger
	metrics *metrics.Metrics

	ln       net.Listener
	lastSeen atomic.Int64

	stopOnce sync.Once
	reason   StopReason
	cancel   context.CancelFunc
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(log *zap.SugaredLogger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithServerMetrics tracks open connections.
func WithServerMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) { s.metrics = m }
}

// NewServer creates a server for the socket at path.
func NewServer(path string, handler *Handler, opts Options, options ...ServerOption) *Server {
	if opts.HeartbeatTimeout > 0 && opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = DefaultHeartbeatInterval
	}

	s := &Server{
		path:    path,
		handler: handler,
		opts:    opts,
		log:     zap.NewNop().Sugar(),
	}

	for _, o := range options {
		o(s)
	}

	return s
}

// Listen binds the socket. A stale socket file left by a previous run is
// removed first.
func (s *Server) Listen() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "failed to remove existing socket %s", s.path)
	}

	ln, err := net.Listen("unix", s.path)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.path)
	}

	s.ln = ln
	s.log.Infow("listening", logger.FieldSocket, s.path)

	return nil
}

// Addr returns the socket path.
func (s *Server) Addr() string {
	return s.path
}

// Reason returns why the last Serve call returned.
func (s *Server) Reason() StopReason {
	return s.reason
}

// ListenAndServe binds the socket and serves until the server stops.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	return s.Serve(ctx)
}

// Serve accepts clients until the server stops. Normal stops return nil;
// Reason tells which one happened. The socket file is removed on return.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		return errors.New("server is not listening")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.cancel = cancel
	s.touch()

	defer func() {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.log.Warnw("failed to remove socket", logger.FieldSocket, s.path, logger.FieldError, err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		s.stop(StopContext)

		return s.ln.Close()
	})

	g.Go(func() error {
		return s.monitorHeartbeat(gctx)
	})

	g.Go(func() error {
		for {
			conn, err := s.ln.Accept()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}

				return errors.Wrap(err, "accept failed")
			}

			g.Go(func() error {
				s.serveConn(gctx, conn)
				return nil
			})
		}
	})

	err := g.Wait()
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}

	s.log.Infow("server stopped", "reason", string(s.reason))

	return err
}

// stop records the first stop reason and cancels Serve.
func (s *Server) stop(reason StopReason) {
	s.stopOnce.Do(func() {
		s.reason = reason
		if s.cancel != nil {
			s.cancel()
		}
	})
}

func (s *Server) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *Server) monitorHeartbeat(ctx context.Context) error {
	if s.opts.HeartbeatTimeout <= 0 {
		return nil
	}

	ticker := time.NewTicker(s.opts.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			idle := time.Since(time.Unix(0, s.lastSeen.Load()))
			if idle > s.opts.HeartbeatTimeout {
				s.log.Warnw("client heartbeat timeout", "idle", idle.String())
				s.stop(StopHeartbeatTimeout)

				return nil
			}
		}
	}
}

// serveConn answers requests on conn line by line until the client goes
// away or ctx ends.
func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	connID := uuid.NewString()
	log := s.log.With(logger.FieldConnID, connID)

	s.metrics.ConnectionOpened()
	defer s.metrics.ConnectionClosed()

	// Unblock the reader when the server stops.
	stopClose := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stopClose()
	defer conn.Close()

	log.Infow("client connected")
	s.touch()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	w := bufio.NewWriter(conn)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for scanner.Scan() {
		s.touch()

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		resp, shutdown := s.handler.HandleLine(line)

		if err := enc.Encode(resp); err != nil {
			log.Warnw("failed to encode response", logger.FieldError, err)
			return
		}

		if err := w.Flush(); err != nil {
			log.Infow("client connection error", logger.FieldError, err)
			s.disconnected()

			return
		}

		if shutdown {
			s.stop(StopShutdown)
			return
		}
	}

	if ctx.Err() != nil {
		return
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
		log.Infow("client connection error", logger.FieldError, err)
	} else {
		log.Infow("client disconnected")
	}

	s.disconnected()
}

func (s *Server) disconnected() {
	if s.opts.ExitOnDisconnect {
		s.stop(StopDisconnect)
	}
}
