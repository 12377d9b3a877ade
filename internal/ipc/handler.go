package ipc

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"path-explorer/internal/logger"
	"path-explorer/internal/metrics"
	"path-explorer/internal/resolve"
	"path-explorer/internal/shape"
)

// Handler answers decoded requests. It is safe for concurrent use.
type Handler struct {
	types   atomic.Pointer[typeBackend]
	locator shape.Locator
	metrics *metrics.Metrics
	log     *zap.SugaredLogger
}

// typeBackend is swapped as a whole so a request never mixes two reloads.
type typeBackend struct {
	resolver *resolve.Resolver
	locator  shape.Locator
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLocator enables explore_type_source.
func WithLocator(l shape.Locator) HandlerOption {
	return func(h *Handler) { h.locator = l }
}

// WithMetrics records request metrics.
func WithMetrics(m *metrics.Metrics) HandlerOption {
	return func(h *Handler) { h.metrics = m }
}

// WithHandlerLogger sets the handler logger.
func WithHandlerLogger(log *zap.SugaredLogger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// NewHandler creates a Handler answering explore_path with resolver.
func NewHandler(resolver *resolve.Resolver, opts ...HandlerOption) *Handler {
	h := &Handler{
		log: zap.NewNop().Sugar(),
	}

	for _, opt := range opts {
		opt(h)
	}

	h.Reload(resolver, h.locator)

	return h
}

// Reload replaces the resolver and locator used by subsequent requests.
// Requests in flight finish with the previous ones.
func (h *Handler) Reload(resolver *resolve.Resolver, locator shape.Locator) {
	h.types.Store(&typeBackend{resolver: resolver, locator: locator})
}

// HandleLine decodes one request line and answers it. shutdown is true
// when the client asked the server to stop; the response must still be
// delivered.
func (h *Handler) HandleLine(line []byte) (resp Response, shutdown bool) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		h.log.Warnw("invalid JSON received", logger.FieldError, err)
		h.metrics.ObserveRequest("invalid", err, 0)

		return Response{Error: errInvalidJSONPrefix + err.Error()}, false
	}

	return h.Handle(req)
}

// Handle answers a decoded request.
func (h *Handler) Handle(req Request) (resp Response, shutdown bool) {
	start := time.Now()
	requestID := uuid.NewString()

	log := h.log.With(logger.FieldRequestID, requestID, logger.FieldMethod, req.Method)
	log.Debugw("request received", "id", string(req.ID))

	resp = Response{ID: req.ID}

	var err error

	switch req.Method {
	case "":
		err = errors.New(errMissingMethod)

	case MethodPing:
		resp.Result = MessageResult{Message: "pong"}

	case MethodHeartbeat:
		resp.Result = StatusResult{Status: "alive"}

	case MethodShutdown:
		resp.Result = MessageResult{Message: "shutting down"}
		shutdown = true

		log.Infow("shutdown requested by client")

	case MethodExplorePath:
		resp.Result, err = h.explorePath(req.Params)

	case MethodExploreTypeSource:
		resp.Result, err = h.exploreTypeSource(req.Params)

	default:
		err = errors.Newf("%s%s", errUnknownMethodPrefix, req.Method)
	}

	elapsed := time.Since(start)
	h.metrics.ObserveRequest(methodLabel(req.Method), err, elapsed)

	if err != nil {
		resp.Result = nil
		resp.Error = err.Error()

		log.Debugw("request failed", logger.FieldError, err, logger.FieldDurationMS, elapsed.Milliseconds())

		return resp, shutdown
	}

	log.Debugw("request handled", logger.FieldDurationMS, elapsed.Milliseconds())

	return resp, shutdown
}

func (h *Handler) explorePath(raw json.RawMessage) (any, error) {
	var params ExplorePathParams
	if err := decodeParams(raw, &params); err != nil || len(params.Sources) == 0 || params.PathExpression == nil {
		return nil, errors.New(errMissingExploreParam)
	}

	result, err := h.types.Load().resolver.Resolve(resolve.Request{
		Sources:            params.Sources,
		PathExpression:     *params.PathExpression,
		IsEnum:             params.IsEnum,
		IsTargetCompletion: params.IsTargetCompletion,
	})
	if err != nil {
		return nil, errors.Newf("%s%s", errExplorePrefix, err.Error())
	}

	return result, nil
}

func (h *Handler) exploreTypeSource(raw json.RawMessage) (any, error) {
	locator := h.types.Load().locator
	if locator == nil {
		return nil, errors.New(errLocateUnsupported)
	}

	var params TypeSourceParams
	if err := decodeParams(raw, &params); err != nil || strings.TrimSpace(params.Type) == "" {
		return nil, errors.New(errMissingTypeParam)
	}

	path, err := locator.Locate(shape.TypeRef(strings.TrimSpace(params.Type)))
	if err != nil {
		return nil, errors.Newf("%s%s", errLocatePrefix, err.Error())
	}

	return SourcePathResult{SourcePath: path}, nil
}

// decodeParams decodes an object. Missing, null and array params decode as
// an empty object.
func decodeParams(raw json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	return json.Unmarshal(trimmed, v)
}

// methodLabel bounds the metric label cardinality.
func methodLabel(method string) string {
	switch method {
	case MethodPing, MethodHeartbeat, MethodShutdown, MethodExplorePath, MethodExploreTypeSource:
		return method
	case "":
		return "missing"
	default:
		return "unknown"
	}
}
