package ipc

import (
	"encoding/json"

	"path-explorer/internal/resolve"
)

// Method names.
const (
	MethodPing              = "ping"
	MethodHeartbeat         = "heartbeat"
	MethodShutdown          = "shutdown"
	MethodExplorePath       = "explore_path"
	MethodExploreTypeSource = "explore_type_source"
)

// Error messages sent back to clients.
const (
	errMissingMethod       = "Missing 'method' field"
	errMissingExploreParam = "Missing required params: sources (array), pathExpression"
	errMissingTypeParam    = "Missing required params: type"
	errUnknownMethodPrefix = "Unknown method: "
	errInvalidJSONPrefix   = "Invalid JSON: "
	errExplorePrefix       = "Error exploring path: "
	errLocatePrefix        = "Error locating type: "
	errLocateUnsupported   = "Type source lookup is not supported by the configured types"
)

// Request is one line sent by the client. ID is echoed back verbatim.
type Request struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is one line sent to the client. Exactly one of Result and
// Error is set.
type Response struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Result any             `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// MessageResult is the result of ping and shutdown.
type MessageResult struct {
	Message string `json:"message"`
}

// StatusResult is the result of heartbeat.
type StatusResult struct {
	Status string `json:"status"`
}

// SourcePathResult is the result of explore_type_source.
type SourcePathResult struct {
	SourcePath string `json:"sourcePath"`
}

// ExplorePathParams are the params of explore_path. PathExpression is a
// pointer so a missing expression can be told apart from an empty one.
type ExplorePathParams struct {
	Sources            []resolve.SourceParameter `json:"sources"`
	PathExpression     *string                   `json:"pathExpression"`
	IsEnum             bool                      `json:"isEnum"`
	IsTargetCompletion bool                      `json:"isTargetCompletion"`
}

// TypeSourceParams are the params of explore_type_source.
type TypeSourceParams struct {
	Type string `json:"type"`
}
