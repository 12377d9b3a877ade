// Package ipc serves completion requests over a Unix domain socket.
//
// Messages are JSON objects, one per line, in both directions:
//
//	{"id":"1","method":"explore_path","params":{"sources":[{"name":"p","type":"store.Order"}],"pathExpression":"Items."}}
//	{"id":"1","result":{"className":"[]path-explorer/store.OrderItem", ...}}
//
// The server is meant to live as long as the editor that started it. It
// stops when the client disconnects, when no line arrives within the
// heartbeat timeout, on a shutdown request, or when its context ends.
package ipc
